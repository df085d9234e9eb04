package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/train-reservation/internal/model"
)

// BookingRepo provides persistence for bookings and their passenger
// lists. Passenger rows live in the booking_passengers table and
// are written together with the booking inside the caller's
// transaction. All timestamp fields are stored in UTC.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a booking and its passenger rows within the scope
// of an existing transaction. It populates the generated ID on the
// provided booking. A collision on the unique pnr index returns
// ErrDuplicatePNR without poisoning the transaction, so the caller
// may regenerate the code and call CreateTx again on the same tx.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (pnr, user_id, train_id, schedule_id, travel_date, amount_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.PNR, b.UserID, b.TrainID, b.ScheduleID, b.TravelDate, b.AmountCents, string(b.Status))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicatePNR
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if len(b.Passengers) == 0 {
		return nil
	}
	// Bulk insert the passenger list in one statement.
	ins := `INSERT INTO booking_passengers (booking_id, name, age, gender) VALUES `
	args := make([]interface{}, 0, len(b.Passengers)*4)
	for i, p := range b.Passengers {
		if i > 0 {
			ins += ","
		}
		ins += "(?, ?, ?, ?)"
		args = append(args, b.ID, p.Name, p.Age, p.Gender)
	}
	_, err = tx.ExecContext(ctx, ins, args...)
	return err
}

// GetByPNR returns a booking with its passenger list, looked up by
// confirmation code. ErrBookingNotFound is returned when no booking
// carries the code; ownership checks belong to the caller.
func (r *BookingRepo) GetByPNR(ctx context.Context, pnr string) (model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx,
		`SELECT id, pnr, user_id, train_id, schedule_id, travel_date, amount_cents, status, created_at
		 FROM bookings WHERE pnr=? LIMIT 1`, pnr).
		Scan(&b.ID, &b.PNR, &b.UserID, &b.TrainID, &b.ScheduleID, &b.TravelDate, &b.AmountCents, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if b.Passengers, err = r.passengersFor(ctx, b.ID); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// GetForUpdateTx loads a booking row with a row lock inside the
// caller's transaction, including the passenger count needed to
// release capacity on cancellation. ErrBookingNotFound is returned
// when the id matches no row.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, uint32, error) {
	var b model.Booking
	err := tx.QueryRowContext(ctx,
		`SELECT id, pnr, user_id, train_id, schedule_id, travel_date, amount_cents, status, created_at
		 FROM bookings WHERE id=? FOR UPDATE`, id).
		Scan(&b.ID, &b.PNR, &b.UserID, &b.TrainID, &b.ScheduleID, &b.TravelDate, &b.AmountCents, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, 0, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, 0, err
	}
	var count uint32
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking_passengers WHERE booking_id=?", id).Scan(&count); err != nil {
		return model.Booking{}, 0, err
	}
	return b, count, nil
}

// CancelTx flips a booking to CANCELLED inside the caller's
// transaction. The status check lives in the WHERE clause so the
// flip happens at most once: a second cancel attempt affects no
// rows and reports ErrAlreadyCancelled.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		string(model.BookingStatusCancelled), id, string(model.BookingStatusConfirmed))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var status string
	err = tx.QueryRowContext(ctx, "SELECT status FROM bookings WHERE id=?", id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyCancelled
}

// BookingDetail is the listing shape returned to customers. It
// joins train identification onto the booking so the client does
// not need catalog lookups.
type BookingDetail struct {
	ID          uint64            `json:"id"`
	PNR         string            `json:"pnr"`
	TrainNumber string            `json:"train_number"`
	TrainName   string            `json:"train_name"`
	TravelDate  time.Time         `json:"travel_date"`
	Status      string            `json:"status"`
	AmountCents uint32            `json:"amount_cents"`
	Passengers  []model.Passenger `json:"passengers"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ListByUser returns all bookings for the given user, newest first,
// with passenger lists populated in a single follow-up query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.pnr, t.number, t.name, b.travel_date, b.status, b.amount_cents, b.created_at
	           FROM bookings b
	           JOIN trains t ON t.id = b.train_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.PNR, &d.TrainNumber, &d.TrainName, &d.TravelDate, &d.Status, &d.AmountCents, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Passengers = []model.Passenger{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	pq := `SELECT booking_id, name, age, gender FROM booking_passengers
	       WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	       ORDER BY booking_id, id`
	prows, err := r.db.QueryContext(ctx, pq, ids...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var bid uint64
		var p model.Passenger
		if err := prows.Scan(&bid, &p.Name, &p.Age, &p.Gender); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Passengers = append(details[idx].Passengers, p)
		}
	}
	return details, prows.Err()
}

func (r *BookingRepo) passengersFor(ctx context.Context, bookingID uint64) ([]model.Passenger, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, age, gender FROM booking_passengers WHERE booking_id=? ORDER BY id", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Passenger, 0)
	for rows.Next() {
		var p model.Passenger
		if err := rows.Scan(&p.Name, &p.Age, &p.Gender); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
