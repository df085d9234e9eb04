package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-reservation/internal/model"
)

// ScheduleRepo owns the per-run seat counter in the 'schedules'
// table. The counter is mutated only through the two conditional
// updates below; nothing else in the codebase writes
// available_seats. Because the precondition lives in the WHERE
// clause, the check-and-modify is a single indivisible statement
// and stays correct across concurrent requests and multiple
// service instances.
type ScheduleRepo struct{ db *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning the seat counter and the bookings table.
func (r *ScheduleRepo) DB() *sql.DB { return r.db }

// GetByID fetches a schedule row.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (model.Schedule, error) {
	var s model.Schedule
	err := r.db.QueryRowContext(ctx,
		`SELECT id, train_id, travel_date, departure, arrival, duration, total_seats, available_seats
		 FROM schedules WHERE id=? LIMIT 1`, id).
		Scan(&s.ID, &s.TrainID, &s.TravelDate, &s.Departure, &s.Arrival, &s.Duration, &s.TotalSeats, &s.AvailableSeats)
	if err == sql.ErrNoRows {
		return model.Schedule{}, ErrScheduleNotFound
	}
	return s, err
}

// ListByTrain returns the runs of a train ordered by date, optionally
// restricted to a single travel date (dateFilter in "2006-01-02"
// form, empty for all upcoming runs).
func (r *ScheduleRepo) ListByTrain(ctx context.Context, trainID uint64, dateFilter string) ([]model.Schedule, error) {
	q := `SELECT id, train_id, travel_date, departure, arrival, duration, total_seats, available_seats
	      FROM schedules WHERE train_id=?`
	args := []interface{}{trainID}
	if dateFilter != "" {
		q += " AND travel_date=?"
		args = append(args, dateFilter)
	}
	q += " ORDER BY travel_date, departure"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Schedule, 0)
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.TrainID, &s.TravelDate, &s.Departure, &s.Arrival, &s.Duration, &s.TotalSeats, &s.AvailableSeats); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReserveSeatsTx decrements available_seats by seats inside the
// caller's transaction. The decrement applies only when enough
// seats remain at the instant of the update; losing the race yields
// ErrNotEnoughSeats and a missing schedule yields
// ErrScheduleNotFound. The caller rolls back its transaction to
// undo the decrement.
func (r *ScheduleRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, seats uint32) error {
	if seats == 0 {
		return ErrNotEnoughSeats
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE schedules SET available_seats = available_seats - ? WHERE id=? AND available_seats >= ?",
		seats, scheduleID, seats)
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
	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM schedules WHERE id=?", scheduleID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotEnoughSeats
}

// ReleaseSeatsTx returns seats to the counter inside the caller's
// transaction. The guard keeps available_seats from ever exceeding
// total_seats: a failed release on an existing schedule means the
// counter and the bookings table disagree, which is surfaced as
// ErrSeatConservation rather than clamped away.
func (r *ScheduleRepo) ReleaseSeatsTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, seats uint32) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE schedules SET available_seats = available_seats + ? WHERE id=? AND available_seats + ? <= total_seats",
		seats, scheduleID, seats)
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
	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM schedules WHERE id=?", scheduleID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}
	return ErrSeatConservation
}
