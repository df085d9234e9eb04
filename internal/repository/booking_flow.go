package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/utils"
)

// BookingFlow bundles the repositories that participate in the booking
// lifecycle and owns the transactions spanning them. Reserving seats and
// persisting the booking happen in one transaction, as do cancelling and
// releasing, so a failure at any point rolls the whole operation back and
// never strands reserved seats.
type BookingFlow struct {
	db        *sql.DB
	Bookings  *BookingRepo
	Schedules *ScheduleRepo
	Catalog   *CatalogRepo
}

func NewBookingFlow(db *sql.DB, b *BookingRepo, s *ScheduleRepo, c *CatalogRepo) *BookingFlow {
	if db == nil || b == nil || s == nil || c == nil {
		panic("nil dependency passed to NewBookingFlow")
	}
	return &BookingFlow{db: db, Bookings: b, Schedules: s, Catalog: c}
}

// Create reserves len(passengers) seats and persists a CONFIRMED booking
// for them. When hasAmount is false the amount is computed as the train
// fare times the passenger count. A confirmation-code collision is retried
// once with a fresh code before the operation fails; the unique index, not
// the generator, is the final arbiter of PNR uniqueness.
func (f *BookingFlow) Create(ctx context.Context, userID, scheduleID uint64, passengers []model.Passenger, amountCents uint32, hasAmount bool) (model.Booking, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seats := uint32(len(passengers))
	if err := f.Schedules.ReserveSeatsTx(ctx, tx, scheduleID, seats); err != nil {
		return model.Booking{}, err
	}
	trainID, fareCents, travelDate, err := f.Catalog.FareByScheduleTx(ctx, tx, scheduleID)
	if err != nil {
		return model.Booking{}, err
	}
	if !hasAmount {
		amountCents = fareCents * seats
	}

	b := model.Booking{
		UserID:      userID,
		TrainID:     trainID,
		ScheduleID:  scheduleID,
		TravelDate:  travelDate,
		AmountCents: amountCents,
		Status:      model.BookingStatusConfirmed,
		Passengers:  passengers,
	}
	// One regeneration attempt on collision; duplicate-key errors do not
	// poison the InnoDB transaction.
	for attempt := 0; attempt < 2; attempt++ {
		if b.PNR, err = utils.NewPNR(); err != nil {
			return model.Booking{}, err
		}
		err = f.Bookings.CreateTx(ctx, tx, &b)
		if err != ErrDuplicatePNR {
			break
		}
	}
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// GetByPNR looks a booking up by confirmation code and enforces the
// owner-or-admin rule.
func (f *BookingFlow) GetByPNR(ctx context.Context, pnr string, requesterID uint64, admin bool) (model.Booking, error) {
	b, err := f.Bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return model.Booking{}, err
	}
	if b.UserID != requesterID && !admin {
		return model.Booking{}, ErrForbidden
	}
	return b, nil
}

// Cancel flips a CONFIRMED booking to CANCELLED and returns its seats to
// the schedule, in that order inside one transaction. The second cancel of
// the same booking fails with ErrAlreadyCancelled and releases nothing.
// The released seat count is returned for the cancellation event.
func (f *BookingFlow) Cancel(ctx context.Context, bookingID, requesterID uint64, admin bool) (model.Booking, uint32, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, seats, err := f.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, 0, err
	}
	if b.UserID != requesterID && !admin {
		return model.Booking{}, 0, ErrForbidden
	}
	if err := f.Bookings.CancelTx(ctx, tx, bookingID); err != nil {
		return model.Booking{}, 0, err
	}
	if err := f.Schedules.ReleaseSeatsTx(ctx, tx, b.ScheduleID, seats); err != nil {
		return model.Booking{}, 0, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, 0, err
	}
	committed = true
	b.Status = model.BookingStatusCancelled
	return b, seats, nil
}

// ListByUser returns the caller's bookings, newest first.
func (f *BookingFlow) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return f.Bookings.ListByUser(ctx, userID)
}
