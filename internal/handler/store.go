package handler

import (
	"context"
	"time"

	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/repository"
)

// Handlers consume the persistence layer through small interfaces so the
// HTTP surface can be exercised against in-memory fakes. The concrete
// implementations live in internal/repository.

// UserStore is the credential store: identities, password hashes and the
// administrative account listing.
type UserStore interface {
	Create(ctx context.Context, name, email, phone, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, page, limit int, q string) ([]model.User, int, error)
	UpdateRole(ctx context.Context, id uint64, role model.Role) error
}

// TokenStore is the session store backing refresh credential rotation.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ConsumeRefresh(ctx context.Context, tokenHash string) (uint64, error)
	DeleteByHash(ctx context.Context, tokenHash string) (bool, error)
}

// BookingStore covers the booking lifecycle. Implementations own the
// transactions that keep the seat counter and the bookings table
// consistent, and enforce the owner-or-admin rule on reads and cancels.
type BookingStore interface {
	Create(ctx context.Context, userID, scheduleID uint64, passengers []model.Passenger, amountCents uint32, hasAmount bool) (model.Booking, error)
	GetByPNR(ctx context.Context, pnr string, requesterID uint64, admin bool) (model.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID uint64, admin bool) (model.Booking, uint32, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
}

// CatalogStore is the read-only train catalog consumed by search.
type CatalogStore interface {
	Search(ctx context.Context, from, to, dateFilter string) ([]repository.SearchResult, error)
	ListBrief(ctx context.Context) ([]repository.TrainBrief, error)
}

// ScheduleStore exposes read access to scheduled runs for browsing.
type ScheduleStore interface {
	GetByID(ctx context.Context, id uint64) (model.Schedule, error)
	ListByTrain(ctx context.Context, trainID uint64, dateFilter string) ([]model.Schedule, error)
}
