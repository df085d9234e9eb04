package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/repository"
)

// Function-field mocks for the store interfaces. Each method falls back to
// a harmless default so tests only wire what they assert on.

type mockUserStore struct {
	createFn     func(ctx context.Context, name, email, phone, password string, cost int) (uint64, error)
	getByEmailFn func(ctx context.Context, email string) (model.User, error)
	getByIDFn    func(ctx context.Context, id uint64) (model.User, error)
	listFn       func(ctx context.Context, page, limit int, q string) ([]model.User, int, error)
	updateRoleFn func(ctx context.Context, id uint64, role model.Role) error
}

func (m *mockUserStore) Create(ctx context.Context, name, email, phone, password string, cost int) (uint64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, email, phone, password, cost)
	}
	return 1, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return model.User{}, errors.New("not wired")
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return model.User{ID: id, Name: "Test", Email: "test@example.com", Role: model.RoleUser}, nil
}

func (m *mockUserStore) List(ctx context.Context, page, limit int, q string) ([]model.User, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, limit, q)
	}
	return nil, 0, nil
}

func (m *mockUserStore) UpdateRole(ctx context.Context, id uint64, role model.Role) error {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, id, role)
	}
	return nil
}

// fakeTokenStore is an in-memory refresh token store with the same
// consume-at-most-once semantics as the SQL implementation.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uint64 // hash -> user id
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]uint64)}
}

func (f *fakeTokenStore) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeTokenStore) ConsumeRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.tokens[tokenHash]
	if !ok {
		return 0, errors.New("no such token")
	}
	delete(f.tokens, tokenHash)
	return uid, nil
}

func (f *fakeTokenStore) DeleteByHash(ctx context.Context, tokenHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[tokenHash]; !ok {
		return false, nil
	}
	delete(f.tokens, tokenHash)
	return true, nil
}

// fakeBookingStore mirrors the transactional booking flow in memory: a
// guarded seat counter per schedule, conditional decrement on create and
// conditional release on cancel. The mutex plays the role the conditional
// UPDATE plays in SQL, so concurrency tests exercise the same contract.
type fakeBookingStore struct {
	mu        sync.Mutex
	nextID    uint64
	fareCents uint32
	seats     map[uint64]*fakeSchedule
	bookings  map[uint64]*model.Booking
	byPNR     map[string]uint64
}

type fakeSchedule struct {
	total     uint32
	available uint32
}

func newFakeBookingStore(fareCents uint32) *fakeBookingStore {
	return &fakeBookingStore{
		fareCents: fareCents,
		seats:     make(map[uint64]*fakeSchedule),
		bookings:  make(map[uint64]*model.Booking),
		byPNR:     make(map[string]uint64),
	}
}

func (f *fakeBookingStore) addSchedule(id uint64, total, available uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seats[id] = &fakeSchedule{total: total, available: available}
}

func (f *fakeBookingStore) availableSeats(id uint64) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seats[id].available
}

func (f *fakeBookingStore) Create(ctx context.Context, userID, scheduleID uint64, passengers []model.Passenger, amountCents uint32, hasAmount bool) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.seats[scheduleID]
	if !ok {
		return model.Booking{}, repository.ErrScheduleNotFound
	}
	n := uint32(len(passengers))
	if s.available < n || n == 0 {
		return model.Booking{}, repository.ErrNotEnoughSeats
	}
	s.available -= n

	if !hasAmount {
		amountCents = f.fareCents * n
	}
	f.nextID++
	b := model.Booking{
		ID:          f.nextID,
		PNR:         fmt.Sprintf("PNR%010d", 1_000_000_000+f.nextID),
		UserID:      userID,
		TrainID:     1,
		ScheduleID:  scheduleID,
		TravelDate:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		AmountCents: amountCents,
		Status:      model.BookingStatusConfirmed,
		Passengers:  passengers,
		CreatedAt:   time.Now().UTC(),
	}
	f.bookings[b.ID] = &b
	f.byPNR[b.PNR] = b.ID
	return b, nil
}

func (f *fakeBookingStore) GetByPNR(ctx context.Context, pnr string, requesterID uint64, admin bool) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byPNR[pnr]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	b := f.bookings[id]
	if b.UserID != requesterID && !admin {
		return model.Booking{}, repository.ErrForbidden
	}
	return *b, nil
}

func (f *fakeBookingStore) Cancel(ctx context.Context, bookingID, requesterID uint64, admin bool) (model.Booking, uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return model.Booking{}, 0, repository.ErrBookingNotFound
	}
	if b.UserID != requesterID && !admin {
		return model.Booking{}, 0, repository.ErrForbidden
	}
	if b.Status == model.BookingStatusCancelled {
		return model.Booking{}, 0, repository.ErrAlreadyCancelled
	}
	n := uint32(len(b.Passengers))
	s := f.seats[b.ScheduleID]
	if s.available+n > s.total {
		return model.Booking{}, 0, repository.ErrSeatConservation
	}
	b.Status = model.BookingStatusCancelled
	s.available += n
	return *b, n, nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.BookingDetail, 0)
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		out = append(out, repository.BookingDetail{
			ID:          b.ID,
			PNR:         b.PNR,
			TravelDate:  b.TravelDate,
			Status:      string(b.Status),
			AmountCents: b.AmountCents,
			Passengers:  b.Passengers,
			CreatedAt:   b.CreatedAt,
		})
	}
	return out, nil
}

type mockCatalogStore struct {
	searchFn    func(ctx context.Context, from, to, dateFilter string) ([]repository.SearchResult, error)
	listBriefFn func(ctx context.Context) ([]repository.TrainBrief, error)
}

func (m *mockCatalogStore) Search(ctx context.Context, from, to, dateFilter string) ([]repository.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, from, to, dateFilter)
	}
	return nil, nil
}

func (m *mockCatalogStore) ListBrief(ctx context.Context) ([]repository.TrainBrief, error) {
	if m.listBriefFn != nil {
		return m.listBriefFn(ctx)
	}
	return nil, nil
}

type mockScheduleStore struct {
	getByIDFn     func(ctx context.Context, id uint64) (model.Schedule, error)
	listByTrainFn func(ctx context.Context, trainID uint64, dateFilter string) ([]model.Schedule, error)
}

func (m *mockScheduleStore) GetByID(ctx context.Context, id uint64) (model.Schedule, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return model.Schedule{}, repository.ErrScheduleNotFound
}

func (m *mockScheduleStore) ListByTrain(ctx context.Context, trainID uint64, dateFilter string) ([]model.Schedule, error) {
	if m.listByTrainFn != nil {
		return m.listByTrainFn(ctx, trainID, dateFilter)
	}
	return nil, nil
}
