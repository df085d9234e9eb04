package handler

import (
	"context"  // detached contexts for event publishing
	"errors"   // errors.Is comparisons against store sentinels
	"log"      // operational logging for integrity faults
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"strings"  // input normalization
	"time"     // event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/queue"
	"github.com/iliyamo/train-reservation/internal/repository"
)

// BookingHandler exposes the booking lifecycle: create, lookup by PNR,
// list and cancel. All methods assume JWT authentication has already run,
// so the user id and role are available in the request context. The
// transactional seat accounting lives behind the BookingStore; this layer
// validates input, maps errors to status codes and emits broker events.
type BookingHandler struct {
	Bookings BookingStore

	// Optional event hooks; nil disables publishing (e.g. in tests).
	// Wired to the RabbitMQ publisher in main.
	PublishConfirmed func(context.Context, queue.BookingConfirmedEvent) error
	PublishCancelled func(context.Context, queue.BookingCancelledEvent) error
}

// NewBookingHandler constructs a BookingHandler. The store must be non-nil.
func NewBookingHandler(bookings BookingStore) *BookingHandler {
	if bookings == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	ScheduleID  uint64            `json:"schedule_id"`
	Passengers  []model.Passenger `json:"passengers"`
	AmountCents *uint32           `json:"amount_cents"`
}

// Create handles POST /v1/bookings. It reserves one seat per passenger on
// the schedule and persists a CONFIRMED booking. The reservation and the
// booking write succeed or fail together; when capacity is insufficient
// the caller gets 400 and no state changes.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ScheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id is required"})
	}
	if len(req.Passengers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengers must not be empty"})
	}
	for i := range req.Passengers {
		req.Passengers[i].Name = strings.TrimSpace(req.Passengers[i].Name)
		if req.Passengers[i].Name == "" || req.Passengers[i].Age == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each passenger needs a name and a positive age"})
		}
	}

	var amount uint32
	hasAmount := req.AmountCents != nil
	if hasAmount {
		amount = *req.AmountCents
	}

	b, err := h.Bookings.Create(c.Request().Context(), userID, req.ScheduleID, req.Passengers, amount, hasAmount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, repository.ErrNotEnoughSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough seats"})
		case errors.Is(err, repository.ErrDuplicatePNR):
			// Two generation attempts collided; astronomically unlikely
			// unless the code space is exhausted.
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not allocate confirmation code, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if h.PublishConfirmed != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:   b.ID,
			PNR:         b.PNR,
			UserID:      b.UserID,
			TrainID:     b.TrainID,
			ScheduleID:  b.ScheduleID,
			TravelDate:  b.TravelDate.UTC().Format("2006-01-02"),
			Passengers:  len(b.Passengers),
			AmountCents: b.AmountCents,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.PublishConfirmed(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"pnr":          b.PNR,
		"booking_id":   b.ID,
		"amount_cents": b.AmountCents,
		"status":       string(b.Status),
	})
}

// GetByPNR handles GET /v1/bookings/:pnr. Only the owning user or an
// admin may read a booking.
func (h *BookingHandler) GetByPNR(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pnr := strings.TrimSpace(c.Param("pnr"))
	if pnr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pnr is required"})
	}
	b, err := h.Bookings.GetByPNR(c.Request().Context(), pnr, userID, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": bookingResp(b)})
}

// List handles GET /v1/bookings and returns the caller's bookings,
// newest first.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": details})
}

// Cancel handles POST /v1/bookings/:id/cancel. Cancelling is permitted to
// the owning user or an admin, exactly once per booking: the second
// attempt gets 400 and the seats are not released again.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	b, seats, err := h.Bookings.Cancel(c.Request().Context(), bookingID, userID, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "already cancelled"})
		case errors.Is(err, repository.ErrSeatConservation):
			// Counter and bookings table disagree; surface, never clamp.
			log.Printf("booking cancel: seat conservation violated for booking %d", bookingID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat accounting fault"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	if h.PublishCancelled != nil {
		ev := queue.BookingCancelledEvent{
			BookingID:     b.ID,
			PNR:           b.PNR,
			UserID:        b.UserID,
			ScheduleID:    b.ScheduleID,
			SeatsReleased: seats,
			CancelledAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.PublishCancelled(ctx, ev)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{"cancelled": true})
}

// bookingResp shapes a booking for JSON responses.
func bookingResp(b model.Booking) echo.Map {
	return echo.Map{
		"id":           b.ID,
		"pnr":          b.PNR,
		"user_id":      b.UserID,
		"train_id":     b.TrainID,
		"schedule_id":  b.ScheduleID,
		"travel_date":  b.TravelDate.UTC().Format("2006-01-02"),
		"amount_cents": b.AmountCents,
		"status":       string(b.Status),
		"passengers":   b.Passengers,
		"created_at":   b.CreatedAt,
	}
}
