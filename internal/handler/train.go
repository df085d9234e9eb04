package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/repository"
)

// TrainHandler serves the read-only catalog: journey search, the train
// listing and per-train schedules. These routes are unauthenticated and
// sit behind the redis response cache; they never touch booking state.
type TrainHandler struct {
	Catalog   CatalogStore
	Schedules ScheduleStore
}

func NewTrainHandler(catalog CatalogStore, schedules ScheduleStore) *TrainHandler {
	if catalog == nil || schedules == nil {
		panic("nil store passed to NewTrainHandler")
	}
	return &TrainHandler{Catalog: catalog, Schedules: schedules}
}

// Search handles GET /v1/trains/search?from=&to=&date=. Both endpoints of
// the journey are required; date is optional and must be YYYY-MM-DD.
func (h *TrainHandler) Search(c echo.Context) error {
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	if from == "" || to == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to are required"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
	}
	results, err := h.Catalog.Search(c.Request().Context(), from, to, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": results})
}

// List handles GET /v1/trains and returns the brief catalog listing.
func (h *TrainHandler) List(c echo.Context) error {
	briefs, err := h.Catalog.ListBrief(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(briefs), "trains": briefs})
}

// SchedulesByTrain handles GET /v1/trains/:id/schedules?date=. It lists
// the runs of one train with their live seat availability.
func (h *TrainHandler) SchedulesByTrain(c echo.Context) error {
	trainID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || trainID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
	}
	schedules, err := h.Schedules.ListByTrain(c.Request().Context(), trainID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	out := make([]echo.Map, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, echo.Map{
			"id":              s.ID,
			"train_id":        s.TrainID,
			"travel_date":     s.TravelDate.UTC().Format("2006-01-02"),
			"departure":       s.Departure,
			"arrival":         s.Arrival,
			"duration":        s.Duration,
			"total_seats":     s.TotalSeats,
			"available_seats": s.AvailableSeats,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"schedules": out})
}

// GetSchedule handles GET /v1/schedules/:id for the booking page.
func (h *TrainHandler) GetSchedule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	s, err := h.Schedules.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":              s.ID,
		"train_id":        s.TrainID,
		"travel_date":     s.TravelDate.UTC().Format("2006-01-02"),
		"departure":       s.Departure,
		"arrival":         s.Arrival,
		"duration":        s.Duration,
		"total_seats":     s.TotalSeats,
		"available_seats": s.AvailableSeats,
	})
}
