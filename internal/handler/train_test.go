package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/repository"
)

func searchCtx(e *echo.Echo, query url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, "/v1/trains/search?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestSearch_RequiresFromAndTo(t *testing.T) {
	h := NewTrainHandler(&mockCatalogStore{}, &mockScheduleStore{})
	e := echo.New()

	cases := []url.Values{
		{},
		{"from": {"Delhi"}},
		{"to": {"Mumbai"}},
		{"from": {"  "}, "to": {"Mumbai"}},
	}
	for _, q := range cases {
		rec, c := searchCtx(e, q)
		if err := h.Search(c); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %v: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestSearch_RejectsBadDate(t *testing.T) {
	h := NewTrainHandler(&mockCatalogStore{}, &mockScheduleStore{})
	rec, c := searchCtx(echo.New(), url.Values{
		"from": {"Delhi"}, "to": {"Mumbai"}, "date": {"15-09-2026"},
	})
	if err := h.Search(c); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearch_PassesQueryThrough(t *testing.T) {
	var gotFrom, gotTo, gotDate string
	catalog := &mockCatalogStore{
		searchFn: func(ctx context.Context, from, to, dateFilter string) ([]repository.SearchResult, error) {
			gotFrom, gotTo, gotDate = from, to, dateFilter
			r := repository.SearchResult{ScheduleID: 3, AvailableSeats: 42, Status: "available"}
			r.Train.ID = 1
			r.Train.Number = "12951"
			r.Train.Name = "Rajdhani Express"
			return []repository.SearchResult{r}, nil
		},
	}
	h := NewTrainHandler(catalog, &mockScheduleStore{})

	rec, c := searchCtx(echo.New(), url.Values{
		"from": {"Delhi"}, "to": {"Mumbai"}, "date": {"2026-09-15"},
	})
	if err := h.Search(c); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if gotFrom != "Delhi" || gotTo != "Mumbai" || gotDate != "2026-09-15" {
		t.Errorf("store got (%q,%q,%q)", gotFrom, gotTo, gotDate)
	}
	if !strings.Contains(rec.Body.String(), "Rajdhani Express") {
		t.Errorf("body %s missing result", rec.Body.String())
	}
}

func TestListTrains(t *testing.T) {
	catalog := &mockCatalogStore{
		listBriefFn: func(ctx context.Context) ([]repository.TrainBrief, error) {
			return []repository.TrainBrief{
				{ID: 1, Number: "12951", Name: "Rajdhani Express", Route: []string{"NDLS", "BCT"}},
				{ID: 2, Number: "12009", Name: "Shatabdi Express", Route: []string{"BCT", "ADI"}},
			}, nil
		},
	}
	h := NewTrainHandler(catalog, &mockScheduleStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/trains", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Errorf("body %s missing count", rec.Body.String())
	}
}

func TestSchedulesByTrain(t *testing.T) {
	schedules := &mockScheduleStore{
		listByTrainFn: func(ctx context.Context, trainID uint64, dateFilter string) ([]model.Schedule, error) {
			if trainID != 4 {
				t.Errorf("trainID = %d, want 4", trainID)
			}
			return []model.Schedule{{
				ID: 9, TrainID: trainID,
				TravelDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				Departure:  "06:00", Arrival: "14:30", Duration: "8h30m",
				TotalSeats: 100, AvailableSeats: 73,
			}}, nil
		},
	}
	h := NewTrainHandler(&mockCatalogStore{}, schedules)

	req := httptest.NewRequest(http.MethodGet, "/v1/trains/4/schedules", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.SchedulesByTrain(c); err != nil {
		t.Fatalf("SchedulesByTrain: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"available_seats":73`) {
		t.Errorf("body %s missing availability", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"travel_date":"2026-09-15"`) {
		t.Errorf("body %s missing formatted travel date", rec.Body.String())
	}
}

func TestSchedulesByTrain_BadID(t *testing.T) {
	h := NewTrainHandler(&mockCatalogStore{}, &mockScheduleStore{})
	req := httptest.NewRequest(http.MethodGet, "/v1/trains/abc/schedules", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.SchedulesByTrain(c); err != nil {
		t.Fatalf("SchedulesByTrain: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetSchedule_NotFound(t *testing.T) {
	h := NewTrainHandler(&mockCatalogStore{}, &mockScheduleStore{})
	req := httptest.NewRequest(http.MethodGet, "/v1/schedules/99", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.GetSchedule(c); err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
