package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// CatalogRepo is the read-only view over the train/station/schedule
// catalog consumed by search and booking. Booking flows use it to
// resolve fares; nothing here mutates catalog state, which is
// curated out of band by administrators.
type CatalogRepo struct{ db *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// TrainBrief is the compact listing shape for GET /v1/trains.
type TrainBrief struct {
	ID     uint64   `json:"id"`
	Number string   `json:"number"`
	Name   string   `json:"name"`
	Route  []string `json:"route"`
}

// SearchResult describes one bookable run matching a journey query.
// Status mirrors the legacy availability buckets shown to clients:
// "available" above 20 seats, "rac" above zero, otherwise "waiting".
type SearchResult struct {
	Train struct {
		ID     uint64 `json:"id"`
		Number string `json:"number"`
		Name   string `json:"name"`
	} `json:"train"`
	ScheduleID     uint64    `json:"schedule_id"`
	TravelDate     time.Time `json:"travel_date"`
	Departure      string    `json:"departure"`
	Arrival        string    `json:"arrival"`
	Duration       string    `json:"duration"`
	AvailableSeats uint32    `json:"available_seats"`
	FareCents      uint32    `json:"fare_cents"`
	Status         string    `json:"status"`
	Route          []string  `json:"route"`
}

// availabilityStatus buckets a seat count the way the search UI
// expects.
func availabilityStatus(seats uint32) string {
	switch {
	case seats > 20:
		return "available"
	case seats > 0:
		return "rac"
	default:
		return "waiting"
	}
}

// Search finds runs of trains whose ordered route visits a station
// matching `from` before a station matching `to`. Matching is a
// case-insensitive substring match on station name or city, so
// "delhi" finds "New Delhi". An empty dateFilter returns runs on
// any date; otherwise it must be a "2006-01-02" string.
func (r *CatalogRepo) Search(ctx context.Context, from, to, dateFilter string) ([]SearchResult, error) {
	fromPat := "%" + strings.TrimSpace(from) + "%"
	toPat := "%" + strings.TrimSpace(to) + "%"
	q := `SELECT DISTINCT t.id, t.number, t.name, t.fare_cents,
	             sc.id, sc.travel_date, sc.departure, sc.arrival, sc.duration, sc.available_seats
	      FROM trains t
	      JOIN train_stops o  ON o.train_id = t.id
	      JOIN stations os    ON os.id = o.station_id
	      JOIN train_stops d  ON d.train_id = t.id
	      JOIN stations ds    ON ds.id = d.station_id
	      JOIN schedules sc   ON sc.train_id = t.id
	      WHERE (os.name LIKE ? OR os.city LIKE ?)
	        AND (ds.name LIKE ? OR ds.city LIKE ?)
	        AND o.stop_order < d.stop_order`
	args := []interface{}{fromPat, fromPat, toPat, toPat}
	if dateFilter != "" {
		q += " AND sc.travel_date = ?"
		args = append(args, dateFilter)
	}
	q += " ORDER BY sc.travel_date, sc.departure"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make([]SearchResult, 0)
	trainIDs := make([]uint64, 0)
	seenTrain := make(map[uint64]bool)
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(&res.Train.ID, &res.Train.Number, &res.Train.Name, &res.FareCents,
			&res.ScheduleID, &res.TravelDate, &res.Departure, &res.Arrival, &res.Duration, &res.AvailableSeats); err != nil {
			return nil, err
		}
		res.Status = availabilityStatus(res.AvailableSeats)
		res.Route = []string{}
		if !seenTrain[res.Train.ID] {
			seenTrain[res.Train.ID] = true
			trainIDs = append(trainIDs, res.Train.ID)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return results, nil
	}
	routes, err := r.routesFor(ctx, trainIDs)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if route, ok := routes[results[i].Train.ID]; ok {
			results[i].Route = route
		}
	}
	return results, nil
}

// ListBrief returns every train with its route, for the debug-style
// catalog listing.
func (r *CatalogRepo) ListBrief(ctx context.Context) ([]TrainBrief, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, number, name FROM trains ORDER BY number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	briefs := make([]TrainBrief, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		var b TrainBrief
		if err := rows.Scan(&b.ID, &b.Number, &b.Name); err != nil {
			return nil, err
		}
		b.Route = []string{}
		ids = append(ids, b.ID)
		briefs = append(briefs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(briefs) == 0 {
		return briefs, nil
	}
	routes, err := r.routesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range briefs {
		if route, ok := routes[briefs[i].ID]; ok {
			briefs[i].Route = route
		}
	}
	return briefs, nil
}

// FareByScheduleTx resolves the per-passenger fare for a scheduled
// run inside the caller's transaction. ErrScheduleNotFound is
// returned when the run does not exist.
func (r *CatalogRepo) FareByScheduleTx(ctx context.Context, tx *sql.Tx, scheduleID uint64) (trainID uint64, fareCents uint32, travelDate time.Time, err error) {
	err = tx.QueryRowContext(ctx,
		`SELECT t.id, t.fare_cents, sc.travel_date
		 FROM schedules sc JOIN trains t ON t.id = sc.train_id
		 WHERE sc.id=? LIMIT 1`, scheduleID).Scan(&trainID, &fareCents, &travelDate)
	if err == sql.ErrNoRows {
		err = ErrScheduleNotFound
	}
	return
}

// routesFor loads ordered station names for each train id in one
// query, keyed by train.
func (r *CatalogRepo) routesFor(ctx context.Context, trainIDs []uint64) (map[uint64][]string, error) {
	ids := make([]interface{}, 0, len(trainIDs))
	placeholders := make([]string, 0, len(trainIDs))
	for _, id := range trainIDs {
		ids = append(ids, id)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT ts.train_id, s.name
	      FROM train_stops ts JOIN stations s ON s.id = ts.station_id
	      WHERE ts.train_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY ts.train_id, ts.stop_order`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	routes := make(map[uint64][]string)
	for rows.Next() {
		var tid uint64
		var name string
		if err := rows.Scan(&tid, &name); err != nil {
			return nil, err
		}
		routes[tid] = append(routes[tid], name)
	}
	return routes, rows.Err()
}
