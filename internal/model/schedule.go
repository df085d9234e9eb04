package model

import "time"

// Schedule represents one train running on one calendar date, the
// unit against which seat capacity is tracked.  AvailableSeats is
// the single source of truth for remaining capacity; it is mutated
// only through the schedule repository's conditional updates and
// satisfies 0 <= AvailableSeats <= TotalSeats at all times.
//
// Fields:
//  ID             – primary key identifier.
//  TrainID        – train making the run.
//  TravelDate     – calendar date of the run (UTC midnight).
//  Departure      – departure time string (e.g. "09:00").
//  Arrival        – arrival time string.
//  Duration       – human-readable journey duration (e.g. "4h 00m").
//  TotalSeats     – fixed capacity of the run.
//  AvailableSeats – seats still open for reservation.
type Schedule struct {
    ID             uint64    // schedules.id
    TrainID        uint64    // schedules.train_id
    TravelDate     time.Time // schedules.travel_date
    Departure      string    // schedules.departure
    Arrival        string    // schedules.arrival
    Duration       string    // schedules.duration
    TotalSeats     uint32    // schedules.total_seats
    AvailableSeats uint32    // schedules.available_seats
}
