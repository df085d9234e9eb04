package model

import "time"

// BookingStatus is the closed set of booking states.  The only
// transition is CONFIRMED -> CANCELLED, performed exactly once by
// the cancel flow.  PENDING exists in the database enum as a
// reserved value for future asynchronous payment; no code path
// writes it or transitions out of it.
type BookingStatus string

const (
    BookingStatusConfirmed BookingStatus = "CONFIRMED"
    BookingStatusCancelled BookingStatus = "CANCELLED"
    BookingStatusPending   BookingStatus = "PENDING" // reserved, never written
)

// Booking records a confirmed reservation of seats on a schedule.
// A booking is created only after the seat decrement succeeded and
// exclusively owns its passenger list.  AmountCents is immutable
// after creation.
//
// Fields:
//  ID          – primary key identifier.
//  PNR         – unique human-facing confirmation code.
//  UserID      – owning user.
//  TrainID     – train of the booked run.
//  ScheduleID  – scheduled run the seats belong to.
//  TravelDate  – date of travel, copied from the schedule at creation.
//  AmountCents – total charged amount in cents.
//  Status      – CONFIRMED or CANCELLED.
//  Passengers  – passenger list, always non-empty.
//  CreatedAt   – creation timestamp.
type Booking struct {
    ID          uint64        // bookings.id
    PNR         string        // bookings.pnr
    UserID      uint64        // bookings.user_id
    TrainID     uint64        // bookings.train_id
    ScheduleID  uint64        // bookings.schedule_id
    TravelDate  time.Time     // bookings.travel_date
    AmountCents uint32        // bookings.amount_cents
    Status      BookingStatus // bookings.status
    Passengers  []Passenger   // booking_passengers rows
    CreatedAt   time.Time     // bookings.created_at
}

// Passenger is one traveller on a booking.
//
// Fields:
//  Name   – passenger name, required.
//  Age    – age in years, must be positive.
//  Gender – free-form gender label (e.g. "F", "M", "other").
type Passenger struct {
    Name   string `json:"name"`   // booking_passengers.name
    Age    uint32 `json:"age"`    // booking_passengers.age
    Gender string `json:"gender"` // booking_passengers.gender
}
