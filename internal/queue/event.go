// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID   uint64 `json:"booking_id"`
    PNR         string `json:"pnr"`
    UserID      uint64 `json:"user_id"`
    TrainID     uint64 `json:"train_id"`
    ScheduleID  uint64 `json:"schedule_id"`
    TravelDate  string `json:"travel_date"`
    Passengers  int    `json:"passengers"`
    AmountCents uint32 `json:"amount_cents"`
    ConfirmedAt string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and its
// seats have been returned to the schedule.
type BookingCancelledEvent struct {
    BookingID     uint64 `json:"booking_id"`
    PNR           string `json:"pnr"`
    UserID        uint64 `json:"user_id"`
    ScheduleID    uint64 `json:"schedule_id"`
    SeatsReleased uint32 `json:"seats_released"`
    CancelledAt   string `json:"cancelled_at"`
}
