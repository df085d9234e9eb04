// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrNotEnoughSeats signals that a reservation
// lost the race for the remaining capacity of a schedule.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by user creation when the normalized
// email already has an account. Handlers translate this into 409.
var ErrEmailExists = errors.New("email already exists")

// ErrScheduleNotFound is returned when a referenced scheduled run
// does not exist.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrNotEnoughSeats is returned when the conditional seat decrement
// finds fewer available seats than requested. It is an expected
// outcome under contention, not a server fault.
var ErrNotEnoughSeats = errors.New("not enough seats")

// ErrSeatConservation is returned when releasing seats would push
// available_seats above total_seats. This indicates corrupted
// counter state and must be surfaced as a server fault, never
// silently clamped.
var ErrSeatConservation = errors.New("seat release would exceed capacity")

// ErrBookingNotFound is returned when a booking lookup by id or
// PNR matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyCancelled is returned when cancelling a booking whose
// status is already CANCELLED. The second attempt is rejected and
// releases no seats.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrDuplicatePNR is returned when inserting a booking collides on
// the unique pnr index. Callers regenerate the code and retry once
// before giving up.
var ErrDuplicatePNR = errors.New("pnr already exists")
