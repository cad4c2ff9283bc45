// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between failure scenarios
// without inspecting SQL errors. NotFound errors map to 404 responses,
// ErrSeatsNotFound to 400 (the caller's seat selection did not resolve
// cleanly) and SeatConflictError to 409.
package repository

import (
	"errors"
	"fmt"
)

// ErrBusNotFound is returned when a bus lookup yields no rows.
var ErrBusNotFound = errors.New("bus not found")

// ErrScheduleNotFound is returned when a schedule lookup yields no rows.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrSeatNotFound is returned when a single-seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPaymentNotFound is returned when a payment lookup yields no rows.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrSeatsNotFound is returned by ClaimTx when the requested seat ids do
// not all resolve to seats of the given schedule. A duplicate id in the
// request and an id belonging to another schedule both surface here,
// because either way the retrieved count differs from the requested count.
var ErrSeatsNotFound = errors.New("some seats not found")

// SeatConflictError is returned by ClaimTx when a requested seat has
// already been claimed by another booking. It carries the seat number so
// the caller can tell the passenger which seat to give up.
type SeatConflictError struct {
	SeatNumber uint32
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %d is already booked", e.SeatNumber)
}
