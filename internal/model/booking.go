package model

import "time"

// Booking statuses form a closed set.  A booking is created CONFIRMED and
// may move to COMPLETED (trip finished) or CANCELLED (soft mark; the seats
// themselves are only released when the booking is deleted).  COMPLETED
// and CANCELLED are terminal.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// bookingTransitions maps each status to the statuses reachable from it.
var bookingTransitions = map[string][]string{
	BookingConfirmed: {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
}

// ValidBookingStatus reports whether s is a member of the closed status set.
func ValidBookingStatus(s string) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionBooking reports whether a booking may move from one status
// to another.  Self transitions are allowed so that repeated status
// updates are idempotent.
func CanTransitionBooking(from, to string) bool {
	if !ValidBookingStatus(from) || !ValidBookingStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking records a confirmed reservation of one or more seats on a
// schedule.  The total fare is fixed at creation time (schedule fare ×
// seat count) and never recomputed.  QRCode holds the opaque reference
// token shown to the passenger; it identifies the booking but is not a
// security credential.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – account that made the booking; nil for anonymous.
//  ScheduleID     – schedule being travelled.
//  PassengerName  – name of the travelling passenger.
//  PassengerPhone – contact number of the passenger.
//  TotalFare      – schedule fare × number of seats, set at creation.
//  Status         – one of the Booking* constants.
//  QRCode         – opaque reference token (nullable).
//  CreatedAt      – creation timestamp.
type Booking struct {
	ID             uint64    // bookings.id
	UserID         *uint64   // bookings.user_id (nullable)
	ScheduleID     uint64    // bookings.schedule_id
	PassengerName  string    // bookings.passenger_name
	PassengerPhone string    // bookings.passenger_phone
	TotalFare      float64   // bookings.total_fare
	Status         string    // bookings.booking_status
	QRCode         *string   // bookings.qr_code (nullable)
	CreatedAt      time.Time // bookings.created_at
}

// BookingSeat links a booking to one claimed seat.  Rows exist only
// while their booking exists; deleting the booking deletes them and the
// underlying seats are released by application logic, never by a
// database cascade.
type BookingSeat struct {
	ID        uint64 // booking_seats.id
	BookingID uint64 // booking_seats.booking_id
	SeatID    uint64 // booking_seats.seat_id
}
