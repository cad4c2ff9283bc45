// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// BookingConfirmedEvent is published when a reservation is successfully
// committed. It carries enough context for downstream consumers
// (notification senders, audit logs) without another database read.
type BookingConfirmedEvent struct {
	BookingID      uint64   `json:"booking_id"`
	ScheduleID     uint64   `json:"schedule_id"`
	UserID         *uint64  `json:"user_id,omitempty"`
	PassengerName  string   `json:"passenger_name"`
	SeatNumbers    []uint32 `json:"seat_numbers"`
	TotalFare      float64  `json:"total_fare"`
	Reference      string   `json:"reference"`
	ConfirmedAt    string   `json:"confirmed_at"`
}
