package model

import "testing"

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{BookingConfirmed, BookingCompleted, BookingCancelled} {
		if !ValidBookingStatus(s) {
			t.Fatalf("%q should be a valid booking status", s)
		}
	}
	for _, s := range []string{"", "confirmed", "PENDING", "EXPIRED"} {
		if ValidBookingStatus(s) {
			t.Fatalf("%q should not be a valid booking status", s)
		}
	}
}

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingCompleted, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingConfirmed, false},
		// Self transitions are idempotent updates.
		{BookingConfirmed, BookingConfirmed, true},
		{BookingCompleted, BookingCompleted, true},
		{BookingCancelled, BookingCancelled, true},
		// Unknown statuses never transition.
		{"PENDING", BookingConfirmed, false},
		{BookingConfirmed, "PENDING", false},
	}
	for _, c := range cases {
		if got := CanTransitionBooking(c.from, c.to); got != c.want {
			t.Fatalf("CanTransitionBooking(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
