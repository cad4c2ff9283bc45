package model

// Seat is a numbered claimable slot on a schedule.  Seat numbers are
// unique within a schedule and run contiguously from 1 to the bus's
// declared total.  IsAvailable is false exactly while one live booking
// holds the seat; it is flipped only by the claim and release paths.
//
// Fields:
//  ID          – primary key identifier.
//  ScheduleID  – schedule to which this seat belongs.
//  SeatNumber  – position within the schedule (1-based).
//  IsAvailable – whether the seat can currently be claimed.
type Seat struct {
	ID          uint64 // seats.id
	ScheduleID  uint64 // seats.schedule_id
	SeatNumber  uint32 // seats.seat_number
	IsAvailable bool   // seats.is_available
}
