package model

import "time"

// Schedule statuses.  A schedule only appears in route searches while it
// is active; inactive schedules remain queryable by id.
const (
	ScheduleActive   = "active"
	ScheduleInactive = "inactive"
)

// Schedule represents one bus running its route on a specific date.
// The fare is charged per seat; a booking's total fare is the schedule
// fare multiplied by the number of seats claimed.  Seats are generated
// against a schedule once and live for as long as the schedule does.
//
// Fields:
//  ID            – primary key identifier.
//  BusID         – bus serving this schedule.
//  TravelDate    – calendar date of the trip.
//  DepartureTime – departure time at the source stop (HH:MM:SS).
//  ArrivalTime   – arrival time at the destination stop (HH:MM:SS).
//  Fare          – price per seat.
//  Status        – "active" or "inactive".
type Schedule struct {
	ID            uint64    // schedules.id
	BusID         uint64    // schedules.bus_id
	TravelDate    time.Time // schedules.travel_date
	DepartureTime string    // schedules.departure_time
	ArrivalTime   string    // schedules.arrival_time
	Fare          float64   // schedules.fare
	Status        string    // schedules.status
}
