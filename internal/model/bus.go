package model

// Bus describes a physical vehicle operated on a route.  The source and
// destination stops identify the route served by the bus, and TotalSeats
// declares how many numbered seats each of its schedules offers.
//
// Fields:
//  ID              – primary key identifier.
//  BusNumber       – registration or fleet number of the vehicle.
//  OperatorName    – company operating the bus.
//  BusType         – vehicle class (e.g. AC_SLEEPER, SEATER).
//  SourceStop      – stop where the route begins.
//  DestinationStop – stop where the route ends.
//  TotalSeats      – number of seats generated per schedule.
type Bus struct {
	ID              uint64 // buses.id
	BusNumber       string // buses.bus_number
	OperatorName    string // buses.operator_name
	BusType         string // buses.bus_type
	SourceStop      string // buses.source_stop
	DestinationStop string // buses.destination_stop
	TotalSeats      uint32 // buses.total_seats
}
