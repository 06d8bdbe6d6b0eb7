package domain

import "time"

// Flight is the inventory record for one scheduled flight. Capacity and
// FirstClassSeats come from the assigned airplane; seats 1..FirstClassSeats
// are first class, the rest business. Claimed seats live in the seat ledger,
// which is the only writer of that state.
type Flight struct {
	ID                       int64
	FromAirport              string
	ToAirport                string
	DepartureTime            time.Time
	ArrivalTime              time.Time
	Company                  string
	AirplaneName             string
	Capacity                 int
	FirstClassSeats          int
	BasePriceCents           int64
	FirstClassSurchargeCents int64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// SeatMap is the claimed/free view of a flight exposed to callers.
type SeatMap struct {
	FlightID        int64 `json:"flight_id"`
	Capacity        int   `json:"capacity"`
	FirstClassSeats int   `json:"first_class_seats"`
	ClaimedSeats    []int `json:"claimed_seats"`
}
