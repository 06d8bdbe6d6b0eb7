package domain

import "time"

type FareTier string

const (
	FareTierFirstClass FareTier = "FIRST_CLASS"
	FareTierBusiness   FareTier = "BUSINESS"
)

// Booking is a confirmed, uniquely owned seat on a flight. At most one live
// booking exists per (flight, seat) pair; the seat ledger enforces that.
type Booking struct {
	ID              int64
	Reference       string
	FlightID        int64
	UserID          string
	SeatNumber      int
	FareTier        FareTier
	TotalPriceCents int64
	CreatedAt       time.Time
}
