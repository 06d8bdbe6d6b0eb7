package ledger

import "context"

// ClaimResult is the outcome of TryClaim. Exactly one concurrent claimer of a
// free seat observes Claimed; everyone else observes AlreadyClaimed.
type ClaimResult int

const (
	Claimed ClaimResult = iota
	AlreadyClaimed
	OutOfRange
)

// ReleaseResult is the outcome of Release. NotClaimed is not an error at the
// ledger level; callers decide whether it matters.
type ReleaseResult int

const (
	Released ReleaseResult = iota
	NotClaimed
)

// SeatLedger holds the authoritative claimed/free state per flight. Mutations
// to one flight's set are atomic: check and insert (or remove) happen as a
// single indivisible step, either under a per-flight lock or as a conditional
// storage operation. Flights are fully independent of one another.
type SeatLedger interface {
	// TryClaim claims the seat if it is inside [1, capacity] and free.
	TryClaim(ctx context.Context, flightID int64, capacity, seatNumber int) (ClaimResult, error)
	// Release frees the seat. Releasing an unclaimed seat reports NotClaimed
	// and changes nothing, so repeated releases are safe.
	Release(ctx context.Context, flightID int64, seatNumber int) (ReleaseResult, error)
	// ClaimedSeats returns the currently claimed seat numbers in ascending order.
	ClaimedSeats(ctx context.Context, flightID int64) ([]int, error)
}

func (r ClaimResult) String() string {
	switch r {
	case Claimed:
		return "claimed"
	case AlreadyClaimed:
		return "already_claimed"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}
