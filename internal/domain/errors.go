package domain

import "errors"

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrSeatOutOfRange      = errors.New("seat number is over airplane capacity")
	ErrSeatAlreadyReserved = errors.New("seat is already reserved")

	// ErrSeatNotClaimed is returned when a release finds no claim for a seat
	// that a live booking says it owns. The ledger and the booking store have
	// diverged; this is always a bug, never an expected outcome.
	ErrSeatNotClaimed = errors.New("seat is not claimed")
)
