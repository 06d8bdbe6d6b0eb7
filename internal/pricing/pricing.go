package pricing

import (
	"github.com/Domenick1991/flightseats/internal/domain"
)

// Price maps a seat position to its fare tier and total price. Seats up to
// the flight's first-class threshold pay base plus surcharge, the rest pay
// base. The contract is total: an out-of-range seat is rejected here even
// though the reservation flow validates the range earlier.
func Price(flight *domain.Flight, seatNumber int) (domain.FareTier, int64, error) {
	if seatNumber < 1 || seatNumber > flight.Capacity {
		return "", 0, domain.ErrSeatOutOfRange
	}

	if seatNumber <= flight.FirstClassSeats {
		return domain.FareTierFirstClass, flight.BasePriceCents + flight.FirstClassSurchargeCents, nil
	}
	return domain.FareTierBusiness, flight.BasePriceCents, nil
}
