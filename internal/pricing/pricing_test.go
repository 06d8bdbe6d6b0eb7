package pricing

import (
	"testing"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	flight := &domain.Flight{
		ID:                       4,
		Capacity:                 80,
		FirstClassSeats:          10,
		BasePriceCents:           20000,
		FirstClassSurchargeCents: 15000,
	}

	testCases := []struct {
		name          string
		seat          int
		expectedTier  domain.FareTier
		expectedTotal int64
	}{
		{name: "first class seat", seat: 5, expectedTier: domain.FareTierFirstClass, expectedTotal: 35000},
		{name: "threshold seat is first class", seat: 10, expectedTier: domain.FareTierFirstClass, expectedTotal: 35000},
		{name: "business seat", seat: 50, expectedTier: domain.FareTierBusiness, expectedTotal: 20000},
		{name: "first business seat", seat: 11, expectedTier: domain.FareTierBusiness, expectedTotal: 20000},
		{name: "last seat", seat: 80, expectedTier: domain.FareTierBusiness, expectedTotal: 20000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tier, total, err := Price(flight, tc.seat)
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedTier, tier)
			assert.Equal(t, tc.expectedTotal, total)
		})
	}
}

func TestPrice_OutOfRange(t *testing.T) {
	flight := &domain.Flight{Capacity: 80, FirstClassSeats: 10, BasePriceCents: 20000}

	for _, seat := range []int{0, -1, 81} {
		_, _, err := Price(flight, seat)
		assert.ErrorIs(t, err, domain.ErrSeatOutOfRange)
	}
}

func TestPrice_NoFirstClassSection(t *testing.T) {
	flight := &domain.Flight{Capacity: 2, FirstClassSeats: 0, BasePriceCents: 20000, FirstClassSurchargeCents: 15000}

	tier, total, err := Price(flight, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.FareTierBusiness, tier)
	assert.Equal(t, int64(20000), total)
}
