package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewSeatLedger(t *testing.T) {
	pool := &pgxpool.Pool{}
	l := NewSeatLedger(pool)
	assert.NotNil(t, l)
}

// Range checks happen before the database is touched.
func TestPGSeatLedger_TryClaim_OutOfRange(t *testing.T) {
	l := NewSeatLedger(&pgxpool.Pool{})
	ctx := context.Background()

	for _, seat := range []int{0, -1, 81} {
		res, err := l.TryClaim(ctx, 1, 80, seat)
		assert.NoError(t, err)
		assert.Equal(t, ledger.OutOfRange, res)
	}
}
