package repository

import (
	"context"

	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSeatLedger stores claims in a seat_claims table with a primary key on
// (flight_id, seat_number). The check-and-insert is a single conditional
// statement evaluated by Postgres, so racing claimers for the same seat
// resolve to exactly one inserted row without any application-level lock.
type PGSeatLedger struct {
	db *pgxpool.Pool
}

func NewSeatLedger(db *pgxpool.Pool) *PGSeatLedger {
	return &PGSeatLedger{db: db}
}

func (l *PGSeatLedger) TryClaim(ctx context.Context, flightID int64, capacity, seatNumber int) (ledger.ClaimResult, error) {
	if seatNumber < 1 || seatNumber > capacity {
		return ledger.OutOfRange, nil
	}

	cmd, err := l.db.Exec(ctx, `INSERT INTO seat_claims (flight_id, seat_number)
		VALUES ($1, $2)
		ON CONFLICT (flight_id, seat_number) DO NOTHING`, flightID, seatNumber)
	if err != nil {
		return ledger.AlreadyClaimed, err
	}
	if cmd.RowsAffected() == 0 {
		return ledger.AlreadyClaimed, nil
	}
	return ledger.Claimed, nil
}

func (l *PGSeatLedger) Release(ctx context.Context, flightID int64, seatNumber int) (ledger.ReleaseResult, error) {
	cmd, err := l.db.Exec(ctx, `DELETE FROM seat_claims WHERE flight_id=$1 AND seat_number=$2`, flightID, seatNumber)
	if err != nil {
		return ledger.NotClaimed, err
	}
	if cmd.RowsAffected() == 0 {
		return ledger.NotClaimed, nil
	}
	return ledger.Released, nil
}

func (l *PGSeatLedger) ClaimedSeats(ctx context.Context, flightID int64) ([]int, error) {
	rows, err := l.db.Query(ctx, `SELECT seat_number FROM seat_claims WHERE flight_id=$1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]int, 0)
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

var _ ledger.SeatLedger = (*PGSeatLedger)(nil)
