package ledger

import (
	"context"
	"sort"
	"sync"
)

// MemoryLedger keeps claimed seats in process memory, one mutex and one set
// per flight. The per-flight mutex covers the whole check-and-insert, so two
// concurrent claims for the same seat cannot both see it free.
type MemoryLedger struct {
	mu      sync.Mutex
	flights map[int64]*flightSeats
}

type flightSeats struct {
	mu      sync.Mutex
	claimed map[int]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{flights: make(map[int64]*flightSeats)}
}

func (l *MemoryLedger) flight(flightID int64) *flightSeats {
	l.mu.Lock()
	defer l.mu.Unlock()
	fs, ok := l.flights[flightID]
	if !ok {
		fs = &flightSeats{claimed: make(map[int]struct{})}
		l.flights[flightID] = fs
	}
	return fs
}

func (l *MemoryLedger) TryClaim(_ context.Context, flightID int64, capacity, seatNumber int) (ClaimResult, error) {
	if seatNumber < 1 || seatNumber > capacity {
		return OutOfRange, nil
	}

	fs := l.flight(flightID)
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, taken := fs.claimed[seatNumber]; taken {
		return AlreadyClaimed, nil
	}
	fs.claimed[seatNumber] = struct{}{}
	return Claimed, nil
}

func (l *MemoryLedger) Release(_ context.Context, flightID int64, seatNumber int) (ReleaseResult, error) {
	fs := l.flight(flightID)
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, taken := fs.claimed[seatNumber]; !taken {
		return NotClaimed, nil
	}
	delete(fs.claimed, seatNumber)
	return Released, nil
}

func (l *MemoryLedger) ClaimedSeats(_ context.Context, flightID int64) ([]int, error) {
	fs := l.flight(flightID)
	fs.mu.Lock()
	defer fs.mu.Unlock()

	seats := make([]int, 0, len(fs.claimed))
	for seat := range fs.claimed {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats, nil
}

var _ SeatLedger = (*MemoryLedger)(nil)
