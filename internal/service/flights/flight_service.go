package flights

import (
	"context"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/Domenick1991/flightseats/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	SeatMap(ctx context.Context, id int64) (*domain.SeatMap, error)
}

// FlightCache хранит только каталог рейсов; занятость мест живёт в ledger.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	seats ledger.SeatLedger
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, seats ledger.SeatLedger, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, seats: seats, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// SeatMap собирает актуальную занятость мест рейса напрямую из ledger,
// минуя кэш: этот ответ не должен отставать от брони.
func (s *FlightService) SeatMap(ctx context.Context, id int64) (*domain.SeatMap, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	claimed, err := s.seats.ClaimedSeats(ctx, flight.ID)
	if err != nil {
		return nil, err
	}

	return &domain.SeatMap{
		FlightID:        flight.ID,
		Capacity:        flight.Capacity,
		FirstClassSeats: flight.FirstClassSeats,
		ClaimedSeats:    claimed,
	}, nil
}

var _ FlightUseCase = (*FlightService)(nil)
