package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func catalogueFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:                       4,
			FromAirport:              "SVO",
			ToAirport:                "LED",
			DepartureTime:            time.Now(),
			ArrivalTime:              time.Now().Add(time.Hour),
			Company:                  "Aeroflot",
			AirplaneName:             "A320",
			Capacity:                 80,
			FirstClassSeats:          10,
			BasePriceCents:           20000,
			FirstClassSurchargeCents: 15000,
		},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, nil, mockCache)

	ctx := context.Background()
	flights := catalogueFlights()

	// Кэш пустой
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

// Тест: Получение списка рейсов - данные в кэше
func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, nil, mockCache)

	ctx := context.Background()
	flights := catalogueFlights()

	// Данные есть в кэше
	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertNotCalled(t, "SetFlights")
}

// Тест: Получение списка рейсов - ошибка в кэше
func TestFlightService_List_CacheError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, nil, mockCache)

	ctx := context.Background()
	flights := catalogueFlights()

	// Ошибка при получении из кэша
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), errors.New("cache error")).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

// Тест: Получение списка рейсов - ошибка в репозитории
func TestFlightService_List_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, nil, mockCache)

	ctx := context.Background()

	expectedErr := errors.New("database error")
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return([]domain.Flight{}, expectedErr).Once()

	result, err := service.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetFlights")
}

// Тест: Получение рейса по ID
func TestFlightService_GetByID_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()
	flight := &catalogueFlights()[0]

	mockRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()

	result, err := service.GetByID(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, flight, result)

	mockRepo.AssertExpectations(t)
}

// Тест: Получение рейса по ID - не найден
func TestFlightService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(999)).Return(nil, domain.ErrFlightNotFound).Once()

	result, err := service.GetByID(ctx, 999)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, result)

	mockRepo.AssertExpectations(t)
}

// Тест: Работа без кэша
func TestFlightService_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()
	flights := catalogueFlights()

	// Должен вызываться только репозиторий
	mockRepo.On("List", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockRepo.AssertExpectations(t)
}

// Тест: Карта мест рейса отражает занятые места
func TestFlightService_SeatMap(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	seatLedger := ledger.NewMemoryLedger()

	service := NewFlightService(mockRepo, seatLedger, nil)

	ctx := context.Background()
	flight := &catalogueFlights()[0]
	mockRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()

	_, err := seatLedger.TryClaim(ctx, 4, 80, 7)
	assert.NoError(t, err)
	_, err = seatLedger.TryClaim(ctx, 4, 80, 3)
	assert.NoError(t, err)

	seatMap, err := service.SeatMap(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), seatMap.FlightID)
	assert.Equal(t, 80, seatMap.Capacity)
	assert.Equal(t, 10, seatMap.FirstClassSeats)
	assert.Equal(t, []int{3, 7}, seatMap.ClaimedSeats)

	mockRepo.AssertExpectations(t)
}

// Тест: Карта мест - рейс не найден
func TestFlightService_SeatMap_FlightNotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, ledger.NewMemoryLedger(), nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(999)).Return(nil, domain.ErrFlightNotFound).Once()

	seatMap, err := service.SeatMap(ctx, 999)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, seatMap)
}
