package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/kafka"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/Domenick1991/flightseats/internal/pricing"
	"github.com/Domenick1991/flightseats/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ReconcileFlights(ctx context.Context) ([]Divergence, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService orchestrates seat reservation: claim the seat in the ledger,
// price it, persist the booking. The claim and the booking row must agree at
// all times, so a failed insert rolls the claim back and a cancel that finds
// no claim is reported as a consistency fault.
type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	seats              ledger.SeatLedger
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	opsTopic           string
}

type CreateBookingInput struct {
	FlightID   int64  `json:"flight_id"`
	SeatNumber int    `json:"seat_number"`
	UserID     string `json:"user_id"`
}

// Divergence is one disagreement between the seat ledger and the booking
// store, found by the reconciliation sweep.
type Divergence struct {
	FlightID   int64  `json:"flight_id"`
	SeatNumber int    `json:"seat_number"`
	Kind       string `json:"kind"`
}

const (
	DivergenceClaimWithoutBooking = "claim_without_booking"
	DivergenceBookingWithoutClaim = "booking_without_claim"
)

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithOpsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.opsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	seats ledger.SeatLedger,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		seats:        seats,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, errors.New("user id is required")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if input.SeatNumber < 1 || input.SeatNumber > flight.Capacity {
		return nil, domain.ErrSeatOutOfRange
	}

	res, err := s.seats.TryClaim(ctx, flight.ID, flight.Capacity, input.SeatNumber)
	if err != nil {
		return nil, fmt.Errorf("claim seat: %w", err)
	}
	switch res {
	case ledger.Claimed:
	case ledger.AlreadyClaimed:
		return nil, domain.ErrSeatAlreadyReserved
	case ledger.OutOfRange:
		return nil, domain.ErrSeatOutOfRange
	default:
		return nil, fmt.Errorf("unexpected claim result %s", res)
	}

	// Место уже за нами; дальше либо бронь сохраняется, либо место возвращается.
	fareTier, totalCents, err := pricing.Price(flight, input.SeatNumber)
	if err != nil {
		s.rollbackClaim(ctx, flight.ID, input.SeatNumber)
		return nil, err
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		FlightID:        flight.ID,
		UserID:          input.UserID,
		SeatNumber:      input.SeatNumber,
		FareTier:        fareTier,
		TotalPriceCents: totalCents,
	}

	if err := s.bookings.Insert(ctx, booking); err != nil {
		s.rollbackClaim(ctx, flight.ID, input.SeatNumber)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	if err := s.publish(ctx, kafka.EventBookingCreated, booking); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", kafka.EventBookingCreated, booking.Reference, err)
	}
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Once the cancel starts mutating state it runs to completion even if the
	// caller goes away; a half-applied cancel is the failure mode to avoid.
	opCtx := context.WithoutCancel(ctx)

	res, err := s.seats.Release(opCtx, booking.FlightID, booking.SeatNumber)
	if err != nil {
		return nil, fmt.Errorf("release seat: %w", err)
	}
	if res == ledger.NotClaimed {
		// The booking store said this seat was ours but the ledger disagrees.
		// Not fatal for the caller (the cancel still completes, retries stay
		// safe) but always a bug somewhere, so it goes to the ops channel.
		log.Printf("ERROR: booking %d (flight %d seat %d): %v", booking.ID, booking.FlightID, booking.SeatNumber, domain.ErrSeatNotClaimed)
		s.reportFault(opCtx, booking.FlightID, booking.SeatNumber, "release during cancel found no claim")
	}

	if err := s.bookings.Delete(opCtx, bookingID); err != nil && !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	if err := s.publish(opCtx, kafka.EventBookingCancelled, booking); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", kafka.EventBookingCancelled, booking.Reference, err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ReconcileFlights audits every flight's ledger against the booking store and
// reports each disagreement. It never repairs anything on its own: a
// divergence means a bug, and silently patching state would hide it.
func (s *BookingService) ReconcileFlights(ctx context.Context) ([]Divergence, error) {
	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	faults := make([]Divergence, 0)
	for _, flight := range flights {
		claimed, err := s.seats.ClaimedSeats(ctx, flight.ID)
		if err != nil {
			return nil, fmt.Errorf("claimed seats for flight %d: %w", flight.ID, err)
		}
		booked, err := s.bookings.SeatNumbersByFlight(ctx, flight.ID)
		if err != nil {
			return nil, fmt.Errorf("booked seats for flight %d: %w", flight.ID, err)
		}

		bookedSet := make(map[int]struct{}, len(booked))
		for _, seat := range booked {
			bookedSet[seat] = struct{}{}
		}
		claimedSet := make(map[int]struct{}, len(claimed))
		for _, seat := range claimed {
			claimedSet[seat] = struct{}{}
		}

		for _, seat := range claimed {
			if _, ok := bookedSet[seat]; !ok {
				faults = append(faults, s.recordFault(ctx, flight.ID, seat, DivergenceClaimWithoutBooking))
			}
		}
		for _, seat := range booked {
			if _, ok := claimedSet[seat]; !ok {
				faults = append(faults, s.recordFault(ctx, flight.ID, seat, DivergenceBookingWithoutClaim))
			}
		}
	}
	return faults, nil
}

// rollbackClaim is the compensating action for a claim whose booking never
// made it to the store. A claim left behind here would block the seat for
// everyone with nothing to cancel, so a failed rollback is reported loudly.
func (s *BookingService) rollbackClaim(ctx context.Context, flightID int64, seatNumber int) {
	// The rollback must happen even when the claim failed because the caller
	// disconnected and ctx is already canceled.
	opCtx := context.WithoutCancel(ctx)
	if _, err := s.seats.Release(opCtx, flightID, seatNumber); err != nil {
		log.Printf("ERROR: rollback of flight %d seat %d failed, claim may be orphaned: %v", flightID, seatNumber, err)
		s.reportFault(opCtx, flightID, seatNumber, "claim rollback failed after booking insert error")
	}
}

func (s *BookingService) recordFault(ctx context.Context, flightID int64, seatNumber int, kind string) Divergence {
	log.Printf("ERROR: ledger/store divergence on flight %d seat %d: %s", flightID, seatNumber, kind)
	s.reportFault(ctx, flightID, seatNumber, kind)
	return Divergence{FlightID: flightID, SeatNumber: seatNumber, Kind: kind}
}

func (s *BookingService) reportFault(ctx context.Context, flightID int64, seatNumber int, detail string) {
	if s.producer == nil || s.opsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       kafka.EventConsistencyFault,
		FlightID:   flightID,
		SeatNumber: seatNumber,
		Detail:     detail,
		OccurredAt: time.Now(),
	}
	key := fmt.Sprintf("%d:%d", flightID, seatNumber)
	if err := s.producer.Publish(ctx, s.opsTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish consistency fault for flight %d seat %d: %v", flightID, seatNumber, err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		Reference:       booking.Reference,
		FlightID:        booking.FlightID,
		SeatNumber:      booking.SeatNumber,
		UserID:          booking.UserID,
		FareTier:        string(booking.FareTier),
		TotalPriceCents: booking.TotalPriceCents,
		OccurredAt:      time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
