package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightseats/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send отправляет пассажиру сводку по брони. Пока это заглушка под будущий SMTP.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventBookingCreated:
		fmt.Printf("notify user %s: booking %s confirmed, flight %d seat %d (%s, %d.%02d)\n",
			event.UserID, event.Reference, event.FlightID, event.SeatNumber,
			event.FareTier, event.TotalPriceCents/100, event.TotalPriceCents%100)
	case kafka.EventBookingCancelled:
		fmt.Printf("notify user %s: booking %s cancelled, flight %d seat %d released\n",
			event.UserID, event.Reference, event.FlightID, event.SeatNumber)
	default:
		fmt.Printf("notify user %s about %s for flight %d seat %d\n",
			event.UserID, event.Type, event.FlightID, event.SeatNumber)
	}
	return nil
}
