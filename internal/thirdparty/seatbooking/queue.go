package seatbooking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// DefaultReservationQueue is the queue reservation requests are published to.
const DefaultReservationQueue = "seat.reservation.requested"

// SeatReservationRequested is the message published for each reservation.
type SeatReservationRequested struct {
	AccountID   int64  `json:"account_id"`
	Seats       int    `json:"seats"`
	RequestedAt string `json:"requested_at"`
}

// Channel is the subset of *amqp.Channel used by the queue reservation service.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// queueReservationService hands reservations to the booking system over RabbitMQ.
type queueReservationService struct {
	ch     Channel
	queue  string
	now    func() time.Time
	logger zerolog.Logger
}

// NewQueueReservationService declares the reservation queue and returns a
// service that publishes one message per reservation.
func NewQueueReservationService(ch Channel, queue string, logger zerolog.Logger) (SeatReservationService, error) {
	if queue == "" {
		queue = DefaultReservationQueue
	}
	logger = logger.With().Str("component", "seat-booking-queue").Str("queue", queue).Logger()

	// Durable so requests survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Error().Err(err).Msg("queue declare failed")
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &queueReservationService{
		ch:     ch,
		queue:  queue,
		now:    time.Now,
		logger: logger,
	}, nil
}

// ReserveSeat publishes a SeatReservationRequested message.
func (s *queueReservationService) ReserveSeat(ctx context.Context, accountID int64, seats int) error {
	now := s.now().UTC()
	body, err := json.Marshal(SeatReservationRequested{
		AccountID:   accountID,
		Seats:       seats,
		RequestedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reservation request: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         body,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queue, false, false, pub); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("publish failed")
		return fmt.Errorf("failed to publish reservation request: %w", err)
	}

	s.logger.Debug().
		Int64("account_id", accountID).
		Int("seats", seats).
		Msg("reservation request published")

	return nil
}
