// Package seatbooking defines the seat reservation collaborator used by the ticket service.
package seatbooking

import (
	"context"

	"github.com/rs/zerolog"
)

// SeatReservationService reserves seats for a purchase.
type SeatReservationService interface {
	// ReserveSeat reserves seats for the given account.
	ReserveSeat(ctx context.Context, accountID int64, seats int) error
}

type loggingReservationService struct {
	logger zerolog.Logger
}

// NewLoggingReservationService creates a reservation service for local runs.
func NewLoggingReservationService(logger zerolog.Logger) SeatReservationService {
	return &loggingReservationService{
		logger: logger.With().Str("component", "seat-booking").Logger(),
	}
}

// ReserveSeat logs the reservation request.
func (s *loggingReservationService) ReserveSeat(ctx context.Context, accountID int64, seats int) error {
	s.logger.Info().
		Int64("account_id", accountID).
		Int("seats", seats).
		Msg("seat reservation requested")
	return nil
}
