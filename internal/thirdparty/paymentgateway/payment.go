// Package paymentgateway defines the payment collaborator used by the ticket service.
package paymentgateway

import (
	"context"

	"github.com/rs/zerolog"
)

// TicketPaymentService takes payment for a ticket purchase.
type TicketPaymentService interface {
	// MakePayment charges amount to the given account.
	MakePayment(ctx context.Context, accountID int64, amount int) error
}

// loggingPaymentService records payment requests without charging anything.
type loggingPaymentService struct {
	logger zerolog.Logger
}

// NewLoggingPaymentService creates a payment service for local runs.
func NewLoggingPaymentService(logger zerolog.Logger) TicketPaymentService {
	return &loggingPaymentService{
		logger: logger.With().Str("component", "payment-gateway").Logger(),
	}
}

// MakePayment logs the payment request.
func (s *loggingPaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	s.logger.Info().
		Int64("account_id", accountID).
		Int("amount", amount).
		Msg("payment requested")
	return nil
}
