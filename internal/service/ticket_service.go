package service

import (
	"context"
	"errors"

	"cinema-tickets/internal/model"
	"cinema-tickets/internal/thirdparty/paymentgateway"
	"cinema-tickets/internal/thirdparty/seatbooking"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxTicketsPerPurchase is the largest number of tickets one purchase may contain.
const MaxTicketsPerPurchase = 25

// ticketService implements TicketService.
type ticketService struct {
	payment     paymentgateway.TicketPaymentService
	reservation seatbooking.SeatReservationService
	prices      model.PricingConfig
	logger      zerolog.Logger
}

// ticketTotals accumulates ticket counts per type.
type ticketTotals struct {
	adult  int
	child  int
	infant int
}

func (t ticketTotals) sum() int {
	return t.adult + t.child + t.infant
}

// addCapped adds n to total, saturating just above the purchase limit so
// that huge counts cannot overflow into the allowed range.
func addCapped(total, n int) int {
	if n > MaxTicketsPerPurchase-total {
		return MaxTicketsPerPurchase + 1
	}
	return total + n
}

// NewTicketService creates a new ticket service with fixed prices.
func NewTicketService(
	payment paymentgateway.TicketPaymentService,
	reservation seatbooking.SeatReservationService,
	prices model.PricingConfig,
	logger zerolog.Logger,
) (TicketService, error) {
	if payment == nil {
		return nil, errors.New("payment service must not be nil")
	}
	if reservation == nil {
		return nil, errors.New("reservation service must not be nil")
	}

	logger = logger.With().Str("service", "ticket").Logger()

	if prices.AdultPrice <= 0 || prices.ChildPrice <= 0 {
		logger.Error().
			Int("adult_price", prices.AdultPrice).
			Int("child_price", prices.ChildPrice).
			Msg("ticket prices must be positive")
		return nil, model.NewConfigurationError("Ticket prices must be positive numbers.")
	}

	return &ticketService{
		payment:     payment,
		reservation: reservation,
		prices:      prices,
		logger:      logger,
	}, nil
}

// PurchaseTickets validates the requests, takes payment and reserves seats.
func (s *ticketService) PurchaseTickets(ctx context.Context, accountID int64, requests ...*model.TicketRequest) (*model.PurchaseOutcome, error) {
	s.logger.Debug().
		Int64("account_id", accountID).
		Int("request_count", len(requests)).
		Msg("processing ticket requests")

	if accountID <= 0 {
		s.logger.Warn().Int64("account_id", accountID).Msg("invalid account id")
		return nil, model.ErrInvalidAccountID
	}

	if len(requests) == 0 {
		s.logger.Warn().Int64("account_id", accountID).Msg("no ticket requests")
		return nil, model.ErrNoTicketRequests
	}

	totals, err := s.countTickets(requests)
	if err != nil {
		return nil, err
	}

	if err := s.validateTotals(totals); err != nil {
		return nil, err
	}

	amount := totals.adult*s.prices.PriceOf(model.TicketTypeAdult) +
		totals.child*s.prices.PriceOf(model.TicketTypeChild)
	// Infants sit on an adult's lap.
	seats := totals.adult + totals.child

	if err := s.payment.MakePayment(ctx, accountID, amount); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Int("amount", amount).Msg("payment failed")
		return nil, err
	}

	if err := s.reservation.ReserveSeat(ctx, accountID, seats); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Int("seats", seats).Msg("seat reservation failed")
		return nil, err
	}

	outcome := &model.PurchaseOutcome{
		ReferenceID:   uuid.New(),
		AccountID:     accountID,
		AdultTickets:  totals.adult,
		ChildTickets:  totals.child,
		InfantTickets: totals.infant,
		TotalAmount:   amount,
		SeatsReserved: seats,
	}

	s.logger.Info().
		Str("reference_id", outcome.ReferenceID.String()).
		Int64("account_id", accountID).
		Int("adults", totals.adult).
		Int("children", totals.child).
		Int("infants", totals.infant).
		Int("total_amount", amount).
		Msg("tickets purchased successfully")

	return outcome, nil
}

// countTickets checks each request and sums the counts per ticket type.
func (s *ticketService) countTickets(requests []*model.TicketRequest) (ticketTotals, error) {
	var totals ticketTotals

	for i, req := range requests {
		if req == nil {
			s.logger.Warn().Int("request_index", i).Msg("null ticket request")
			return ticketTotals{}, model.ErrNullTicketRequest
		}

		if !req.Type().Valid() {
			s.logger.Warn().
				Int("request_index", i).
				Int("ticket_type", int(req.Type())).
				Msg("unexpected ticket type")
			return ticketTotals{}, model.ErrUnexpectedTicketType
		}

		if req.Count() <= 0 {
			s.logger.Warn().
				Int("request_index", i).
				Str("ticket_type", req.Type().String()).
				Int("count", req.Count()).
				Msg("invalid ticket count")
			return ticketTotals{}, model.ErrInvalidTicketCount
		}

		switch req.Type() {
		case model.TicketTypeAdult:
			totals.adult = addCapped(totals.adult, req.Count())
		case model.TicketTypeChild:
			totals.child = addCapped(totals.child, req.Count())
		case model.TicketTypeInfant:
			totals.infant = addCapped(totals.infant, req.Count())
		}
	}

	return totals, nil
}

// validateTotals applies the purchase-wide rules.
func (s *ticketService) validateTotals(totals ticketTotals) error {
	total := totals.sum()
	if total == 0 || total > MaxTicketsPerPurchase {
		s.logger.Warn().Int("total_tickets", total).Msg("ticket count outside allowed range")
		return model.ErrTicketLimitExceeded
	}

	if totals.adult == 0 && (totals.child > 0 || totals.infant > 0) {
		s.logger.Warn().
			Int("children", totals.child).
			Int("infants", totals.infant).
			Msg("child and infant tickets without an adult ticket")
		return model.ErrAdultTicketRequired
	}

	return nil
}
