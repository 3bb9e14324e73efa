package service

import (
	"context"

	"cinema-tickets/internal/model"
)

// TicketService defines operations for buying cinema tickets.
type TicketService interface {
	// PurchaseTickets validates the requests, takes payment and reserves seats.
	// Rule violations are returned as *model.InvalidPurchaseError before any
	// payment or reservation is attempted.
	PurchaseTickets(ctx context.Context, accountID int64, requests ...*model.TicketRequest) (*model.PurchaseOutcome, error)
}
