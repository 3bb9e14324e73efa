package model

import (
	"strings"

	"github.com/google/uuid"
)

// TicketType is the category of a ticket. The zero value means no type was given.
type TicketType int

const (
	TicketTypeUnspecified TicketType = iota
	TicketTypeAdult
	TicketTypeChild
	TicketTypeInfant
)

var ticketTypeNames = map[TicketType]string{
	TicketTypeAdult:  "ADULT",
	TicketTypeChild:  "CHILD",
	TicketTypeInfant: "INFANT",
}

// Valid reports whether t is one of the known ticket types.
func (t TicketType) Valid() bool {
	_, ok := ticketTypeNames[t]
	return ok
}

func (t TicketType) String() string {
	if name, ok := ticketTypeNames[t]; ok {
		return name
	}
	return "null"
}

// MarshalText encodes the ticket type as its upper-case name.
func (t TicketType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a ticket type name. Unknown names decode to
// TicketTypeUnspecified so that the purchase is rejected by the ticket
// service rather than by the decoder.
func (t *TicketType) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	*t = TicketTypeUnspecified
	for typ, n := range ticketTypeNames {
		if n == name {
			*t = typ
			break
		}
	}
	return nil
}

// TicketRequest asks for a number of tickets of a single type.
type TicketRequest struct {
	ticketType TicketType
	count      int
}

// NewTicketRequest creates a ticket request. Values are checked by the ticket service.
func NewTicketRequest(ticketType TicketType, count int) *TicketRequest {
	return &TicketRequest{ticketType: ticketType, count: count}
}

// Type returns the requested ticket type.
func (r *TicketRequest) Type() TicketType {
	return r.ticketType
}

// Count returns the number of tickets requested.
func (r *TicketRequest) Count() int {
	return r.count
}

// PricingConfig holds ticket prices in whole currency units.
type PricingConfig struct {
	AdultPrice int
	ChildPrice int
}

// PriceOf returns the price of one ticket of type t. Infant tickets are free
// and unknown types have no price.
func (p PricingConfig) PriceOf(t TicketType) int {
	switch t {
	case TicketTypeAdult:
		return p.AdultPrice
	case TicketTypeChild:
		return p.ChildPrice
	default:
		return 0
	}
}

// TicketPrice is the price list entry for one ticket type.
type TicketPrice struct {
	Type  TicketType `json:"type"`
	Price int        `json:"price"`
}

// PriceList returns the price of every ticket type.
func (p PricingConfig) PriceList() []TicketPrice {
	return []TicketPrice{
		{Type: TicketTypeAdult, Price: p.PriceOf(TicketTypeAdult)},
		{Type: TicketTypeChild, Price: p.PriceOf(TicketTypeChild)},
		{Type: TicketTypeInfant, Price: p.PriceOf(TicketTypeInfant)},
	}
}

// PurchaseOutcome describes a completed purchase.
type PurchaseOutcome struct {
	ReferenceID   uuid.UUID `json:"referenceId"`
	AccountID     int64     `json:"accountId"`
	AdultTickets  int       `json:"adultTickets"`
	ChildTickets  int       `json:"childTickets"`
	InfantTickets int       `json:"infantTickets"`
	TotalAmount   int       `json:"totalAmount"`
	SeatsReserved int       `json:"seatsReserved"`
}

// PurchaseRequest represents the request payload for buying tickets.
type PurchaseRequest struct {
	AccountID int64                `json:"accountId"`
	Tickets   []*TicketRequestItem `json:"tickets"`
}

// TicketRequestItem represents a single ticket line in a purchase request.
type TicketRequestItem struct {
	Type  TicketType `json:"type"`
	Count int        `json:"count"`
}

// TicketRequests converts the payload lines into ticket requests.
// A null line stays nil.
func (p *PurchaseRequest) TicketRequests() []*TicketRequest {
	if p.Tickets == nil {
		return nil
	}
	requests := make([]*TicketRequest, len(p.Tickets))
	for i, item := range p.Tickets {
		if item == nil {
			continue
		}
		requests[i] = NewTicketRequest(item.Type, item.Count)
	}
	return requests
}
