package handler

import (
	"net/http"
	"strings"

	"cinema-tickets/internal/model"

	"github.com/rs/zerolog"
)

// PriceHandler serves the ticket prices the purchase service charges.
type PriceHandler struct {
	prices model.PricingConfig
	logger zerolog.Logger
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(prices model.PricingConfig, logger zerolog.Logger) *PriceHandler {
	return &PriceHandler{
		prices: prices,
		logger: logger.With().Str("handler", "price").Logger(),
	}
}

// GetAll handles GET /api/prices requests.
func (h *PriceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.prices.PriceList())
}

// GetByType handles GET /api/prices/{type} requests.
func (h *PriceHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/prices/")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeUnexpectedTicketType, "ticket type is required", h.logger)
		return
	}

	var ticketType model.TicketType
	_ = ticketType.UnmarshalText([]byte(name))
	if !ticketType.Valid() {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "unknown ticket type: "+name, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TicketPrice{
		Type:  ticketType,
		Price: h.prices.PriceOf(ticketType),
	})
}
