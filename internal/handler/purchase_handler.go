package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-tickets/internal/model"
	"cinema-tickets/internal/service"

	"github.com/rs/zerolog"
)

// PurchaseHandler handles ticket purchase HTTP requests.
type PurchaseHandler struct {
	service service.TicketService
	logger  zerolog.Logger
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service service.TicketService, logger zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		logger:  logger.With().Str("handler", "purchase").Logger(),
	}
}

// Create handles POST /api/purchases requests.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	outcome, err := h.service.PurchaseTickets(r.Context(), req.AccountID, req.TicketRequests()...)
	if err != nil {
		var invalid *model.InvalidPurchaseError
		if errors.As(err, &invalid) {
			writeError(w, r, http.StatusBadRequest, invalid.Code, invalid.Message, h.logger)
			return
		}

		h.logger.Error().Err(err).Int64("account_id", req.AccountID).Msg("purchase failed")
		writeError(w, r, http.StatusBadGateway, model.ErrCodePurchaseFailed, "failed to complete purchase", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, outcome)
}
