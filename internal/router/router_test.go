package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-tickets/internal/handler"
	"cinema-tickets/internal/middleware"
	"cinema-tickets/internal/model"
	"cinema-tickets/internal/service"
	"cinema-tickets/internal/thirdparty/paymentgateway"
	"cinema-tickets/internal/thirdparty/seatbooking"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "router-test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	prices := model.PricingConfig{AdultPrice: 25, ChildPrice: 15}

	svc, err := service.NewTicketService(
		paymentgateway.NewLoggingPaymentService(logger),
		seatbooking.NewLoggingReservationService(logger),
		prices,
		logger,
	)
	require.NoError(t, err)

	return New(
		handler.NewPurchaseHandler(svc, logger),
		handler.NewPriceHandler(prices, logger),
		testAPIKey,
		logger,
	)
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		apiKey         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Health without key",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Purchase without key",
			method:         http.MethodPost,
			path:           "/api/purchases",
			body:           `{"accountId": 1, "tickets": [{"type": "ADULT", "count": 1}]}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Purchase succeeds",
			method:         http.MethodPost,
			path:           "/api/purchases",
			body:           `{"accountId": 1, "tickets": [{"type": "ADULT", "count": 2}]}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Purchase with trailing slash",
			method:         http.MethodPost,
			path:           "/api/purchases/",
			body:           `{"accountId": 1, "tickets": [{"type": "ADULT", "count": 2}]}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Purchase sub path not found",
			method:         http.MethodPost,
			path:           "/api/purchases/123",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Unknown ticket type rejected",
			method:         http.MethodPost,
			path:           "/api/purchases",
			body:           `{"accountId": 1, "tickets": [{"type": "SENIOR", "count": 1}]}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeUnexpectedTicketType,
		},
		{
			name:           "Empty ticket list rejected",
			method:         http.MethodPost,
			path:           "/api/purchases",
			body:           `{"accountId": 1, "tickets": []}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeNoTicketRequests,
		},
		{
			name:           "Null ticket line rejected",
			method:         http.MethodPost,
			path:           "/api/purchases",
			body:           `{"accountId": 1, "tickets": [{"type": "ADULT", "count": 1}, null]}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeNullTicketRequest,
		},
		{
			name:           "Price list",
			method:         http.MethodGet,
			path:           "/api/prices",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Single price",
			method:         http.MethodGet,
			path:           "/api/prices/child",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown route",
			method:         http.MethodGet,
			path:           "/api/unknown",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))

			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
				assert.Equal(t, w.Header().Get(middleware.CorrelationIDHeader), resp.CorrelationID)
			}
		})
	}
}

func TestRouter_PurchaseOutcome(t *testing.T) {
	r := newTestRouter(t)

	body := `{"accountId": 1, "tickets": [{"type": "ADULT", "count": 2}, {"type": "CHILD", "count": 1}, {"type": "INFANT", "count": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/purchases", bytes.NewBufferString(body))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var outcome model.PurchaseOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, int64(1), outcome.AccountID)
	assert.Equal(t, 65, outcome.TotalAmount)
	assert.Equal(t, 3, outcome.SeatsReserved)
	assert.Equal(t, 1, outcome.InfantTickets)
}
