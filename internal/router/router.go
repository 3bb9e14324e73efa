package router

import (
	"net/http"

	"cinema-tickets/internal/handler"
	"cinema-tickets/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	purchaseHandler *handler.PurchaseHandler,
	priceHandler *handler.PriceHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Register purchase routes (both with and without trailing slash)
	mux.HandleFunc("/api/purchases", purchaseHandler.Create)
	mux.HandleFunc("/api/purchases/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/purchases/" {
			http.NotFound(w, r)
			return
		}
		purchaseHandler.Create(w, r)
	})

	mux.HandleFunc("/api/prices", priceHandler.GetAll)
	mux.HandleFunc("/api/prices/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/prices/" {
			priceHandler.GetAll(w, r)
			return
		}
		priceHandler.GetByType(w, r)
	})

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CorrelationID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
