package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinema-tickets/internal/config"
	"cinema-tickets/internal/database"
	"cinema-tickets/internal/handler"
	"cinema-tickets/internal/pricing"
	"cinema-tickets/internal/router"
	"cinema-tickets/internal/service"
	"cinema-tickets/internal/thirdparty/paymentgateway"
	"cinema-tickets/internal/thirdparty/seatbooking"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cinema-tickets API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pricing loader for the configured source
	loader, cleanup, err := newPricingLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	prices, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ticket prices: %w", err)
	}
	logger.Info().
		Int("adult_price", prices.AdultPrice).
		Int("child_price", prices.ChildPrice).
		Msg("ticket prices loaded")

	// Initialize collaborators
	payment := paymentgateway.NewLoggingPaymentService(logger)

	var reservation seatbooking.SeatReservationService
	if cfg.AMQP.Enabled {
		conn, err := amqp.Dial(cfg.AMQP.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
		}
		defer ch.Close()

		reservation, err = seatbooking.NewQueueReservationService(ch, cfg.AMQP.Queue, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize seat reservation queue: %w", err)
		}
	} else {
		reservation = seatbooking.NewLoggingReservationService(logger)
		logger.Info().Msg("using logging seat reservation service (AMQP disabled)")
	}

	// Initialize services
	ticketService, err := service.NewTicketService(payment, reservation, prices, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize ticket service: %w", err)
	}

	// Initialize HTTP handlers
	purchaseHandler := handler.NewPurchaseHandler(ticketService, logger)
	priceHandler := handler.NewPriceHandler(prices, logger)

	// Initialize router
	mux := router.New(purchaseHandler, priceHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newPricingLoader builds the loader for cfg.Pricing.Source, fronted by S3
// when enabled. The returned cleanup releases any database pool.
func newPricingLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (pricing.Loader, func(), error) {
	cleanup := func() {}

	var source pricing.Loader
	switch cfg.Pricing.Source {
	case config.PricingSourceFile:
		source = pricing.NewFileLoader(cfg.Pricing.File, logger)
		logger.Info().Str("file", cfg.Pricing.File).Msg("using pricing file")
	case config.PricingSourceDatabase:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to initialize database: %w", err)
		}
		cleanup = pool.Close
		source = pricing.NewDatabaseLoader(pool, logger)
	default:
		source = pricing.NewDefaultLoader(logger)
		logger.Info().Msg("using bundled ticket prices")
	}

	if !cfg.S3.Enabled {
		return source, cleanup, nil
	}

	s3Loader, err := pricing.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Key, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to configured pricing source only")
		return source, cleanup, nil
	}

	return pricing.NewFallbackLoader(s3Loader, source, true, logger), cleanup, nil
}
