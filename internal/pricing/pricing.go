// Package pricing loads ticket prices from key-value configuration sources.
package pricing

import (
	"context"
	"io"
	"strconv"
	"strings"

	"cinema-tickets/internal/model"

	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

// Configuration keys recognised in a pricing source.
const (
	AdultPriceKey = "adult.ticket.price"
	ChildPriceKey = "child.ticket.price"
)

// DefaultResourceName is the name of the bundled pricing resource.
const DefaultResourceName = "prices.properties"

const (
	msgSourceNotFound   = "Configuration file not found: "
	msgSourceUnreadable = "Failed to load ticket prices from configuration"
	msgStreamUnreadable = "Failed to load ticket prices from input stream"
	msgNilStream        = "Input stream for configuration file is null."
	msgEmpty            = "Properties file is empty or could not be loaded."
	msgMissingKey       = "Missing configuration key: "
	msgInvalidValue     = "Invalid configuration value for key "
)

// Loader defines the interface for loading pricing configuration.
type Loader interface {
	// Load reads the pricing source and returns the configured prices.
	// Failures are reported as *model.ConfigurationError.
	Load(ctx context.Context) (model.PricingConfig, error)
}

// StreamLoader is a Loader that can also read pricing configuration
// from a caller-supplied stream.
type StreamLoader interface {
	Loader

	// LoadFrom reads pricing configuration from r, bypassing the default source.
	LoadFrom(ctx context.Context, r io.Reader) (model.PricingConfig, error)
}

// parse decodes properties text into prices. Content that cannot be parsed
// is treated as having no keys, so it fails on the first required key.
func parse(data []byte, logger zerolog.Logger) (model.PricingConfig, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := l.LoadBytes(data)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed pricing configuration")
		props = properties.NewProperties()
	} else if props.Len() == 0 {
		logger.Error().Msg("pricing configuration is empty")
		return model.PricingConfig{}, model.NewConfigurationError(msgEmpty)
	}

	return fromProperties(props, logger)
}

// fromProperties checks the required keys and converts their values.
func fromProperties(props *properties.Properties, logger zerolog.Logger) (model.PricingConfig, error) {
	for _, key := range []string{AdultPriceKey, ChildPriceKey} {
		if value, ok := props.Get(key); !ok || strings.TrimSpace(value) == "" {
			logger.Error().Str("key", key).Msg("missing key in pricing configuration")
			return model.PricingConfig{}, model.NewConfigurationError(msgMissingKey + key)
		}
	}

	adult, err := intValue(props, AdultPriceKey, logger)
	if err != nil {
		return model.PricingConfig{}, err
	}
	child, err := intValue(props, ChildPriceKey, logger)
	if err != nil {
		return model.PricingConfig{}, err
	}

	return model.PricingConfig{AdultPrice: adult, ChildPrice: child}, nil
}

func intValue(props *properties.Properties, key string, logger zerolog.Logger) (int, error) {
	raw, _ := props.Get(key)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Error().Err(err).Str("key", key).Str("value", raw).Msg("pricing value is not an integer")
		return 0, model.WrapConfigurationError(msgInvalidValue+key, err)
	}
	return n, nil
}
