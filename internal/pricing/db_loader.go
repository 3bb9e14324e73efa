package pricing

import (
	"context"
	"fmt"

	"cinema-tickets/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

// PricingTableSchema creates the key-value table read by the database loader.
const PricingTableSchema = `
	CREATE TABLE IF NOT EXISTS pricing_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// dbLoader implements Loader for pricing stored in a PostgreSQL key-value table.
type dbLoader struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDatabaseLoader creates a loader that reads the pricing_config table.
func NewDatabaseLoader(pool *pgxpool.Pool, logger zerolog.Logger) Loader {
	return &dbLoader{
		pool:   pool,
		logger: logger.With().Str("component", "db-pricing-loader").Logger(),
	}
}

// Load reads all rows of pricing_config and validates them.
func (l *dbLoader) Load(ctx context.Context) (model.PricingConfig, error) {
	query := `
		SELECT key, value
		FROM pricing_config
		ORDER BY key
	`

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to query pricing configuration")
		return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable,
			fmt.Errorf("failed to query pricing configuration: %w", err))
	}
	defer rows.Close()

	props := properties.NewProperties()
	props.DisableExpansion = true
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			l.logger.Error().Err(err).Msg("failed to scan pricing row")
			return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable,
				fmt.Errorf("failed to scan pricing row: %w", err))
		}
		if _, _, err := props.Set(key, value); err != nil {
			return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable, err)
		}
	}

	if err := rows.Err(); err != nil {
		l.logger.Error().Err(err).Msg("error iterating pricing rows")
		return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable,
			fmt.Errorf("error iterating pricing rows: %w", err))
	}

	if props.Len() == 0 {
		l.logger.Error().Msg("pricing table is empty")
		return model.PricingConfig{}, model.NewConfigurationError(msgEmpty)
	}

	l.logger.Debug().Int("rows", props.Len()).Msg("pricing rows loaded")

	return fromProperties(props, l.logger)
}
