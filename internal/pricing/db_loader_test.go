package pricing

import (
	"context"
	"testing"
	"time"

	"cinema-tickets/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPricingDB starts a PostgreSQL container with an empty pricing_config table.
func setupPricingDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	_, err = pool.Exec(ctx, PricingTableSchema)
	require.NoError(t, err)

	return pool
}

func insertPricing(t *testing.T, pool *pgxpool.Pool, values map[string]string) {
	ctx := context.Background()
	for key, value := range values {
		_, err := pool.Exec(ctx, `INSERT INTO pricing_config (key, value) VALUES ($1, $2)`, key, value)
		require.NoError(t, err)
	}
}

func TestDatabaseLoader_Load(t *testing.T) {
	pool := setupPricingDB(t)
	loader := NewDatabaseLoader(pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("Empty table", func(t *testing.T) {
		_, err := loader.Load(ctx)
		assert.EqualError(t, err, "Properties file is empty or could not be loaded.")
	})

	t.Run("Missing child price", func(t *testing.T) {
		insertPricing(t, pool, map[string]string{AdultPriceKey: "25"})

		_, err := loader.Load(ctx)
		var cfgErr *model.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Missing configuration key: child.ticket.price", cfgErr.Message)
	})

	t.Run("Both prices present", func(t *testing.T) {
		insertPricing(t, pool, map[string]string{ChildPriceKey: "15"})

		prices, err := loader.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.PricingConfig{AdultPrice: 25, ChildPrice: 15}, prices)
	})
}

func TestDatabaseLoader_Load_QueryFails(t *testing.T) {
	pool := setupPricingDB(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DROP TABLE pricing_config`)
	require.NoError(t, err)

	loader := NewDatabaseLoader(pool, zerolog.Nop())
	_, err = loader.Load(ctx)

	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Failed to load ticket prices from configuration", cfgErr.Message)
	assert.Contains(t, cfgErr.Unwrap().Error(), "failed to query pricing configuration")
}
