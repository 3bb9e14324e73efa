package pricing

import (
	"context"
	"fmt"
	"io"

	"cinema-tickets/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the subset of the S3 client used by s3Loader.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for a properties object stored in AWS S3.
type s3Loader struct {
	client objectGetter
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based pricing loader.
func NewS3Loader(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-pricing-loader").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("key", key).
		Msg("S3 loader initialised")

	return newS3Loader(s3.NewFromConfig(cfg), bucket, key, logger), nil
}

func newS3Loader(client objectGetter, bucket, key string, logger zerolog.Logger) *s3Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}
}

// Load fetches the pricing object from S3 and validates it.
func (l *s3Loader) Load(ctx context.Context) (model.PricingConfig, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.key).
		Msg("loading pricing configuration from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.key).
			Msg("failed to get object from S3")
		return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable,
			fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, l.key, err))
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.key).
			Msg("failed to read S3 object body")
		return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable, err)
	}

	return parse(data, l.logger)
}

// fallbackLoader tries a primary loader first and falls back to a secondary one.
type fallbackLoader struct {
	primary  Loader
	fallback Loader
	enabled  bool
	logger   zerolog.Logger
}

// NewFallbackLoader creates a loader that tries primary first, then falls back.
// If primary is nil or disabled, only the fallback loader is used.
func NewFallbackLoader(primary, fallback Loader, enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:  primary,
		fallback: fallback,
		enabled:  enabled,
		logger:   logger.With().Str("component", "fallback-pricing-loader").Logger(),
	}
}

// Load attempts the primary source first, then the fallback source.
func (l *fallbackLoader) Load(ctx context.Context) (model.PricingConfig, error) {
	if l.enabled && l.primary != nil {
		prices, err := l.primary.Load(ctx)
		if err == nil {
			return prices, nil
		}

		l.logger.Warn().
			Err(err).
			Msg("failed to load primary pricing source, falling back")
	} else {
		l.logger.Debug().
			Bool("primary_enabled", l.enabled).
			Bool("has_primary", l.primary != nil).
			Msg("primary pricing source disabled or not configured")
	}

	return l.fallback.Load(ctx)
}
