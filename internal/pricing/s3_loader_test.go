package pricing

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cinema-tickets/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockObjectGetter is a mock implementation of the S3 GetObject call.
type mockObjectGetter struct {
	getFunc func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

func (m *mockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getFunc(ctx, params)
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context) (model.PricingConfig, error)
}

func (m *mockLoader) Load(ctx context.Context) (model.PricingConfig, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return model.PricingConfig{}, errors.New("not implemented")
}

func TestS3Loader_Load_Success(t *testing.T) {
	client := &mockObjectGetter{
		getFunc: func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "pricing-bucket", aws.ToString(params.Bucket))
			assert.Equal(t, "config/prices.properties", aws.ToString(params.Key))
			return &s3.GetObjectOutput{
				Body: io.NopCloser(strings.NewReader("adult.ticket.price=28\nchild.ticket.price=14\n")),
			}, nil
		},
	}
	loader := newS3Loader(client, "pricing-bucket", "config/prices.properties", zerolog.Nop())

	prices, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.PricingConfig{AdultPrice: 28, ChildPrice: 14}, prices)
}

func TestS3Loader_Load_GetObjectFails(t *testing.T) {
	client := &mockObjectGetter{
		getFunc: func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			return nil, errors.New("access denied")
		},
	}
	loader := newS3Loader(client, "pricing-bucket", "prices.properties", zerolog.Nop())

	_, err := loader.Load(context.Background())

	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Failed to load ticket prices from configuration", cfgErr.Message)
	assert.Contains(t, cfgErr.Unwrap().Error(), "failed to get object from S3 (bucket=pricing-bucket, key=prices.properties)")
}

func TestS3Loader_Load_MissingKey(t *testing.T) {
	client := &mockObjectGetter{
		getFunc: func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			return &s3.GetObjectOutput{
				Body: io.NopCloser(strings.NewReader("adult.ticket.price=28\n")),
			}, nil
		},
	}
	loader := newS3Loader(client, "pricing-bucket", "prices.properties", zerolog.Nop())

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, "Missing configuration key: child.ticket.price")
}

func TestFallbackLoader_PrimarySuccess(t *testing.T) {
	primary := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			return model.PricingConfig{AdultPrice: 30, ChildPrice: 20}, nil
		},
	}
	fallback := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			t.Error("fallback loader should not be called when primary succeeds")
			return model.PricingConfig{}, errors.New("should not be called")
		},
	}

	loader := NewFallbackLoader(primary, fallback, true, zerolog.Nop())

	prices, err := loader.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 30, prices.AdultPrice)
}

func TestFallbackLoader_PrimaryFailsFallsBack(t *testing.T) {
	primary := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			return model.PricingConfig{}, errors.New("S3 connection failed")
		},
	}

	loader := NewFallbackLoader(primary, NewDefaultLoader(zerolog.Nop()), true, zerolog.Nop())

	prices, err := loader.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, model.PricingConfig{AdultPrice: 25, ChildPrice: 15}, prices)
}

func TestFallbackLoader_PrimaryDisabled(t *testing.T) {
	primary := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			t.Error("primary loader should not be called when disabled")
			return model.PricingConfig{}, errors.New("should not be called")
		},
	}

	loader := NewFallbackLoader(primary, NewDefaultLoader(zerolog.Nop()), false, zerolog.Nop())

	prices, err := loader.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 15, prices.ChildPrice)
}

func TestFallbackLoader_PrimaryNil(t *testing.T) {
	loader := NewFallbackLoader(nil, NewDefaultLoader(zerolog.Nop()), true, zerolog.Nop())

	prices, err := loader.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 25, prices.AdultPrice)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	primary := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			return model.PricingConfig{}, errors.New("S3 error")
		},
	}
	fallback := &mockLoader{
		loadFunc: func(ctx context.Context) (model.PricingConfig, error) {
			return model.PricingConfig{}, model.NewConfigurationError("Configuration file not found: prices.properties")
		},
	}

	loader := NewFallbackLoader(primary, fallback, true, zerolog.Nop())

	_, err := loader.Load(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Configuration file not found")
}
