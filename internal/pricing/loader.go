package pricing

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cinema-tickets/internal/model"

	"github.com/rs/zerolog"
)

//go:embed prices.properties
var bundled embed.FS

// fsLoader implements StreamLoader for a properties file inside a file system.
type fsLoader struct {
	fsys   fs.FS
	name   string
	logger zerolog.Logger
}

// NewDefaultLoader creates a loader for the pricing resource bundled with the binary.
func NewDefaultLoader(logger zerolog.Logger) StreamLoader {
	return newFSLoader(bundled, DefaultResourceName, logger)
}

// NewFileLoader creates a loader for a properties file on disk.
func NewFileLoader(path string, logger zerolog.Logger) StreamLoader {
	return newFSLoader(os.DirFS(filepath.Dir(path)), filepath.Base(path), logger)
}

func newFSLoader(fsys fs.FS, name string, logger zerolog.Logger) *fsLoader {
	return &fsLoader{
		fsys:   fsys,
		name:   name,
		logger: logger.With().Str("component", "pricing-loader").Logger(),
	}
}

// Load reads and validates the pricing file.
func (l *fsLoader) Load(ctx context.Context) (model.PricingConfig, error) {
	l.logger.Info().Str("file", l.name).Msg("loading pricing configuration")

	data, err := fs.ReadFile(l.fsys, l.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Error().Err(err).Str("file", l.name).Msg("pricing configuration not found")
			return model.PricingConfig{}, model.WrapConfigurationError(msgSourceNotFound+l.name, err)
		}
		l.logger.Error().Err(err).Str("file", l.name).Msg("failed to read pricing configuration")
		return model.PricingConfig{}, model.WrapConfigurationError(msgSourceUnreadable, err)
	}

	prices, err := parse(data, l.logger)
	if err != nil {
		return model.PricingConfig{}, err
	}

	l.logger.Info().
		Str("file", l.name).
		Int("adult_price", prices.AdultPrice).
		Int("child_price", prices.ChildPrice).
		Msg("pricing configuration loaded")

	return prices, nil
}

// LoadFrom reads and validates pricing configuration from r.
func (l *fsLoader) LoadFrom(ctx context.Context, r io.Reader) (model.PricingConfig, error) {
	if r == nil {
		return model.PricingConfig{}, model.NewConfigurationError(msgNilStream)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to read pricing stream")
		return model.PricingConfig{}, model.WrapConfigurationError(msgStreamUnreadable, err)
	}

	return parse(data, l.logger)
}
