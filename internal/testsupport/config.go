package testsupport

import (
	"path/filepath"
	"testing"

	"subtrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSaveTimeout overrides the persistence timeout on the test config.
func WithSaveTimeout(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Save.TimeoutSeconds = seconds
	}
}

// WithDefaultLanguage overrides the import fallback language.
func WithDefaultLanguage(code string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.DefaultLanguage = code
	}
}
