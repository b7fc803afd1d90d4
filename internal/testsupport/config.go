package testsupport

import (
	"path/filepath"
	"testing"

	"subfix/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// The key is a dummy value, colour is off, and polling is fast enough for
// fake servers.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.AssemblyAI.APIKey = "test-key"
	cfgVal.Polling.IntervalSeconds = 0.001
	cfgVal.Polling.MaxIntervalSeconds = 0.005
	cfgVal.Polling.Multiplier = 2
	cfgVal.Cache.Path = filepath.Join(base, "cache", "transcripts.db")
	cfgVal.Prompt.Color = "never"
	cfgVal.Prompt.ShowDiff = false
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the AssemblyAI key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.AssemblyAI.APIKey = key
	}
}

// WithBaseURL points the AssemblyAI client at url, typically a fake server.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.AssemblyAI.BaseURL = url
	}
}

// WithCacheDisabled turns off the transcript cache.
func WithCacheDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// WithOutputDir routes artifacts into a directory under the test base.
func WithOutputDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Dir = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Cache.Path))
}
