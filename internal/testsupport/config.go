package testsupport

import (
	"path/filepath"
	"testing"

	"smartlists/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.MDBList.APIKey = "test"
	cfgVal.TMDB.APIKey = "test"
	cfgVal.Trakt.ClientID = "test"
	cfgVal.Refresh.LockPath = filepath.Join(base, "data", "refresh.lock")
	cfgVal.Journal.Path = filepath.Join(base, "data", "journal.db")

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

// WithSmartLists sets the configured smart lists on the test config.
func WithSmartLists(smartLists ...config.SmartList) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SmartLists = smartLists
	}
}

// WithNtfyTopic points notifications at the given ntfy topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithoutJournal disables batch journaling on the test config.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}
