package testsupport

import (
	"path/filepath"
	"testing"

	"vnrename/internal/config"
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
	cfgVal.VNDB.BaseURL = "http://127.0.0.1:0"
	cfgVal.VNDB.UserAgent = "vnrename-test"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithCatalogURL points the VNDB client at a test server.
func WithCatalogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.VNDB.BaseURL = url
	}
}

// WithTemplate enables the given name template tokens in order.
func WithTemplate(tokens ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naming.Template = nil
		for _, tok := range tokens {
			b.cfg.Naming.Template = append(b.cfg.Naming.Template, config.TemplateToken{Token: tok, Enabled: true})
		}
	}
}

// WithShortcuts toggles catalog shortcut creation.
func WithShortcuts(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naming.CreateShortcut = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
