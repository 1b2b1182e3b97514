package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "./data/house-price.json", cfg.DataPath)
	assert.Equal(t, "./prolog/housing.pl", cfg.KnowledgeBasePath)
	assert.Equal(t, int64(1000000), cfg.PriceThreshold)
	assert.Equal(t, 10.0, cfg.MarkupPercent)
	assert.Equal(t, "RM", cfg.CurrencySymbol)
	assert.Equal(t, 5, cfg.Postgres.MaxRetries)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().DataPath, cfg.DataPath)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "housing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_path: /srv/houses.json
markup_percent: 15
postgres:
  dsn: postgres://localhost/housing
`), 0o644))

	t.Setenv("MARKUP_PERCENT", "12.5")
	t.Setenv("KB_OUTPUT_PATH", "/tmp/kb.pl")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/houses.json", cfg.DataPath)
	assert.Equal(t, 12.5, cfg.MarkupPercent)
	assert.Equal(t, "/tmp/kb.pl", cfg.KnowledgeBasePath)
	assert.Equal(t, "postgres://localhost/housing", cfg.Postgres.DSN)
	assert.Equal(t, "en-MY", cfg.Locale)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MARKUP_PERCENT", "-150")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
