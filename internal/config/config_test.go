package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, CatalogRemote, cfg.Catalog)
	assert.Equal(t, 12*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.StrictInput)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("FITTRACK_API_URL", "https://tracker.test")
	t.Setenv("FITTRACK_BACKEND", "LOCAL")
	t.Setenv("FITTRACK_CATALOG", "usda")
	t.Setenv("FITTRACK_USDA_API_KEY", "demo")
	t.Setenv("FITTRACK_STRICT_INPUT", "true")
	t.Setenv("FITTRACK_TIMEZONE", "UTC")
	t.Setenv("FITTRACK_HTTP_TIMEOUT", "3s")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.test", cfg.APIURL)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, CatalogUSDA, cfg.Catalog)
	assert.True(t, cfg.StrictInput)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestValidate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := &Config{Backend: "cloud", Catalog: CatalogRemote, HTTPTimeout: time.Second}
		require.ErrorContains(t, cfg.Validate(), "unsupported backend")
	})

	t.Run("usda without key", func(t *testing.T) {
		cfg := &Config{Backend: BackendRemote, Catalog: CatalogUSDA, HTTPTimeout: time.Second}
		require.ErrorContains(t, cfg.Validate(), "FITTRACK_USDA_API_KEY")
	})

	t.Run("local backend swaps remote catalog", func(t *testing.T) {
		cfg := &Config{Backend: BackendLocal, Catalog: CatalogRemote, HTTPTimeout: time.Second}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, CatalogOpenFoodFacts, cfg.Catalog)
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := &Config{Backend: BackendRemote, Catalog: CatalogRemote, HTTPTimeout: time.Second, Timezone: "Mars/Olympus"}
		require.ErrorContains(t, cfg.Validate(), "invalid timezone")
	})
}
