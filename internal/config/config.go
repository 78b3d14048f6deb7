package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Backend string

const (
	BackendRemote Backend = "remote"
	BackendLocal  Backend = "local"
)

type CatalogSource string

const (
	CatalogRemote        CatalogSource = "remote"
	CatalogUSDA          CatalogSource = "usda"
	CatalogOpenFoodFacts CatalogSource = "openfoodfacts"
)

// Config holds fittrack settings.
// Environment variables are parsed from the FITTRACK_ prefix,
// e.g. FITTRACK_API_URL, FITTRACK_BACKEND.
type Config struct {
	APIURL      string        `envconfig:"API_URL" default:"http://localhost:8000"`
	Backend     Backend       `envconfig:"BACKEND" default:"remote"`
	Catalog     CatalogSource `envconfig:"CATALOG" default:"remote"`
	USDAAPIKey  string        `envconfig:"USDA_API_KEY"`
	DBPath      string        `envconfig:"DB_PATH"`
	Timezone    string        `envconfig:"TIMEZONE"`
	StrictInput bool          `envconfig:"STRICT_INPUT" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"warn"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"12s"`
}

const envPrefix = "FITTRACK"

// New parses the environment and validates the result.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load parses the environment without validating, so callers can layer
// flag overrides before calling Validate.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	switch c.Backend {
	case BackendRemote, BackendLocal:
	default:
		return fmt.Errorf("unsupported backend %q (expected remote or local)", c.Backend)
	}

	c.Catalog = CatalogSource(strings.ToLower(strings.TrimSpace(string(c.Catalog))))
	switch c.Catalog {
	case CatalogRemote, CatalogUSDA, CatalogOpenFoodFacts:
	default:
		return fmt.Errorf("unsupported catalog %q (expected remote, usda, or openfoodfacts)", c.Catalog)
	}
	if c.Catalog == CatalogUSDA && strings.TrimSpace(c.USDAAPIKey) == "" {
		return fmt.Errorf("FITTRACK_USDA_API_KEY is required for the usda catalog")
	}
	if c.Backend == BackendLocal && c.Catalog == CatalogRemote {
		// The remote catalog needs a session; local mode falls back to Open Food Facts.
		c.Catalog = CatalogOpenFoodFacts
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the viewer's zone used for "today". Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
