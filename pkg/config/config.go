package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the client.
const EnvPrefix = "YMGS"

// Config carries everything the storefront client needs at startup.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Catalog CatalogConfig
	State   StateConfig
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	if err := cfg.State.ensurePath(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"YMGS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"YMGS_LOG_FORMAT" default:"console"`
	LogWarnStack bool   `envconfig:"YMGS_LOG_WARN_STACK" default:"false"`
}

type BackendConfig struct {
	// BaseURL is the single backend root every request is issued against,
	// e.g. https://api.ymgs.example/api.
	BaseURL string        `envconfig:"YMGS_BACKEND_URL" required:"true"`
	Timeout time.Duration `envconfig:"YMGS_HTTP_TIMEOUT" default:"30s"`
}

type CatalogConfig struct {
	PageSize      int `envconfig:"YMGS_PAGE_SIZE" default:"20"`
	FeaturedLimit int `envconfig:"YMGS_FEATURED_LIMIT" default:"10"`
}

type StateConfig struct {
	// Path locates the sqlite file standing in for browser local storage.
	Path string `envconfig:"YMGS_STATE_PATH"`
}

func (b *BackendConfig) validate() error {
	trimmed := strings.TrimSpace(b.BaseURL)
	if trimmed == "" {
		return fmt.Errorf("%s_BACKEND_URL is required", EnvPrefix)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid backend url %q", b.BaseURL)
	}
	b.BaseURL = strings.TrimRight(trimmed, "/")
	return nil
}

func (s *StateConfig) ensurePath() error {
	if strings.TrimSpace(s.Path) != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving state path: %w", err)
	}
	s.Path = filepath.Join(home, ".ymgs", "storefront.db")
	return nil
}
