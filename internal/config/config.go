// Package config handles loading and validating the client configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Favorites backends.
const (
	FavoritesNone     = "none"
	FavoritesRemote   = "remote"
	FavoritesPostgres = "postgres"
)

// DefaultBaseURL is the public marketplace.
const DefaultBaseURL = "http://marketplace.eclipse.org"

// Config is the top-level client configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cache     CacheConfig     `yaml:"cache"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Meta      MetaConfig      `yaml:"meta"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CatalogConfig defines how the marketplace is reached.
type CatalogConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	UserAgent string          `yaml:"user_agent"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side request throttling. A zero
// daily_limit disables the daily cap.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// CacheConfig defines the in-memory response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

// FavoritesConfig selects and configures the favorites backend.
type FavoritesConfig struct {
	Backend  string         `yaml:"backend"` // none, remote, postgres
	User     string         `yaml:"user"`
	Remote   RemoteConfig   `yaml:"remote"`
	Postgres DatabaseConfig `yaml:"postgres"`
}

// RemoteConfig defines the remote favorites service and its OAuth2 client
// credentials. A static token skips the token endpoint.
type RemoteConfig struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Scope        string `yaml:"scope"`
	Token        string `yaml:"token"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// MetaConfig names the client in request meta-parameters. Extra entries
// override or, when empty, remove individual parameters.
type MetaConfig struct {
	Client         string            `yaml:"client"`
	ClientVersion  string            `yaml:"client_version"`
	Product        string            `yaml:"product"`
	ProductVersion string            `yaml:"product_version"`
	Extra          map[string]string `yaml:"extra"`
}

// ServerConfig defines the mock marketplace server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Fixtures     string        `yaml:"fixtures"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyCatalogDefaults(&cfg.Catalog)
	applyCacheDefaults(&cfg.Cache)
	applyFavoritesDefaults(&cfg.Favorites)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = 5.0
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Size == 0 {
		c.Size = 256
	}
	if c.TTL == 0 {
		c.TTL = 10 * time.Minute
	}
}

func applyFavoritesDefaults(f *FavoritesConfig) {
	if f.Backend == "" {
		f.Backend = FavoritesNone
	}
	d := &f.Postgres
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 4
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "127.0.0.1"
	}
	if s.Port == 0 {
		s.Port = 8089
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// Validate reports every problem in cfg at once.
func Validate(cfg *Config) error {
	var errs []error

	if err := checkAbsoluteURL("catalog.base_url", cfg.Catalog.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if cfg.Catalog.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_limit.per_second must not be negative"))
	}
	if cfg.Catalog.RateLimit.DailyLimit < 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_limit.daily_limit must not be negative"))
	}
	if cfg.Cache.Enabled && cfg.Cache.Size < 0 {
		errs = append(errs, fmt.Errorf("cache.size must be positive"))
	}

	f := cfg.Favorites
	switch f.Backend {
	case FavoritesNone:
	case FavoritesRemote:
		if f.User == "" {
			errs = append(errs, fmt.Errorf("favorites.user is required when backend is remote"))
		}
		if err := checkAbsoluteURL("favorites.remote.base_url", f.Remote.BaseURL); err != nil {
			errs = append(errs, err)
		}
		if f.Remote.Token == "" {
			if f.Remote.TokenURL == "" {
				errs = append(errs, fmt.Errorf("favorites.remote.token_url is required without a static token"))
			}
			if f.Remote.ClientID == "" {
				errs = append(errs, fmt.Errorf("favorites.remote.client_id is required without a static token"))
			}
		}
	case FavoritesPostgres:
		if f.User == "" {
			errs = append(errs, fmt.Errorf("favorites.user is required when backend is postgres"))
		}
		if f.Postgres.Host == "" {
			errs = append(errs, fmt.Errorf("favorites.postgres.host is required"))
		}
		if f.Postgres.Name == "" {
			errs = append(errs, fmt.Errorf("favorites.postgres.name is required"))
		}
		if f.Postgres.User == "" {
			errs = append(errs, fmt.Errorf("favorites.postgres.user is required"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"favorites.backend must be one of: none, remote, postgres (got %q)",
				f.Backend,
			),
		)
	}

	return errors.Join(errs...)
}

func checkAbsoluteURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL (got %q)", field, raw)
	}
	return nil
}
