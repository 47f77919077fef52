// Package config loads the service configuration from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"os"
	"time"
)

// PathEnv names the variable holding an optional YAML config file
const PathEnv = "CONFIG_PATH"

// Config of the exchange rates service
type Config struct {
	Server   Server   `yaml:"server"`
	Upstream Upstream `yaml:"upstream"`
	Cache    Cache    `yaml:"cache"`
	Log      Log      `yaml:"log"`

	// location the reference zone resolved by Validate
	location *time.Location
}

// Server HTTP listener settings
type Server struct {
	Addr        string  `yaml:"addr" env:"LISTEN_ADDR" env-default:":8080" env-description:"HTTP listen address"`
	FaviconPath string  `yaml:"favicon_path" env:"FAVICON_PATH" env-default:"./favicon.ico" env-description:"icon served on /favicon.ico"`
	RateLimit   float64 `yaml:"rate_limit" env:"RATE_LIMIT_RPS" env-default:"0" env-description:"requests per second per client, 0 disables"`
	RateBurst   int     `yaml:"rate_burst" env:"RATE_LIMIT_BURST" env-default:"20" env-description:"burst per client"`
}

// Upstream ECB document settings
type Upstream struct {
	URL     string        `yaml:"url" env:"UPSTREAM_URL" env-default:"https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml" env-description:"daily reference rates document"`
	Timeout time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"5s" env-description:"fetch timeout"`
}

// Cache publication bucket cache settings
type Cache struct {
	Capacity int           `yaml:"capacity" env:"CACHE_CAPACITY" env-default:"99" env-description:"number of publication buckets kept"`
	Zone     string        `yaml:"zone" env:"REFERENCE_ZONE" env-default:"UTC" env-description:"time zone whose wall clock defines buckets"`
	Cutoff   time.Duration `yaml:"cutoff" env:"PUBLICATION_CUTOFF" env-default:"17h" env-description:"offset from midnight at which a bucket starts"`
}

// Log output settings
type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	File  string `yaml:"file" env:"LOG_FILE" env-description:"rotated log file, stderr only when empty"`
}

// Load reads .env when present, then the YAML file named by CONFIG_PATH when set,
// then the environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv(PathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config file %v: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the service cannot start with
func (c *Config) Validate() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache capacity must be >= 1, got %v", c.Cache.Capacity)
	}
	if c.Cache.Cutoff < 0 || c.Cache.Cutoff >= 48*time.Hour {
		return fmt.Errorf("publication cutoff out of range: %v", c.Cache.Cutoff)
	}
	c.location = nil
	loc, err := c.Location()
	if err != nil {
		return err
	}
	c.location = loc
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate limit must be >= 0, got %v", c.Server.RateLimit)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be > 0, got %v", c.Upstream.Timeout)
	}
	return nil
}

// Location returns the reference zone, resolving it unless Validate already did
func (c *Config) Location() (*time.Location, error) {
	if c.location != nil {
		return c.location, nil
	}
	loc, err := time.LoadLocation(c.Cache.Zone)
	if err != nil {
		return nil, fmt.Errorf("reference zone %q: %w", c.Cache.Zone, err)
	}
	return loc, nil
}

// Usage describes every environment variable
func Usage() string {
	var cfg Config
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return header
	}
	return text
}
