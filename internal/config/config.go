// Package config loads owscrape settings from a TOML file, filling defaults
// for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/owapi/owscrape/internal/fetcher"
	"github.com/owapi/owscrape/internal/scraper"
)

// Cache backends selectable in the [cache] section.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full owscrape configuration.
type Config struct {
	HTTP   HTTPConfig   `toml:"http"`
	Scrape ScrapeConfig `toml:"scrape"`
	Cache  CacheConfig  `toml:"cache"`
}

// HTTPConfig controls the outbound HTTP client.
type HTTPConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
}

// ScrapeConfig controls caching, parsing, and the target site bases.
type ScrapeConfig struct {
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	ParseWorkers    int    `toml:"parse_workers"`
	BlizzardBase    string `toml:"blizzard_base"`
	MasterBase      string `toml:"master_base"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	UseTLS   bool   `toml:"use_tls"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML config from path, applies defaults, and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = int(fetcher.Timeout / time.Second)
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = fetcher.UserAgent
	}
	if c.Scrape.CacheTTLSeconds <= 0 {
		c.Scrape.CacheTTLSeconds = 300
	}
	if c.Scrape.ParseWorkers <= 0 {
		c.Scrape.ParseWorkers = 4
	}
	if c.Scrape.BlizzardBase == "" {
		c.Scrape.BlizzardBase = scraper.BlizzardBaseURL
	}
	if c.Scrape.MasterBase == "" {
		c.Scrape.MasterBase = scraper.MasterBaseURL
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (must be %q or %q)",
			c.Cache.Backend, BackendMemory, BackendRedis)
	}
	return nil
}

// CacheTTL returns the scrape cache window as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Scrape.CacheTTLSeconds) * time.Second
}

// HTTPTimeout returns the outbound HTTP timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Endpoints returns the site bases as a scraper.Endpoints value.
func (c Config) Endpoints() scraper.Endpoints {
	return scraper.Endpoints{
		BlizzardBase: c.Scrape.BlizzardBase,
		MasterBase:   c.Scrape.MasterBase,
	}
}
