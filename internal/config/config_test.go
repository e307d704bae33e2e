package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/owapi/owscrape/internal/scraper"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "owscrape.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty file gets all defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Scrape.CacheTTLSeconds != 300 {
			t.Errorf("CacheTTLSeconds = %d, want 300", cfg.Scrape.CacheTTLSeconds)
		}
		if cfg.Scrape.ParseWorkers != 4 {
			t.Errorf("ParseWorkers = %d, want 4", cfg.Scrape.ParseWorkers)
		}
		if cfg.Cache.Backend != BackendMemory {
			t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, BackendMemory)
		}
		if cfg.Scrape.BlizzardBase != scraper.BlizzardBaseURL {
			t.Errorf("BlizzardBase = %q, want default", cfg.Scrape.BlizzardBase)
		}
		if cfg.HTTP.TimeoutSeconds != 30 {
			t.Errorf("TimeoutSeconds = %d, want 30", cfg.HTTP.TimeoutSeconds)
		}
	})

	t.Run("values from file override defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
[scrape]
cache_ttl_seconds = 60
parse_workers = 2
master_base = "http://localhost:8080/mo"

[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
db = 3
`))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.CacheTTL() != time.Minute {
			t.Errorf("CacheTTL() = %v, want 1m", cfg.CacheTTL())
		}
		if cfg.Scrape.ParseWorkers != 2 {
			t.Errorf("ParseWorkers = %d, want 2", cfg.Scrape.ParseWorkers)
		}
		if cfg.Cache.Backend != BackendRedis {
			t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
		}
		if cfg.Cache.Redis.Addr != "redis.internal:6379" {
			t.Errorf("Redis.Addr = %q", cfg.Cache.Redis.Addr)
		}
		if cfg.Cache.Redis.DB != 3 {
			t.Errorf("Redis.DB = %d, want 3", cfg.Cache.Redis.DB)
		}
		// Untouched sections still get defaults
		if cfg.Scrape.BlizzardBase != scraper.BlizzardBaseURL {
			t.Errorf("BlizzardBase = %q, want default", cfg.Scrape.BlizzardBase)
		}
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
[cache]
backend = "memcached"
`))
		if err == nil {
			t.Error("Load with unknown backend returned nil error")
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("Load of missing file returned nil error")
		}
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "[scrape\nbroken")); err == nil {
			t.Error("Load of malformed file returned nil error")
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Cache.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, BackendMemory)
	}
	if cfg.Endpoints().MasterBase != scraper.MasterBaseURL {
		t.Errorf("Endpoints().MasterBase = %q, want default", cfg.Endpoints().MasterBase)
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 30s", cfg.HTTPTimeout())
	}
}
