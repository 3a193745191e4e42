package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default server addr ':8080', got '%s'", cfg.Server.Addr)
	}
	if cfg.Cache.Interval != 2*time.Hour {
		t.Errorf("Expected default cache interval 2h, got %v", cfg.Cache.Interval)
	}
	if cfg.ESPN.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", cfg.ESPN.Timeout)
	}
	if cfg.ESPN.PacingDelay != 300*time.Millisecond {
		t.Errorf("Expected default pacing delay 300ms, got %v", cfg.ESPN.PacingDelay)
	}
	if cfg.Cache.Backend != config.BackendFile {
		t.Errorf("Expected default backend 'file', got '%s'", cfg.Cache.Backend)
	}

	pinned := cfg.PinnedTeams()
	if len(pinned) != 2 || pinned[0] != "130" || pinned[1] != "127" {
		t.Errorf("Expected pinned teams [130 127], got %v", pinned)
	}
	if cfg.Leagues.CFBRankCutoff != 25 {
		t.Errorf("Expected rank cutoff 25, got %d", cfg.Leagues.CFBRankCutoff)
	}
	if cfg.Leagues.CFBWindowDays != 7 || cfg.Leagues.MLBWindowDays != 3 || cfg.Leagues.NHLDays != 5 {
		t.Errorf("Unexpected window defaults: %+v", cfg.Leagues)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("CACHE_INTERVAL", "30m")
	t.Setenv("PACING_DELAY", "0s")
	t.Setenv("CFB_PINNED_TEAMS", "130, 194")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected server addr ':9090', got '%s'", cfg.Server.Addr)
	}
	if cfg.Cache.Interval != 30*time.Minute {
		t.Errorf("Expected cache interval 30m, got %v", cfg.Cache.Interval)
	}
	if cfg.ESPN.PacingDelay != 0 {
		t.Errorf("Expected pacing delay 0, got %v", cfg.ESPN.PacingDelay)
	}
	if cfg.Cache.Backend != config.BackendRedis {
		t.Errorf("Expected backend 'redis', got '%s'", cfg.Cache.Backend)
	}

	pinned := cfg.PinnedTeams()
	if len(pinned) != 2 || pinned[1] != "194" {
		t.Errorf("Expected pinned teams [130 194], got %v", pinned)
	}

	// Untouched values keep their defaults
	if cfg.ESPN.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout to survive, got %v", cfg.ESPN.Timeout)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
espn:
  timeout: 4s
  user_agent: "Mozilla/5.0 (X11)"
cache:
  backend: postgres
  interval: 1h
leagues:
  mlb_window_days: 2
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CACHE_INTERVAL", "45m")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ESPN.Timeout != 4*time.Second {
		t.Errorf("Expected timeout from file 4s, got %v", cfg.ESPN.Timeout)
	}
	if cfg.ESPN.UserAgent != "Mozilla/5.0 (X11)" {
		t.Errorf("Expected user agent from file, got '%s'", cfg.ESPN.UserAgent)
	}
	if cfg.Cache.Backend != config.BackendPostgres {
		t.Errorf("Expected backend from file, got '%s'", cfg.Cache.Backend)
	}
	if cfg.Cache.Interval != 45*time.Minute {
		t.Errorf("Expected env to win over file, got %v", cfg.Cache.Interval)
	}
	if cfg.Leagues.MLBWindowDays != 2 {
		t.Errorf("Expected mlb window 2, got %d", cfg.Leagues.MLBWindowDays)
	}
	if cfg.Leagues.CFBWindowDays != 7 {
		t.Errorf("Expected cfb window default 7, got %d", cfg.Leagues.CFBWindowDays)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(c *config.Config) {}, ""},
		{"zero interval", func(c *config.Config) { c.Cache.Interval = 0 }, "cache interval"},
		{"unknown backend", func(c *config.Config) { c.Cache.Backend = "memcached" }, "unknown cache backend"},
		{"no pinned teams", func(c *config.Config) { c.Leagues.CFBPinnedTeams = []string{" "} }, "pinned"},
		{"negative pacing", func(c *config.Config) { c.ESPN.PacingDelay = -time.Second }, "pacing delay"},
		{"bad timezone", func(c *config.Config) { c.Leagues.Timezone = "Mars/Olympus" }, "timezone"},
		{"zero window", func(c *config.Config) { c.Leagues.MLBWindowDays = 0 }, "window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMergeFile_ExampleConfig(t *testing.T) {
	cfg := config.Default()
	if err := cfg.MergeFile(filepath.Join("..", "..", "config.example.yml")); err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config is invalid: %v", err)
	}
	if cfg.Server.WriteTimeout != 150*time.Second {
		t.Errorf("Expected write timeout 150s, got %v", cfg.Server.WriteTimeout)
	}
}
