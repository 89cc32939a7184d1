package config

import (
	"testing"
	"time"

	"github.com/yildizm/TrendLens/internal/filter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}

	if cfg.Backend.Provider != "http" {
		t.Errorf("Expected backend provider http, got %s", cfg.Backend.Provider)
	}

	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Expected backend timeout 30s, got %v", cfg.Backend.Timeout)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.Format)
	}

	if cfg.Cache.Backend != "memory" {
		t.Errorf("Expected cache backend memory, got %s", cfg.Cache.Backend)
	}

	if len(cfg.Filters.AutoApply) != 3 {
		t.Errorf("Expected 3 auto-apply fields, got %d", len(cfg.Filters.AutoApply))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestInitialFilters(t *testing.T) {
	cfg := DefaultConfig()

	state, err := cfg.InitialFilters()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if state != filter.Default() {
		t.Errorf("Expected default filters, got %+v", state)
	}

	cfg.Filters.TimeWindow = "Month"
	cfg.Filters.VideoFormat = "shorts"
	cfg.Filters.ViewRange = filter.ViewRange{Low: 80, High: 20}
	state, err = cfg.InitialFilters()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if state.TimeWindow != filter.TimeWindowMonth {
		t.Errorf("Expected time window month, got %s", state.TimeWindow)
	}
	if state.ViewRange != (filter.ViewRange{Low: 20, High: 80}) {
		t.Errorf("Expected swapped view range, got %+v", state.ViewRange)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := DefaultConfig()

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if policy.AutoApply(filter.FieldViewRange) {
		t.Error("Expected view_range to wait for commit by default")
	}

	cfg.Filters.AutoApply = []string{"view_range"}
	policy, err = cfg.Policy()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !policy.AutoApply(filter.FieldViewRange) || policy.AutoApply(filter.FieldTimeWindow) {
		t.Errorf("Expected only view_range to auto-apply, got %v", policy.HotFields())
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "offline provider without url",
			mutate:  func(c *Config) { c.Backend.Provider = "offline"; c.Backend.BaseURL = "" },
			wantErr: false,
		},
		{
			name:    "invalid backend provider",
			mutate:  func(c *Config) { c.Backend.Provider = "grpc" },
			wantErr: true,
			errMsg:  "invalid backend provider: grpc (must be one of: http, offline)",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Backend.BaseURL = "" },
			wantErr: true,
			errMsg:  "backend.base_url is required for the http provider",
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.Backend.RetryAttempts = 0 },
			wantErr: true,
			errMsg:  "backend.retry_attempts must be greater than 0",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Backend.Timeout = 0 },
			wantErr: true,
			errMsg:  "backend.timeout must be positive",
		},
		{
			name:    "invalid cache backend",
			mutate:  func(c *Config) { c.Cache.Backend = "memcached" },
			wantErr: true,
			errMsg:  "invalid cache backend: memcached (must be one of: none, memory, redis)",
		},
		{
			name:    "disabled cache ignores ttl",
			mutate:  func(c *Config) { c.Cache.Backend = "none"; c.Cache.TTL = 0 },
			wantErr: false,
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: true,
			errMsg:  "invalid output format: xml (must be one of: text, table, json, markdown, csv)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "invalid" },
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "invalid logging format: xml (must be one of: text, json)",
		},
		{
			name:    "invalid time window",
			mutate:  func(c *Config) { c.Filters.TimeWindow = "year" },
			wantErr: true,
		},
		{
			name:    "view range out of bounds",
			mutate:  func(c *Config) { c.Filters.ViewRange = filter.ViewRange{Low: 0, High: 120} },
			wantErr: true,
		},
		{
			name:    "unknown auto-apply field",
			mutate:  func(c *Config) { c.Filters.AutoApply = []string{"views"} },
			wantErr: true,
		},
		{
			name:    "zero scan concurrency",
			mutate:  func(c *Config) { c.Scan.Concurrency = 0 },
			wantErr: true,
			errMsg:  "scan.concurrency must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}
