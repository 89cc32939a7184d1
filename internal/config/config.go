package config

import (
	"fmt"
	"time"

	"github.com/yildizm/TrendLens/internal/filter"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Filters FiltersConfig `yaml:"filters" json:"filters"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
}

// BackendConfig configures the discovery/analysis backend
type BackendConfig struct {
	Provider        string        `yaml:"provider" json:"provider"`                 // http|offline
	BaseURL         string        `yaml:"base_url" json:"base_url"`                 // backend root URL
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`                   // per-request timeout
	RetryAttempts   int           `yaml:"retry_attempts" json:"retry_attempts"`     // total tries per call
	RetryDelay      time.Duration `yaml:"retry_delay" json:"retry_delay"`           // initial backoff interval
	BreakerFailures int           `yaml:"breaker_failures" json:"breaker_failures"` // consecutive failures before the breaker opens
	BreakerTimeout  time.Duration `yaml:"breaker_timeout" json:"breaker_timeout"`   // open-state duration
}

// CacheConfig configures the analysis response cache
type CacheConfig struct {
	Backend  string        `yaml:"backend" json:"backend"` // none|memory|redis
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	RedisURL string        `yaml:"redis_url" json:"redis_url"`
}

// FiltersConfig holds the initial filter selection and the auto-apply policy
type FiltersConfig struct {
	TimeWindow        string           `yaml:"time_window" json:"time_window"`
	VideoFormat       string           `yaml:"video_format" json:"video_format"`
	SmallChannelsOnly bool             `yaml:"small_channels_only" json:"small_channels_only"`
	ViewRange         filter.ViewRange `yaml:"view_range" json:"view_range"`
	AutoApply         []string         `yaml:"auto_apply" json:"auto_apply"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`         // text|table|json|markdown|csv
	ColorMode string `yaml:"color_mode" json:"color_mode"` // auto|always|never
	Theme     string `yaml:"theme" json:"theme"`           // TUI theme name
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji"`
}

// LoggingConfig configures diagnostic logging
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	Format  string `yaml:"format" json:"format"` // text|json
	File    string `yaml:"file" json:"file"`     // empty means stderr
}

// ScanConfig configures the scan command
type ScanConfig struct {
	Concurrency int `yaml:"concurrency" json:"concurrency"`
	TopGems     int `yaml:"top_gems" json:"top_gems"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	defaults := filter.Default()
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			Provider:        "http",
			BaseURL:         "http://localhost:8000",
			Timeout:         30 * time.Second,
			RetryAttempts:   3,
			RetryDelay:      500 * time.Millisecond,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     10 * time.Minute,
		},
		Filters: FiltersConfig{
			TimeWindow:        string(defaults.TimeWindow),
			VideoFormat:       string(defaults.VideoFormat),
			SmallChannelsOnly: defaults.SmallChannelsOnly,
			ViewRange:         defaults.ViewRange,
			AutoApply:         fieldNames(filter.DefaultPolicy().HotFields()),
		},
		Output: OutputConfig{
			Format:    "text",
			ColorMode: "auto",
			Theme:     "default",
		},
		Logging: LoggingConfig{
			Format: "text",
		},
		Scan: ScanConfig{
			Concurrency: 4,
			TopGems:     3,
		},
	}
}

// InitialFilters converts the filters section into a filter state
func (c *Config) InitialFilters() (filter.State, error) {
	tw, err := filter.ParseTimeWindow(c.Filters.TimeWindow)
	if err != nil {
		return filter.State{}, err
	}
	vf, err := filter.ParseVideoFormat(c.Filters.VideoFormat)
	if err != nil {
		return filter.State{}, err
	}

	state := filter.Default()
	if state, err = state.WithTimeWindow(tw); err != nil {
		return filter.State{}, err
	}
	if state, err = state.WithVideoFormat(vf); err != nil {
		return filter.State{}, err
	}
	state = state.WithSmallChannelsOnly(c.Filters.SmallChannelsOnly)
	return state.WithViewRange(c.Filters.ViewRange.Low, c.Filters.ViewRange.High)
}

// Policy converts the auto_apply list into a filter policy
func (c *Config) Policy() (filter.Policy, error) {
	return filter.PolicyFromNames(c.Filters.AutoApply)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateCacheConfig(); err != nil {
		return err
	}
	if err := c.validateFiltersConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateLoggingConfig(); err != nil {
		return err
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("scan.concurrency must be greater than 0")
	}
	if c.Scan.TopGems < 0 {
		return fmt.Errorf("scan.top_gems must be non-negative")
	}
	return nil
}

// validateBackendConfig validates backend-related configuration
func (c *Config) validateBackendConfig() error {
	switch c.Backend.Provider {
	case "http":
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("backend.base_url is required for the http provider")
		}
	case "offline":
	default:
		return fmt.Errorf("invalid backend provider: %s (must be one of: http, offline)", c.Backend.Provider)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Backend.RetryAttempts < 1 {
		return fmt.Errorf("backend.retry_attempts must be greater than 0")
	}
	if c.Backend.RetryDelay < 0 {
		return fmt.Errorf("backend.retry_delay must be non-negative")
	}
	if c.Backend.BreakerFailures < 1 {
		return fmt.Errorf("backend.breaker_failures must be greater than 0")
	}
	if c.Backend.BreakerTimeout <= 0 {
		return fmt.Errorf("backend.breaker_timeout must be positive")
	}
	return nil
}

// validateCacheConfig validates cache-related configuration
func (c *Config) validateCacheConfig() error {
	validBackends := map[string]bool{
		"none":   true,
		"memory": true,
		"redis":  true,
	}
	if !validBackends[c.Cache.Backend] {
		return fmt.Errorf("invalid cache backend: %s (must be one of: none, memory, redis)", c.Cache.Backend)
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	return nil
}

// validateFiltersConfig validates the initial filters and policy
func (c *Config) validateFiltersConfig() error {
	if _, err := c.InitialFilters(); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("invalid filters.auto_apply: %w", err)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.Format != "" {
		validFormats := map[string]bool{
			"text":     true,
			"table":    true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.Format] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, table, json, markdown, csv)", c.Output.Format)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateLoggingConfig validates logging-related configuration
func (c *Config) validateLoggingConfig() error {
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (must be one of: text, json)", c.Logging.Format)
	}
	return nil
}

func fieldNames(fields []filter.Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
	}
	return names
}
