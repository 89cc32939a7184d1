package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TRENDLENS_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.trendlens.yaml",               // Project-specific config (highest priority)
	"~/.config/trendlens/config.yaml", // User config
	"/etc/trendlens/config.yaml",      // System config (lowest priority)
}

// DotEnvPath is the dotenv file read before environment overrides
var DotEnvPath = ".env"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	dotEnvPath  string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		dotEnvPath:  DotEnvPath,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (TRENDLENS_*), seeded from .env
// 3. ./.trendlens.yaml
// 4. ~/.config/trendlens/config.yaml
// 5. /etc/trendlens/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := l.loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.dotEnvPath, err)
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file on top of config. Keys absent from the
// file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	merged := *config
	merged.Filters.AutoApply = append([]string(nil), config.Filters.AutoApply...)
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

// loadDotEnv exports the dotenv file into the process environment. Variables
// that are already set are not overwritten.
func (l *Loader) loadDotEnv() error {
	if l.dotEnvPath == "" || !fileExists(l.dotEnvPath) {
		return nil
	}
	return godotenv.Load(l.dotEnvPath)
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Backend Config
		"BACKEND_PROVIDER":         func(v string) error { config.Backend.Provider = v; return nil },
		"BACKEND_BASE_URL":         func(v string) error { config.Backend.BaseURL = v; return nil },
		"BACKEND_TIMEOUT":          func(v string) error { return parseDuration(v, &config.Backend.Timeout) },
		"BACKEND_RETRY_ATTEMPTS":   func(v string) error { return parseInt(v, &config.Backend.RetryAttempts) },
		"BACKEND_RETRY_DELAY":      func(v string) error { return parseDuration(v, &config.Backend.RetryDelay) },
		"BACKEND_BREAKER_FAILURES": func(v string) error { return parseInt(v, &config.Backend.BreakerFailures) },
		"BACKEND_BREAKER_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Backend.BreakerTimeout) },

		// Cache Config
		"CACHE_BACKEND":   func(v string) error { config.Cache.Backend = v; return nil },
		"CACHE_TTL":       func(v string) error { return parseDuration(v, &config.Cache.TTL) },
		"CACHE_REDIS_URL": func(v string) error { config.Cache.RedisURL = v; return nil },

		// Filters Config
		"FILTERS_TIME_WINDOW":         func(v string) error { config.Filters.TimeWindow = v; return nil },
		"FILTERS_VIDEO_FORMAT":        func(v string) error { config.Filters.VideoFormat = v; return nil },
		"FILTERS_SMALL_CHANNELS_ONLY": func(v string) error { return parseBool(v, &config.Filters.SmallChannelsOnly) },

		// Output Config
		"OUTPUT_FORMAT":     func(v string) error { config.Output.Format = v; return nil },
		"OUTPUT_COLOR_MODE": func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_THEME":      func(v string) error { config.Output.Theme = v; return nil },
		"OUTPUT_NO_EMOJI":   func(v string) error { return parseBool(v, &config.Output.NoEmoji) },

		// Logging Config
		"LOGGING_VERBOSE": func(v string) error { return parseBool(v, &config.Logging.Verbose) },
		"LOGGING_FORMAT":  func(v string) error { config.Logging.Format = v; return nil },
		"LOGGING_FILE":    func(v string) error { config.Logging.File = v; return nil },

		// Scan Config
		"SCAN_CONCURRENCY": func(v string) error { return parseInt(v, &config.Scan.Concurrency) },
		"SCAN_TOP_GEMS":    func(v string) error { return parseInt(v, &config.Scan.TopGems) },
	}

	for key, setter := range envMappings {
		envVar := EnvPrefix + key
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// comma-separated list, e.g. "time_window,video_format"
	if fields, ok := os.LookupEnv(EnvPrefix + "FILTERS_AUTO_APPLY"); ok {
		config.Filters.AutoApply = splitList(fields)
	}

	// "low,high" slider positions
	if r := os.Getenv(EnvPrefix + "FILTERS_VIEW_RANGE"); r != "" {
		parts := splitList(r)
		if len(parts) != 2 {
			return fmt.Errorf("invalid value for %sFILTERS_VIEW_RANGE: expected low,high", EnvPrefix)
		}
		if err := parseInt(parts[0], &config.Filters.ViewRange.Low); err != nil {
			return fmt.Errorf("invalid value for %sFILTERS_VIEW_RANGE: %w", EnvPrefix, err)
		}
		if err := parseInt(parts[1], &config.Filters.ViewRange.High); err != nil {
			return fmt.Errorf("invalid value for %sFILTERS_VIEW_RANGE: %w", EnvPrefix, err)
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
