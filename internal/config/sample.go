package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# TrendLens configuration
#
# Search order (first match wins for each key):
#   ./.trendlens.yaml
#   ~/.config/trendlens/config.yaml
#   /etc/trendlens/config.yaml
# TRENDLENS_* environment variables (and a local .env file) override files.

version: "1.0"

backend:
  # http talks to the discovery API, offline uses built-in sample data
  provider: http
  base_url: http://localhost:8000
  timeout: 30s
  # total attempts per call; 4xx responses are never retried
  retry_attempts: 3
  retry_delay: 500ms
  # consecutive failures before the circuit opens, and how long it stays open
  breaker_failures: 5
  breaker_timeout: 30s

cache:
  # none, memory or redis
  backend: memory
  ttl: 10m
  # used when backend is redis, e.g. redis://localhost:6379/0
  redis_url: ""

filters:
  # hours, 3_days, 7_days, month, 3_months, 7_months
  time_window: 7_days
  # any, shorts, normal
  video_format: any
  small_channels_only: false
  # slider positions 0-100 on a log scale between 1k and 10M views
  view_range:
    low: 0
    high: 100
  # fields that re-query as soon as they change; the rest wait for a commit
  auto_apply:
    - time_window
    - video_format
    - small_channels_only

output:
  # text, table, json, markdown, csv
  format: text
  # auto, always, never
  color_mode: auto
  # default, dark, light, neon
  theme: default
  no_emoji: false

logging:
  verbose: false
  # text or json
  format: text
  # log file; empty logs to stderr
  file: ""

scan:
  # keywords analyzed in parallel
  concurrency: 4
  # viral gems listed per keyword
  top_gems: 3
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"

backend:
  provider: http
  base_url: http://localhost:8000

filters:
  time_window: 7_days
  video_format: any

output:
  format: text
`
}
