package config

import (
	"os"
	"strings"
	"time"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
	"github.com/damiaoterto/mussurana-cache/internal/utils"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	// Cache limits
	CacheName        string
	CacheMaxMemory   int64         // bytes
	CacheMaxItems    int           // entries
	CacheCheckPeriod time.Duration // reaper interval
	// Operational listener (health, stats, metrics); empty disables it
	AdminAddr string
	// Demo workload length for cmd/mussurana; 0 runs until signalled
	DemoDuration time.Duration
	// Observability settings
	LogLevel          string  // log level: debug, info, warn, error
	OTELEnabled       bool    // enable OpenTelemetry tracing
	OTELEndpoint      string  // OpenTelemetry collector endpoint
	OTELSampleRate    float64 // trace sampling rate (0.0 to 1.0)
	SentryDSN         string  // Sentry DSN for error reporting
	SentryEnvironment string  // Sentry environment (dev, staging, production)
	SentryRelease     string  // Sentry release version
	SentrySampleRate  float64 // Sentry error sampling rate (0.0 to 1.0)
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	def := cache.DefaultConfig()
	cached = &Config{
		CacheName:        utils.GetEnvAsString("CACHE_NAME", "default"),
		CacheMaxMemory:   utils.GetEnvAsInt64("CACHE_MAX_MEMORY_BYTES", def.MaxMemory),
		CacheMaxItems:    utils.GetEnvAsInt("CACHE_MAX_ITEMS", def.MaxItems),
		CacheCheckPeriod: utils.GetEnvAsMillis("CACHE_CHECK_PERIOD_MS", def.CheckPeriod),
		AdminAddr:        utils.GetEnvAsString("ADMIN_ADDR", ""),
		DemoDuration:     utils.GetEnvAsMillis("DEMO_DURATION_MS", 0),
		// Observability settings
		LogLevel:          strings.ToLower(utils.GetEnvAsString("LOG_LEVEL", "info")),
		OTELEnabled:       utils.GetEnvAsBool("OTEL_ENABLED", false),
		OTELEndpoint:      utils.GetEnvAsString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELSampleRate:    utils.GetEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),
		SentryDSN:         utils.GetEnvAsString("SENTRY_DSN", ""),
		SentryEnvironment: utils.GetEnvAsString("SENTRY_ENVIRONMENT", ""),
		SentryRelease:     utils.GetEnvAsString("SENTRY_RELEASE", ""),
		SentrySampleRate:  utils.GetEnvAsFloat("SENTRY_SAMPLE_RATE", 1.0),
	}
	if cached.SentryEnvironment == "" {
		if env := os.Getenv("ENV"); env != "" {
			cached.SentryEnvironment = env
		} else {
			cached.SentryEnvironment = "development"
		}
	}
	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }

// CacheConfig returns the engine limits. It does not validate them; the
// cache constructor rejects non-positive values.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		MaxMemory:   c.CacheMaxMemory,
		MaxItems:    c.CacheMaxItems,
		CheckPeriod: c.CacheCheckPeriod,
	}
}
