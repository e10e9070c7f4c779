package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/damiaoterto/mussurana-cache/internal/api"
	"github.com/damiaoterto/mussurana-cache/internal/cache"
	"github.com/damiaoterto/mussurana-cache/internal/config"
	"github.com/damiaoterto/mussurana-cache/internal/errorreporting"
	"github.com/damiaoterto/mussurana-cache/internal/logger"
	"github.com/damiaoterto/mussurana-cache/internal/metrics"
	"github.com/damiaoterto/mussurana-cache/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

// run wires the cache and its surroundings and blocks until the workload
// ends. Errors are returned rather than exiting so deferred flushes run.
func run() error {
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logger.Init(cfg.LogLevel)
	if envErr != nil {
		logger.Debug("No .env file found (falling back to system env)")
	}
	logger.Info("Starting mussurana cache",
		"cache", cfg.CacheName,
		"max_memory", cfg.CacheMaxMemory,
		"max_items", cfg.CacheMaxItems,
		"check_period", cfg.CacheCheckPeriod)

	// Initialize error reporting
	if err := errorreporting.Init(errorreporting.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		logger.Warn("Failed to initialize error reporting", "error", err)
	} else if cfg.SentryDSN != "" {
		logger.Info("Error reporting initialized", "environment", cfg.SentryEnvironment)
		defer errorreporting.Flush(2 * time.Second)
	}

	// Initialize tracing
	shutdownTracing, err := tracing.Init("mussurana-cache", tracing.Options{
		Enabled:    cfg.OTELEnabled,
		Endpoint:   cfg.OTELEndpoint,
		SampleRate: cfg.OTELSampleRate,
	})
	if err != nil {
		logger.Warn("Failed to initialize tracing", "error", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	c, err := cache.NewWithConfig(cfg.CacheConfig(),
		cache.WithName(cfg.CacheName),
		cache.WithLogger(logger.WithComponent("cache")),
		cache.WithObserver(metrics.NewObserver(cfg.CacheName)),
		cache.WithObserver(errorreporting.NewReporter(nil, cfg.CacheName)),
	)
	if err != nil {
		return fmt.Errorf("invalid cache configuration: %w", err)
	}
	defer c.Close()
	prometheus.MustRegister(metrics.NewCollector(cfg.CacheName, c))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AdminAddr != "" {
		srv := &http.Server{
			Addr:              cfg.AdminAddr,
			Handler:           api.NewRouter(prometheus.DefaultGatherer, c),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Admin listener running", "addr", cfg.AdminAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin listener failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Admin listener shutdown", "error", err)
			}
		}()
	}

	if err := runScenario(ctx); err != nil {
		logger.Error("Scenario failed", "error", err)
	}

	runCtx := ctx
	if cfg.DemoDuration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.DemoDuration)
		defer cancel()
	}
	runWorkload(runCtx, c)

	s := c.Stats()
	logger.WithCache(c.Name()).Info("Shutting down",
		"items", s.Items,
		"memory_used", s.MemoryUsed,
		"hits", s.Hits,
		"misses", s.Misses,
		"evictions", s.Evictions,
		"expirations", s.Expirations,
		"rejections", s.Rejections)
	return nil
}
