package errorreporting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

// Init initializes Sentry error reporting. An empty DSN leaves reporting
// disabled and is not an error.
func Init(opts Options) error {
	if opts.DSN == "" {
		return nil
	}
	if err := ValidateDSN(opts.DSN); err != nil {
		return err
	}

	release := opts.Release
	if release == "" {
		release = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          release,
		SampleRate:       opts.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

// Flush waits for all events to be sent to Sentry
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// ValidateDSN checks if the provided DSN is valid
func ValidateDSN(dsn string) error {
	if !strings.HasPrefix(dsn, "https://") && !strings.HasPrefix(dsn, "http://") {
		return errors.New("invalid Sentry DSN format")
	}
	return nil
}

// Reporter forwards cache accounting repairs to Sentry. Capacity
// rejections are kept as breadcrumbs so a later report carries them.
// Cache keys are never attached to events.
type Reporter struct {
	cache.NopObserver

	hub       *sentry.Hub
	cacheName string
}

var _ cache.Observer = (*Reporter)(nil)

// NewReporter reports through hub, or through the global hub when hub is nil.
func NewReporter(hub *sentry.Hub, cacheName string) *Reporter {
	return &Reporter{hub: hub, cacheName: cacheName}
}

func (r *Reporter) currentHub() *sentry.Hub {
	if r.hub != nil {
		return r.hub
	}
	return sentry.CurrentHub()
}

func (r *Reporter) Rejected(_ string, size int64) {
	r.currentHub().AddBreadcrumb(&sentry.Breadcrumb{
		Category:  "cache",
		Message:   fmt.Sprintf("entry of %d bytes rejected", size),
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	}, nil)
}

func (r *Reporter) Inconsistency(err error) {
	if err == nil {
		return
	}
	hub := r.currentHub()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("cache", r.cacheName)
		scope.SetLevel(sentry.LevelWarning)
		hub.CaptureException(err)
	})
}
