package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultMaxMemory is the memory ceiling used when none is configured (50 MiB).
	DefaultMaxMemory int64 = 50 * 1024 * 1024
	// DefaultMaxItems is the item ceiling used when none is configured.
	DefaultMaxItems = 10000
	// DefaultCheckPeriod is the reaper interval used when none is configured.
	DefaultCheckPeriod = time.Second
)

// ErrInvalidConfig is returned by New when a limit is not positive.
var ErrInvalidConfig = errors.New("invalid cache config")

// Config holds the capacity limits of a cache. It is immutable once the
// cache has been constructed.
type Config struct {
	MaxMemory   int64         // ceiling for the sum of entry sizes, in bytes
	MaxItems    int           // ceiling for the number of entries
	CheckPeriod time.Duration // interval between reaper sweeps
}

// DefaultConfig returns the limits used for any option left unset.
func DefaultConfig() Config {
	return Config{
		MaxMemory:   DefaultMaxMemory,
		MaxItems:    DefaultMaxItems,
		CheckPeriod: DefaultCheckPeriod,
	}
}

// Validate reports the first non-positive limit, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.MaxMemory <= 0 {
		return fmt.Errorf("%w: maxMemory must be positive, got %d", ErrInvalidConfig, c.MaxMemory)
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("%w: maxItems must be positive, got %d", ErrInvalidConfig, c.MaxItems)
	}
	if c.CheckPeriod <= 0 {
		return fmt.Errorf("%w: checkPeriod must be positive, got %s", ErrInvalidConfig, c.CheckPeriod)
	}
	return nil
}

// Option customizes a cache at construction.
type Option func(*options)

type options struct {
	cfg       Config
	name      string
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time
}

// WithMaxMemory sets the memory ceiling in bytes.
func WithMaxMemory(bytes int64) Option {
	return func(o *options) { o.cfg.MaxMemory = bytes }
}

// WithMaxItems sets the item ceiling.
func WithMaxItems(n int) Option {
	return func(o *options) { o.cfg.MaxItems = n }
}

// WithCheckPeriod sets the reaper interval.
func WithCheckPeriod(d time.Duration) Option {
	return func(o *options) { o.cfg.CheckPeriod = d }
}

// WithName labels the cache in logs, traces and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger replaces the default component logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer. It may be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithClock replaces time.Now. Tests use it to drive expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
