// Package mussurana is an embedded key/value cache with a memory ceiling,
// an item ceiling, per-entry TTL, and priority-weighted eviction.
//
// It is the surface host bindings program against:
//
//	c, err := mussurana.New(mussurana.WithMaxMemory(200), mussurana.WithMaxItems(2))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	c.Set("key1", []byte("value1"), mussurana.TTLSeconds(1), 1)
//	v, ok := c.Get("key1")
//
// Every cache is independent; there is no process-wide state beyond the
// optional logger, metrics, and tracing setup of the host.
package mussurana

import (
	"github.com/damiaoterto/mussurana-cache/internal/cache"
	"github.com/damiaoterto/mussurana-cache/internal/codec"
)

type (
	Cache         = cache.Cache
	Config        = cache.Config
	Option        = cache.Option
	Stats         = cache.Stats
	Entry         = cache.Entry
	Observer      = cache.Observer
	NopObserver   = cache.NopObserver
	RemovalReason = cache.RemovalReason
	ReaperState   = cache.ReaperState
	Codec         = codec.Codec
)

// Typed stores values of type V through a codec.
type Typed[V any] = cache.Typed[V]

const (
	NoExpiration    = cache.NoExpiration
	DefaultPriority = cache.DefaultPriority

	ReaperIdle     = cache.ReaperIdle
	ReaperSweeping = cache.ReaperSweeping
	ReaperStopped  = cache.ReaperStopped

	ReasonEvicted  = cache.ReasonEvicted
	ReasonExpired  = cache.ReasonExpired
	ReasonDeleted  = cache.ReasonDeleted
	ReasonReplaced = cache.ReasonReplaced

	DefaultMaxMemory   = cache.DefaultMaxMemory
	DefaultMaxItems    = cache.DefaultMaxItems
	DefaultCheckPeriod = cache.DefaultCheckPeriod
)

var (
	ErrInvalidConfig   = cache.ErrInvalidConfig
	ErrAccountingDrift = cache.ErrAccountingDrift
)

var (
	New           = cache.New
	NewWithConfig = cache.NewWithConfig
	DefaultConfig = cache.DefaultConfig
	TTLSeconds    = cache.TTLSeconds
	EntrySize     = cache.EntrySize

	WithMaxMemory   = cache.WithMaxMemory
	WithMaxItems    = cache.WithMaxItems
	WithCheckPeriod = cache.WithCheckPeriod
	WithName        = cache.WithName
	WithLogger      = cache.WithLogger
	WithObserver    = cache.WithObserver
	WithClock       = cache.WithClock
)

// NewTyped wraps c so it stores values of type V. A nil codec means JSON.
func NewTyped[V any](c *Cache, cd Codec) *Typed[V] {
	return cache.NewTyped[V](c, cd)
}

// JSONCodec encodes values as JSON.
func JSONCodec() Codec { return codec.JSON{} }

// CompressedCodec brotli-compresses the output of inner above a size
// threshold.
func CompressedCodec(inner Codec) Codec { return codec.NewCompressed(inner) }
