package cache

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/damiaoterto/mussurana-cache/internal/tracing"
)

// ReaperState is the lifecycle state of the background sweep.
type ReaperState int32

const (
	ReaperIdle ReaperState = iota
	ReaperSweeping
	ReaperStopped
)

func (s ReaperState) String() string {
	switch s {
	case ReaperIdle:
		return "idle"
	case ReaperSweeping:
		return "sweeping"
	case ReaperStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// sweepCheckEvery is how many entries a sweep visits between checks of
// its context.
const sweepCheckEvery = 256

func (c *Cache) startReaper() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go c.reapLoop(ctx)
}

// reapLoop sweeps on every tick until the cache is closed. A ticker drops
// ticks while the receiver is busy, so a slow sweep never queues another.
func (c *Cache) reapLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.CheckPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

// Sweep removes every entry whose TTL has elapsed and returns how many it
// removed. It returns 0 without scanning when another sweep is running or
// the cache is closed.
func (c *Cache) Sweep(ctx context.Context) int {
	return c.sweep(ctx)
}

func (c *Cache) sweep(ctx context.Context) int {
	if !c.state.CompareAndSwap(int32(ReaperIdle), int32(ReaperSweeping)) {
		c.log.Debug("sweep skipped", "state", c.State().String())
		return 0
	}
	// Close may have moved us to Stopped meanwhile; leave that alone.
	defer c.state.CompareAndSwap(int32(ReaperSweeping), int32(ReaperIdle))

	ctx, span := tracing.StartSpan(ctx, "cache.sweep",
		trace.WithAttributes(attribute.String("cache.name", c.name)))
	defer span.End()

	start := time.Now()

	c.mu.Lock()
	removed := c.expireLocked(ctx, c.now())
	c.healLocked()
	items := c.store.len()
	c.mu.Unlock()

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("cache.sweep.removed", removed),
		attribute.Int("cache.items", items),
	)
	c.obs.SweepFinished(removed, elapsed)
	if removed > 0 {
		c.log.Debug("sweep finished", "removed", removed, "items", items, "elapsed", elapsed)
	}
	return removed
}

// expireLocked removes expired entries. It stops early, with accounting
// intact, once ctx is done.
func (c *Cache) expireLocked(ctx context.Context, now time.Time) int {
	removed, visited := 0, 0
	for e := range c.store.all() {
		visited++
		if visited%sweepCheckEvery == 0 && ctx.Err() != nil {
			c.log.Debug("sweep cut short", "visited", visited, "removed", removed)
			break
		}
		if e.Expired(now) {
			c.removeLocked(e, ReasonExpired)
			removed++
		}
	}
	return removed
}

// State reports where the reaper is in its lifecycle.
func (c *Cache) State() ReaperState {
	return ReaperState(c.state.Load())
}
