package cache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/damiaoterto/mussurana-cache/internal/logger"
)

// Cache is a memory- and count-bounded key/value cache with per-entry TTL
// and priority-weighted eviction.
//
// One mutex guards the store and its accounting together, so no caller ever
// observes an entry without its bytes counted or the other way round. Get
// takes the same lock because it refreshes recency and may drop a stale
// entry.
//
// A background reaper removes expired entries every CheckPeriod. Call Close
// to stop it.
type Cache struct {
	mu    sync.Mutex
	store *store
	acct  *accountant
	stats counters

	cfg  Config
	name string
	log  *slog.Logger
	now  func() time.Time
	obs  observers

	// rejectLog throttles the capacity warning under a rejection storm.
	rejectLog *rate.Limiter

	state     atomic.Int32
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New builds a cache from DefaultConfig with opts applied on top, and
// starts its reaper.
func New(opts ...Option) (*Cache, error) {
	return NewWithConfig(DefaultConfig(), opts...)
}

// NewWithConfig builds a cache from cfg with opts applied on top. Every
// limit must be positive once the options are applied.
func NewWithConfig(cfg Config, opts ...Option) (*Cache, error) {
	o := options{cfg: cfg, name: "default", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = logger.WithComponent("cache")
	}

	c := &Cache{
		store:     newStore(),
		acct:      newAccountant(o.cfg),
		cfg:       o.cfg,
		name:      o.name,
		log:       o.logger.With("cache", o.name),
		now:       o.now,
		obs:       observers(o.observers),
		rejectLog: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
	c.startReaper()

	c.log.Debug("cache started",
		"max_memory", c.cfg.MaxMemory,
		"max_items", c.cfg.MaxItems,
		"check_period", c.cfg.CheckPeriod)
	return c, nil
}

// Close stops the reaper and waits for it to exit. No sweep starts after
// Close returns. The cache stays usable; expired entries are then only
// dropped lazily.
//
// Close is safe to call multiple times.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		c.state.Store(int32(ReaperStopped))
		c.cancel()
		c.wg.Wait()
		c.log.Debug("cache closed")
	})
	return nil
}

// Set stores value under key, replacing any previous entry. ttl <= 0 means
// the entry never expires; higher priority entries are evicted later.
//
// Set evicts as needed to fit the entry and reports false, changing
// nothing, when the entry could not fit even in an otherwise empty cache.
func (c *Cache) Set(key string, value []byte, ttl time.Duration, priority int) bool {
	size := EntrySize(key, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.feasible(size) {
		c.rejectLocked(key, size)
		return false
	}

	now := c.now()
	prev := c.store.peek(key)
	if prev != nil && prev.Expired(now) {
		c.removeLocked(prev, ReasonExpired)
		prev = nil
	}

	deltaBytes, deltaItems := size, 1
	if prev != nil {
		deltaBytes -= prev.Size
		deltaItems = 0
	}

	c.makeRoomLocked(key, deltaBytes, deltaItems, now)
	if !c.acct.reserve(deltaBytes, deltaItems) {
		// Only reachable when the totals overstate the store.
		c.repairLocked(c.acct.verify(c.store))
		if !c.acct.reserve(deltaBytes, deltaItems) {
			c.rejectLocked(key, size)
			return false
		}
	}

	if old := c.store.put(newEntry(key, value, ttl, priority, now)); old != nil {
		c.obs.Removed(old.Key, ReasonReplaced)
	}
	return true
}

// Get returns a copy of the value stored under key. Absent and expired
// keys miss; an expired entry is removed on the spot.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, stale := c.store.getIfLive(key, now)
	if stale != nil {
		c.releaseLocked(stale, ReasonExpired)
	}
	if e == nil {
		c.stats.misses++
		return nil, false
	}

	e.LastAccessedAt = now
	c.stats.hits++
	return cloneBytes(e.Value), true
}

// Has reports whether key holds a live entry without touching its recency.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, stale := c.store.getIfLive(key, c.now())
	if stale != nil {
		c.releaseLocked(stale, ReasonExpired)
	}
	return e != nil
}

// Delete removes key and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.store.remove(key)
	if e == nil {
		return false
	}
	c.releaseLocked(e, ReasonDeleted)
	return true
}

// Clear drops every entry. Observers see one ReasonDeleted removal per key,
// the same as a Delete of each; hit and miss counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := range c.store.all() {
		c.obs.Removed(e.Key, ReasonDeleted)
	}
	c.store.clear()
	c.acct.reset()
}

// Len returns the number of stored entries, including expired entries the
// reaper has not reached yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Keys returns the live keys in lexicographic order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]string, 0, c.store.len())
	for e := range c.store.all() {
		if !e.Expired(now) {
			out = append(out, e.Key)
		}
	}
	slices.Sort(out)
	return out
}

// Stats returns a snapshot of counters and usage.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	memory, items := c.acct.snapshot()
	return Stats{
		Hits:        c.stats.hits,
		Misses:      c.stats.misses,
		Evictions:   c.stats.evictions,
		Expirations: c.stats.expirations,
		Rejections:  c.stats.rejections,
		Repairs:     c.stats.repairs,
		Items:       items,
		MemoryUsed:  memory,
		MaxMemory:   c.cfg.MaxMemory,
		MaxItems:    c.cfg.MaxItems,
	}
}

// Config returns the limits the cache was built with.
func (c *Cache) Config() Config {
	return c.cfg
}

// Name returns the label given with WithName.
func (c *Cache) Name() string {
	return c.name
}

// removeLocked drops e from the store and releases its share.
func (c *Cache) removeLocked(e *Entry, reason RemovalReason) {
	c.store.remove(e.Key)
	c.releaseLocked(e, reason)
}

// releaseLocked accounts for an entry that has already left the store.
func (c *Cache) releaseLocked(e *Entry, reason RemovalReason) {
	c.acct.release(e.Size, 1)
	c.stats.removed(reason)
	c.obs.Removed(e.Key, reason)
}

func (c *Cache) rejectLocked(key string, size int64) {
	c.stats.rejections++
	c.obs.Rejected(key, size)
	if c.rejectLog.Allow() {
		c.log.Warn("entry rejected: capacity exceeded",
			"size", size,
			"max_memory", c.cfg.MaxMemory,
			"rejections", c.stats.rejections)
	} else {
		c.log.Debug("entry rejected: capacity exceeded", "size", size)
	}
}

// healLocked recomputes the totals when an underflow was recorded.
func (c *Cache) healLocked() {
	c.repairLocked(c.acct.drifted())
}

func (c *Cache) repairLocked(err error) {
	if err == nil {
		return
	}
	c.acct.recompute(c.store)
	c.stats.repairs++
	memory, items := c.acct.snapshot()
	c.log.Warn("cache accounting repaired", "error", err, "memory", memory, "items", items)
	c.obs.Inconsistency(err)
}
