package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

// newTestCache builds a cache on a fake clock whose reaper never ticks on
// its own; tests drive sweeps with Sweep.
func newTestCache(t *testing.T, opts ...Option) (*Cache, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	base := []Option{WithCheckPeriod(time.Hour), WithClock(clock.Now)}
	c, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

// assertConsistent checks the accounting against a full pass over the store
// and the configured ceilings.
func assertConsistent(t *testing.T, c *Cache) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.acct.verify(c.store); err != nil {
		t.Fatalf("accounting inconsistent: %v", err)
	}
	memory, items := c.acct.snapshot()
	if memory > c.cfg.MaxMemory {
		t.Fatalf("memory %d exceeds ceiling %d", memory, c.cfg.MaxMemory)
	}
	if items > c.cfg.MaxItems {
		t.Fatalf("items %d exceed ceiling %d", items, c.cfg.MaxItems)
	}
}

type recorder struct {
	NopObserver

	mu       sync.Mutex
	removed  map[RemovalReason][]string
	rejected []string
	sweeps   int
	errs     []error
}

func newRecorder() *recorder {
	return &recorder{removed: make(map[RemovalReason][]string)}
}

func (r *recorder) Removed(key string, reason RemovalReason) {
	r.mu.Lock()
	r.removed[reason] = append(r.removed[reason], key)
	r.mu.Unlock()
}

func (r *recorder) Rejected(key string, _ int64) {
	r.mu.Lock()
	r.rejected = append(r.rejected, key)
	r.mu.Unlock()
}

func (r *recorder) SweepFinished(int, time.Duration) {
	r.mu.Lock()
	r.sweeps++
	r.mu.Unlock()
}

func (r *recorder) Inconsistency(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *recorder) keys(reason RemovalReason) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed[reason]...)
}
