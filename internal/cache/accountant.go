package cache

import (
	"errors"
	"fmt"
)

// ErrAccountingDrift reports that the running totals disagreed with the
// store. The cache repairs itself by recomputing; the error is only ever
// logged and passed to observers.
var ErrAccountingDrift = errors.New("cache accounting drift")

// accountant is the single source of truth for memory used and item count.
// Totals move incrementally with every store mutation.
type accountant struct {
	maxMemory int64
	maxItems  int

	memory int64
	items  int

	// drift holds the first underflow seen since the last recompute.
	drift error
}

func newAccountant(cfg Config) *accountant {
	return &accountant{maxMemory: cfg.MaxMemory, maxItems: cfg.MaxItems}
}

// fits reports whether adding the deltas keeps both totals within limits.
// Deltas may be negative when a replacement shrinks an entry.
func (a *accountant) fits(deltaBytes int64, deltaItems int) bool {
	return a.memory+deltaBytes <= a.maxMemory && a.items+deltaItems <= a.maxItems
}

// reserve commits the deltas when they fit.
func (a *accountant) reserve(deltaBytes int64, deltaItems int) bool {
	if !a.fits(deltaBytes, deltaItems) {
		return false
	}
	a.memory += deltaBytes
	a.items += deltaItems
	return true
}

// release takes an entry's share off the totals. Totals never go negative;
// an underflow is clamped and remembered as drift.
func (a *accountant) release(bytes int64, items int) {
	a.memory -= bytes
	a.items -= items
	if a.memory < 0 || a.items < 0 {
		if a.drift == nil {
			a.drift = fmt.Errorf("%w: release(%d bytes, %d items) left memory=%d items=%d",
				ErrAccountingDrift, bytes, items, a.memory, a.items)
		}
		a.memory = max(a.memory, 0)
		a.items = max(a.items, 0)
	}
}

// drifted returns the pending drift error, if any.
func (a *accountant) drifted() error {
	return a.drift
}

// verify compares the totals against a full pass over s.
func (a *accountant) verify(s *store) error {
	if a.drift != nil {
		return a.drift
	}
	memory, items := tally(s)
	if memory != a.memory || items != a.items {
		return fmt.Errorf("%w: tracked memory=%d items=%d, store holds memory=%d items=%d",
			ErrAccountingDrift, a.memory, a.items, memory, items)
	}
	return nil
}

// recompute rebuilds the totals from s and clears any drift.
func (a *accountant) recompute(s *store) {
	a.memory, a.items = tally(s)
	a.drift = nil
}

func (a *accountant) reset() {
	a.memory, a.items, a.drift = 0, 0, nil
}

func (a *accountant) snapshot() (memory int64, items int) {
	return a.memory, a.items
}

func tally(s *store) (memory int64, items int) {
	for e := range s.all() {
		memory += e.Size
		items++
	}
	return memory, items
}
