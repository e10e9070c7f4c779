package cache

import (
	"container/heap"
	"time"
)

// victimQueue implements heap.Interface over eviction candidates.
// The least valuable entry sits at the top: lowest priority first, then
// least recently used, then the lexicographically smallest key.
type victimQueue []*Entry

func (q victimQueue) Len() int { return len(q) }

func (q victimQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if !a.LastAccessedAt.Equal(b.LastAccessedAt) {
		return a.LastAccessedAt.Before(b.LastAccessedAt)
	}
	return a.Key < b.Key
}

func (q victimQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *victimQueue) Push(x any) {
	*q = append(*q, x.(*Entry))
}

func (q *victimQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// feasible is the pre-check run before any eviction: an entry of size can
// be admitted if the cache emptied of everything else would hold it.
func (c *Cache) feasible(size int64) bool {
	return size <= c.cfg.MaxMemory && c.cfg.MaxItems >= 1
}

// makeRoomLocked removes entries until the pending deltas fit. keep is the
// key being written; it is never chosen, since the write replaces it.
//
// Expired entries go first and count as expirations. Only then are live
// entries evicted in victimQueue order.
func (c *Cache) makeRoomLocked(keep string, deltaBytes int64, deltaItems int, now time.Time) {
	if c.acct.fits(deltaBytes, deltaItems) {
		return
	}

	for e := range c.store.all() {
		if e.Key != keep && e.Expired(now) {
			c.removeLocked(e, ReasonExpired)
		}
	}
	if c.acct.fits(deltaBytes, deltaItems) {
		return
	}

	q := make(victimQueue, 0, c.store.len())
	for e := range c.store.all() {
		if e.Key != keep {
			q = append(q, e)
		}
	}
	heap.Init(&q)

	evicted := 0
	for q.Len() > 0 && !c.acct.fits(deltaBytes, deltaItems) {
		victim := heap.Pop(&q).(*Entry)
		c.removeLocked(victim, ReasonEvicted)
		evicted++
	}
	if evicted > 0 {
		c.log.Debug("evicted entries", "count", evicted, "for_key", keep)
	}
}
