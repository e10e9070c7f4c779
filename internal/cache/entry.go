package cache

import (
	"math"
	"time"
)

// EntryOverhead approximates the bookkeeping cost of one entry (timestamps,
// priority, map slot). It is charged on top of the key and value bytes.
const EntryOverhead int64 = 48

const (
	// NoExpiration marks an entry that the reaper never removes.
	NoExpiration time.Duration = 0
	// DefaultPriority is the priority of an entry set without one.
	DefaultPriority = 0
)

// Entry is a cached item plus the metadata the policy works with.
// Entries are owned by the store; callers only ever see copies of Value.
type Entry struct {
	Key            string
	Value          []byte
	Size           int64
	Priority       int
	CreatedAt      time.Time
	ExpiresAt      time.Time // zero => no TTL
	LastAccessedAt time.Time
}

// EntrySize is the accounted size of key and value.
func EntrySize(key string, value []byte) int64 {
	return int64(len(key)) + int64(len(value)) + EntryOverhead
}

// maxTTLSeconds is the largest whole-seconds TTL a time.Duration can hold.
const maxTTLSeconds = math.MaxInt64 / int64(time.Second)

// TTLSeconds converts a whole-seconds TTL, as host bindings pass it, into a
// duration. Non-positive input means no expiry. Input beyond what a
// time.Duration can hold saturates at the largest duration (about 292
// years).
func TTLSeconds(n int64) time.Duration {
	if n <= 0 {
		return NoExpiration
	}
	if n > maxTTLSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n) * time.Second
}

func newEntry(key string, value []byte, ttl time.Duration, priority int, now time.Time) *Entry {
	e := &Entry{
		Key:            key,
		Value:          cloneBytes(value),
		Size:           EntrySize(key, value),
		Priority:       priority,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// HasExpiry reports whether the entry was set with a TTL.
func (e *Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// Expired reports whether the entry's TTL has elapsed at now.
func (e *Entry) Expired(now time.Time) bool {
	return e.HasExpiry() && !e.ExpiresAt.After(now)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
