package cache

import "time"

// RemovalReason says why an entry left the cache.
type RemovalReason int

const (
	ReasonEvicted  RemovalReason = iota // capacity pressure
	ReasonExpired                       // TTL elapsed (lazy or swept)
	ReasonDeleted                       // explicit Delete
	ReasonReplaced                      // overwritten by Set
)

func (r RemovalReason) String() string {
	switch r {
	case ReasonEvicted:
		return "evicted"
	case ReasonExpired:
		return "expired"
	case ReasonDeleted:
		return "deleted"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Observer receives cache events. Methods run synchronously on the
// goroutine that caused the event, mostly with the cache lock held, so they
// must be quick and must not call back into the cache.
type Observer interface {
	Removed(key string, reason RemovalReason)
	Rejected(key string, size int64)
	SweepFinished(removed int, elapsed time.Duration)
	Inconsistency(err error)
}

// NopObserver ignores every event. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) Removed(string, RemovalReason) {}
func (NopObserver) Rejected(string, int64) {}
func (NopObserver) SweepFinished(int, time.Duration) {}
func (NopObserver) Inconsistency(error) {}

// observers fans one event out to every registered observer.
type observers []Observer

func (obs observers) Removed(key string, reason RemovalReason) {
	for _, o := range obs {
		o.Removed(key, reason)
	}
}

func (obs observers) Rejected(key string, size int64) {
	for _, o := range obs {
		o.Rejected(key, size)
	}
}

func (obs observers) SweepFinished(removed int, elapsed time.Duration) {
	for _, o := range obs {
		o.SweepFinished(removed, elapsed)
	}
}

func (obs observers) Inconsistency(err error) {
	for _, o := range obs {
		o.Inconsistency(err)
	}
}
