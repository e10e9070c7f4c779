package cache

// Stats is a point-in-time snapshot of cache counters and usage.
type Stats struct {
	Hits        uint64 // Get calls that returned a value
	Misses      uint64 // Get calls on absent or expired keys
	Evictions   uint64 // live entries removed for capacity
	Expirations uint64 // entries removed because their TTL elapsed
	Rejections  uint64 // Set calls that could not be admitted
	Repairs     uint64 // accounting recomputations after drift

	Items      int   // current number of entries, expired-but-unreaped included
	MemoryUsed int64 // accounted bytes
	MaxMemory  int64
	MaxItems   int
}

// HitRatio is Hits / (Hits + Misses), or 0 before any Get.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type counters struct {
	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
	rejections  uint64
	repairs     uint64
}

func (c *counters) removed(reason RemovalReason) {
	switch reason {
	case ReasonEvicted:
		c.evictions++
	case ReasonExpired:
		c.expirations++
	}
}
