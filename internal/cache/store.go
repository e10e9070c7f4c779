package cache

import (
	"iter"
	"time"
)

// store is the key index. It keeps no accounting of its own: every method
// that drops an entry hands it back so the caller can release its size.
type store struct {
	items map[string]*Entry
}

func newStore() *store {
	return &store{items: make(map[string]*Entry)}
}

// put inserts or replaces e and returns the entry it displaced, if any.
func (s *store) put(e *Entry) *Entry {
	prev := s.items[e.Key]
	s.items[e.Key] = e
	return prev
}

// getIfLive returns the entry for key when it has not expired at now.
// A stale entry is removed and returned as expired.
func (s *store) getIfLive(key string, now time.Time) (live, expired *Entry) {
	e, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	if e.Expired(now) {
		delete(s.items, key)
		return nil, e
	}
	return e, nil
}

// peek returns the entry without looking at its expiry.
func (s *store) peek(key string) *Entry {
	return s.items[key]
}

func (s *store) remove(key string) *Entry {
	e, ok := s.items[key]
	if !ok {
		return nil
	}
	delete(s.items, key)
	return e
}

// all ranges over every entry present at call time, expired ones included.
// Ranging again starts a fresh pass. The body may remove the entry it was
// given.
func (s *store) all() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range s.items {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *store) len() int {
	return len(s.items)
}

func (s *store) clear() {
	s.items = make(map[string]*Entry)
}
