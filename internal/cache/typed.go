package cache

import (
	"time"

	"github.com/damiaoterto/mussurana-cache/internal/codec"
)

// Typed stores values of type V in a Cache through a codec. The accounted
// size of an entry is its encoded length.
type Typed[V any] struct {
	cache *Cache
	codec codec.Codec
}

// NewTyped wraps c. A nil codec means codec.JSON.
func NewTyped[V any](c *Cache, cd codec.Codec) *Typed[V] {
	if cd == nil {
		cd = codec.JSON{}
	}
	return &Typed[V]{cache: c, codec: cd}
}

// Set encodes v and stores it. The bool has the same meaning as Cache.Set;
// the error only reports encoding failures.
func (t *Typed[V]) Set(key string, v V, ttl time.Duration, priority int) (bool, error) {
	data, err := t.codec.Marshal(v)
	if err != nil {
		return false, err
	}
	return t.cache.Set(key, data, ttl, priority), nil
}

// Get decodes the value stored under key. A miss returns the zero value,
// false and a nil error.
func (t *Typed[V]) Get(key string) (V, bool, error) {
	var v V
	data, ok := t.cache.Get(key)
	if !ok {
		return v, false, nil
	}
	if err := t.codec.Unmarshal(data, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Delete removes key.
func (t *Typed[V]) Delete(key string) bool {
	return t.cache.Delete(key)
}

// Cache returns the underlying cache.
func (t *Typed[V]) Cache() *Cache {
	return t.cache
}
