// Package cache implements the bounded key/value engine: a map-backed store,
// a byte and item accountant, priority-then-LRU eviction and a background
// reaper for expired entries.
//
// All state sits behind one mutex per Cache. Eviction runs only inside Set,
// and only for as much room as the incoming entry needs; expired entries are
// reclaimed before any live entry is evicted.
package cache
