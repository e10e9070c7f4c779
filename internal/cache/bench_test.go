package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/ristretto"
)

const benchKeys = 4096

func benchKeySet() []string {
	keys := make([]string, benchKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench-key-%d", i)
	}
	return keys
}

func BenchmarkCache_SetGet(b *testing.B) {
	c, err := New(WithMaxMemory(1<<20), WithMaxItems(benchKeys/2), WithCheckPeriod(time.Minute))
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()

	keys := benchKeySet()
	value := make([]byte, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%benchKeys]
		c.Set(k, value, time.Minute, i%4)
		c.Get(k)
	}
}

func BenchmarkCache_GetParallel(b *testing.B) {
	c, err := New(WithMaxMemory(4<<20), WithCheckPeriod(time.Minute))
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()

	keys := benchKeySet()
	value := make([]byte, 256)
	for _, k := range keys {
		c.Set(k, value, NoExpiration, 0)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(keys[i%benchKeys])
			i++
		}
	})
}

// BenchmarkRistretto_SetGet is the baseline: a sampled-LFU cache with the
// same byte budget and no strict item ceiling.
func BenchmarkRistretto_SetGet(b *testing.B) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: benchKeys * 10,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer rc.Close()

	keys := benchKeySet()
	value := make([]byte, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%benchKeys]
		rc.SetWithTTL(k, value, EntrySize(k, value), time.Minute)
		rc.Get(k)
	}
}

func BenchmarkRistretto_GetParallel(b *testing.B) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: benchKeys * 10,
		MaxCost:     4 << 20,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer rc.Close()

	keys := benchKeySet()
	value := make([]byte, 256)
	for _, k := range keys {
		rc.Set(k, value, EntrySize(k, value))
	}
	rc.Wait()
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			rc.Get(keys[i%benchKeys])
			i++
		}
	})
}
