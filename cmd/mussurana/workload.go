package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
	"github.com/damiaoterto/mussurana-cache/internal/codec"
	"github.com/damiaoterto/mussurana-cache/internal/logger"
)

// runScenario replays the reference two-entry scenario on a tiny cache:
// a short-lived low-priority entry expires while a longer-lived
// high-priority one survives.
func runScenario(ctx context.Context) error {
	log := logger.WithComponent("scenario")

	c, err := cache.New(
		cache.WithName("scenario"),
		cache.WithMaxMemory(200),
		cache.WithMaxItems(2),
		cache.WithCheckPeriod(time.Second),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	if !c.Set("key1", []byte("value1"), cache.TTLSeconds(1), 1) {
		return fmt.Errorf("set key1 rejected")
	}
	if !c.Set("key2", []byte("value2"), cache.TTLSeconds(3), 10) {
		return fmt.Errorf("set key2 rejected")
	}
	log.Info("scenario entries written", "keys", c.Keys())

	wait := time.NewTimer(2100 * time.Millisecond)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wait.C:
	}

	if _, ok := c.Get("key1"); ok {
		return fmt.Errorf("key1 should have expired")
	}
	v, ok := c.Get("key2")
	if !ok || string(v) != "value2" {
		return fmt.Errorf("key2 = %q, %v; want value2", v, ok)
	}
	log.Info("scenario passed", "keys", c.Keys(), "expirations", c.Stats().Expirations)
	return nil
}

type session struct {
	User    string   `json:"user"`
	Roles   []string `json:"roles"`
	Payload string   `json:"payload"`
}

// runWorkload drives a mixed read/write load against c until ctx is done,
// logging stats every few seconds.
func runWorkload(ctx context.Context, c *cache.Cache) {
	log := logger.WithComponent("workload")
	sessions := cache.NewTyped[session](c, codec.NewCompressed(codec.JSON{}))

	ops := time.NewTicker(2 * time.Millisecond)
	defer ops.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-report.C:
			s := c.Stats()
			log.Info("cache stats",
				"items", s.Items,
				"memory_used", s.MemoryUsed,
				"hit_ratio", s.HitRatio(),
				"evictions", s.Evictions,
				"expirations", s.Expirations)
		case <-ops.C:
			key := fmt.Sprintf("session:%d", rand.IntN(5000))
			switch n := rand.IntN(10); {
			case n < 6:
				if _, _, err := sessions.Get(key); err != nil {
					log.Warn("decode failed", "error", err)
				}
			case n < 9:
				s := session{
					User:    key,
					Roles:   []string{"reader"},
					Payload: strings.Repeat("x", rand.IntN(2048)),
				}
				ttl := cache.TTLSeconds(int64(rand.IntN(30)))
				if _, err := sessions.Set(key, s, ttl, rand.IntN(3)); err != nil {
					log.Warn("encode failed", "error", err)
				}
			default:
				sessions.Delete(key)
			}
		}
	}
}
