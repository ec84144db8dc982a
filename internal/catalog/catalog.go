// Package catalog exposes domain-typed, cache-backed access to the remote
// model catalog. Every fetch builds a deterministic cache key from its
// full parameter set, serves fresh cached payloads without touching the
// network, and persists raw responses asynchronously on miss.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/log"
)

// Catalog composes the remote client with the persistent response cache.
type Catalog struct {
	client *civitai.Client
	store  *db.DB
	ttl    time.Duration
	writes sync.WaitGroup
}

// New creates a catalog over the given client and local store.
func New(client *civitai.Client, store *db.DB) *Catalog {
	return &Catalog{
		client: client,
		store:  store,
		ttl:    db.DefaultCacheTTL,
	}
}

// WithTTL overrides the cache TTL (used in tests).
func (c *Catalog) WithTTL(ttl time.Duration) *Catalog {
	c.ttl = ttl
	return c
}

// ClearExpiredCache sweeps cache rows older than the TTL.
func (c *Catalog) ClearExpiredCache() (int64, error) {
	return c.store.ClearExpired(c.ttl)
}

// Close waits for in-flight cache writes to land. Must be called before
// the store is closed or pending responses are lost.
func (c *Catalog) Close() {
	c.writes.Wait()
}

// fetchCached is the cache-then-remote pipeline shared by every fetch.
// A cache read failure falls through to the remote; a cache write failure
// is logged and never fails the call. The write happens off the caller's
// path so returning the mapped result is never blocked on storage.
func fetchCached[D any](ctx context.Context, c *Catalog, key string, fetch func(context.Context) (*D, []byte, error)) (*D, error) {
	cached, hit, err := c.store.GetCached(key, c.ttl)
	if err != nil {
		log.Errorf("cache read %s: %v", key, err)
	} else if hit {
		var dto D
		if err := json.Unmarshal([]byte(cached), &dto); err == nil {
			return &dto, nil
		}
		// Corrupt cached payload: fall through to the remote.
		log.Errorf("cache decode %s: stale payload ignored", key)
	}

	dto, raw, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}

	c.writes.Add(1)
	go func(payload string) {
		defer c.writes.Done()
		if err := c.store.PutCache(key, payload); err != nil {
			log.Errorf("cache write %s: %v", key, err)
		}
	}(string(raw))

	return dto, nil
}
