// Package cache implements the short-lived in-memory response cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is how long provider responses stay cached.
const DefaultTTL = time.Hour

// Entry is a cached value with its lifetime.
type Entry struct {
	Key       string
	Value     any
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (e Entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Cache maps keys to values that expire a fixed TTL after insertion.
// There is no size bound; expired entries are invisible to Get and dropped by PurgeExpired.
type Cache struct {
	mu    sync.RWMutex
	items map[string]Entry
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache whose entries live for ttl. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		items: make(map[string]Entry),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || entry.expired(c.now()) {
		return nil, false
	}
	return entry.Value, true
}

// Set stores value under key, replacing any previous entry and restarting its TTL.
func (c *Cache) Set(key string, value any) {
	now := c.now()
	c.mu.Lock()
	c.items[key] = Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included until purged.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// PurgeExpired drops expired entries and returns how many were removed.
func (c *Cache) PurgeExpired() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for key, entry := range c.items {
		if entry.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// Run purges expired entries every interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.PurgeExpired()
		}
	}
}

// Key derives a deterministic key from prefix and params. params is serialised as JSON,
// so struct field order is part of the key.
func Key(prefix string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%+v", prefix, params)
	}
	return prefix + ":" + string(data)
}
