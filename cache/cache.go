// Package cache provides the in-memory, TTL-evicting implementation of
// docdive.ContentCache. Entries are keyed by source URL and removed
// lazily on read, or proactively by RemoveExpired; there is no size
// bound by design, since content is session-scoped and TTL-limited.
package cache

import (
	"sync"
	"time"

	"github.com/mwalczyk/docdive"
)

// DefaultTTL is the content cache time-to-live used when no option
// overrides it.
const DefaultTTL = time.Hour

// Ensure Cache implements docdive.ContentCache at compile time.
var _ docdive.ContentCache = (*Cache)(nil)

type entry struct {
	content    *docdive.DocumentContent
	insertedAt time.Time
}

// Cache is a mutex-guarded TTL store of converted documents. All
// methods are safe for concurrent use; mutations are serialized.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry time-to-live. Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithNow replaces the clock. Used by tests to step time across the
// TTL boundary without sleeping.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached document for key, or nil on a miss. An entry
// whose age exceeds the TTL is evicted on read and reported as a miss.
func (c *Cache) Get(key string) *docdive.DocumentContent {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.expired(e) {
		delete(c.entries, key)
		return nil
	}
	return e.content
}

// Set stores a document under key, replacing any previous entry and
// restarting its TTL.
func (c *Cache) Set(key string, content *docdive.DocumentContent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{content: content, insertedAt: c.now()}
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// RemoveExpired sweeps out every expired entry without requiring reads.
func (c *Cache) RemoveExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) expired(e entry) bool {
	return c.now().Sub(e.insertedAt) > c.ttl
}
