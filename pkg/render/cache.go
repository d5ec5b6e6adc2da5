package render

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/coocood/freecache"
)

// Cache holds rendered planes keyed by settings and plane. It is safe for
// concurrent use.
type Cache struct {
	c      *freecache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache allocates a cache of roughly numBytes; freecache enforces a 512KB
// floor. Entries larger than numBytes/1024 after encoding are never stored.
func NewCache(numBytes int) *Cache {
	slog.Debug("created rendered plane cache", slog.Int("bytes", numBytes))
	return &Cache{c: freecache.NewCache(numBytes)}
}

// Get returns a cached plane of size bytes
func (c *Cache) Get(key []byte, size int) ([]byte, bool) {
	packed, err := c.c.Get(key)
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			slog.Warn("plane cache get failed", slog.Any("error", err))
		}
		c.misses.Add(1)
		return nil, false
	}
	pix, err := unpackBits(packed, size)
	if err != nil {
		slog.Warn("dropping corrupt cached plane", slog.Any("error", err))
		c.c.Del(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return pix, true
}

// Set stores a plane PackBits encoded. Planes too large for the cache are
// skipped.
func (c *Cache) Set(key, pix []byte) {
	packed := packBits(pix)
	if err := c.c.Set(key, packed, 0); err != nil {
		slog.Debug("plane not cached", slog.Int("bytes", len(packed)), slog.Any("error", err))
	}
}

// Stats returns lookups served from and missed by the cache
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear drops every entry, e.g. after the source pixels changed
func (c *Cache) Clear() {
	c.c.Clear()
}
