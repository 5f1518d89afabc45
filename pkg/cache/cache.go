// Package cache provides the byte caches used by the render pipeline.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: bounded in-process cache, used by the HTTP server
//   - [FileCache]: one JSON file per entry, used by the CLI across runs
//
// # Keys
//
// A [Keyer] derives cache keys from the content being rendered and the
// render options, so a changed record or option never hits a stale entry.
// [ScopedKeyer] prefixes every key, which separates entries written by
// different builds.
package cache

import (
	"context"
	"time"
)

// TTLRender is how long a rendered document stays cached.
const TTLRender = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value stored at key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data at key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear() (int, error)
}

// Keyer generates cache keys.
type Keyer interface {
	// RenderKey returns the key of a rendered document.
	RenderKey(contentHash string, opts RenderKeyOpts) string
}
