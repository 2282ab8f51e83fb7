// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis server, expiry handled by Redis
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing (--no-cache)
//
// [Open] picks a backend from [Options].
//
// # Keys
//
// Keys are derived by a [Keyer] from content hashes, so an unchanged model
// with unchanged settings always maps to the same entry:
//
//	keyer := cache.NewDefaultKeyer()
//	lk := keyer.LayoutKey(cache.Hash(modelYAML), cache.LayoutKeyOpts{Engine: "dot"})
//	ak := keyer.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes every key, which lets several tenants share one
// Redis or Mongo backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry type.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// A ttl of zero means the entry never expires.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
