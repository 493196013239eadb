// Package cache provides content-addressed caching for layouts and rendered
// artifacts.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache] stores entries as JSON files under a directory (CLI default)
//   - [RedisCache] stores entries in Redis (server deployments)
//   - [NullCache] stores nothing (--no-cache)
//
// Keys are built by a [Keyer] from content hashes, so a changed quest file,
// completion set or geometry produces a new key and stale entries simply
// expire.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
//
// Get reports a miss with found == false and a nil error. A ttl of zero means
// the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long layouts and artifacts stay cached unless
// configured otherwise.
const DefaultTTL = 24 * time.Hour
