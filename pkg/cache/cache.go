// Package cache stores search results between runs.
//
// A [Cache] maps string keys to opaque byte slices with an optional TTL.
// Three backends are provided:
//
//   - [FileCache] stores JSON-wrapped entries under a directory, sharded by
//     the first two hex characters of the key hash. Used by the CLI.
//   - [RedisCache] stores entries in Redis, for sharing results between
//     machines running benchmarks.
//   - [NullCache] never stores anything. Used with --no-cache.
//
// Keys are produced by a [Keyer] from the instance content hash and the
// search parameters, so a changed file or a changed k never hits a stale
// entry.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for serialized results.
//
// Get returns hit == false for missing and expired keys; err is reserved for
// backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLSearch is how long search results are kept. Results never go stale for
// a given key, so the TTL only bounds disk and memory use.
const TTLSearch = 30 * 24 * time.Hour
