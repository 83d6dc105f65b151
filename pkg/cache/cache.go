// Package cache stores rendered timeline artifacts and imported records.
//
// Three backends implement [Cache]:
//   - [FileCache] keeps entries on disk for CLI runs
//   - [RedisCache] shares entries between server instances
//   - [NullCache] disables caching
//
// Keys are derived from content hashes by a [Keyer], so identical inputs
// (same events, same configuration, same output options) map to the same
// entry regardless of where they came from.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	// TTLRecords bounds how long parsed event files are kept.
	TTLRecords = 24 * time.Hour

	// TTLArtifact bounds how long rendered outputs are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss with (nil, false, nil). Errors are reserved for
// backend failures; callers usually treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
