// Package cache provides storage for rendered fold results.
//
// A fold is fully determined by its sequence, solver method and thread
// count, so a finished S.json document can be reused for an identical
// request. The package defines the [Cache] interface with three backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI, single host)
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLFold is the default lifetime of a cached fold result.
const TTLFold = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or
	// expired; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// FoldKey identifies the result of folding the sequence with the given
	// hash using method and threads.
	FoldKey(sequenceHash, method string, threads int) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FoldKey returns "fold:<sha256 of the components>".
func (DefaultKeyer) FoldKey(sequenceHash, method string, threads int) string {
	return hashKey("fold", sequenceHash, method, threads)
}
