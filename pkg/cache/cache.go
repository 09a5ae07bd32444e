// Package cache stores derived photo data between runs.
//
// Cutting thumbnails out of a multi-photo page needs a rasterization pass
// that is far slower than everything else the planner does. The crops are
// pure functions of (source content, DPI, grid, index), so they are cached
// under keys built by a [Keyer] and re-used on the next import or session
// load.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
