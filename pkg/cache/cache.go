// Package cache stores rendered diagrams so repeated renders of an
// unchanged grid skip graphviz.
//
// Keys come from [DiagramKey], which hashes the DOT source together with
// the output format. The CLI uses a [FileCache] under the user cache
// directory; tests and --no-cache use [NullCache].
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired and
	// corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// DiagramKey returns the cache key of a diagram rendered from dot in format.
func DiagramKey(format, dot string) string {
	return "diagram:" + format + ":" + Hash([]byte(dot))
}

// Hash computes a SHA-256 hash of data as 64 hex characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
