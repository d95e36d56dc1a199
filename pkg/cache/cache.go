// Package cache provides pluggable result caching for parsed workflows.
//
// The parse and serve paths cache rendered JSON keyed by a content hash
// of the workflow file, so re-inspecting an unchanged .yxmd is free.
// Three backends are available: a file cache for CLI usage, a Redis
// cache for server deployments, and a null cache that disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// WorkflowKey generates the cache key for a parsed workflow from the
// raw file contents. The key format is: workflow:hash(content).
func WorkflowKey(content []byte) string {
	return fmt.Sprintf("workflow:%s", Hash(content))
}
