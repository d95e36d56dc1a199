package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps parse results on disk, one file per workflow. It backs
// the CLI, where repeated runs against the same .yxmd are common and no
// shared infrastructure is available.
//
// Entries are sharded into subdirectories by the first hash byte so a
// directory never accumulates thousands of files. Multiple flowlens
// processes can share one directory; writes replace whole files.
type FileCache struct {
	dir string
}

// NewFileCache opens (creating if needed) a file cache rooted at dir.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk entry format: the parsed record plus its
// expiry. A zero expiry means the entry never goes stale.
type envelope struct {
	Record    []byte    `json:"record"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e envelope) expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Get returns the cached record for key. Entries that are expired or
// unreadable are evicted and reported as a miss, never as an error: a
// damaged cache file must not fail a parse that can simply rerun.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.expired() {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return env.Record, true, nil
}

// Set stores a record under key. A ttl of zero keeps the entry until it
// is explicitly cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Record: data}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl)
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Delete removes the entry for key; a missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// entryPath maps a cache key to its file. Keys are hashed so workflow
// keys (which embed full content hashes) become fixed-length, filesystem
// safe names, and the first two hex chars pick the shard directory.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
