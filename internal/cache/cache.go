// Package cache implements a persistent hash-cons cache: a
// content-addressed store keyed on a blake2b digest of the canonicalized
// formula text plus engine name, so a repeated BDD build or LTL
// translation can short-circuit entirely. Grounded on
// core/planfmt.Digest/Read, which hash a serialized artifact with the
// same library for the same purpose (content-addressed plan caching)
// rather than for any security property.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Cache is a directory of content-addressed JSON blobs. A zero-value
// Cache (empty Dir) is a permanent cache miss, so callers need not guard
// every call on whether --cache-dir was set.
type Cache struct {
	Dir string
}

// New returns a Cache rooted at dir. An empty dir disables persistence.
func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Key computes the cache key for one engine's construction over input:
// the hex blake2b-256 digest of "<engine>\x00<input>".
func Key(engine, input string) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("cache: blake2b.New256 failed: %v", err))
	}
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) enabled() bool { return c != nil && c.Dir != "" }

func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Load reads and JSON-decodes the cached value for key into out. The
// bool return reports whether a cache entry existed.
func (c *Cache) Load(key string, out any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("cache: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// Store JSON-encodes value under key. A no-op when the cache is disabled.
func (c *Cache) Store(key string, value any) error {
	if !c.enabled() {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("cache: create cache dir: %w", err)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	return nil
}
