// Package manifest caches generation runs on disk so unchanged recipes
// can be skipped. Entries are keyed by a digest of the recipe source and
// the engine version, and stored as msgpack payloads.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version. Increment when the Payload format changes.
const schemaVersion uint16 = 1

// Digest identifies one generation run.
type Digest [sha256.Size]byte

// DigestOf computes the cache key for a recipe source and engine version.
func DigestOf(source []byte, version string) Digest {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(version))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Payload records one completed run.
type Payload struct {
	Schema uint16

	Recipe    string
	Name      string
	Artifacts []string

	// Echo of the recipe's option table, for inspection.
	Options map[string]any
}

// Cache stores payloads keyed by digest. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir, creating it as needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenDefault initializes a cache at the standard user cache location.
func OpenDefault(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "runs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, atomically replacing any previous
// entry for the key.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload, reporting whether a valid entry exists. Entries
// written under a different schema version read as missing.
func (c *Cache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// Fresh reports whether a cached run for key still has all of its
// artifacts on disk.
func (c *Cache) Fresh(key Digest) bool {
	var p Payload
	ok, err := c.Get(key, &p)
	if err != nil || !ok {
		return false
	}
	if len(p.Artifacts) == 0 {
		return false
	}
	for _, a := range p.Artifacts {
		if _, err := os.Stat(a); err != nil {
			return false
		}
	}
	return true
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "runs"))
}
