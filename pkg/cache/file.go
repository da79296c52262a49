package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// otherDir holds entries whose key has no known key type.
const otherDir = "other"

// FileCache stores kernel results as JSON files, one directory per key type:
//
//	<dir>/matrix/<2 hex>/<62 hex>.json
//	<dir>/bigdag/<2 hex>/<62 hex>.json
//
// File names are the SHA-256 of the full key, namespace included.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e *fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get returns the entry for key. Corrupt, expired or colliding entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.Key != key || e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes the entry for key. The file is replaced atomically so a
// concurrent Get never sees a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry of keyType, or every entry when keyType is empty.
func (c *FileCache) Clear(ctx context.Context, keyType string) (int, error) {
	if err := checkKeyType(keyType); err != nil {
		return 0, err
	}
	dirs := []string{keyType}
	if keyType == "" {
		dirs = append(append([]string{}, KeyTypes...), otherDir)
	}

	n := 0
	for _, d := range dirs {
		err := c.walk(d, func(path string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			n++
			return nil
		})
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Count returns the number of stored entries per key type, expired entries
// included. Entries without a known type are counted under "other".
func (c *FileCache) Count() (map[string]int, error) {
	counts := make(map[string]int, len(KeyTypes)+1)
	for _, d := range append(append([]string{}, KeyTypes...), otherDir) {
		err := c.walk(d, func(string) error {
			counts[d]++
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return counts, nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// walk calls fn for every entry file under the key type directory d.
func (c *FileCache) walk(d string, fn func(path string) error) error {
	root := filepath.Join(c.dir, d)
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if de.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		return fn(path)
	})
}

// path maps a key to <dir>/<key type>/<hash[:2]>/<hash[2:]>.json.
func (c *FileCache) path(key string) string {
	kind := KeyType(key)
	if kind == "" {
		kind = otherDir
	}
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, kind, hash[:2], hash[2:]+".json")
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
