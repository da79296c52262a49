// Package cache stores computed kernel results between runs.
//
// # Backends
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between machines through Redis
//   - [NullCache] disables caching
//
// # Keys
//
// A [Keyer] derives keys from the content hash of the input collections and
// every option that changes the result, so a cache entry never needs
// invalidation: changing the input or the options produces a different key.
// Every key ends in "<type>:<hash>", where type is [KeyTypeMatrix] or
// [KeyTypeBigDAG]; a [ScopedKeyer] may prepend a namespace.
package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Key types of cached kernel results.
const (
	KeyTypeMatrix = "matrix"
	KeyTypeBigDAG = "bigdag"
)

// KeyTypes lists every key type in a stable order.
var KeyTypes = []string{KeyTypeMatrix, KeyTypeBigDAG}

// KeyType extracts the key type from a key built by a [Keyer], ignoring any
// namespace. It returns "" for keys of any other shape.
func KeyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return ""
	}
	head := key[:i]
	if j := strings.LastIndexByte(head, ':'); j >= 0 {
		head = head[j+1:]
	}
	if !slices.Contains(KeyTypes, head) {
		return ""
	}
	return head
}

// checkKeyType accepts "" (all types) or one of [KeyTypes].
func checkKeyType(keyType string) error {
	if keyType == "" || slices.Contains(KeyTypes, keyType) {
		return nil
	}
	return fmt.Errorf("unknown key type %q (must be one of: %s)", keyType, strings.Join(KeyTypes, ", "))
}

// DefaultTTL is how long results are kept when no TTL is configured.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry of a key type.
type Clearer interface {
	// Clear removes all entries of keyType, or of every type when keyType is
	// empty, and returns how many were removed.
	Clear(ctx context.Context, keyType string) (int, error)
}

// Keyer derives cache keys for kernel results.
type Keyer interface {
	// MatrixKey returns the key of a kernel matrix.
	// yHash is empty for self comparisons.
	MatrixKey(xHash, yHash string, opts MatrixKeyOpts) string

	// BigDAGKey returns the key of a rendered Big DAG.
	BigDAGKey(inputHash string, opts BigDAGKeyOpts) string
}

// MatrixKeyOpts are the options that change a kernel matrix.
type MatrixKeyOpts struct {
	Height   int    `json:"height"`
	Identity string `json:"identity"`
}

// BigDAGKeyOpts are the options that change a rendered Big DAG.
type BigDAGKeyOpts struct {
	Height   int    `json:"height"`
	Identity string `json:"identity"`
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
	MaxNodes int    `json:"max_nodes"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MatrixKey returns "matrix:" followed by a hash of the inputs and options.
func (DefaultKeyer) MatrixKey(xHash, yHash string, opts MatrixKeyOpts) string {
	return hashKey(KeyTypeMatrix, xHash, yHash, opts)
}

// BigDAGKey returns "bigdag:" followed by a hash of the input and options.
func (DefaultKeyer) BigDAGKey(inputHash string, opts BigDAGKeyOpts) string {
	return hashKey(KeyTypeBigDAG, inputHash, opts)
}
