// Package txcache persists raw transaction documents (and their execution
// metadata) keyed by transaction hash, so previously fetched history can be
// hydrated offline. Records are envelope-encoded and, above a size
// threshold, lz4-compressed; storage backends plug in behind a small KV
// interface.
package txcache

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("txcache is closed")

	// ErrNotFound is returned when a hash has no cached record.
	ErrNotFound = errors.New("transaction not cached")
)

// KV is the minimal key-value surface a cache backend must provide.
type KV interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Put(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Iterate calls fn for every key/value pair until fn returns false or
	// the keyspace is exhausted.
	Iterate(ctx context.Context, fn func(key, value []byte) bool) error

	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendMemory  Backend = "memory"
	BackendPebble  Backend = "pebble"
	BackendLevelDB Backend = "leveldb"
)

// OpenKV opens the named backend at path. The memory backend ignores path.
func OpenKV(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendPebble:
		return OpenPebbleKV(path)
	case BackendLevelDB:
		return OpenLevelDBKV(path)
	default:
		return nil, errors.New("unknown txcache backend: " + string(backend))
	}
}
