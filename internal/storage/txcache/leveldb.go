package txcache

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBKV stores cache records in a goleveldb database. A lighter-weight
// alternative to pebble for small caches.
type LevelDBKV struct {
	db     *leveldb.DB
	closed atomic.Bool
}

func OpenLevelDBKV(path string) (*LevelDBKV, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBKV{db: db}, nil
}

func (l *LevelDBKV) Get(ctx context.Context, key []byte) ([]byte, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	value, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (l *LevelDBKV) Put(ctx context.Context, key []byte, value []byte) error {
	if l.closed.Load() {
		return ErrClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *LevelDBKV) Delete(ctx context.Context, key []byte) error {
	if l.closed.Load() {
		return ErrClosed
	}
	return l.db.Delete(key, nil)
}

func (l *LevelDBKV) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	if l.closed.Load() {
		return ErrClosed
	}
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}
	return iter.Error()
}

func (l *LevelDBKV) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.db.Close()
}
