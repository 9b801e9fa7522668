package txcache

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
)

// PebbleKV stores cache records in a PebbleDB database.
type PebbleKV struct {
	db     *pebble.DB
	closed atomic.Bool
}

func OpenPebbleKV(path string) (*PebbleKV, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleKV{db: db}, nil
}

func (p *PebbleKV) Get(ctx context.Context, key []byte) ([]byte, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	value, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *PebbleKV) Put(ctx context.Context, key []byte, value []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *PebbleKV) Delete(ctx context.Context, key []byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *PebbleKV) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	if p.closed.Load() {
		return ErrClosed
	}
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}
	return iter.Error()
}

func (p *PebbleKV) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.db.Close()
}
