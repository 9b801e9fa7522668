package txcache

import (
	"context"
	"fmt"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"
)

// minCompressSize keeps very small bodies uncompressed; the lz4 block
// overhead outweighs any gain below this.
const minCompressSize = 128

var cborHandle codec.CborHandle

// payload holds the transaction's JSON documents as fetched.
type payload struct {
	Raw  []byte `codec:"raw"`
	Meta []byte `codec:"meta"`
}

// envelope is the stored record. Size is the uncompressed payload length,
// zero when Body is stored uncompressed.
type envelope struct {
	Body []byte `codec:"b"`
	Size int    `codec:"n"`
}

// Store persists raw transaction documents keyed by transaction hash.
type Store struct {
	kv       KV
	compress bool
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, compress: true}
}

// SetCompression toggles lz4 compression for subsequent writes. Reads
// handle both forms regardless.
func (s *Store) SetCompression(enabled bool) {
	s.compress = enabled
}

// Put caches a transaction's raw document and execution metadata under its
// hash. metaJSON may be nil for transactions that have not executed.
func (s *Store) Put(ctx context.Context, hash string, rawJSON, metaJSON []byte) error {
	var body []byte
	if err := codec.NewEncoderBytes(&body, &cborHandle).Encode(payload{Raw: rawJSON, Meta: metaJSON}); err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}

	env := envelope{Body: body}
	if s.compress && len(body) >= minCompressSize {
		dst := make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, dst, nil)
		if err == nil && n > 0 && n < len(body) {
			env.Body = dst[:n]
			env.Size = len(body)
		}
	}

	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &cborHandle).Encode(env); err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}
	return s.kv.Put(ctx, []byte(hash), buf)
}

// Get returns the cached raw document and metadata for a hash, or
// ErrNotFound.
func (s *Store) Get(ctx context.Context, hash string) (rawJSON, metaJSON []byte, err error) {
	buf, err := s.kv.Get(ctx, []byte(hash))
	if err != nil {
		return nil, nil, err
	}

	var env envelope
	if err := codec.NewDecoderBytes(buf, &cborHandle).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("decode cache record: %w", err)
	}

	body := env.Body
	if env.Size > 0 {
		dst := make([]byte, env.Size)
		n, err := lz4.UncompressBlock(env.Body, dst)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress cache record: %w", err)
		}
		body = dst[:n]
	}

	var p payload
	if err := codec.NewDecoderBytes(body, &cborHandle).Decode(&p); err != nil {
		return nil, nil, fmt.Errorf("decode cache payload: %w", err)
	}
	return p.Raw, p.Meta, nil
}

func (s *Store) Delete(ctx context.Context, hash string) error {
	return s.kv.Delete(ctx, []byte(hash))
}

// Hashes lists every cached transaction hash.
func (s *Store) Hashes(ctx context.Context) ([]string, error) {
	var hashes []string
	err := s.kv.Iterate(ctx, func(key, _ []byte) bool {
		hashes = append(hashes, string(key))
		return true
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

func (s *Store) Close() error {
	return s.kv.Close()
}
