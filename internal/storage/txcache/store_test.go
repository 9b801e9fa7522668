package txcache

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewallet/walletcore/internal/ledger/tx"
)

const testHash = "C92D239E3A54E803162C25EF2A1C11D6F2424EFA24DEBB839FA9A27B5C45CFD9"

func openBackends(t *testing.T) map[string]KV {
	t.Helper()
	pebbleKV, err := OpenPebbleKV(t.TempDir())
	require.NoError(t, err)
	levelKV, err := OpenLevelDBKV(t.TempDir())
	require.NoError(t, err)
	return map[string]KV{
		"memory":  NewMemoryKV(),
		"pebble":  pebbleKV,
		"leveldb": levelKV,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	raw := []byte(`{"TransactionType":"Payment","Account":"rAlice","Amount":"5000000"}`)
	meta := []byte(`{"TransactionResult":"tesSUCCESS","delivered_amount":"5000000"}`)

	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(kv)
			defer store.Close()

			require.NoError(t, store.Put(context.Background(), testHash, raw, meta))

			gotRaw, gotMeta, err := store.Get(context.Background(), testHash)
			require.NoError(t, err)
			assert.Equal(t, raw, gotRaw)
			assert.Equal(t, meta, gotMeta)
		})
	}
}

func TestStoreLargeBodyCompresses(t *testing.T) {
	// A very repetitive document well above the compression threshold.
	raw := []byte(`{"TransactionType":"Payment","Memos":"` + strings.Repeat("ab", 4096) + `"}`)

	kv := NewMemoryKV()
	store := NewStore(kv)

	require.NoError(t, store.Put(context.Background(), testHash, raw, nil))

	stored, err := kv.Get(context.Background(), []byte(testHash))
	require.NoError(t, err)
	assert.Less(t, len(stored), len(raw), "repetitive body should be stored compressed")

	gotRaw, gotMeta, err := store.Get(context.Background(), testHash)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, gotRaw))
	assert.Nil(t, gotMeta)
}

func TestStoreCompressionDisabled(t *testing.T) {
	raw := []byte(`{"TransactionType":"Payment","Memos":"` + strings.Repeat("ab", 4096) + `"}`)

	kv := NewMemoryKV()
	store := NewStore(kv)
	store.SetCompression(false)

	require.NoError(t, store.Put(context.Background(), testHash, raw, nil))

	stored, err := kv.Get(context.Background(), []byte(testHash))
	require.NoError(t, err)
	assert.Greater(t, len(stored), len(raw), "body should be stored as-is plus envelope overhead")

	gotRaw, _, err := store.Get(context.Background(), testHash)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, gotRaw))
}

func TestStoreMissingHash(t *testing.T) {
	store := NewStore(NewMemoryKV())
	_, _, err := store.Get(context.Background(), testHash)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDeleteAndHashes(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "A", []byte(`{}`), nil))
	require.NoError(t, store.Put(ctx, "B", []byte(`{}`), nil))

	hashes, err := store.Hashes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, hashes)

	require.NoError(t, store.Delete(ctx, "A"))
	_, _, err = store.Get(ctx, "A")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreClosed(t *testing.T) {
	store := NewStore(NewMemoryKV())
	require.NoError(t, store.Close())

	err := store.Put(context.Background(), testHash, []byte(`{}`), nil)
	require.ErrorIs(t, err, ErrClosed)
}

// Cached records hydrate the same way a live fetch does.
func TestStoreFeedsHydration(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	raw := []byte(`{"TransactionType":"Payment","Account":"rAlice","Amount":"1000000"}`)
	require.NoError(t, store.Put(ctx, testHash, raw, nil))

	gotRaw, _, err := store.Get(ctx, testHash)
	require.NoError(t, err)

	txn, err := tx.FromJSON(gotRaw)
	require.NoError(t, err)
	assert.Equal(t, tx.TypePayment, txn.TxType())
}

func TestOpenKVUnknownBackend(t *testing.T) {
	_, err := OpenKV(Backend("bogus"), "")
	require.Error(t, err)
}
