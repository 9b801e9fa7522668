package tx

import (
	"encoding/json"
	"fmt"

	"github.com/tidewallet/walletcore/internal/ledger/fields"
)

// factory builds a variant around already-parsed backing documents.
type factory func(raw, meta fields.Doc) Transaction

var registry = map[string]factory{}

// register adds a variant factory for a discriminator name. Called from
// variant init functions.
func register(name string, f factory) {
	registry[name] = f
}

// Hydrate builds the typed variant for a raw document, dispatching on the
// TransactionType discriminator. Unknown discriminators produce a
// *Fallback that still exposes the raw document but no derived properties.
// Required fields missing from the document are tolerated here; validation
// reports them later.
func Hydrate(raw, meta fields.Doc) Transaction {
	name, _ := fields.TransactionType(raw).Get()
	if f, ok := registry[name]; ok {
		return f(raw, meta)
	}
	fallback := &Fallback{BaseTx: newBaseTx(TypeInvalid, raw, meta)}
	return fallback
}

// FromJSON hydrates a transaction from its JSON form. Both bare documents
// and history envelopes ({"tx": ..., "meta": ...} or {"transaction": ...})
// are accepted, matching the shapes a node returns.
func FromJSON(data []byte) (Transaction, error) {
	var doc fields.Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed transaction document: %w", err)
	}

	raw := doc
	if inner, ok := doc["transaction"].(map[string]any); ok {
		raw = inner
	} else if inner, ok := doc["tx"].(map[string]any); ok {
		raw = inner
	}

	meta, _ := doc["meta"].(map[string]any)
	return Hydrate(raw, meta), nil
}

// Fallback is the variant for discriminators this wallet has no schema
// for. It exposes raw-document access only.
type Fallback struct {
	BaseTx
}

// Discriminator returns the unrecognized wire discriminator.
func (f *Fallback) Discriminator() string {
	name, _ := fields.TransactionType(f.raw).Get()
	return name
}
