// Package tx implements the polymorphic transaction model: hydration of
// raw ledger JSON documents into typed variants, common-field access
// through the field codec layer, and metadata-derived properties.
package tx

import (
	"encoding/json"
	"strings"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/fields"
)

// Transaction is implemented by every hydrated variant. A variant's
// discriminator is fixed at construction; the raw document is retained for
// fields not modeled here and for handoff to the signer.
type Transaction interface {
	// TxType returns the variant's type. Fallback variants report
	// TypeInvalid while still exposing the raw document.
	TxType() Type

	// Base returns the embedded common-field accessor.
	Base() *BaseTx
}

// BaseTx carries the two backing documents and the accessors for fields
// common to all transaction types.
type BaseTx struct {
	raw  fields.Doc
	meta fields.Doc
	kind Type
}

func newBaseTx(kind Type, raw, meta fields.Doc) BaseTx {
	if raw == nil {
		raw = fields.Doc{}
	}
	if meta == nil {
		meta = fields.Doc{}
	}
	return BaseTx{raw: raw, meta: meta, kind: kind}
}

func (b *BaseTx) TxType() Type  { return b.kind }
func (b *BaseTx) Base() *BaseTx { return b }

// Raw returns the backing document. The signer consumes this form.
func (b *BaseTx) Raw() fields.Doc { return b.raw }

// Meta returns the execution metadata document, empty for transactions
// that have not executed.
func (b *BaseTx) Meta() fields.Doc { return b.meta }

// MarshalRaw serializes the raw document for signing or submission.
func (b *BaseTx) MarshalRaw() ([]byte, error) {
	return json.Marshal(b.raw)
}

/* Common fields */

func (b *BaseTx) Account() (string, bool) {
	v, ok, _ := fields.AccountID(b.raw, "Account").Get()
	return v, ok
}

func (b *BaseTx) SetAccount(address string) error {
	return fields.AccountID(b.raw, "Account").Set(address)
}

// Fee returns the transaction fee in native decimal units.
func (b *BaseTx) Fee() (amount.Amount, bool) {
	v, ok, err := fields.Amount(b.raw, "Fee").Get()
	if err != nil {
		return amount.Amount{}, false
	}
	return v, ok
}

func (b *BaseTx) SetFee(fee amount.Amount) error {
	return fields.Amount(b.raw, "Fee").Set(fee)
}

func (b *BaseTx) Sequence() (uint32, bool) {
	v, ok, err := fields.UInt32(b.raw, "Sequence").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (b *BaseTx) SetSequence(seq uint32) error {
	return fields.UInt32(b.raw, "Sequence").Set(uint64(seq))
}

func (b *BaseTx) Flags() (uint32, bool) {
	v, ok, err := fields.UInt32(b.raw, "Flags").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (b *BaseTx) LastLedgerSequence() (uint32, bool) {
	v, ok, err := fields.UInt32(b.raw, "LastLedgerSequence").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (b *BaseTx) SourceTag() (uint32, bool) {
	v, ok, err := fields.UInt32(b.raw, "SourceTag").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (b *BaseTx) SigningPubKey() (string, bool) {
	v, ok, _ := fields.Blob(b.raw, "SigningPubKey").Get()
	return v, ok
}

func (b *BaseTx) TxnSignature() (string, bool) {
	v, ok, _ := fields.Blob(b.raw, "TxnSignature").Get()
	return v, ok
}

func (b *BaseTx) Memos() ([]any, bool) {
	v, ok, err := fields.Array(b.raw, "Memos").Get()
	if err != nil {
		return nil, false
	}
	return v, ok
}

// Hash returns the transaction hash, present only on transactions fetched
// from history.
func (b *BaseTx) Hash() (string, bool) {
	v, ok, _ := fields.String(b.raw, "hash").Get()
	return v, ok
}

/* Metadata */

// TransactionResult returns the engine result code recorded in metadata,
// e.g. "tesSUCCESS".
func (b *BaseTx) TransactionResult() (string, bool) {
	v, ok, _ := fields.String(b.meta, "TransactionResult").Get()
	return v, ok
}

// Executed reports whether the transaction carries an execution result.
func (b *BaseTx) Executed() bool {
	_, ok := b.TransactionResult()
	return ok
}

// Succeeded reports whether the recorded result is a success code.
func (b *BaseTx) Succeeded() bool {
	result, ok := b.TransactionResult()
	return ok && strings.HasPrefix(result, "tes")
}
