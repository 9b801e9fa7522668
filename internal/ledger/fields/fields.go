// Package fields implements the typed field codec layer: accessors bound to
// a (document, field name) pair that read and write the raw ledger JSON
// document while enforcing each field's type contract.
//
// Absence is represented by the key being missing from the document, never
// by null or a zero value, so "not present in the JSON" stays
// distinguishable from "present with a default". Clear removes the key.
package fields

import (
	"fmt"
	"math"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
)

// Doc is the raw backing document a transaction or ledger object is
// hydrated from. Codecs mutate only the slot they are bound to.
type Doc = map[string]any

type binding struct {
	doc  Doc
	name string
}

func (b binding) raw() (any, bool) {
	v, ok := b.doc[b.name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clear removes the field from the backing document.
func (b binding) Clear() {
	delete(b.doc, b.name)
}

/* String-like fields */

// StringField is the plain string accessor used for STString and Blob
// fields: no semantic validation beyond the value being a string.
type StringField struct{ binding }

// String binds a plain string accessor.
func String(doc Doc, name string) StringField {
	return StringField{binding{doc, name}}
}

// Blob binds a hex-blob accessor. Blobs are carried as hex strings in the
// JSON document and are not decoded at this layer.
func Blob(doc Doc, name string) StringField {
	return StringField{binding{doc, name}}
}

func (f StringField) Get() (string, bool, error) {
	v, ok := f.raw()
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: field %s is not a string", ErrTypeMismatch, f.name)
	}
	return s, true, nil
}

func (f StringField) Set(v string) error {
	f.doc[f.name] = v
	return nil
}

/* Hash256 */

// Hash256Field validates 256-bit hashes in their hex string form.
type Hash256Field struct{ StringField }

func Hash256(doc Doc, name string) Hash256Field {
	return Hash256Field{String(doc, name)}
}

func (f Hash256Field) Set(v string) error {
	if len(v) != 64 || !isHex(v) {
		return fmt.Errorf("%w: field %s: %q is not a 256-bit hex hash", ErrInvalidValue, f.name, v)
	}
	f.doc[f.name] = v
	return nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

/* AccountID */

// AccountIDField validates classic address encoding on write. Reads pass
// the backing string through untouched.
type AccountIDField struct{ StringField }

func AccountID(doc Doc, name string) AccountIDField {
	return AccountIDField{String(doc, name)}
}

func (f AccountIDField) Set(v string) error {
	if _, _, err := addresscodec.DecodeClassicAddressToAccountID(v); err != nil {
		return fmt.Errorf("%w: field %s: %q is not a valid address", ErrInvalidValue, f.name, v)
	}
	f.doc[f.name] = v
	return nil
}

/* Amount */

// AmountField converts between the wire form of a ledger amount (integer
// drops string for native, {currency, value, issuer} object for issued)
// and the application-level amount.Amount.
type AmountField struct{ binding }

func Amount(doc Doc, name string) AmountField {
	return AmountField{binding{doc, name}}
}

func (f AmountField) Get() (amount.Amount, bool, error) {
	v, ok := f.raw()
	if !ok {
		return amount.Amount{}, false, nil
	}
	switch value := v.(type) {
	case string:
		native, err := amount.DropsToNative(value)
		if err != nil {
			return amount.Amount{}, false, fmt.Errorf("field %s: %w", f.name, err)
		}
		return amount.Native(native), true, nil
	case map[string]any:
		a, err := issuedFromObject(value)
		if err != nil {
			return amount.Amount{}, false, fmt.Errorf("field %s: %w", f.name, err)
		}
		return a, true, nil
	default:
		return amount.Amount{}, false, fmt.Errorf("%w: field %s is neither a drops string nor an amount object", ErrTypeMismatch, f.name)
	}
}

// Set stores a native amount as an integer drops string and an issued
// amount as a structured object. An issued amount without an issuer is
// rejected: the ledger cannot address such a balance, and silently
// dropping a monetary write is worse than failing loudly.
func (f AmountField) Set(a amount.Amount) error {
	if a.IsNative() {
		drops, err := amount.NativeToDrops(a.Value)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.name, err)
		}
		f.doc[f.name] = drops
		return nil
	}
	if a.Issuer == "" {
		return fmt.Errorf("%w: field %s: issued amount %s has no issuer", ErrInvalidValue, f.name, a.Currency)
	}
	value, err := amount.ValueToIOU(a.Value)
	if err != nil {
		return fmt.Errorf("field %s: %w", f.name, err)
	}
	f.doc[f.name] = map[string]any{
		"currency": a.Currency,
		"value":    value,
		"issuer":   a.Issuer,
	}
	return nil
}

func issuedFromObject(obj map[string]any) (amount.Amount, error) {
	currency, ok := obj["currency"].(string)
	if !ok {
		return amount.Amount{}, fmt.Errorf("%w: amount object has no currency", ErrTypeMismatch)
	}
	value, ok := obj["value"].(string)
	if !ok {
		return amount.Amount{}, fmt.Errorf("%w: amount object has no value", ErrTypeMismatch)
	}
	issuer, _ := obj["issuer"].(string)
	return amount.Amount{Currency: currency, Value: value, Issuer: issuer}, nil
}

/* Unsigned integers */

// UIntField covers the UInt8/16/32/64 wire types. Values arrive from JSON
// as float64 and are range-checked against the declared width.
type UIntField struct {
	binding
	bits uint
}

func UInt8(doc Doc, name string) UIntField  { return UIntField{binding{doc, name}, 8} }
func UInt16(doc Doc, name string) UIntField { return UIntField{binding{doc, name}, 16} }
func UInt32(doc Doc, name string) UIntField { return UIntField{binding{doc, name}, 32} }
func UInt64(doc Doc, name string) UIntField { return UIntField{binding{doc, name}, 64} }

func (f UIntField) max() uint64 {
	if f.bits == 64 {
		return math.MaxUint64
	}
	return 1<<f.bits - 1
}

func (f UIntField) Get() (uint64, bool, error) {
	v, ok := f.raw()
	if !ok {
		return 0, false, nil
	}
	var n uint64
	switch value := v.(type) {
	case float64:
		if value < 0 || value != math.Trunc(value) {
			return 0, false, fmt.Errorf("%w: field %s is not an unsigned integer", ErrInvalidValue, f.name)
		}
		n = uint64(value)
	case int:
		if value < 0 {
			return 0, false, fmt.Errorf("%w: field %s is negative", ErrInvalidValue, f.name)
		}
		n = uint64(value)
	case uint32:
		n = uint64(value)
	case uint64:
		n = value
	default:
		return 0, false, fmt.Errorf("%w: field %s is not a number", ErrTypeMismatch, f.name)
	}
	if n > f.max() {
		return 0, false, fmt.Errorf("%w: field %s exceeds uint%d", ErrInvalidValue, f.name, f.bits)
	}
	return n, true, nil
}

func (f UIntField) Set(v uint64) error {
	if v > f.max() {
		return fmt.Errorf("%w: field %s: %d exceeds uint%d", ErrInvalidValue, f.name, v, f.bits)
	}
	f.doc[f.name] = v
	return nil
}

/* Arrays and objects */

// ArrayField normalizes an empty array to absent on read, so callers need
// a single presence check rather than a nil check plus a length check.
type ArrayField struct{ binding }

func Array(doc Doc, name string) ArrayField {
	return ArrayField{binding{doc, name}}
}

// PathSet binds a payment path set. Path steps are opaque to this layer;
// pathfinding owns their structure.
func PathSet(doc Doc, name string) ArrayField {
	return ArrayField{binding{doc, name}}
}

func (f ArrayField) Get() ([]any, bool, error) {
	v, ok := f.raw()
	if !ok {
		return nil, false, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: field %s is not an array", ErrTypeMismatch, f.name)
	}
	if len(arr) == 0 {
		return nil, false, nil
	}
	return arr, true, nil
}

func (f ArrayField) Set(v []any) error {
	f.doc[f.name] = v
	return nil
}

// ObjectField applies the same empty-is-absent normalization to nested
// objects.
type ObjectField struct{ binding }

func Object(doc Doc, name string) ObjectField {
	return ObjectField{binding{doc, name}}
}

func (f ObjectField) Get() (map[string]any, bool, error) {
	v, ok := f.raw()
	if !ok {
		return nil, false, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: field %s is not an object", ErrTypeMismatch, f.name)
	}
	if len(obj) == 0 {
		return nil, false, nil
	}
	return obj, true, nil
}

func (f ObjectField) Set(v map[string]any) error {
	f.doc[f.name] = v
	return nil
}

/* Discriminators */

// DiscriminatorField is the pass-through accessor for TransactionType and
// LedgerEntryType. No validation: the discriminator is trusted to be set
// once at construction and is immutable afterwards.
type DiscriminatorField struct{ binding }

func TransactionType(doc Doc) DiscriminatorField {
	return DiscriminatorField{binding{doc, "TransactionType"}}
}

func LedgerEntryType(doc Doc) DiscriminatorField {
	return DiscriminatorField{binding{doc, "LedgerEntryType"}}
}

func (f DiscriminatorField) Get() (string, bool) {
	v, ok := f.raw()
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

func (f DiscriminatorField) Set(v string) {
	f.doc[f.name] = v
}
