// Package amount implements the monetary value model for the wallet core:
// the native-unit (drops) to decimal conversions and the native/issued
// amount union used by the field codecs and the validation engine.
//
// All arithmetic goes through shopspring/decimal. Binary floating point is
// never used for monetary values.
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// NativeAsset is the currency code of the ledger's native asset.
	NativeAsset = "XRP"

	// DropsPerUnit is the number of indivisible base units in one native unit.
	DropsPerUnit int64 = 1_000_000

	// NativeDecimals is the number of fractional digits a native amount can carry.
	NativeDecimals = 6

	// MaxIOUPrecision is the maximum number of significant digits an issued
	// currency value can carry on the ledger.
	MaxIOUPrecision = 15
)

// ErrInvalidValue is returned when a value has the right kind but is
// semantically invalid: malformed decimal, negative where unsigned is
// required, or more fractional digits than the representation allows.
var ErrInvalidValue = errors.New("invalid value")

// Amount is the application-level form of a ledger amount: either the
// native asset (Issuer empty, Value in decimal native units) or an issued
// currency (Currency/Issuer pair, Value unchanged from the wire).
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
	Issuer   string `json:"issuer,omitempty"`
}

// Native builds a native-asset amount from a decimal value string.
func Native(value string) Amount {
	return Amount{Currency: NativeAsset, Value: value}
}

// Issued builds an issued-currency amount.
func Issued(value, currency, issuer string) Amount {
	return Amount{Currency: currency, Value: value, Issuer: issuer}
}

// IsNative reports whether the amount denominates the native asset.
func (a Amount) IsNative() bool {
	return a.Currency == NativeAsset && a.Issuer == ""
}

// Decimal parses the amount's value.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(a.Value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a decimal value", ErrInvalidValue, a.Value)
	}
	return d, nil
}

// IsZero reports whether the amount has no value or a value of exactly zero.
func (a Amount) IsZero() bool {
	if a.Value == "" {
		return true
	}
	d, err := a.Decimal()
	if err != nil {
		return false
	}
	return d.IsZero()
}

func (a Amount) String() string {
	if a.Issuer == "" {
		return fmt.Sprintf("%s %s", a.Value, a.Currency)
	}
	return fmt.Sprintf("%s %s.%s", a.Value, NormalizeCurrencyCode(a.Currency), a.Issuer)
}

// DropsToNative converts an integer base-unit string into a decimal native
// value string without trailing zeros. The conversion is exact; inputs that
// are not non-negative integers fail with ErrInvalidValue.
func DropsToNative(drops string) (string, error) {
	d, err := decimal.NewFromString(drops)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not an integer drops value", ErrInvalidValue, drops)
	}
	if !d.IsInteger() {
		return "", fmt.Errorf("%w: drops value %q has fractional base units", ErrInvalidValue, drops)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: drops value %q is negative", ErrInvalidValue, drops)
	}
	return trimZeros(d.Shift(-NativeDecimals).String()), nil
}

// NativeToDrops converts a decimal native value string into an integer
// base-unit string. A value with more than NativeDecimals fractional digits
// fails with ErrInvalidValue rather than being truncated; silent loss of
// monetary precision is never acceptable here.
func NativeToDrops(value string) (string, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a decimal value", ErrInvalidValue, value)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: native value %q is negative", ErrInvalidValue, value)
	}
	drops := d.Shift(NativeDecimals)
	if !drops.IsInteger() {
		return "", fmt.Errorf("%w: native value %q exceeds %d decimal places", ErrInvalidValue, value, NativeDecimals)
	}
	return drops.Truncate(0).String(), nil
}

// ValueToIOU normalizes a decimal string for use as an issued currency
// value, enforcing the ledger's significant-digit limit.
func ValueToIOU(value string) (string, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a decimal value", ErrInvalidValue, value)
	}
	intDigits := int32(len(d.Truncate(0).Abs().String()))
	if d.Truncate(0).IsZero() {
		intDigits = 0
	}
	if intDigits > MaxIOUPrecision {
		return "", fmt.Errorf("%w: value %q has too many digits before the decimal point", ErrInvalidValue, value)
	}
	return trimZeros(d.Truncate(MaxIOUPrecision - intDigits).String()), nil
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
