package fields

import (
	"errors"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
)

// ErrTypeMismatch is returned when a backing value has the wrong primitive
// kind for the field's codec: a number where a string is declared, an
// object where an array is declared, and so on.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrInvalidValue is the amount package's error: the right kind but
// semantically invalid (bad address checksum, non-integral drops, missing
// issuer). Aliased here so codec callers handle one error surface.
var ErrInvalidValue = amount.ErrInvalidValue
