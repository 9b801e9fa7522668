package validate

import (
	"fmt"

	"github.com/tidewallet/walletcore/internal/locale"
)

// Reason keys for the business-rule rejections. These are localization
// keys; rendering happens at the display edge through locale.Localizer.
const (
	ReasonAmountRequired         = "send.pleaseEnterAmount"
	ReasonNoTrustLine            = "send.unableToSendPaymentRecipientDoesNotHaveTrustLine"
	ReasonInsufficientBalance    = "send.insufficientBalanceSpendableBalance"
	ReasonFrozenLine             = "send.trustLineIsFrozenByIssuer"
	ReasonTrustLineLimitExceeded = "send.trustLineLimitExceeded"
	ReasonAccountLookupFailed    = "account.unableGetAccountInfo"
	ReasonUnexpected             = "global.unexpectedValidationError"
)

// Rejection is the single first-failing reason a validation pipeline stops
// on. Key and Params identify the user-facing message; the underlying
// cause, when one exists, stays internal for diagnostics and is never
// rendered.
type Rejection struct {
	Key    string
	Params map[string]string

	cause error
}

func reject(key string, params map[string]string) *Rejection {
	return &Rejection{Key: key, Params: params}
}

func (r *Rejection) Error() string {
	if r.cause != nil {
		return fmt.Sprintf("validation rejected: %s: %v", r.Key, r.cause)
	}
	return "validation rejected: " + r.Key
}

func (r *Rejection) Unwrap() error { return r.cause }

// Localize renders the user-facing message.
func (r *Rejection) Localize(l locale.Localizer) string {
	return l.T(r.Key, r.Params)
}
