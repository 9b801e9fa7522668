// Package validate implements the pre-submission validation pipelines that
// decide whether a transaction may proceed to signing. Each pipeline
// consults live ledger state through service.Reader and stops at the first
// failing rule; rejections carry localized message keys, never raw errors.
package validate

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/service"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
)

// Validator runs validation pipelines against one ledger reader. It holds
// no per-run state; one Validator may validate many transactions
// concurrently.
type Validator struct {
	reader service.Reader
	logger *log.Logger
}

func New(reader service.Reader) *Validator {
	return &Validator{reader: reader, logger: log.Default()}
}

// SetLogger redirects diagnostic output for unexpected failures.
func (v *Validator) SetLogger(logger *log.Logger) {
	v.logger = logger
}

// Payment checks a payment against live ledger state. It returns nil when
// the payment may proceed to signing, or a *Rejection with the first
// failing reason. The checks only read; the transaction is never mutated.
//
// When a source trust line cannot be found during the issued-currency
// checks the payment is accepted optimistically: the balance cannot be
// verified, but an unverifiable send is not blocked. That is a deliberate
// policy carried over from the wallet this engine descends from.
func (v *Validator) Payment(ctx context.Context, p *tx.Payment) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Printf("payment validation panicked: %v", r)
			err = &Rejection{Key: ReasonUnexpected, cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	// An explicit path set means deliverability was already established by
	// pathfinding; skip every other check.
	if _, hasPaths := p.Paths(); hasPaths {
		return nil
	}

	amt, hasAmount := p.Amount()
	if !hasAmount || amt.IsZero() {
		return reject(ReasonAmountRequired, nil)
	}

	account, _ := p.Account()
	destination, _ := p.Destination()
	sendMax, hasSendMax := p.SendMax()

	// The recipient needs a trust line to receive an issued currency,
	// unless the recipient is the issuer itself.
	if !amt.IsNative() && amt.Issuer != destination {
		line, lookupErr := v.reader.FilteredAccountLine(ctx, destination, service.LineFilter{
			Currency: amt.Currency,
			Issuer:   amt.Issuer,
		})
		if lookupErr != nil {
			return v.unexpected("destination line lookup", lookupErr)
		}
		if line == nil || (isZeroValue(line.Limit) && isZeroValue(line.Balance)) {
			return reject(ReasonNoTrustLine, map[string]string{
				"currency": amount.NormalizeCurrencyCode(amt.Currency),
			})
		}
	}

	// SendMax overrides the base amount when deciding what the sender will
	// actually spend.
	var native *amount.Amount
	if hasSendMax && sendMax.IsNative() {
		native = &sendMax
	} else if amt.IsNative() && !hasSendMax {
		native = &amt
	}

	if native != nil {
		spendable, lookupErr := v.reader.AvailableBalance(ctx, account)
		if lookupErr != nil {
			// A failed balance fetch is fatal here, not skipped: accepting
			// an unfunded native send would bounce at submission with a
			// far less actionable error.
			return reject(ReasonAccountLookupFailed, nil)
		}
		exceeds, cmpErr := exceedsBalance(native.Value, spendable)
		if cmpErr != nil {
			return v.unexpected("native balance comparison", cmpErr)
		}
		if exceeds {
			return reject(ReasonInsufficientBalance, map[string]string{
				"spendable": spendable,
				"currency":  amount.NativeAsset,
			})
		}
	}

	var issued *amount.Amount
	if hasSendMax && !sendMax.IsNative() {
		issued = &sendMax
	} else if !amt.IsNative() && !hasSendMax {
		issued = &amt
	}

	if issued != nil {
		if issued.Issuer != account {
			return v.checkIssuedBalance(ctx, account, issued)
		}
		return v.checkIssuerObligation(ctx, account, destination, issued)
	}

	return nil
}

// checkIssuedBalance verifies the sender holds enough of the issued
// currency on its own trust line.
func (v *Validator) checkIssuedBalance(ctx context.Context, account string, issued *amount.Amount) error {
	line, err := v.reader.FilteredAccountLine(ctx, account, service.LineFilter{
		Currency: issued.Currency,
		Issuer:   issued.Issuer,
	})
	if err != nil {
		return v.unexpected("source line lookup", err)
	}
	if line == nil {
		// Optimistic accept: nothing to verify against.
		return nil
	}

	if line.FreezePeer {
		return reject(ReasonFrozenLine, map[string]string{
			"currency": amount.NormalizeCurrencyCode(line.Currency),
		})
	}

	exceeds, err := exceedsBalance(issued.Value, line.Balance)
	if err != nil {
		return v.unexpected("issued balance comparison", err)
	}
	if exceeds {
		return reject(ReasonInsufficientBalance, map[string]string{
			"spendable": line.Balance,
			"currency":  amount.NormalizeCurrencyCode(line.Currency),
		})
	}
	return nil
}

// checkIssuerObligation verifies that issuing more currency to the
// destination stays within the limit the destination configured. The
// line's balance is negative from the issuer's perspective; its magnitude
// is the outstanding obligation.
func (v *Validator) checkIssuerObligation(ctx context.Context, account, destination string, issued *amount.Amount) error {
	line, err := v.reader.FilteredAccountLine(ctx, account, service.LineFilter{
		Currency: issued.Currency,
		Issuer:   destination,
	})
	if err != nil {
		return v.unexpected("issuer line lookup", err)
	}
	if line == nil {
		// Optimistic accept, same policy as above.
		return nil
	}

	value, err := decimal.NewFromString(issued.Value)
	if err != nil {
		return v.unexpected("issued value parse", err)
	}
	obligation, err := decimal.NewFromString(line.Balance)
	if err != nil {
		return v.unexpected("obligation parse", err)
	}
	peerLimit, err := decimal.NewFromString(line.LimitPeer)
	if err != nil {
		return v.unexpected("peer limit parse", err)
	}

	obligation = obligation.Abs()
	if value.Add(obligation).GreaterThan(peerLimit) {
		return reject(ReasonTrustLineLimitExceeded, map[string]string{
			"balance":    obligation.String(),
			"peer_limit": peerLimit.String(),
			"available":  peerLimit.Sub(obligation).String(),
		})
	}
	return nil
}

func (v *Validator) unexpected(stage string, cause error) *Rejection {
	v.logger.Printf("payment validation: unexpected failure at %s: %v", stage, cause)
	return &Rejection{Key: ReasonUnexpected, cause: fmt.Errorf("%s: %w", stage, cause)}
}

func exceedsBalance(value, balance string) (bool, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return false, fmt.Errorf("value %q: %w", value, err)
	}
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return false, fmt.Errorf("balance %q: %w", balance, err)
	}
	return v.GreaterThan(b), nil
}

func isZeroValue(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsZero()
}
