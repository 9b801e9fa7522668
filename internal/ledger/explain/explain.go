// Package explain derives read-only presentation data from a parsed
// transaction as seen from one account's perspective: a human label, the
// participants, and the monetary effect on the acting account. It performs
// no I/O and never mutates the transaction.
package explain

import (
	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
)

// Effect classifies what a transaction did to the acting account's
// balance.
type Effect int

const (
	EffectNone Effect = iota
	EffectDebit
	EffectCredit
)

func (e Effect) String() string {
	switch e {
	case EffectDebit:
		return "debit"
	case EffectCredit:
		return "credit"
	default:
		return "none"
	}
}

// Participants names the accounts on either end of a transaction. Fields
// are empty when the transaction type has no such role.
type Participants struct {
	Source      string
	Destination string
}

// Description is the derived presentation view of one transaction.
type Description struct {
	Label        string
	Participants Participants
	Effect       Effect
	// Amount is the monetary effect's magnitude; zero-valued when Effect
	// is EffectNone.
	Amount amount.Amount
}

// Describe computes the description of txn from the perspective of the
// given account. For executed payments the delivered amount is used, never
// the requested amount.
func Describe(txn tx.Transaction, perspective string) Description {
	switch v := txn.(type) {
	case *tx.Payment:
		return describePayment(v, perspective)
	case *tx.TrustSet:
		return describeTrustSet(v)
	default:
		return describeFallback(txn)
	}
}

func describePayment(p *tx.Payment, perspective string) Description {
	account, _ := p.Account()
	destination, _ := p.Destination()

	d := Description{
		Label:        "Payment",
		Participants: Participants{Source: account, Destination: destination},
	}

	delivered, ok := p.DeliveredAmount()
	if !ok {
		return d
	}
	d.Amount = delivered

	switch perspective {
	case account:
		if account == destination {
			// Self payment, typically a cross-currency conversion.
			d.Label = "Exchange"
		} else {
			d.Effect = EffectDebit
		}
	case destination:
		d.Effect = EffectCredit
	}
	return d
}

func describeTrustSet(t *tx.TrustSet) Description {
	account, _ := t.Account()

	label := "Add Trust Line"
	if limit, ok := t.LimitAmount(); ok && limit.IsZero() {
		label = "Remove Trust Line"
	}

	return Description{
		Label:        label,
		Participants: Participants{Source: account},
	}
}

func describeFallback(txn tx.Transaction) Description {
	account, _ := txn.Base().Account()

	label := "Unknown Transaction"
	if fallback, ok := txn.(*tx.Fallback); ok && fallback.Discriminator() != "" {
		label = fallback.Discriminator()
	}

	return Description{
		Label:        label,
		Participants: Participants{Source: account},
	}
}
