package tx

import (
	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/fields"
)

func init() {
	register("TrustSet", func(raw, meta fields.Doc) Transaction {
		return &TrustSet{BaseTx: newBaseTx(TypeTrustSet, raw, meta)}
	})
}

// TrustSet creates, adjusts or removes a trust line toward an issuer.
type TrustSet struct {
	BaseTx
}

// NewTrustSet builds an empty outgoing trust line change.
func NewTrustSet() *TrustSet {
	t := &TrustSet{BaseTx: newBaseTx(TypeTrustSet, nil, nil)}
	fields.TransactionType(t.raw).Set("TrustSet")
	return t
}

// LimitAmount is the trust limit being set; a zero value removes the line.
func (t *TrustSet) LimitAmount() (amount.Amount, bool) {
	v, ok, err := fields.Amount(t.raw, "LimitAmount").Get()
	if err != nil {
		return amount.Amount{}, false
	}
	return v, ok
}

func (t *TrustSet) SetLimitAmount(a amount.Amount) error {
	return fields.Amount(t.raw, "LimitAmount").Set(a)
}

func (t *TrustSet) QualityIn() (uint32, bool) {
	v, ok, err := fields.UInt32(t.raw, "QualityIn").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (t *TrustSet) QualityOut() (uint32, bool) {
	v, ok, err := fields.UInt32(t.raw, "QualityOut").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}
