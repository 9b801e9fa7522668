package tx

import (
	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/fields"
)

func init() {
	register("Payment", func(raw, meta fields.Doc) Transaction {
		return &Payment{BaseTx: newBaseTx(TypePayment, raw, meta)}
	})
}

// Payment moves value from one account to another, in the native asset or
// an issued currency.
type Payment struct {
	BaseTx
}

// NewPayment builds an empty outgoing payment.
func NewPayment() *Payment {
	p := &Payment{BaseTx: newBaseTx(TypePayment, nil, nil)}
	fields.TransactionType(p.raw).Set("Payment")
	return p
}

func (p *Payment) Amount() (amount.Amount, bool) {
	v, ok, err := fields.Amount(p.raw, "Amount").Get()
	if err != nil {
		return amount.Amount{}, false
	}
	return v, ok
}

func (p *Payment) SetAmount(a amount.Amount) error {
	return fields.Amount(p.raw, "Amount").Set(a)
}

func (p *Payment) ClearAmount() {
	fields.Amount(p.raw, "Amount").Clear()
}

func (p *Payment) Destination() (string, bool) {
	v, ok, _ := fields.AccountID(p.raw, "Destination").Get()
	return v, ok
}

func (p *Payment) SetDestination(address string) error {
	return fields.AccountID(p.raw, "Destination").Set(address)
}

func (p *Payment) DestinationTag() (uint32, bool) {
	v, ok, err := fields.UInt32(p.raw, "DestinationTag").Get()
	if err != nil {
		return 0, false
	}
	return uint32(v), ok
}

func (p *Payment) SetDestinationTag(tag uint32) error {
	return fields.UInt32(p.raw, "DestinationTag").Set(uint64(tag))
}

func (p *Payment) InvoiceID() (string, bool) {
	v, ok, _ := fields.Hash256(p.raw, "InvoiceID").Get()
	return v, ok
}

func (p *Payment) SetInvoiceID(id string) error {
	return fields.Hash256(p.raw, "InvoiceID").Set(id)
}

// Paths returns the explicit payment path set, absent when the payment is
// direct. Paths are computed by a pathfinding collaborator; this layer
// treats them as opaque.
func (p *Payment) Paths() ([]any, bool) {
	v, ok, err := fields.PathSet(p.raw, "Paths").Get()
	if err != nil {
		return nil, false
	}
	return v, ok
}

func (p *Payment) SendMax() (amount.Amount, bool) {
	v, ok, err := fields.Amount(p.raw, "SendMax").Get()
	if err != nil {
		return amount.Amount{}, false
	}
	return v, ok
}

func (p *Payment) SetSendMax(a amount.Amount) error {
	return fields.Amount(p.raw, "SendMax").Set(a)
}

func (p *Payment) ClearSendMax() {
	fields.Amount(p.raw, "SendMax").Clear()
}

func (p *Payment) DeliverMin() (amount.Amount, bool) {
	v, ok, err := fields.Amount(p.raw, "DeliverMin").Get()
	if err != nil {
		return amount.Amount{}, false
	}
	return v, ok
}

func (p *Payment) SetDeliverMin(a amount.Amount) error {
	return fields.Amount(p.raw, "DeliverMin").Set(a)
}

// DeliveredAmount reconciles what the payment actually delivered. The
// explicit metadata value wins when present and usable; otherwise the
// requested Amount is the best available answer. Ledgers before the
// partial-payment metadata upgrade report the sentinel "unavailable" for
// old transactions, so callers must never read Amount directly to learn
// what the destination received.
func (p *Payment) DeliveredAmount() (amount.Amount, bool) {
	for _, name := range []string{"DeliveredAmount", "delivered_amount"} {
		v, ok := p.meta[name]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "unavailable" {
			break
		}
		delivered, ok, err := fields.Amount(p.meta, name).Get()
		if err == nil && ok {
			return delivered, true
		}
		break
	}
	return p.Amount()
}
