package tx

// Type identifies a transaction variant. Codes follow the ledger's
// transaction type numbering.
type Type uint16

const (
	TypeInvalid Type = 0xFFFF

	TypePayment  Type = 0
	TypeTrustSet Type = 20
)

// String returns the wire name of the transaction type.
func (t Type) String() string {
	switch t {
	case TypePayment:
		return "Payment"
	case TypeTrustSet:
		return "TrustSet"
	default:
		return "Unknown"
	}
}

// TypeFromName maps a wire discriminator back to a Type. The second return
// is false for discriminators this wallet has no variant for; hydration
// falls back to the generic variant in that case.
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "Payment":
		return TypePayment, true
	case "TrustSet":
		return TypeTrustSet, true
	default:
		return TypeInvalid, false
	}
}
