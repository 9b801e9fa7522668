package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
	"github.com/tidewallet/walletcore/internal/ledger/fields"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
)

func TestDescribePaymentFromSender(t *testing.T) {
	txn := tx.Hydrate(fields.Doc{
		"TransactionType": "Payment",
		"Account":         "rAlice",
		"Destination":     "rBob",
		"Amount":          "5000000",
	}, fields.Doc{"delivered_amount": "4000000"})

	d := Describe(txn, "rAlice")
	assert.Equal(t, "Payment", d.Label)
	assert.Equal(t, EffectDebit, d.Effect)
	assert.Equal(t, amount.Native("4"), d.Amount)
	assert.Equal(t, "rAlice", d.Participants.Source)
	assert.Equal(t, "rBob", d.Participants.Destination)
}

func TestDescribePaymentFromRecipient(t *testing.T) {
	txn := tx.Hydrate(fields.Doc{
		"TransactionType": "Payment",
		"Account":         "rAlice",
		"Destination":     "rBob",
		"Amount":          "5000000",
	}, nil)

	d := Describe(txn, "rBob")
	assert.Equal(t, EffectCredit, d.Effect)
	assert.Equal(t, amount.Native("5"), d.Amount)
}

func TestDescribePaymentBystander(t *testing.T) {
	txn := tx.Hydrate(fields.Doc{
		"TransactionType": "Payment",
		"Account":         "rAlice",
		"Destination":     "rBob",
		"Amount":          "5000000",
	}, nil)

	d := Describe(txn, "rCarol")
	assert.Equal(t, EffectNone, d.Effect)
}

func TestDescribeSelfPaymentIsExchange(t *testing.T) {
	txn := tx.Hydrate(fields.Doc{
		"TransactionType": "Payment",
		"Account":         "rAlice",
		"Destination":     "rAlice",
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": "rIssuer",
		},
	}, nil)

	d := Describe(txn, "rAlice")
	assert.Equal(t, "Exchange", d.Label)
	assert.Equal(t, EffectNone, d.Effect)
}

func TestDescribeTrustSet(t *testing.T) {
	ts := tx.NewTrustSet()
	require.NoError(t, ts.SetLimitAmount(amount.Issued("1000", "USD", "rhub8VRN55s94qWKDv6jmDy1pUykJzF3wq")))

	d := Describe(ts, "rAlice")
	assert.Equal(t, "Add Trust Line", d.Label)

	require.NoError(t, ts.SetLimitAmount(amount.Issued("0", "USD", "rhub8VRN55s94qWKDv6jmDy1pUykJzF3wq")))
	d = Describe(ts, "rAlice")
	assert.Equal(t, "Remove Trust Line", d.Label)
}

func TestDescribeFallback(t *testing.T) {
	txn := tx.Hydrate(fields.Doc{
		"TransactionType": "OfferCreate",
		"Account":         "rAlice",
	}, nil)

	d := Describe(txn, "rAlice")
	assert.Equal(t, "OfferCreate", d.Label)
	assert.Equal(t, EffectNone, d.Effect)
}
