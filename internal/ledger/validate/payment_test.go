package validate

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewallet/walletcore/internal/ledger/fields"
	"github.com/tidewallet/walletcore/internal/ledger/service"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
	"github.com/tidewallet/walletcore/internal/locale"
)

const (
	alice  = "rAlice"
	bob    = "rBob"
	issuer = "rIssuerGateway"
)

// fakeReader serves canned ledger state. Keys for lines are
// "address|currency|issuer".
type fakeReader struct {
	balances   map[string]string
	lines      map[string]*service.TrustLineView
	balanceErr error
	lineErr    error
}

func (f *fakeReader) AvailableBalance(ctx context.Context, address string) (string, error) {
	if f.balanceErr != nil {
		return "", f.balanceErr
	}
	balance, ok := f.balances[address]
	if !ok {
		return "", errors.New("no such account")
	}
	return balance, nil
}

func (f *fakeReader) FilteredAccountLine(ctx context.Context, address string, filter service.LineFilter) (*service.TrustLineView, error) {
	if f.lineErr != nil {
		return nil, f.lineErr
	}
	return f.lines[address+"|"+filter.Currency+"|"+filter.Issuer], nil
}

func (f *fakeReader) Transactions(ctx context.Context, address string, marker string, limit int) (service.TransactionsPage, error) {
	return service.TransactionsPage{}, nil
}

func quietValidator(reader service.Reader) *Validator {
	v := New(reader)
	v.SetLogger(log.New(io.Discard, "", 0))
	return v
}

func payment(t *testing.T, raw fields.Doc) *tx.Payment {
	t.Helper()
	raw["TransactionType"] = "Payment"
	p, ok := tx.Hydrate(raw, nil).(*tx.Payment)
	require.True(t, ok)
	return p
}

func requireRejection(t *testing.T, err error, key string) *Rejection {
	t.Helper()
	require.Error(t, err)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, key, rej.Key)
	return rej
}

func TestPaymentAmountRequired(t *testing.T) {
	v := quietValidator(&fakeReader{})

	cases := []fields.Doc{
		{"Account": alice, "Destination": bob},
		{"Account": alice, "Destination": bob, "Amount": "0"},
		{"Account": alice, "Destination": bob, "Amount": map[string]any{
			"currency": "USD", "value": "0", "issuer": issuer,
		}},
	}

	for _, raw := range cases {
		err := v.Payment(context.Background(), payment(t, raw))
		requireRejection(t, err, ReasonAmountRequired)
	}
}

func TestPaymentPathsSkipAllChecks(t *testing.T) {
	// Balance is insufficient, but an explicit path set accepts anyway.
	v := quietValidator(&fakeReader{balances: map[string]string{alice: "0"}})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount":      "5000000",
		"Paths":       []any{[]any{map[string]any{"currency": "USD"}}},
	})

	require.NoError(t, v.Payment(context.Background(), p))
}

func TestPaymentNoTrustLine(t *testing.T) {
	v := quietValidator(&fakeReader{})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	rej := requireRejection(t, v.Payment(context.Background(), p), ReasonNoTrustLine)
	assert.Equal(t, "USD", rej.Params["currency"])
}

func TestPaymentZeroedTrustLineCountsAsMissing(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|USD|" + issuer: {Currency: "USD", Balance: "0", Limit: "0"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	requireRejection(t, v.Payment(context.Background(), p), ReasonNoTrustLine)
}

func TestPaymentToIssuerNeedsNoTrustLine(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		alice + "|USD|" + issuer: {Currency: "USD", Balance: "50", Limit: "100"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": issuer,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	require.NoError(t, v.Payment(context.Background(), p))
}

func TestPaymentNativeInsufficientBalance(t *testing.T) {
	v := quietValidator(&fakeReader{balances: map[string]string{alice: "4.5"}})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount":      "5000000",
	})

	rej := requireRejection(t, v.Payment(context.Background(), p), ReasonInsufficientBalance)
	assert.Equal(t, "4.5", rej.Params["spendable"])
}

func TestPaymentNativeSufficientBalance(t *testing.T) {
	v := quietValidator(&fakeReader{balances: map[string]string{alice: "5"}})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount":      "5000000",
	})

	require.NoError(t, v.Payment(context.Background(), p))
}

func TestPaymentBalanceLookupFailureIsFatal(t *testing.T) {
	v := quietValidator(&fakeReader{balanceErr: errors.New("node unreachable")})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount":      "5000000",
	})

	requireRejection(t, v.Payment(context.Background(), p), ReasonAccountLookupFailed)
}

func TestPaymentSendMaxOverridesNativeCheck(t *testing.T) {
	// IOU delivery funded by native SendMax: the native check runs against
	// SendMax, not Amount.
	reader := &fakeReader{
		balances: map[string]string{alice: "2"},
		lines: map[string]*service.TrustLineView{
			bob + "|USD|" + issuer: {Currency: "USD", Balance: "0", Limit: "100"},
		},
	}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
		"SendMax": "3000000",
	})

	requireRejection(t, v.Payment(context.Background(), p), ReasonInsufficientBalance)
}

func TestPaymentFrozenLine(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|USD|" + issuer:   {Currency: "USD", Balance: "1", Limit: "100"},
		alice + "|USD|" + issuer: {Currency: "USD", Balance: "1000", Limit: "5000", FreezePeer: true},
	}}
	v := quietValidator(reader)

	// Balance would be sufficient; the freeze must win regardless.
	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	requireRejection(t, v.Payment(context.Background(), p), ReasonFrozenLine)
}

func TestPaymentIssuedInsufficientBalance(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|USD|" + issuer:   {Currency: "USD", Balance: "1", Limit: "100"},
		alice + "|USD|" + issuer: {Currency: "USD", Balance: "5", Limit: "5000"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	rej := requireRejection(t, v.Payment(context.Background(), p), ReasonInsufficientBalance)
	assert.Equal(t, "5", rej.Params["spendable"])
}

func TestPaymentMissingSourceLineAcceptsOptimistically(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|USD|" + issuer: {Currency: "USD", Balance: "1", Limit: "100"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	require.NoError(t, v.Payment(context.Background(), p))
}

func TestPaymentIssuerObligationLimit(t *testing.T) {
	// Alice issues her own currency to Bob. Bob's limit is 100 and Alice
	// already owes 95, so issuing 10 more must be rejected.
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|ABC|" + alice: {Currency: "ABC", Balance: "95", Limit: "100"},
		alice + "|ABC|" + bob: {Currency: "ABC", Balance: "-95", LimitPeer: "100"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "ABC", "value": "10", "issuer": alice,
		},
	})

	rej := requireRejection(t, v.Payment(context.Background(), p), ReasonTrustLineLimitExceeded)
	assert.Equal(t, "95", rej.Params["balance"])
	assert.Equal(t, "100", rej.Params["peer_limit"])
	assert.Equal(t, "5", rej.Params["available"])
}

func TestPaymentIssuerObligationWithinLimit(t *testing.T) {
	reader := &fakeReader{lines: map[string]*service.TrustLineView{
		bob + "|ABC|" + alice: {Currency: "ABC", Balance: "95", Limit: "200"},
		alice + "|ABC|" + bob: {Currency: "ABC", Balance: "-95", LimitPeer: "200"},
	}}
	v := quietValidator(reader)

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "ABC", "value": "10", "issuer": alice,
		},
	})

	require.NoError(t, v.Payment(context.Background(), p))
}

func TestPaymentUnexpectedLookupFailure(t *testing.T) {
	v := quietValidator(&fakeReader{lineErr: errors.New("boom")})

	p := payment(t, fields.Doc{
		"Account":     alice,
		"Destination": bob,
		"Amount": map[string]any{
			"currency": "USD", "value": "10", "issuer": issuer,
		},
	})

	rej := requireRejection(t, v.Payment(context.Background(), p), ReasonUnexpected)
	// The cause stays internal for diagnostics but is never the message.
	require.ErrorContains(t, rej.Unwrap(), "boom")
}

func TestRejectionLocalize(t *testing.T) {
	rej := reject(ReasonNoTrustLine, map[string]string{"currency": "USD"})
	msg := rej.Localize(locale.Default())
	assert.Contains(t, msg, "USD")
	assert.NotContains(t, msg, "{{")
}
