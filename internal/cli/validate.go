package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidewallet/walletcore/internal/ledger/service"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
	"github.com/tidewallet/walletcore/internal/ledger/validate"
	"github.com/tidewallet/walletcore/internal/locale"
)

var (
	validateFixture string
	validateTimeout time.Duration
)

var validateCmd = &cobra.Command{
	Use:   "validate [tx-file]",
	Short: "Run pre-submission validation on a payment",
	Long: `Validate runs the payment validation pipeline on a transaction JSON file
against ledger state loaded from a fixture file: the sender's spendable
balance, the destination's trust lines, and issuer obligations.

The fixture is a JSON document with per-account balances and trust lines:

    {
      "accounts": {"rSender...": {"available_balance": "100"}},
      "lines": [
        {"account": "rDest...", "currency": "USD", "issuer": "rIssuer...",
         "balance": "5", "limit": "100", "limit_peer": "0"}
      ]
    }

The command exits 0 when the payment passes, 1 when it is rejected, and
prints the rejection message in the configured locale.

Example:
    walletcore validate payment.json --fixture state.json`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFixture, "fixture", "f", "", "Ledger state fixture file (required)")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 10*time.Second, "Validation deadline")
	validateCmd.MarkFlagRequired("fixture")
}

func runValidate(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read %s: %v\n", args[0], err)
		os.Exit(1)
	}
	txn, err := tx.FromJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to parse transaction: %v\n", err)
		os.Exit(1)
	}
	payment, ok := txn.(*tx.Payment)
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: validation only applies to Payment transactions, got %s\n", typeName(txn))
		os.Exit(1)
	}

	reader, err := loadFixtureReader(validateFixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load fixture: %v\n", err)
		os.Exit(1)
	}

	validator := validate.New(reader)
	if !verbose {
		validator.SetLogger(log.New(io.Discard, "", 0))
	}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	if err := validator.Payment(ctx, payment); err != nil {
		var rejection *validate.Rejection
		if errors.As(err, &rejection) {
			fmt.Printf("REJECTED: %s\n", rejection.Localize(locale.Default()))
		} else {
			fmt.Printf("REJECTED: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Println("OK")
}

// fixtureState mirrors the fixture file layout.
type fixtureState struct {
	Accounts map[string]struct {
		AvailableBalance string `json:"available_balance"`
	} `json:"accounts"`
	Lines []fixtureLine `json:"lines"`
}

type fixtureLine struct {
	Account string `json:"account"`
	Issuer  string `json:"issuer"`
	service.TrustLineView
}

// fixtureReader serves ledger lookups from a static fixture. Accounts not
// present in the fixture fail their balance lookup, matching a node that
// knows nothing about them.
type fixtureReader struct {
	state fixtureState
}

func loadFixtureReader(path string) (*fixtureReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state fixtureState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &fixtureReader{state: state}, nil
}

func (f *fixtureReader) AvailableBalance(ctx context.Context, address string) (string, error) {
	acct, ok := f.state.Accounts[address]
	if !ok {
		return "", fmt.Errorf("%w: account %s not in fixture", service.ErrLookupFailed, address)
	}
	return acct.AvailableBalance, nil
}

func (f *fixtureReader) FilteredAccountLine(ctx context.Context, address string, filter service.LineFilter) (*service.TrustLineView, error) {
	for _, line := range f.state.Lines {
		if line.Account == address && line.Currency == filter.Currency && line.Issuer == filter.Issuer {
			view := line.TrustLineView
			return &view, nil
		}
	}
	return nil, nil
}

func (f *fixtureReader) Transactions(ctx context.Context, address string, marker string, limit int) (service.TransactionsPage, error) {
	return service.TransactionsPage{}, nil
}
