package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidewallet/walletcore/internal/ledger/explain"
	"github.com/tidewallet/walletcore/internal/ledger/tx"
)

var inspectPerspective string

var inspectCmd = &cobra.Command{
	Use:   "inspect [tx-file]",
	Short: "Parse a transaction JSON file and describe it",
	Long: `Inspect parses a transaction JSON file (a bare tx object, or an envelope
with "tx"/"transaction" and optional "meta" keys, as returned by XRPL
nodes) and prints the typed view walletcore derives from it: the
transaction type, its participants, and the monetary effect from one
account's perspective.

Unknown transaction types are still parsed; their common fields are shown
and the type name is reported as-is.

Example:
    walletcore inspect payment.json
    walletcore inspect payment.json --perspective rDest...`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectPerspective, "perspective", "p", "", "Account to describe the transaction for (default: the sending account)")
}

func runInspect(cmd *cobra.Command, args []string) {
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

	perspective := inspectPerspective
	if perspective == "" {
		perspective, _ = txn.Base().Account()
	}

	desc := explain.Describe(txn, perspective)

	fmt.Printf("Type:        %s\n", typeName(txn))
	if hash, ok := txn.Base().Hash(); ok {
		fmt.Printf("Hash:        %s\n", hash)
	}
	fmt.Printf("Label:       %s\n", desc.Label)
	if desc.Participants.Source != "" {
		fmt.Printf("Source:      %s\n", desc.Participants.Source)
	}
	if desc.Participants.Destination != "" {
		fmt.Printf("Destination: %s\n", desc.Participants.Destination)
	}
	if desc.Effect != explain.EffectNone {
		fmt.Printf("Effect:      %s %s\n", desc.Effect, desc.Amount)
	}
	if result, ok := txn.Base().TransactionResult(); ok {
		fmt.Printf("Result:      %s\n", result)
	}
}

func typeName(txn tx.Transaction) string {
	if f, ok := txn.(*tx.Fallback); ok {
		return f.Discriminator()
	}
	return txn.TxType().String()
}
