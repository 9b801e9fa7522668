package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidewallet/walletcore/internal/ledger/amount"
)

var convertToDrops bool

var convertCmd = &cobra.Command{
	Use:   "convert [value]",
	Short: "Convert between drops and decimal XRP",
	Long: `Convert a native amount between its two representations: integer drops
(the on-ledger encoding) and decimal XRP (the human one).

By default the argument is read as drops and printed as decimal XRP.
With --to-drops the argument is read as decimal XRP and printed as drops;
values with more than six decimal places are rejected rather than rounded.

Example:
    walletcore convert 1337500
    walletcore convert --to-drops 1.3375`,
	Args: cobra.ExactArgs(1),
	Run:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&convertToDrops, "to-drops", false, "Read the argument as decimal XRP and print drops")
}

func runConvert(cmd *cobra.Command, args []string) {
	value := args[0]

	var out string
	var err error
	if convertToDrops {
		out, err = amount.NativeToDrops(value)
	} else {
		out, err = amount.DropsToNative(value)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
