package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidewallet/walletcore/internal/config"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "walletcore",
	Short: "walletcore - XRPL wallet transaction toolkit",
	Long: `walletcore is the ledger-facing core of an XRP Ledger wallet: a typed
transaction model, amount normalization between drops and decimal XRP,
pre-submission payment validation, and a local raw-transaction cache.

It operates on transaction JSON as returned by XRPL nodes and never signs
or submits anything.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig resolves the effective configuration for a command run. The
// --conf flag wins; otherwise defaults plus WALLETCORE_* environment
// variables apply.
func loadConfig() *config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
