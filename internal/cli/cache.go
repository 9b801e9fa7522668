package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidewallet/walletcore/internal/ledger/tx"
	"github.com/tidewallet/walletcore/internal/storage/txcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local transaction cache",
	Long: `Cache inspects the local raw-transaction cache configured via
[cache] in the configuration file (or WALLETCORE_CACHE_* environment
variables). The memory backend is empty on every run; use the pebble or
leveldb backend with a cache.path to inspect persisted entries.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached transaction hashes",
	Args:  cobra.NoArgs,
	Run:   runCacheList,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show [hash]",
	Short: "Print a cached transaction as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runCacheShow,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheShowCmd)
}

func openStore() *txcache.Store {
	cfg := loadConfig()
	kv, err := txcache.OpenKV(txcache.Backend(cfg.Cache.Backend), cfg.Cache.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open cache: %v\n", err)
		os.Exit(1)
	}
	store := txcache.NewStore(kv)
	store.SetCompression(cfg.Cache.Compression)
	return store
}

func runCacheList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	hashes, err := store.Hashes(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	for _, hash := range hashes {
		fmt.Println(hash)
	}
}

func runCacheShow(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	rawJSON, metaJSON, err := store.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, txcache.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "ERROR: %s is not cached\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	envelope := map[string]json.RawMessage{"tx": rawJSON}
	if len(metaJSON) > 0 {
		envelope["meta"] = metaJSON
	}
	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	txn, err := tx.FromJSON(out)
	if err == nil {
		fmt.Printf("\nType: %s\n", typeName(txn))
	}
}
