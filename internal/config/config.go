// Package config loads the wallet-core configuration: the network profile
// the amount and validation layers depend on, and the local cache settings.
package config

import (
	"fmt"
	"regexp"

	"github.com/tidewallet/walletcore/internal/storage/txcache"
)

// NetworkConfig describes the ledger network the wallet talks to.
type NetworkConfig struct {
	// NativeAsset is the network's native currency code.
	NativeAsset string `mapstructure:"native_asset"`

	// ReserveBase and ReserveIncrement are the network's account reserve
	// parameters in native units, kept for display; spendable balance
	// already arrives reserve-adjusted from the ledger reader.
	ReserveBase      string `mapstructure:"reserve_base"`
	ReserveIncrement string `mapstructure:"reserve_increment"`
}

// CacheConfig describes the local raw-document cache.
type CacheConfig struct {
	Path    string `mapstructure:"path"`
	Backend string `mapstructure:"backend"`

	// Compression toggles lz4 compression of stored records.
	Compression bool `mapstructure:"compression"`
}

type Config struct {
	Network NetworkConfig `mapstructure:"network"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Locale  string        `mapstructure:"locale"`

	configPath string
}

// ConfigPath returns the file the configuration was loaded from, empty
// when defaults and environment were the only sources.
func (c *Config) ConfigPath() string { return c.configPath }

var currencyCodePattern = regexp.MustCompile(`^[A-Z0-9]{3}$`)

// Validate checks the configuration for values the rest of the core would
// choke on later.
func Validate(c *Config) error {
	if !currencyCodePattern.MatchString(c.Network.NativeAsset) {
		return fmt.Errorf("native_asset %q is not a three-character currency code", c.Network.NativeAsset)
	}

	switch txcache.Backend(c.Cache.Backend) {
	case txcache.BackendMemory, txcache.BackendPebble, txcache.BackendLevelDB:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if txcache.Backend(c.Cache.Backend) != txcache.BackendMemory && c.Cache.Path == "" {
		return fmt.Errorf("cache backend %q requires cache.path", c.Cache.Backend)
	}
	return nil
}
