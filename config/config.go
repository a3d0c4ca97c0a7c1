package config

import (
	"path/filepath"
)

type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`
	// Options for services
	Registry *RegistryConfig `mapstructure:"registry"`
	Ledger   *LedgerConfig   `mapstructure:"ledger"`
}

// Default configurable parameters.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: DefaultBaseConfig(),
		Registry:   DefaultRegistryConfig(),
		Ledger:     DefaultLedgerConfig(),
	}
}

// Set the RootDir for all Config structs
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

//-----------------------------------------------------------------------------
// BaseConfig
type BaseConfig struct {
	// The root directory for all data.
	RootDir string `mapstructure:"home"`

	// The name of this registry network
	ChainID string `mapstructure:"chain_id"`

	// Database backend: leveldb | memdb | sqlite | mysql
	DBBackend string `mapstructure:"db_backend"`

	// Path (relative to RootDir) of the database directory
	DBPath string `mapstructure:"db_dir"`

	// Connection string for the mysql backend; unused otherwise
	DBDSN string `mapstructure:"db_dsn"`

	// Listen address of the HTTP API
	ApiAddr string `mapstructure:"api_addr"`

	// Enable rotated per-module log files under LogDir()
	LogFile bool `mapstructure:"log_file"`

	// Log level: debug | info | warn | error | fatal
	LogLevel string `mapstructure:"log_level"`
}

// Default configurable base parameters.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		ChainID:   "kittynet",
		DBBackend: "leveldb",
		DBPath:    "data",
		ApiAddr:   "0.0.0.0:9889",
		LogLevel:  "info",
	}
}

func (b BaseConfig) DBDir() string {
	return rootify(b.DBPath, b.RootDir)
}

func (b BaseConfig) LogDir() string {
	return rootify("log", b.RootDir)
}

//-----------------------------------------------------------------------------
// RegistryConfig
type RegistryConfig struct {
	// Balance reserved from the owner for each kitty held
	Stake uint64 `mapstructure:"stake"`

	// Upper bound of the kitty identifier space; 0 means the full
	// uint64 range
	MaxIndex uint64 `mapstructure:"max_index"`
}

func DefaultRegistryConfig() *RegistryConfig {
	return &RegistryConfig{
		Stake: 1000,
	}
}

//-----------------------------------------------------------------------------
// LedgerConfig
type LedgerConfig struct {
	// Minimum balance a keep-alive transfer must preserve
	ExistentialDeposit uint64 `mapstructure:"existential_deposit"`

	// Accounts funded at startup
	GenesisAccounts []GenesisAccount `mapstructure:"genesis_accounts"`
}

type GenesisAccount struct {
	Account string `mapstructure:"account"`
	Balance uint64 `mapstructure:"balance"`
}

func DefaultLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		ExistentialDeposit: 100,
		GenesisAccounts: []GenesisAccount{
			{Account: "alice", Balance: 1000000},
			{Account: "bob", Balance: 1000000},
		},
	}
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
