package config

import (
	"os"
	"path"
)

/****** these are for production settings ***********/
func EnsureRoot(rootDir string, network string) {
	if err := os.MkdirAll(rootDir, 0700); err != nil {
		panic(err.Error())
	}
	if err := os.MkdirAll(path.Join(rootDir, "data"), 0700); err != nil {
		panic(err.Error())
	}

	configFilePath := path.Join(rootDir, "config.toml")

	// Write default config file if missing.
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if err := os.WriteFile(configFilePath, []byte(selectNetwork(network)), 0644); err != nil {
			panic(err.Error())
		}
	}
}

var defaultConfigTmpl = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml
db_backend = "leveldb"
api_addr = "0.0.0.0:9889"
log_level = "info"

[registry]
stake = 1000

[ledger]
existential_deposit = 100

[[ledger.genesis_accounts]]
account = "alice"
balance = 1000000

[[ledger.genesis_accounts]]
account = "bob"
balance = 1000000
`

var mainNetConfigTmpl = `chain_id = "kittynet"
`

var testNetConfigTmpl = `chain_id = "kittennet"
`

var soloNetConfigTmpl = `chain_id = "solonet"
`

// Select network template to merge a new string.
func selectNetwork(network string) string {
	switch network {
	case "kittynet":
		return defaultConfigTmpl + mainNetConfigTmpl
	case "kittennet":
		return defaultConfigTmpl + testNetConfigTmpl
	default:
		return defaultConfigTmpl + soloNetConfigTmpl
	}
}
