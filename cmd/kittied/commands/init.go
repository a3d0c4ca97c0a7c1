package commands

import (
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/shenzhen-arrom/kitties/config"
)

var initFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize registry node home directory",
	Run:   initFiles,
}

func init() {
	initFilesCmd.Flags().String("chain_id", config.ChainID, "Select [kittynet], [kittennet] or [solonet]")

	RootCmd.AddCommand(initFilesCmd)
}

func initFiles(cmd *cobra.Command, args []string) {
	configFilePath := path.Join(config.RootDir, "config.toml")
	if _, err := os.Stat(configFilePath); !os.IsNotExist(err) {
		log.WithFields(log.Fields{"module": logModule, "config": configFilePath}).Panic("Already exists config file.")
	}

	switch config.ChainID {
	case "kittynet", "kittennet":
		cfg.EnsureRoot(config.RootDir, config.ChainID)
	default:
		cfg.EnsureRoot(config.RootDir, "solonet")
	}

	log.WithFields(log.Fields{"module": logModule, "config": configFilePath}).Info("Initialized kittied")
}
