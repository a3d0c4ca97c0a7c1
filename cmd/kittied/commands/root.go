package commands

import (
	"os"
	"os/user"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/shenzhen-arrom/kitties/config"
)

const logModule = "cmd"

var (
	config = cfg.DefaultConfig()
)

// RootCmd is the command for run node
var RootCmd = &cobra.Command{
	Use:   "kittied",
	Short: "Ledger-backed kitty registry.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		rootDir, err := expandHome(viper.GetString("home"))
		if err != nil {
			return err
		}

		configFile := path.Join(rootDir, "config.toml")
		if _, err := os.Stat(configFile); err == nil {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := viper.Unmarshal(config); err != nil {
			return err
		}
		config.SetRoot(rootDir)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("home", "~/.kittied", "root directory for config and data")
}

func expandHome(dir string) (string, error) {
	pathParts := strings.SplitN(dir, "/", 2)
	if len(pathParts) == 2 && (pathParts[0] == "~" || pathParts[0] == "$HOME") {
		usr, err := user.Current()
		if err != nil {
			return "", err
		}
		pathParts[0] = usr.HomeDir
		return strings.Join(pathParts, "/"), nil
	}
	return dir, nil
}

// Execute runs the root command and all of its children.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithFields(log.Fields{"module": logModule, "err": err}).Fatal("command failed")
	}
}
