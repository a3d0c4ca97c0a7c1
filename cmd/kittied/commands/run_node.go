package commands

import (
	"github.com/spf13/cobra"

	logmod "github.com/shenzhen-arrom/kitties/log"
	"github.com/shenzhen-arrom/kitties/node"
)

var runNodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run the kittied",
	RunE:  runNode,
}

func init() {
	runNodeCmd.Flags().String("chain_id", config.ChainID, "Select network type")
	runNodeCmd.Flags().String("db_backend", config.DBBackend, "Database backend: leveldb | memdb | sqlite | mysql")
	runNodeCmd.Flags().String("api_addr", config.ApiAddr, "Listen address of the HTTP API")
	runNodeCmd.Flags().String("log_level", config.LogLevel, "Select log level(debug, info, warn, error or fatal)")
	runNodeCmd.Flags().Bool("log_file", config.LogFile, "Write rotated per-module log files")
	runNodeCmd.Flags().Uint64("registry.stake", config.Registry.Stake, "Balance reserved for each kitty held")

	RootCmd.AddCommand(runNodeCmd)
}

func runNode(cmd *cobra.Command, args []string) error {
	logmod.SetLogLevel(config.LogLevel)

	n := node.NewNode(config)
	defer n.Stop()
	n.Run()
	return nil
}
