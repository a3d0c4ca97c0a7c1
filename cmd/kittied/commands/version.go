package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/shenzhen-arrom/kitties/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kittied",
	Run: func(cmd *cobra.Command, args []string) {
		jww.FEEDBACK.Printf("kittied v%s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
