package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd reports the build and the Go toolchain it was compiled with.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the tubeqa build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("tubeqa version %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
