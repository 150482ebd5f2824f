package commands

import (
	"fmt"
	"runtime"

	easypybind "github.com/hyhieu/easy-pybind"
	"github.com/spf13/cobra"
)

// VersionCmd creates and returns the 'version' command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the easy-pybind version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "easy-pybind %s (%s, %s/%s)\n",
				easypybind.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
