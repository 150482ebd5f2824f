package commands

import (
	easypybind "github.com/hyhieu/easy-pybind"
	"github.com/hyhieu/easy-pybind/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the easy-pybind CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "easy-pybind",
		Short: "Scaffold pybind11 native extension modules",
		Long: `easy-pybind creates a ready-to-build Python native extension module:
• a pybind11 binding source and a C++ (or CUDA) implementation
• build.sh and clean.sh scripts
• optionally a .gitignore, a pytest smoke test and a demo main.py

Defaults can be set in .easy-pybind.yaml or EASY_PYBIND_* environment variables.`,
		Version:       easypybind.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(verbose)
			output.SetWriter(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Config file (default: .easy-pybind.yaml in the working directory or $HOME)")

	return cmd
}

// NewApp returns the root command with every subcommand registered.
func NewApp() *cobra.Command {
	rootCmd := RootCmd()
	rootCmd.AddCommand(CreateCmd())
	rootCmd.AddCommand(PlanCmd())
	rootCmd.AddCommand(TemplatesCmd())
	rootCmd.AddCommand(VersionCmd())
	return rootCmd
}
