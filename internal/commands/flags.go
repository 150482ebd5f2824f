package commands

import (
	"context"
	"fmt"

	"github.com/hyhieu/easy-pybind/internal/config"
	"github.com/hyhieu/easy-pybind/internal/input"
	"github.com/hyhieu/easy-pybind/internal/planner"
	"github.com/spf13/cobra"
)

// moduleFlags are the options shared by create and plan.
type moduleFlags struct {
	moduleName string
}

// addModuleFlags registers the module name, path and feature switches.
// Every switch gets a --no- twin so that config-file defaults can be turned off.
func addModuleFlags(cmd *cobra.Command, f *moduleFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.moduleName, "module-name", "n", "", "Name of the module (letters, digits, underscores)")
	flags.String(config.FlagName(config.KeyModulePath), ".", "Directory in which the module directory is created")

	switches := []struct {
		key   string
		def   bool
		usage string
	}{
		{config.KeyWithGitignore, true, "Write a .gitignore"},
		{config.KeyWithPytest, false, "Write a pytest smoke test"},
		{config.KeyWithPymain, false, "Write a demo main.py"},
		{config.KeyCUDA, false, "Use a CUDA implementation built with nvcc"},
	}
	for _, s := range switches {
		name := config.FlagName(s.key)
		flags.Bool(name, s.def, s.usage)
		flags.Bool("no-"+name, false, "Disable --"+name)
	}
}

// loadConfig resolves defaults for cmd from the config file, the
// environment and the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := config.Options{Flags: cmd.Flags()}
	if f := cmd.Flag("config"); f != nil {
		opts.File = f.Value.String()
	}
	return config.Load(opts)
}

// resolveModuleName returns the module name from the flag or the first
// argument, prompting for it on a terminal when neither is given.
func resolveModuleName(ctx context.Context, f *moduleFlags, args []string, interactive bool) (string, error) {
	name := f.moduleName
	if len(args) > 0 {
		if name != "" && name != args[0] {
			return "", fmt.Errorf("module name given twice: %q and --module-name %q", args[0], name)
		}
		name = args[0]
	}
	if name != "" {
		return name, nil
	}

	if !interactive {
		// Reported as an empty, hence invalid, module name.
		return "", planner.ValidateModuleName("")
	}
	return input.Prompt(ctx, "Module name", "my_module", planner.ValidateModuleName)
}
