package commands

import (
	"fmt"
	"path/filepath"

	"github.com/hyhieu/easy-pybind/internal/catalog"
	"github.com/hyhieu/easy-pybind/internal/input"
	"github.com/hyhieu/easy-pybind/internal/materialize"
	"github.com/hyhieu/easy-pybind/internal/output"
	"github.com/hyhieu/easy-pybind/internal/scaffold"
	"github.com/spf13/cobra"
)

// isInteractive is swapped out by tests.
var isInteractive = input.IsInteractive

// CreateCmd creates and returns the 'create' command for scaffolding modules
func CreateCmd() *cobra.Command {
	var (
		mf     moduleFlags
		dryRun bool
		diff   bool
	)

	cmd := &cobra.Command{
		Use:   "create [module-name]",
		Short: "Create a new native extension module",
		Long: `Creates <module-path>/<module-name> containing:
• build.sh and clean.sh (executable)
• src/<name>.cc, the pybind11 binding
• src/<name>_impl.h and src/<name>_impl.cc (or _impl.cu with --cuda)
• .gitignore, <name>_test.py and main.py as selected

Running create again overwrites the generated files with fresh copies.
Files it did not generate are left alone.`,
		Example: `  easy-pybind create widget
  easy-pybind create --module-name fastmath --cuda --no-with-gitignore
  easy-pybind create widget --with-pytest --dry-run --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				output.Debug("loaded config", "file", cfg.File)
			}

			name, err := resolveModuleName(cmd.Context(), &mf, args, isInteractive())
			if err != nil {
				return err
			}

			cat, err := catalog.New()
			if err != nil {
				return err
			}

			result, err := scaffold.New(cat).Run(cmd.Context(), scaffold.Options{
				ModuleName: name,
				TargetDir:  cfg.ModulePath,
				Flags:      cfg.Flags(),
				DryRun:     dryRun,
				Diff:       diff,
				Writer:     cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			printCreateSummary(result)
			return nil
		},
	}

	addModuleFlags(cmd, &mf)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff for every file that would be overwritten")

	return cmd
}

func printCreateSummary(result *scaffold.Result) {
	counts := map[materialize.Status]int{}
	for _, f := range result.Files {
		counts[f.Status]++
	}
	summary := fmt.Sprintf("%d created, %d updated, %d unchanged",
		counts[materialize.StatusCreated], counts[materialize.StatusUpdated], counts[materialize.StatusUnchanged])

	if result.DryRun {
		output.Info(fmt.Sprintf("Dry run for %s: %s (nothing written)", result.Root, summary))
	} else {
		output.Success(fmt.Sprintf("Created module %s in %s (%s)", result.Plan.Root, result.Root, summary))
	}

	for _, stale := range result.Stale {
		output.Warn(fmt.Sprintf("%s was not generated by this run; remove it if you no longer need it",
			filepath.Join(result.Root, filepath.FromSlash(stale))))
	}

	if result.DryRun {
		return
	}

	output.Info("Next steps:")
	output.Step(fmt.Sprintf("cd %s", result.Root))
	output.Step("./build.sh")
	for _, e := range result.Plan.Entries {
		switch e.Role {
		case catalog.RoleTestStub:
			output.Step(fmt.Sprintf("pytest %s", e.Path))
		case catalog.RoleDemoEntryPoint:
			output.Step(fmt.Sprintf("python3 %s", e.Path))
		}
	}
}
