package commands

import (
	"fmt"
	"strings"

	"github.com/hyhieu/easy-pybind/internal/output"
	"github.com/hyhieu/easy-pybind/internal/planner"
	"github.com/spf13/cobra"
)

// PlanCmd creates and returns the 'plan' command, which prints the file set
// create would write without rendering or writing anything
func PlanCmd() *cobra.Command {
	var (
		mf     moduleFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "plan [module-name]",
		Short: "Show the files create would write",
		Example: `  easy-pybind plan widget --with-pytest
  easy-pybind plan fastmath --cuda -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			name, err := resolveModuleName(cmd.Context(), &mf, args, false)
			if err != nil {
				return err
			}

			plan, err := planner.Build(name, cfg.Flags())
			if err != nil {
				return err
			}

			if outFormat != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), outFormat, plan)
			}

			t := output.NewTable("PATH", "ROLE", "VARIANT", "MODE")
			for _, e := range plan.Entries {
				mode := "0644"
				if e.Executable {
					mode = "0755"
				}
				t.Row(plan.Root+"/"+e.Path, string(e.Role), string(e.Variant), mode)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			if len(plan.Excluded) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Not generated with these options: %s\n", strings.Join(plan.Excluded, ", "))
			}
			return nil
		},
	}

	addModuleFlags(cmd, &mf)
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}
