package commands

import (
	"fmt"
	"path"
	"strings"

	"github.com/hyhieu/easy-pybind/internal/catalog"
	"github.com/hyhieu/easy-pybind/internal/output"
	"github.com/spf13/cobra"
)

type templateInfo struct {
	Role         string   `json:"role" yaml:"role"`
	Variant      string   `json:"variant" yaml:"variant"`
	Source       string   `json:"source" yaml:"source"`
	Placeholders []string `json:"placeholders" yaml:"placeholders"`
	Description  string   `json:"description" yaml:"description"`
}

// TemplatesCmd creates and returns the 'templates' command, which lists the
// built-in template catalog
func TemplatesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			cat, err := catalog.New()
			if err != nil {
				return err
			}

			var infos []templateInfo
			for _, tmpl := range cat.Templates() {
				infos = append(infos, templateInfo{
					Role:         string(tmpl.Role),
					Variant:      string(tmpl.Variant),
					Source:       path.Base(tmpl.Source),
					Placeholders: tmpl.Placeholders(),
					Description:  tmpl.Description,
				})
			}

			if outFormat != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), outFormat, infos)
			}

			t := output.NewTable("ROLE", "VARIANT", "TEMPLATE", "PLACEHOLDERS", "DESCRIPTION")
			for _, info := range infos {
				placeholders := strings.Join(info.Placeholders, ", ")
				if placeholders == "" {
					placeholders = "-"
				}
				t.Row(info.Role, info.Variant, info.Source, placeholders, info.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: "+strings.Join(output.ValidFormats(), ", "))

	return cmd
}
