// Package cli — export.go implements the "confplan export" command, which
// prints the whole merge plan in JSON or YAML for other tools to consume.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/confplan/internal/model"
	"github.com/shinji-kodama/confplan/internal/planfile"
)

// NewExportCommand creates the "export" cobra command.
func NewExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the whole merge plan",
		Long: `Print the whole merge plan as environment → group → package → files.

Keys are sorted; the order of each file list is the merge order.

Examples:
  confplan export
  confplan export --format yaml --plan var/merge-plan.json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml")

	return cmd
}

func runExport(w io.Writer, format string) error {
	f, err := planfile.ParseFormat(format)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid --format", err)
	}

	plan, _, err := loadPlan(false)
	if err != nil {
		return err
	}

	data, err := planfile.Marshal(plan.ToArray(), f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
