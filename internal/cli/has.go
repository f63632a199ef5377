// Package cli — has.go implements the "confplan has" command family.
//
// The subcommands answer the existence queries of the merge plan:
//
//	confplan has env <environment>
//	confplan has group <group> [--env ENV]
//	confplan has config <file> --package P --group G [--env ENV]
//
// The answer is printed as true or false. Absence is never an error, so
// the exit code is 0 either way unless the plan file itself cannot be read.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// hasFlags holds the flag values shared by the has subcommands.
type hasFlags struct {
	env   string
	pkg   string
	group string
}

// NewHasCommand creates the "has" cobra command and its subcommands.
func NewHasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has",
		Short: "Check whether an environment, group or config file is in the plan",
	}

	cmd.AddCommand(newHasEnvCommand())
	cmd.AddCommand(newHasGroupCommand())
	cmd.AddCommand(newHasConfigCommand())

	return cmd
}

func newHasEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env <environment>",
		Short: "Check whether an environment exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(false)
			if err != nil {
				return err
			}
			return printExists(cmd.OutOrStdout(), plan.HasEnvironment(args[0]))
		},
	}
}

func newHasGroupCommand() *cobra.Command {
	flags := &hasFlags{}

	cmd := &cobra.Command{
		Use:   "group <group>",
		Short: "Check whether a group exists in an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(false)
			if err != nil {
				return err
			}
			return printExists(cmd.OutOrStdout(), plan.HasGroup(args[0], flags.env))
		},
	}

	cmd.Flags().StringVarP(&flags.env, "env", "e", "", "Environment name (default: the default environment)")

	return cmd
}

func newHasConfigCommand() *cobra.Command {
	flags := &hasFlags{}

	cmd := &cobra.Command{
		Use:   "config <file>",
		Short: "Check whether a package registers a file in a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(false)
			if err != nil {
				return err
			}
			return printExists(cmd.OutOrStdout(), plan.HasConfig(args[0], flags.pkg, flags.group, flags.env))
		},
	}

	cmd.Flags().StringVarP(&flags.pkg, "package", "p", "", "Package name")
	cmd.Flags().StringVarP(&flags.group, "group", "g", "", "Group name")
	cmd.Flags().StringVarP(&flags.env, "env", "e", "", "Environment name (default: the default environment)")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func printExists(w io.Writer, exists bool) error {
	if IsJSONOutput() {
		return writeJSON(w, map[string]bool{"exists": exists})
	}
	_, err := fmt.Fprintln(w, exists)
	return err
}
