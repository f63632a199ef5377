// Package cli — add.go implements the "confplan add" command.
//
// By default each file is appended to the package's list for the group,
// in argument order, even if it is already listed. With --replace-all the
// package's list is overwritten by the given files instead. The plan file
// is created if it does not exist yet.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/confplan/internal/model"
)

// addFlags holds the flag values for the add command.
type addFlags struct {
	pkg        string // --package
	group      string // --group
	env        string // --env
	replaceAll bool   // --replace-all: overwrite instead of append
}

// NewAddCommand creates the "add" cobra command.
func NewAddCommand() *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Register config files for a package in a group",
		Long: `Register config files for a package in a group.

Files are appended in the order given. Adding a file that is already
listed lists it twice; use --replace-all to set the package's complete
file list instead.

Examples:
  confplan add config/web.php --package / --group web
  confplan add config/a.php config/b.php -p vendor/pkg -g web --env prod --replace-all`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.OutOrStdout(), args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.pkg, "package", "p", "", "Package name (\"/\" for the root package)")
	cmd.Flags().StringVarP(&flags.group, "group", "g", "", "Group name")
	cmd.Flags().StringVarP(&flags.env, "env", "e", "", "Environment name (default: the default environment)")
	cmd.Flags().BoolVar(&flags.replaceAll, "replace-all", false, "Replace the package's file list instead of appending")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func runAdd(w io.Writer, files []string, flags *addFlags) error {
	plan, path, err := loadPlan(true)
	if err != nil {
		return err
	}

	if flags.replaceAll {
		plan.AddMultiple(files, flags.pkg, flags.group, flags.env)
	} else {
		for _, file := range files {
			plan.Add(file, flags.pkg, flags.group, flags.env)
		}
	}

	if err := savePlan(plan, path); err != nil {
		return err
	}

	current := plan.GetGroup(flags.group, flags.env)[flags.pkg]
	if IsJSONOutput() {
		return writeJSON(w, showGroupJSON{
			Environment: normalizeEnv(flags.env),
			Group:       flags.group,
			Packages:    model.PackageFiles{flags.pkg: current},
		})
	}

	printSuccess(w, fmt.Sprintf("%s now lists %d file(s) for %s",
		model.PackageLabel(flags.pkg), len(current), GroupTitle(flags.group, flags.env)))
	return nil
}
