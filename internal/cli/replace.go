// Package cli — replace.go implements the "confplan replace" command.
//
// The replace command moves a file reference from one package to another
// within a group: every occurrence of <file> under --package is removed
// and --with-file is registered once under --with-package. A package whose
// list becomes empty is dropped from the group. When --package does not
// list anything in the group, the plan is left untouched.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/confplan/internal/model"
)

// replaceFlags holds the flag values for the replace command.
type replaceFlags struct {
	pkg         string // --package: package that lists the file now
	withPackage string // --with-package: package that takes over
	group       string // --group
	withFile    string // --with-file: file registered in place of <file>
	env         string // --env
}

// NewReplaceCommand creates the "replace" cobra command.
func NewReplaceCommand() *cobra.Command {
	flags := &replaceFlags{}

	cmd := &cobra.Command{
		Use:   "replace <file>",
		Short: "Substitute a file of one package with a file of another",
		Long: `Substitute a file registered by one package with a file of another package.

Every occurrence of <file> under --package is removed, and --with-file is
added once under --with-package unless it is already listed there.

Examples:
  confplan replace config/routes.php -p vendor/http -g web --with-package / --with-file config/routes.php`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.pkg, "package", "p", "", "Package that currently lists the file")
	cmd.Flags().StringVar(&flags.withPackage, "with-package", "", "Package that registers the replacement")
	cmd.Flags().StringVarP(&flags.group, "group", "g", "", "Group name")
	cmd.Flags().StringVar(&flags.withFile, "with-file", "", "Replacement file")
	cmd.Flags().StringVarP(&flags.env, "env", "e", "", "Environment name (default: the default environment)")
	for _, name := range []string{"package", "with-package", "group", "with-file"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// replaceResultJSON is the JSON output of the replace command.
type replaceResultJSON struct {
	Replaced bool               `json:"replaced"`
	Packages model.PackageFiles `json:"packages"`
}

func runReplace(w io.Writer, file string, flags *replaceFlags) error {
	plan, path, err := loadPlan(false)
	if err != nil {
		return err
	}

	matched := plan.HasConfig(file, flags.pkg, flags.group, flags.env)
	if matched {
		plan.Replace(file, flags.pkg, flags.withPackage, flags.group, flags.withFile, flags.env)
		if err := savePlan(plan, path); err != nil {
			return err
		}
	} else {
		VerboseLog("%s is not registered by %s in %s",
			file, model.PackageLabel(flags.pkg), GroupTitle(flags.group, flags.env))
	}

	if IsJSONOutput() {
		return writeJSON(w, replaceResultJSON{
			Replaced: matched,
			Packages: plan.GetGroup(flags.group, flags.env),
		})
	}

	if !matched {
		printWarning(w, fmt.Sprintf("Nothing to replace: %s does not list %s in %s",
			model.PackageLabel(flags.pkg), file, GroupTitle(flags.group, flags.env)))
		return nil
	}
	printSuccess(w, fmt.Sprintf("Replaced %s (%s) with %s (%s) in %s",
		file, model.PackageLabel(flags.pkg), flags.withFile, model.PackageLabel(flags.withPackage),
		GroupTitle(flags.group, flags.env)))
	return nil
}
