// Package cli — show.go implements the "confplan show" command.
//
// With a group argument, show prints the packages contributing to that
// group and their files in merge order. Without one, it prints every
// environment and group in the plan. A group that is not in the plan is
// shown as empty rather than reported as an error.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/confplan/internal/mergeplan"
	"github.com/shinji-kodama/confplan/internal/model"
)

// showFlags holds the flag values for the show command.
type showFlags struct {
	env string // --env: environment name, empty for the default
}

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show [group]",
		Short: "Show the files registered for a group",
		Long: `Show the files registered for a group, per package, in merge order.

Without a group, all groups of the selected environment are shown. With
--env and no group, only that environment is shown; with neither, every
environment is shown.

Examples:
  confplan show web
  confplan show web --env prod
  confplan show --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(false)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return runShowGroup(cmd.OutOrStdout(), plan, args[0], flags.env)
			}
			return runShowAll(cmd.OutOrStdout(), plan, flags.env)
		},
	}

	cmd.Flags().StringVarP(&flags.env, "env", "e", "", "Environment name (default: the default environment)")

	return cmd
}

// showGroupJSON is the JSON output for a single group.
type showGroupJSON struct {
	Environment string             `json:"environment"`
	Group       string             `json:"group"`
	Packages    model.PackageFiles `json:"packages"`
}

func runShowGroup(w io.Writer, plan *mergeplan.MergePlan, group, env string) error {
	env = normalizeEnv(env)
	pkgs := plan.GetGroup(group, env)

	if IsJSONOutput() {
		return writeJSON(w, showGroupJSON{Environment: env, Group: group, Packages: pkgs})
	}

	printGroupText(w, group, env, pkgs)
	return nil
}

func runShowAll(w io.Writer, plan *mergeplan.MergePlan, env string) error {
	envs := plan.Environments()
	if env != "" {
		envs = []string{normalizeEnv(env)}
	}

	if IsJSONOutput() {
		data := plan.ToArray()
		out := model.PlanData{}
		for _, e := range envs {
			if groups, ok := data[e]; ok {
				out[e] = groups
			}
		}
		return writeJSON(w, out)
	}

	if len(envs) == 0 || (env != "" && !plan.HasEnvironment(env)) {
		printWarning(w, "Merge plan has no entries.")
		return nil
	}

	for _, e := range envs {
		for _, group := range plan.Groups(e) {
			printGroupText(w, group, e, plan.GetGroup(group, e))
		}
	}
	return nil
}

// normalizeEnv maps an omitted --env to the default environment name.
func normalizeEnv(env string) string {
	if env == "" {
		return model.DefaultEnvironment
	}
	return env
}
