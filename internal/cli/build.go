// Package cli — build.go implements the "confplan build" command.
//
// The build command reads the package manifest, registers every package's
// files in a fresh merge plan, applies the manifest's replacements and
// writes the result to the plan file. The previous plan file, if any, is
// overwritten.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/confplan/internal/manifest"
	"github.com/shinji-kodama/confplan/internal/model"
)

// buildFlags holds the flag values for the build command.
type buildFlags struct {
	manifest string // --manifest: manifest path
	out      string // --out: plan file to write, overrides --plan
}

// NewBuildCommand creates the "build" cobra command.
func NewBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the merge plan from the package manifest",
		Long: `Build the merge plan from the package manifest.

Vendor packages register their complete file set per group; the root
package ("/") registers its files one by one, skipping duplicates.
Replacements from the manifest are applied last.

Examples:
  confplan build
  confplan build --manifest config/confplan.yaml --out var/merge-plan.json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.manifest, "manifest", "",
		"Package manifest (default: confplan.yaml, .yml or .json in the current directory)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Plan file to write (default: --plan)")

	return cmd
}

// buildResultJSON is the JSON output of the build command.
type buildResultJSON struct {
	Manifest     string   `json:"manifest"`
	Plan         string   `json:"plan"`
	Environments []string `json:"environments"`
	Files        int      `json:"files"`
}

func runBuild(w io.Writer, flags *buildFlags) error {
	manifestPath := flags.manifest
	if manifestPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		manifestPath, err = manifest.Find(cwd)
		if err != nil {
			return err
		}
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	VerboseLog("Loaded manifest %s (%d packages, %d replacements)",
		manifestPath, len(m.Packages), len(m.Replacements))

	plan := manifest.Build(m, VerboseLog)

	outPath := flags.out
	if outPath == "" {
		outPath, err = resolvePlanPath()
		if err != nil {
			return err
		}
	}
	if err := savePlan(plan, outPath); err != nil {
		return err
	}

	data := plan.ToArray()
	if IsJSONOutput() {
		return writeJSON(w, buildResultJSON{
			Manifest:     manifestPath,
			Plan:         outPath,
			Environments: data.Environments(),
			Files:        data.FileCount(),
		})
	}

	printSuccess(w, fmt.Sprintf("Merge plan written to %s", outPath))
	for _, env := range data.Environments() {
		fmt.Fprintf(w, "  %-12s %s\n", model.EnvironmentLabel(env), FormatFileList(data[env].Names()))
	}
	return nil
}
