package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/confplan/internal/mergeplan"
	"github.com/shinji-kodama/confplan/internal/model"
	"github.com/shinji-kodama/confplan/internal/planfile"
)

// resolvePlanPath returns the plan file to operate on: the --plan flag when
// set, otherwise a plan file found in the working directory, otherwise
// merge-plan.json in the working directory.
func resolvePlanPath() (string, error) {
	if planPath != "" {
		return planPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := planfile.Find(cwd)
	if err != nil {
		return filepath.Join(cwd, planfile.DefaultName), nil
	}
	return path, nil
}

// loadPlan resolves and loads the plan file. When allowMissing is true, a
// missing file yields an empty plan instead of an error, so commands that
// write can start a new plan.
func loadPlan(allowMissing bool) (*mergeplan.MergePlan, string, error) {
	path, err := resolvePlanPath()
	if err != nil {
		return nil, "", err
	}

	data, err := planfile.Load(path)
	if err != nil {
		var cliErr *model.CLIError
		if allowMissing && errors.As(err, &cliErr) && cliErr.Code == model.ExitPlanNotFound {
			VerboseLog("No merge plan at %s, starting a new one", path)
			return mergeplan.New(nil), path, nil
		}
		return nil, "", err
	}

	VerboseLog("Loaded merge plan from %s (%d file entries)", path, data.FileCount())
	return mergeplan.New(data), path, nil
}

// savePlan writes plan to path.
func savePlan(plan *mergeplan.MergePlan, path string) error {
	data := plan.ToArray()
	if err := planfile.Save(path, data); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to save merge plan", err)
	}
	VerboseLog("Saved merge plan to %s (%d file entries)", path, data.FileCount())
	return nil
}
