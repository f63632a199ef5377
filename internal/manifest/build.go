package manifest

import (
	"github.com/shinji-kodama/confplan/internal/mergeplan"
	"github.com/shinji-kodama/confplan/internal/model"
)

// Logf receives progress lines from Build. It has the signature of
// fmt.Printf-style loggers such as the CLI's VerboseLog.
type Logf func(format string, args ...any)

// Build registers every package of m in a new merge plan and then applies
// the replacements.
//
// Vendor packages publish their complete file set for a group, so they are
// registered with AddMultiple. The root package is registered file by file
// with Add, skipping files it already lists, so registering it again never
// duplicates root entries. Empty file lists are skipped and
// never create an empty leaf. logf may be nil.
func Build(m *Manifest, logf Logf) *mergeplan.MergePlan {
	logf = orDiscard(logf)

	plan := mergeplan.New(nil)
	for _, pkg := range m.Packages {
		Register(plan, pkg, logf)
	}

	for _, r := range m.Replacements {
		if !plan.HasConfig(r.File, r.Package, r.Group, r.Environment) {
			logf("replacement of %s in %s/%s matches nothing, skipping",
				r.File, model.PackageLabel(r.Package), r.Group)
			continue
		}
		plan.Replace(r.File, r.Package, r.WithPackage, r.Group, r.WithFile, r.Environment)
		logf("replaced %s (%s) with %s (%s) in group %s [%s]",
			r.File, model.PackageLabel(r.Package), r.WithFile, model.PackageLabel(r.WithPackage),
			r.Group, model.EnvironmentLabel(r.Environment))
	}

	return plan
}

// Register adds one package's files to plan: its default-environment groups
// first, then each environment's groups in name order. logf may be nil.
func Register(plan *mergeplan.MergePlan, pkg Package, logf Logf) {
	logf = orDiscard(logf)
	registerGroups(plan, pkg, pkg.Groups, model.DefaultEnvironment, logf)
	for _, env := range sortedKeys(pkg.Environments) {
		registerGroups(plan, pkg, pkg.Environments[env], env, logf)
	}
}

func registerGroups(plan *mergeplan.MergePlan, pkg Package, groups map[string][]string, env string, logf Logf) {
	for _, group := range sortedKeys(groups) {
		files := groups[group]
		if len(files) == 0 {
			continue
		}

		if !pkg.IsRoot() {
			plan.AddMultiple(files, pkg.Name, group, env)
			logf("registered %d file(s) from %s in group %s [%s]",
				len(files), pkg.Name, group, model.EnvironmentLabel(env))
			continue
		}

		for _, file := range files {
			if plan.HasConfig(file, pkg.Name, group, env) {
				logf("%s already registered in group %s [%s], skipping",
					file, group, model.EnvironmentLabel(env))
				continue
			}
			plan.Add(file, pkg.Name, group, env)
			logf("registered %s from %s in group %s [%s]",
				file, model.PackageLabel(pkg.Name), group, model.EnvironmentLabel(env))
		}
	}
}

func orDiscard(logf Logf) Logf {
	if logf == nil {
		return func(string, ...any) {}
	}
	return logf
}
