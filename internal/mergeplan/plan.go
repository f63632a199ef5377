package mergeplan

import (
	"slices"

	"github.com/shinji-kodama/confplan/internal/model"
)

// MergePlan holds the environment → group → package → files hierarchy.
// The zero value is not usable; create plans with New.
type MergePlan struct {
	data model.PlanData
}

// New creates a plan pre-populated with a deep copy of initial, typically
// data restored from a plan file. A nil initial yields an empty plan.
// The shape of initial is not validated.
func New(initial model.PlanData) *MergePlan {
	data := initial.Clone()
	if data == nil {
		data = model.PlanData{}
	}
	return &MergePlan{data: data}
}

// envName maps the empty string to the default environment so that every
// operation defaults consistently.
func envName(env string) string {
	if env == "" {
		return model.DefaultEnvironment
	}
	return env
}

// leaf returns the package files map for (env, group), creating the
// intermediate levels when create is true. It returns nil when the levels
// do not exist and create is false.
func (p *MergePlan) leaf(group, env string, create bool) model.PackageFiles {
	env = envName(env)
	groups, ok := p.data[env]
	if !ok {
		if !create {
			return nil
		}
		groups = model.Groups{}
		p.data[env] = groups
	}
	pkgs, ok := groups[group]
	if !ok {
		if !create {
			return nil
		}
		pkgs = model.PackageFiles{}
		groups[group] = pkgs
	}
	return pkgs
}

// Add appends file to the list at (env, group, pkg), creating any missing
// levels. Add never deduplicates: adding the same file twice lists it twice.
// Use HasConfig first when idempotence is needed.
func (p *MergePlan) Add(file, pkg, group, env string) {
	pkgs := p.leaf(group, env, true)
	pkgs[pkg] = append(pkgs[pkg], file)
}

// AddMultiple replaces the list at (env, group, pkg) with files, creating
// any missing levels. Unlike Add it overwrites whatever the package had
// registered before.
func (p *MergePlan) AddMultiple(files []string, pkg, group, env string) {
	pkgs := p.leaf(group, env, true)
	pkgs[pkg] = append([]string{}, files...)
}

// GetGroup returns the package → files mapping for the group in env, or an
// empty mapping when either is absent. The result is a copy; writes to it
// do not affect the plan.
func (p *MergePlan) GetGroup(group, env string) model.PackageFiles {
	pkgs := p.leaf(group, env, false)
	if pkgs == nil {
		return model.PackageFiles{}
	}
	return pkgs.Clone()
}

// HasConfig reports whether file is listed at (env, group, pkg).
func (p *MergePlan) HasConfig(file, pkg, group, env string) bool {
	pkgs := p.leaf(group, env, false)
	return slices.Contains(pkgs[pkg], file)
}

// HasGroup reports whether the group key exists in env, regardless of its
// contents.
func (p *MergePlan) HasGroup(group, env string) bool {
	groups, ok := p.data[envName(env)]
	if !ok {
		return false
	}
	_, ok = groups[group]
	return ok
}

// HasEnvironment reports whether the env key exists, even if it holds no
// groups.
func (p *MergePlan) HasEnvironment(env string) bool {
	_, ok := p.data[envName(env)]
	return ok
}

// Replace substitutes replaceFile under pkgReplace for every occurrence of
// file under pkg, within the same group and environment.
//
// For each occurrence, replaceFile is appended to pkgReplace unless it is
// already listed there, then the occurrence is removed from pkg. The check
// runs against the live plan, so duplicate occurrences of file produce a
// single replaceFile entry. Remaining entries of pkg keep their order, and
// pkg is deleted from the group once its list is empty. Replace does
// nothing when (env, group, pkg) has no entry.
func (p *MergePlan) Replace(file, pkg, pkgReplace, group, replaceFile, env string) {
	pkgs := p.leaf(group, env, false)
	files, ok := pkgs[pkg]
	if !ok {
		return
	}

	removed := 0
	for i, current := range slices.Clone(files) {
		if current != file {
			continue
		}
		if !p.HasConfig(replaceFile, pkgReplace, group, env) {
			p.Add(replaceFile, pkgReplace, group, env)
		}
		// Entries appended above land after every original entry, so the
		// occurrence sits at its original index shifted by prior removals.
		pos := i - removed
		pkgs[pkg] = slices.Delete(pkgs[pkg], pos, pos+1)
		removed++
	}

	if len(pkgs[pkg]) == 0 {
		delete(pkgs, pkg)
	}
}

// ToArray returns a deep copy of the whole plan in its persisted shape.
func (p *MergePlan) ToArray() model.PlanData {
	return p.data.Clone()
}

// Environments returns the environment names in sorted order.
func (p *MergePlan) Environments() []string {
	return p.data.Environments()
}

// Groups returns the group names in env in sorted order, or an empty slice
// when env is absent.
func (p *MergePlan) Groups(env string) []string {
	return p.data[envName(env)].Names()
}
