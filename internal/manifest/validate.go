package manifest

import (
	"errors"
	"fmt"
	"sort"
)

// ValidationError describes one problem found in a manifest.
type ValidationError struct {
	// Field is the path of the offending value, e.g. "packages[1].groups.web[0]".
	Field string

	// Message describes what's wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the manifest and returns every problem found, in a
// stable order. An empty result means the manifest is valid.
//
// Checks performed:
//   - every package has a name, and names are unique
//   - group and environment names are non-empty
//   - file paths are non-empty
//   - replacements name a package, group, file, replacement package and
//     replacement file
//
// File paths are treated as opaque strings; their existence on disk is
// not checked.
func (m *Manifest) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	seen := make(map[string]int)
	for i, pkg := range m.Packages {
		prefix := fmt.Sprintf("packages[%d]", i)

		if pkg.Name == "" {
			add(prefix+".name", "package name must not be empty")
		} else if first, dup := seen[pkg.Name]; dup {
			add(prefix+".name", fmt.Sprintf("package %q is already declared at packages[%d]", pkg.Name, first))
		} else {
			seen[pkg.Name] = i
		}

		validateGroups(prefix+".groups", pkg.Groups, add)

		for _, env := range sortedKeys(pkg.Environments) {
			if env == "" {
				add(prefix+".environments", "environment name must not be empty")
				continue
			}
			validateGroups(fmt.Sprintf("%s.environments.%s", prefix, env), pkg.Environments[env], add)
		}
	}

	for i, r := range m.Replacements {
		prefix := fmt.Sprintf("replacements[%d]", i)
		required := []struct {
			field string
			value string
		}{
			{"package", r.Package},
			{"group", r.Group},
			{"file", r.File},
			{"withPackage", r.WithPackage},
			{"withFile", r.WithFile},
		}
		for _, req := range required {
			if req.value == "" {
				add(prefix+"."+req.field, "must not be empty")
			}
		}
	}

	return errs
}

// Err runs Validate and joins the problems into a single error, or
// returns nil when the manifest is valid.
func (m *Manifest) Err() error {
	problems := m.Validate()
	if len(problems) == 0 {
		return nil
	}

	errs := make([]error, 0, len(problems))
	for i := range problems {
		errs = append(errs, &problems[i])
	}
	return errors.Join(errs...)
}

func validateGroups(prefix string, groups map[string][]string, add func(field, msg string)) {
	for _, group := range sortedKeys(groups) {
		if group == "" {
			add(prefix, "group name must not be empty")
			continue
		}
		for j, file := range groups[group] {
			if file == "" {
				add(fmt.Sprintf("%s.%s[%d]", prefix, group, j), "file path must not be empty")
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
