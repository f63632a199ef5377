// Package model defines the domain types for the confplan CLI.
//
// The central type is PlanData, the persisted shape of a merge plan:
//
//	environment → group → package → ordered list of config file paths
//
// PlanData is a plain value. All mutation rules (append vs. overwrite,
// substitution, empty-leaf deletion) live in the mergeplan package; this
// package only describes the shape and how to copy it.
package model

import (
	"fmt"
	"sort"
)

const (
	// DefaultEnvironment is the environment used whenever a caller does not
	// name one. Every mergeplan operation treats an empty environment string
	// as this value.
	DefaultEnvironment = "/"

	// RootPackage is the package name under which the application's own
	// config files are registered, as opposed to files contributed by
	// vendor packages.
	RootPackage = "/"
)

// PackageFiles maps a package name to the ordered list of config files it
// contributes to a single group. The order of each list is the merge order.
type PackageFiles map[string][]string

// Groups maps a group name (e.g. "web", "console") to the packages that
// contribute files to it.
type Groups map[string]PackageFiles

// PlanData is the complete merge plan keyed by environment name.
//
// Key order at the environment, group and package levels carries no
// meaning. Only the order of the innermost file lists is significant.
type PlanData map[string]Groups

// Clone returns a deep copy of the package files. Mutating the copy never
// affects the receiver. Cloning nil returns nil.
func (p PackageFiles) Clone() PackageFiles {
	if p == nil {
		return nil
	}
	out := make(PackageFiles, len(p))
	for pkg, files := range p {
		out[pkg] = append([]string(nil), files...)
	}
	return out
}

// Clone returns a deep copy of the groups. Cloning nil returns nil.
func (g Groups) Clone() Groups {
	if g == nil {
		return nil
	}
	out := make(Groups, len(g))
	for name, pkgs := range g {
		out[name] = pkgs.Clone()
	}
	return out
}

// Clone returns a deep copy of the plan data. Cloning nil returns nil.
func (d PlanData) Clone() PlanData {
	if d == nil {
		return nil
	}
	out := make(PlanData, len(d))
	for env, groups := range d {
		out[env] = groups.Clone()
	}
	return out
}

// Environments returns the environment names in sorted order.
func (d PlanData) Environments() []string {
	return sortedKeys(d)
}

// Names returns the group names in sorted order.
func (g Groups) Names() []string {
	return sortedKeys(g)
}

// Packages returns the package names in sorted order.
func (p PackageFiles) Packages() []string {
	return sortedKeys(p)
}

// FileCount returns the total number of file entries across all
// environments, groups and packages. Duplicates are counted.
func (d PlanData) FileCount() int {
	n := 0
	for _, groups := range d {
		for _, pkgs := range groups {
			for _, files := range pkgs {
				n += len(files)
			}
		}
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvironmentLabel returns a display name for env, substituting a readable
// label for the default environment.
func EnvironmentLabel(env string) string {
	if env == "" || env == DefaultEnvironment {
		return "default"
	}
	return env
}

// PackageLabel returns a display name for pkg, substituting a readable
// label for the root package.
func PackageLabel(pkg string) string {
	if pkg == RootPackage {
		return "(root)"
	}
	return pkg
}

// ExitCode defines the CLI exit codes. Scripts can rely on these to tell
// a missing plan file apart from a malformed one.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPlanNotFound indicates the merge plan file does not exist.
	ExitPlanNotFound ExitCode = 2

	// ExitManifestNotFound indicates no package manifest could be found.
	ExitManifestNotFound ExitCode = 3

	// ExitInvalidPlan indicates the plan file exists but does not have the
	// environment → group → package → files shape.
	ExitInvalidPlan ExitCode = 4

	// ExitInvalidManifest indicates the manifest could not be decoded or
	// failed validation.
	ExitInvalidManifest ExitCode = 5
)

// CLIError is an error that carries an exit code. The CLI layer uses it to
// translate failures into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error if present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
