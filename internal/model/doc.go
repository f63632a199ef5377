// Package model defines the domain types and value objects for the
// confplan CLI.
//
// This package contains pure data structures with no external dependencies.
// PlanData is the typed form of a persisted merge plan; it is produced by
// the mergeplan package and read back by the planfile package.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
