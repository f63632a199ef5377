package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/shinji-kodama/confplan/internal/model"
)

// fatih/color disables itself when stdout is not a terminal, so these are
// safe to use for redirected output and in tests.
var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	packageColor = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintError prints an error message to stderr.
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// GroupTitle formats the heading for a group in an environment.
//
// Example:
//
//	GroupTitle("web", "")     → "web [default]"
//	GroupTitle("web", "prod") → "web [prod]"
func GroupTitle(group, env string) string {
	return fmt.Sprintf("%s [%s]", group, model.EnvironmentLabel(env))
}

// FormatFileList joins files with ", " and returns "-" for an empty list.
func FormatFileList(files []string) string {
	if len(files) == 0 {
		return "-"
	}
	return strings.Join(files, ", ")
}

// printGroupText writes one group's packages and their files in merge order.
//
//	▸ web [default]
//	  vendor/http
//	    1. config/web.php
//	  (root)
//	    1. config/routes.php
func printGroupText(w io.Writer, group, env string, pkgs model.PackageFiles) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", GroupTitle(group, env))

	if len(pkgs) == 0 {
		_, _ = dimColor.Fprintln(w, "  (no files)")
		return
	}

	for _, pkg := range pkgs.Packages() {
		_, _ = packageColor.Fprintf(w, "  %s\n", model.PackageLabel(pkg))
		for i, file := range pkgs[pkg] {
			fmt.Fprintf(w, "    %d. %s\n", i+1, file)
		}
	}
}
