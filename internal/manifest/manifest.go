package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/confplan/internal/model"
)

// candidateNames lists the manifest file names Find looks for, in
// priority order.
var candidateNames = []string{"confplan.yaml", "confplan.yml", "confplan.json"}

// Manifest is the decoded form of a package manifest file.
type Manifest struct {
	// Packages are registered in slice order.
	Packages []Package `yaml:"packages" json:"packages"`

	// Replacements are applied after every package has been registered.
	Replacements []Replacement `yaml:"replacements,omitempty" json:"replacements,omitempty"`
}

// Package lists the config files one package contributes.
type Package struct {
	// Name identifies the package. model.RootPackage ("/") marks the
	// application itself.
	Name string `yaml:"name" json:"name"`

	// Groups maps group names to the package's files for the default
	// environment, in merge order.
	Groups map[string][]string `yaml:"groups,omitempty" json:"groups,omitempty"`

	// Environments maps environment names to group → files, for files that
	// only apply in that environment.
	Environments map[string]map[string][]string `yaml:"environments,omitempty" json:"environments,omitempty"`
}

// IsRoot reports whether the package is the application's root package.
func (p Package) IsRoot() bool {
	return p.Name == model.RootPackage
}

// Replacement substitutes WithFile under WithPackage for File under Package
// within Group. An empty Environment means the default environment.
type Replacement struct {
	Package     string `yaml:"package" json:"package"`
	Group       string `yaml:"group" json:"group"`
	File        string `yaml:"file" json:"file"`
	WithPackage string `yaml:"withPackage" json:"withPackage"`
	WithFile    string `yaml:"withFile" json:"withFile"`
	Environment string `yaml:"environment,omitempty" json:"environment,omitempty"`
}

// Load reads, decodes and validates the manifest at path. YAML is used for
// .yaml and .yml files; anything else is parsed as JSONC.
//
// A missing file yields a CLIError with ExitManifestNotFound. Decoding and
// validation failures yield ExitInvalidManifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitManifestNotFound,
				fmt.Sprintf("manifest not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidManifest,
			fmt.Sprintf("failed to parse manifest %s", path),
			err,
		)
	}

	if err := m.Err(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidManifest,
			fmt.Sprintf("invalid manifest %s", path),
			err,
		)
	}
	return m, nil
}

// Parse decodes manifest bytes without validating them.
func Parse(data []byte, asYAML bool) (*Manifest, error) {
	var m Manifest
	if asYAML {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return &m, nil
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Find returns the first manifest present in dir, searching
// confplan.yaml, confplan.yml and confplan.json in that order.
// It returns a CLIError with ExitManifestNotFound when none exists.
func Find(dir string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitManifestNotFound,
		fmt.Sprintf("manifest not found in %s (searched %s)", dir, strings.Join(candidateNames, ", ")),
	)
}
