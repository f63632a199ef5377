package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/confplan/internal/model"
)

const sampleYAML = `packages:
  - name: vendor/http
    groups:
      web: [config/web.php, config/routes.php]
    environments:
      prod:
        web: [config/web-prod.php]
  - name: /
    groups:
      params: [config/params.php]
      web: [config/web.php, config/web.php]
replacements:
  - package: vendor/http
    group: web
    file: config/routes.php
    withPackage: /
    withFile: config/routes.php
`

const sampleJSONC = `{
  // packages in registration order
  "packages": [
    {
      "name": "vendor/http",
      "groups": {"web": ["config/web.php", "config/routes.php"]},
      "environments": {"prod": {"web": ["config/web-prod.php"]}},
    },
    {
      "name": "/",
      "groups": {
        "params": ["config/params.php"],
        "web": ["config/web.php", "config/web.php"], /* duplicate on purpose */
      },
    },
  ],
  "replacements": [
    {
      "package": "vendor/http",
      "group": "web",
      "file": "config/routes.php",
      "withPackage": "/",
      "withFile": "config/routes.php",
    },
  ],
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad verifies that the YAML and JSONC forms decode to the same
// manifest.
func TestLoad(t *testing.T) {
	fromYAML, err := Load(writeFile(t, "confplan.yaml", sampleYAML))
	require.NoError(t, err)
	fromJSON, err := Load(writeFile(t, "confplan.json", sampleJSONC))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)

	require.Len(t, fromYAML.Packages, 2)
	assert.Equal(t, "vendor/http", fromYAML.Packages[0].Name)
	assert.False(t, fromYAML.Packages[0].IsRoot())
	assert.True(t, fromYAML.Packages[1].IsRoot())
	assert.Equal(t, []string{"config/web-prod.php"}, fromYAML.Packages[0].Environments["prod"]["web"])
	require.Len(t, fromYAML.Replacements, 1)
	assert.Equal(t, "/", fromYAML.Replacements[0].WithPackage)
	assert.Empty(t, fromYAML.Replacements[0].Environment)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "confplan.yaml"))

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitManifestNotFound, cliErr.Code)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml packages not a list", file: "confplan.yaml", content: "packages: vendor/http\n"},
		{name: "json syntax", file: "confplan.json", content: `{"packages": [`},
		{name: "json groups wrong type", file: "confplan.json", content: `{"packages": [{"name": "p", "groups": ["a.php"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitInvalidManifest, cliErr.Code)
		})
	}
}

// TestLoad_Invalid verifies that validation problems are reported as
// ExitInvalidManifest with every problem listed.
func TestLoad_Invalid(t *testing.T) {
	content := `packages:
  - name: ""
    groups:
      web: [a.php]
  - name: p
    groups:
      web: ["", b.php]
  - name: p
`
	_, err := Load(writeFile(t, "confplan.yml", content))

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidManifest, cliErr.Code)
	assert.Contains(t, err.Error(), "packages[0].name")
	assert.Contains(t, err.Error(), "packages[1].groups.web[0]")
	assert.Contains(t, err.Error(), `package "p" is already declared at packages[1]`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		m      Manifest
		fields []string
	}{
		{
			name: "valid manifest",
			m: Manifest{
				Packages: []Package{{Name: "p", Groups: map[string][]string{"web": {"a.php"}}}},
			},
		},
		{
			name: "empty manifest is valid",
			m:    Manifest{},
		},
		{
			name: "empty group name",
			m: Manifest{
				Packages: []Package{{Name: "p", Groups: map[string][]string{"": {"a.php"}}}},
			},
			fields: []string{"packages[0].groups"},
		},
		{
			name: "empty environment name",
			m: Manifest{
				Packages: []Package{{Name: "p", Environments: map[string]map[string][]string{"": {"web": {"a.php"}}}}},
			},
			fields: []string{"packages[0].environments"},
		},
		{
			name: "empty file inside environment",
			m: Manifest{
				Packages: []Package{{Name: "p", Environments: map[string]map[string][]string{"prod": {"web": {"a.php", ""}}}}},
			},
			fields: []string{"packages[0].environments.prod.web[1]"},
		},
		{
			name: "incomplete replacement",
			m: Manifest{
				Replacements: []Replacement{{Package: "p", Group: "web", File: "a.php"}},
			},
			fields: []string{"replacements[0].withPackage", "replacements[0].withFile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.m.Validate()

			fields := make([]string, 0, len(problems))
			for _, p := range problems {
				fields = append(fields, p.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)

			if len(tt.fields) == 0 {
				assert.NoError(t, tt.m.Err())
			} else {
				assert.Error(t, tt.m.Err())
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "packages[0].name", Message: "package name must not be empty"}
	assert.Equal(t, "packages[0].name: package name must not be empty", err.Error())
}

func TestFind(t *testing.T) {
	t.Run("search order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"confplan.json", "confplan.yml"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		path, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "confplan.yml"), path)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Find(t.TempDir())
		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitManifestNotFound, cliErr.Code)
	})
}

// TestBuild covers the producer path end to end on the sample manifest.
func TestBuild(t *testing.T) {
	m, err := Parse([]byte(sampleYAML), true)
	require.NoError(t, err)

	var lines []string
	plan := Build(m, func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	assert.Equal(t, model.PlanData{
		model.DefaultEnvironment: model.Groups{
			"web": model.PackageFiles{
				"vendor/http":     {"config/web.php"},
				model.RootPackage: {"config/web.php", "config/routes.php"},
			},
			"params": model.PackageFiles{
				model.RootPackage: {"config/params.php"},
			},
		},
		"prod": model.Groups{
			"web": model.PackageFiles{
				"vendor/http": {"config/web-prod.php"},
			},
		},
	}, plan.ToArray())

	assert.Contains(t, lines, "config/web.php already registered in group web [default], skipping")
	assert.Contains(t, lines, "replaced config/routes.php (vendor/http) with config/routes.php ((root)) in group web [default]")
}

// TestBuild_VendorOverwrite verifies that a package listed twice keeps only
// its last file set, since vendor registration overwrites.
func TestBuild_VendorOverwrite(t *testing.T) {
	m := &Manifest{Packages: []Package{
		{Name: "p", Groups: map[string][]string{"web": {"a.php", "b.php"}}},
		{Name: "p", Groups: map[string][]string{"web": {"c.php"}}},
	}}

	plan := Build(m, nil)
	assert.Equal(t, []string{"c.php"}, plan.GetGroup("web", "")["p"])
}

// TestBuild_EmptyListsSkipped verifies that empty file lists never create
// empty leaves or groups.
func TestBuild_EmptyListsSkipped(t *testing.T) {
	m := &Manifest{Packages: []Package{
		{Name: "p", Groups: map[string][]string{"web": {}}},
		{Name: model.RootPackage, Groups: map[string][]string{"console": nil}},
	}}

	plan := Build(m, nil)
	assert.False(t, plan.HasGroup("web", ""))
	assert.False(t, plan.HasGroup("console", ""))
	assert.False(t, plan.HasEnvironment(""))
}

// TestBuild_UnmatchedReplacement verifies that a replacement whose file is
// not registered leaves the plan unchanged.
func TestBuild_UnmatchedReplacement(t *testing.T) {
	m := &Manifest{
		Packages: []Package{{Name: "p", Groups: map[string][]string{"web": {"a.php"}}}},
		Replacements: []Replacement{
			{Package: "p", Group: "web", File: "missing.php", WithPackage: "q", WithFile: "z.php"},
			{Package: "p", Group: "web", File: "a.php", WithPackage: "q", WithFile: "z.php", Environment: "prod"},
		},
	}

	var lines []string
	plan := Build(m, func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	assert.Equal(t, model.PackageFiles{"p": {"a.php"}}, plan.GetGroup("web", ""))
	assert.False(t, plan.HasEnvironment("prod"))
	assert.Contains(t, lines, "replacement of missing.php in p/web matches nothing, skipping")
}

// TestRegister_RootIdempotent checks that registering the root package
// twice does not duplicate its files.
func TestRegister_RootIdempotent(t *testing.T) {
	pkg := Package{Name: model.RootPackage, Groups: map[string][]string{"params": {"a.php", "b.php"}}}
	m := &Manifest{Packages: []Package{pkg}}

	plan := Build(m, nil)
	Register(plan, pkg, nil)

	assert.Equal(t, []string{"a.php", "b.php"}, plan.GetGroup("params", "")[model.RootPackage])
}
