package planfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/confplan/internal/model"
)

// Format identifies the serialization of a plan file.
type Format string

const (
	// FormatJSON is JSON output; JSONC is accepted on input.
	FormatJSON Format = "json"

	// FormatYAML is YAML in both directions.
	FormatYAML Format = "yaml"
)

// DefaultName is the plan file name used when none is given and none is
// found in the working directory.
const DefaultName = "merge-plan.json"

// candidateNames lists the file names Find looks for, in priority order.
var candidateNames = []string{"merge-plan.json", "merge-plan.yaml", "merge-plan.yml"}

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a flag value to a Format. Matching is
// case-insensitive and "yml" is accepted as an alias for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid plan format: %q (valid: json, yaml)", s)
	}
}

// FormatForPath picks the format from the file extension. Anything other
// than .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the plan file at path.
//
// A missing file yields a CLIError with ExitPlanNotFound; a file that does
// not decode into model.PlanData yields ExitInvalidPlan. An empty or
// whitespace-only file loads as an empty plan.
func Load(path string) (model.PlanData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitPlanNotFound,
				fmt.Sprintf("merge plan not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read merge plan: %w", err)
	}

	plan, err := Unmarshal(data, FormatForPath(path))
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidPlan,
			fmt.Sprintf("invalid merge plan %s", path),
			err,
		)
	}
	return plan, nil
}

// Unmarshal decodes plan data in the given format.
func Unmarshal(data []byte, format Format) (model.PlanData, error) {
	plan := model.PlanData{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		// Comments are blanked out, so a comment-only file is empty too.
		clean := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(clean)) == 0 {
			return plan, nil
		}
		if err := json.Unmarshal(clean, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	// A top-level null decodes to a nil map.
	if plan == nil {
		plan = model.PlanData{}
	}
	return plan, nil
}

// Marshal encodes plan data. Both encoders sort map keys, so output is
// deterministic; file lists keep their order. Output ends with a newline.
func Marshal(plan model.PlanData, format Format) ([]byte, error) {
	if plan == nil {
		plan = model.PlanData{}
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Save encodes plan in the format implied by path and writes it
// atomically: the data goes to a temp file in the target directory which is
// then renamed over path. Parent directories are created as needed.
func Save(path string, plan model.PlanData) error {
	data, err := Marshal(plan, FormatForPath(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".merge-plan-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write merge plan: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set merge plan permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write merge plan to %s: %w", path, err)
	}
	return nil
}

// Find returns the first plan file present in dir, searching
// merge-plan.json, merge-plan.yaml and merge-plan.yml in that order.
// It returns a CLIError with ExitPlanNotFound when none exists.
func Find(dir string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitPlanNotFound,
		fmt.Sprintf("merge plan not found in %s (searched %s)", dir, strings.Join(candidateNames, ", ")),
	)
}
