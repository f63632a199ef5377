// Package planfile reads and writes merge plan files.
//
// A plan file holds the environment → group → package → files hierarchy in
// either JSON or YAML, selected by file extension. JSON files may contain
// comments and trailing commas (JSONC); they are stripped with
// github.com/tidwall/jsonc before decoding. YAML is handled by
// gopkg.in/yaml.v3.
//
// Decoding targets the typed model.PlanData record, so a file with the wrong
// nesting depth is rejected at load time rather than surfacing later as a
// failed lookup.
package planfile
