// Package types holds the group-specification schema shared by the CLI and
// config loading.
package types

// GroupSpec is one cohort entry of a groups JSONC file: an ordered list of
// measurement files treated as one statistical unit. Name is an optional
// display override; when empty the label is derived from the file names.
type GroupSpec struct {
	Name  string   `json:"name,omitempty"`
	Files []string `json:"files"`
}
