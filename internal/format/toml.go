// Package format holds the parsers and renderers that turn configuration
// files into trees for the structured checkers, and missing values back into
// the file's own syntax for diagnostics.
package format

import (
	"github.com/pelletier/go-toml/v2"
)

// TOML reads and writes TOML documents.
type TOML struct{}

// Parse implements checker.Format.
func (TOML) Parse(data []byte) (map[string]any, error) {
	tree := map[string]any{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Render implements checker.Format.
func (TOML) Render(tree map[string]any) (string, error) {
	out, err := toml.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
