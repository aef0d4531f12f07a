package format

import (
	"gopkg.in/yaml.v3"
)

// YAML reads and writes YAML documents whose root is a mapping.
type YAML struct{}

// Parse implements checker.Format. An empty document is an empty tree.
func (YAML) Parse(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// Render implements checker.Format.
func (YAML) Render(tree map[string]any) (string, error) {
	out, err := yaml.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
