package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// JSON reads and writes JSON documents whose root is an object.
type JSON struct{}

// Parse implements checker.Format.
func (JSON) Parse(data []byte) (map[string]any, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	tree, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object at the top level, got %T", root)
	}
	return tree, nil
}

// Render implements checker.Format.
func (JSON) Render(tree map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Value decodes a single JSON value, as found in contains_json entries.
func (JSON) Value(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
