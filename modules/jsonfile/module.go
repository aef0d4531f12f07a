// Package jsonfile checks JSON files named by the style.
//
// The fragment supports two rules:
//
//	["package.json"]
//	contains_keys = ["name", "scripts.test"]
//
//	["tsconfig.json".contains_json]
//	compilerOptions = '''{"strict": true}'''
//
// contains_keys lists dotted paths that must exist. contains_json maps a
// top-level key to a JSON document whose leaves must all be present.
package jsonfile

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/flatdiff"
	"github.com/vk/nitpickgo/internal/format"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/internal/schema"
)

const (
	errorBase     = 340
	missingKeys   = 1
	missingValues = 2

	placeholder = "<some value here>"
)

var tags = identify.New(identify.JSON)

// Fragment is the style fragment of a JSON file.
type Fragment struct {
	ContainsKeys []string          `mapstructure:"contains_keys" validate:"dive,filled"`
	ContainsJSON map[string]string `mapstructure:"contains_json" validate:"dive,json"`
}

// Checker checks one JSON file.
type Checker struct {
	checker.Base
	format format.JSON
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a checker for one JSON file.
func New(fileName string) checker.Checker {
	return &Checker{Base: checker.Base{Desc: checker.Descriptor{
		Name:        "json",
		FileName:    fileName,
		Tags:        tags,
		ShouldExist: true,
		ErrorBase:   errorBase,
	}}}
}

// Register registers the tag handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("json", tags, errorBase, registry.TagHandler(tags, New))
}

// Validate decodes the fragment.
func (c *Checker) Validate(t *checker.Target) (any, error) {
	f := &Fragment{}
	if err := schema.Decode(t.FileName, t.Fragment, f); err != nil {
		return nil, err
	}
	return f, nil
}

// CheckRules reports missing keys, then missing values.
func (c *Checker) CheckRules(_ context.Context, t *checker.Target, cfg any) []diag.Diagnostic {
	f, _ := cfg.(*Fragment)
	if f == nil || !t.Exists {
		return nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return []diag.Diagnostic{c.Error(t, checker.InvalidContent, "", " could not be read: %v", err)}
	}
	actual, err := c.format.Parse(data)
	if err != nil {
		return []diag.Diagnostic{c.Error(t, checker.InvalidContent, "", " could not be parsed: %v", err)}
	}
	actual = flatdiff.NormalizeTree(actual)

	var diags []diag.Diagnostic
	if keys := absentKeys(actual, f.ContainsKeys); len(keys) > 0 {
		rendered, _ := c.format.Render(placeholders(keys))
		diags = append(diags, c.Error(t, missingKeys, rendered, " has missing keys:"))
	}

	expected, err := c.expectedTree(f)
	if err != nil {
		return append(diags, c.Error(t, checker.InvalidContent, "", " has an invalid contains_json value: %v", err))
	}
	if missing := flatdiff.Missing(expected, actual); len(missing) > 0 {
		rendered, _ := c.format.Render(missing)
		diags = append(diags, c.Error(t, missingValues, rendered, " has missing values:"))
	}
	return diags
}

// Suggest proposes a document holding every required key and value.
func (c *Checker) Suggest(_ *checker.Target, cfg any) string {
	f, _ := cfg.(*Fragment)
	if f == nil {
		return ""
	}
	expected, err := c.expectedTree(f)
	if err != nil {
		return ""
	}
	flat := flatdiff.Flatten(placeholders(f.ContainsKeys), flatdiff.Separator)
	for k, v := range flatdiff.Flatten(expected, flatdiff.Separator) {
		flat[k] = v
	}
	tree := flatdiff.Unflatten(flat, flatdiff.Separator)
	if len(tree) == 0 {
		return ""
	}
	out, err := c.format.Render(tree)
	if err != nil {
		return ""
	}
	return out
}

func (c *Checker) expectedTree(f *Fragment) (map[string]any, error) {
	tree := make(map[string]any, len(f.ContainsJSON))
	for key, raw := range f.ContainsJSON {
		v, err := c.format.Value(raw)
		if err != nil {
			return nil, err
		}
		tree[key] = v
	}
	return flatdiff.NormalizeTree(tree), nil
}

// absentKeys returns the dotted paths of keys that do not resolve in tree, sorted.
func absentKeys(tree map[string]any, keys []string) []string {
	var absent []string
	for _, key := range keys {
		if !hasPath(tree, strings.Split(key, flatdiff.Separator)) {
			absent = append(absent, key)
		}
	}
	sort.Strings(absent)
	return absent
}

func hasPath(tree map[string]any, parts []string) bool {
	node := tree
	for i, part := range parts {
		v, ok := node[part]
		if !ok {
			return false
		}
		if i == len(parts)-1 {
			return true
		}
		if node, ok = v.(map[string]any); !ok {
			return false
		}
	}
	return false
}

func placeholders(keys []string) map[string]any {
	flat := make(map[string]any, len(keys))
	for _, key := range keys {
		flat[key] = placeholder
	}
	return flatdiff.Unflatten(flat, flatdiff.Separator)
}
