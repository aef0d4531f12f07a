// Package text checks plain text files for required lines.
//
// To require the lines "abc" and "def" (in any order) in some.txt:
//
//	[["some.txt".contains]]
//	line = "abc"
//
//	[["some.txt".contains]]
//	line = "def"
package text

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/internal/schema"
)

const (
	errorBase    = 350
	missingLines = 2
)

var tags = identify.New(identify.Text)

// Item is one entry of the contains list.
type Item struct {
	Line string `mapstructure:"line" validate:"required,filled"`
}

// Fragment is the style fragment of a text file.
type Fragment struct {
	Contains []Item `mapstructure:"contains" validate:"dive"`
}

// ExpectedLines returns the required lines without duplicates, in style order.
func (f *Fragment) ExpectedLines() []string {
	seen := make(map[string]struct{}, len(f.Contains))
	lines := make([]string, 0, len(f.Contains))
	for _, item := range f.Contains {
		if _, ok := seen[item.Line]; ok {
			continue
		}
		seen[item.Line] = struct{}{}
		lines = append(lines, item.Line)
	}
	return lines
}

// Checker checks one text file.
type Checker struct {
	checker.Base
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a checker for one text file.
func New(fileName string) checker.Checker {
	return &Checker{Base: checker.Base{Desc: checker.Descriptor{
		Name:        "text",
		FileName:    fileName,
		Tags:        tags,
		ShouldExist: true,
		ErrorBase:   errorBase,
	}}}
}

// Register registers the tag handler with the engine. It accepts every file,
// so it must be registered after the more specific handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("text", tags, errorBase, registry.TagHandler(tags, New))
}

// Validate decodes the contains list.
func (c *Checker) Validate(t *checker.Target) (any, error) {
	f := &Fragment{}
	if err := schema.Decode(t.FileName, t.Fragment, f); err != nil {
		return nil, err
	}
	return f, nil
}

// CheckRules reports the expected lines missing from the file, sorted.
// Order in the file does not matter.
func (c *Checker) CheckRules(_ context.Context, t *checker.Target, cfg any) []diag.Diagnostic {
	f, _ := cfg.(*Fragment)
	if f == nil || !t.Exists {
		return nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return []diag.Diagnostic{c.Error(t, 0, "", " could not be read: %v", err)}
	}
	actual := make(map[string]struct{})
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		actual[line] = struct{}{}
	}

	var missing []string
	for _, line := range f.ExpectedLines() {
		if _, ok := actual[line]; !ok {
			missing = append(missing, line)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return []diag.Diagnostic{c.Error(t, missingLines, strings.Join(missing, "\n"), " has missing lines:")}
}

// Suggest proposes the expected lines as the file's content.
func (c *Checker) Suggest(_ *checker.Target, cfg any) string {
	f, _ := cfg.(*Fragment)
	if f == nil {
		return ""
	}
	return strings.Join(f.ExpectedLines(), "\n")
}
