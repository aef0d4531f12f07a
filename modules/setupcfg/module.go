// Package setupcfg checks that setup.cfg has the sections and key/value
// pairs of its style fragment.
//
// Keys whose value is a comma-separated list are named in the tool options:
//
//	[nitpick.files."setup.cfg"]
//	comma_separated_values = ["flake8.ignore", "isort.skip"]
//
// For those keys only the listed items must be present, in any order.
package setupcfg

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/internal/schema"
)

// FileName is the file this module checks.
const FileName = "setup.cfg"

// Error offsets.
const (
	missingSections      = 1
	missingValues        = 2
	actualExpected       = 3
	missingKeyValuePairs = 4
	invalidCSVSections   = 5
)

func init() {
	// "key = value" without aligning the equal signs.
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// Options are the tool options for setup.cfg.
type Options struct {
	CommaSeparatedValues []string `mapstructure:"comma_separated_values" validate:"dive,section_field"`
}

// Config is the validated fragment: sections of stringified values, plus the
// set of "section.key" names holding comma-separated values.
type Config struct {
	Sections map[string]map[string]Value
	CSV      map[string]struct{}
}

// Value is an expected value, remembering whether it was a scalar whose case
// does not matter (booleans and numbers).
type Value struct {
	Text    string
	Loosely bool
}

// Checker checks setup.cfg.
type Checker struct {
	checker.Base
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns the setup.cfg checker.
func New() checker.Checker {
	return &Checker{Base: checker.Base{Desc: checker.Descriptor{
		Name:        "setupcfg",
		FileName:    FileName,
		ShouldExist: true,
		ErrorBase:   320,
	}}}
}

// Register registers the checker with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFile(New())
}

// Validate checks that every section is a table and that the tool options
// name valid "section.key" pairs.
func (c *Checker) Validate(t *checker.Target) (any, error) {
	tree, err := schema.Tree(t.FileName, t.Fragment)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sections: make(map[string]map[string]Value, len(tree)),
		CSV:      make(map[string]struct{}),
	}
	var problems []string
	for _, name := range sortedKeys(tree) {
		section, ok := tree[name].(map[string]any)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: Section must be a table, got %T.", name, tree[name]))
			continue
		}
		values := make(map[string]Value, len(section))
		for key, raw := range section {
			values[key] = toValue(raw)
		}
		cfg.Sections[name] = values
	}
	if len(problems) > 0 {
		return nil, &schema.ValidationError{Name: t.FileName, Problems: problems}
	}

	var opts Options
	if err := schema.Decode(t.FileName, t.Options, &opts); err != nil {
		return nil, err
	}
	for _, v := range opts.CommaSeparatedValues {
		cfg.CSV[v] = struct{}{}
	}
	return cfg, nil
}

func toValue(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Value{Text: v}
	case bool:
		return Value{Text: strconv.FormatBool(v), Loosely: true}
	case int64:
		return Value{Text: strconv.FormatInt(v, 10), Loosely: true}
	case float64:
		return Value{Text: strconv.FormatFloat(v, 'g', -1, 64), Loosely: true}
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = toValue(item).Text
		}
		return Value{Text: strings.Join(parts, ",")}
	}
	return Value{Text: fmt.Sprint(raw)}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckRules reports missing sections, then missing key/value pairs and
// differing values section by section.
func (c *Checker) CheckRules(_ context.Context, t *checker.Target, cfg any) []diag.Diagnostic {
	conf, _ := cfg.(*Config)
	if conf == nil || !t.Exists {
		return nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, t.Path)
	if err != nil {
		return []diag.Diagnostic{c.Error(t, checker.InvalidContent, "", " is not a valid INI file: %v", err)}
	}

	actual := make(map[string]struct{})
	for _, name := range file.SectionStrings() {
		if name != ini.DefaultSection {
			actual[name] = struct{}{}
		}
	}

	var (
		diags   []diag.Diagnostic
		missing = make(map[string]map[string]Value)
	)
	for name, values := range conf.Sections {
		if _, ok := actual[name]; !ok {
			missing[name] = values
		}
	}
	if len(missing) > 0 {
		diags = append(diags, c.Error(t, missingSections, render(missing), " has some missing sections. Use this:"))
	}

	var invalid []string
	for _, v := range sortedKeys(conf.CSV) {
		section, _, _ := strings.Cut(v, ".")
		if _, ok := actual[section]; !ok {
			invalid = append(invalid, section)
		}
	}
	if len(invalid) > 0 {
		return append(diags, c.Error(t, invalidCSVSections, "",
			": invalid sections on comma_separated_values: %s", strings.Join(invalid, ", ")))
	}

	for _, name := range sortedKeys(conf.Sections) {
		if _, ok := missing[name]; ok {
			continue
		}
		diags = append(diags, c.compareSection(t, conf, file.Section(name), conf.Sections[name])...)
	}
	return diags
}

func (c *Checker) compareSection(t *checker.Target, conf *Config, section *ini.Section, expected map[string]Value) []diag.Diagnostic {
	var (
		diags   []diag.Diagnostic
		missing = make(map[string]Value)
	)
	for _, key := range sortedKeys(expected) {
		want := expected[key]
		if !section.HasKey(key) {
			missing[key] = want
			continue
		}
		got := section.Key(key).String()
		if _, ok := conf.CSV[section.Name()+"."+key]; ok {
			if absent := missingItems(got, want.Text); len(absent) > 0 {
				suggestion := fmt.Sprintf("[%s]\n%s = (...),%s", section.Name(), key, strings.Join(absent, ","))
				diags = append(diags, c.Error(t, missingValues, suggestion,
					": [%s]%s has missing values in the '%s' key. Include those values:", section.Name(), key, key))
			}
			continue
		}
		if !sameValue(got, want) {
			suggestion := fmt.Sprintf("[%s]\n%s = %s", section.Name(), key, want.Text)
			diags = append(diags, c.Error(t, actualExpected, suggestion,
				": [%s]%s is %s but it should be like this:", section.Name(), key, got))
		}
	}
	if len(missing) > 0 {
		diags = append(diags, c.Error(t, missingKeyValuePairs, render(map[string]map[string]Value{section.Name(): missing}),
			": section [%s] has some missing key/value pairs. Use this:", section.Name()))
	}
	return diags
}

func sameValue(got string, want Value) bool {
	got = strings.TrimSpace(got)
	if want.Loosely {
		return strings.EqualFold(got, want.Text)
	}
	return got == want.Text
}

// missingItems returns the items of the comma-separated want absent from got,
// sorted. Whitespace around items is ignored.
func missingItems(got, want string) []string {
	have := make(map[string]struct{})
	for _, item := range splitItems(got) {
		have[item] = struct{}{}
	}
	var absent []string
	for _, item := range splitItems(want) {
		if _, ok := have[item]; !ok {
			absent = append(absent, item)
		}
	}
	sort.Strings(absent)
	return absent
}

func splitItems(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Suggest proposes every expected section as the file's content.
func (c *Checker) Suggest(_ *checker.Target, cfg any) string {
	conf, _ := cfg.(*Config)
	if conf == nil || len(conf.Sections) == 0 {
		return ""
	}
	return render(conf.Sections)
}

// render writes sections in INI syntax, sections and keys sorted.
func render(sections map[string]map[string]Value) string {
	file := ini.Empty()
	for _, name := range sortedKeys(sections) {
		section, err := file.NewSection(name)
		if err != nil {
			continue
		}
		for _, key := range sortedKeys(sections[name]) {
			_, _ = section.NewKey(key, sections[name][key].Text)
		}
	}
	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
