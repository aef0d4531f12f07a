// Package checker defines what a file checker is and the behaviour every
// checker shares: the existence check and access to its style fragment.
package checker

import (
	"context"
	"fmt"

	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/schema"
)

// Descriptor is the static metadata of a checker.
type Descriptor struct {
	// Name identifies the checker in diagnostics and logs.
	Name string
	// FileName is the file the checker inspects, relative to the project root.
	FileName string
	// Tags are the identifying tags of tag-based checkers.
	Tags identify.Tags
	// ShouldExist is the existence policy unless the style overrides it.
	ShouldExist bool
	// ErrorBase is added to every checker-specific code. Zero means the
	// checker only reports existence.
	ErrorBase int
}

// Target is the file a checker inspects during one run.
type Target struct {
	FileName string
	Path     string
	Exists   bool
	// Fragment is the style sub-tree keyed by FileName, as parsed.
	Fragment any
	// Options holds [nitpick.files."<FileName>"] from the style.
	Options map[string]any
}

// Checker validates its style fragment and checks the file's content.
type Checker interface {
	Descriptor() Descriptor
	// Validate decodes t.Fragment. The result is handed to CheckRules and
	// Suggest. A *schema.ValidationError rejects the fragment.
	Validate(t *Target) (any, error)
	// CheckRules compares the file against the decoded fragment.
	CheckRules(ctx context.Context, t *Target, cfg any) []diag.Diagnostic
}

// Suggester is implemented by checkers that can propose the content of a
// missing file.
type Suggester interface {
	Suggest(t *Target, cfg any) string
}

// Base implements the parts of Checker most checkers share. Embed it and
// override what differs.
type Base struct {
	Desc Descriptor
}

// Descriptor implements Checker.
func (b *Base) Descriptor() Descriptor {
	return b.Desc
}

// Validate accepts any table.
func (b *Base) Validate(t *Target) (any, error) {
	return schema.Tree(t.FileName, t.Fragment)
}

// CheckRules does nothing.
func (b *Base) CheckRules(context.Context, *Target, any) []diag.Diagnostic {
	return nil
}

// Error builds a diagnostic with code ErrorBase+number for the target file.
func (b *Base) Error(t *Target, number int, suggestion, format string, args ...any) diag.Diagnostic {
	return diag.Errorf(b.Desc.Name, b.Desc.ErrorBase+number, t.FileName, suggestion, format, args...)
}

// Existence is a checker that only verifies whether a file exists.
func Existence(name, fileName string, shouldExist bool) Checker {
	return &Base{Desc: Descriptor{Name: name, FileName: fileName, ShouldExist: shouldExist}}
}

// CheckExists compares the file's presence with the policy: the override
// from the style's [files] table when present, else the checker's default.
func CheckExists(c Checker, t *Target, override *bool, suggestion string) []diag.Diagnostic {
	desc := c.Descriptor()
	shouldExist := desc.ShouldExist
	if override != nil {
		shouldExist = *override
	}

	switch {
	case shouldExist && !t.Exists:
		msg := fmt.Sprintf("Missing file '%s'", t.FileName)
		if suggestion != "" {
			msg += ". Create it with this content:\n" + suggestion
		}
		return []diag.Diagnostic{diag.New(desc.Name, diag.CodeMissingFile, msg)}
	case !shouldExist && t.Exists:
		return []diag.Diagnostic{diag.New(desc.Name, diag.CodeDeleteFile,
			fmt.Sprintf("File '%s' should be deleted", t.FileName))}
	}
	return nil
}
