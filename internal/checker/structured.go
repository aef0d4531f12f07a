package checker

import (
	"context"
	"os"

	"github.com/vk/nitpickgo/internal/ctxlog"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/flatdiff"
)

// Format reads a configuration file into a tree and writes a tree back in
// the same syntax.
type Format interface {
	Parse(data []byte) (map[string]any, error)
	Render(tree map[string]any) (string, error)
}

// Error offsets used by Structured.
const (
	InvalidContent = 0
	MissingValues  = 1
)

// Structured checks a key/value file: every leaf of the style fragment must
// be present, with the same value, in the parsed file.
type Structured struct {
	Base
	Format Format
}

// NewStructured builds a structured checker.
func NewStructured(desc Descriptor, format Format) *Structured {
	return &Structured{Base: Base{Desc: desc}, Format: format}
}

// CheckRules reports the fragment's leaves the file lacks.
func (s *Structured) CheckRules(ctx context.Context, t *Target, cfg any) []diag.Diagnostic {
	if !t.Exists {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return []diag.Diagnostic{s.Error(t, InvalidContent, "", " could not be read: %v", err)}
	}
	actual, err := s.Format.Parse(data)
	if err != nil {
		return []diag.Diagnostic{s.Error(t, InvalidContent, "", " could not be parsed: %v", err)}
	}

	expected, _ := cfg.(map[string]any)
	missing := flatdiff.Missing(flatdiff.NormalizeTree(expected), flatdiff.NormalizeTree(actual))
	if len(missing) == 0 {
		logger.Debug("File is compliant.", "file", t.FileName)
		return nil
	}

	rendered, err := s.Format.Render(missing)
	if err != nil {
		logger.Warn("Cannot render missing values.", "file", t.FileName, "error", err)
	}
	return []diag.Diagnostic{s.Error(t, MissingValues, rendered, " has missing values:")}
}

// Suggest renders the whole fragment.
func (s *Structured) Suggest(_ *Target, cfg any) string {
	tree, _ := cfg.(map[string]any)
	if len(tree) == 0 {
		return ""
	}
	out, err := s.Format.Render(flatdiff.NormalizeTree(tree))
	if err != nil {
		return ""
	}
	return out
}
