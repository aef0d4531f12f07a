// Package pyproject checks pyproject.toml: every key/value pair of its style
// fragment must be present in the file.
package pyproject

import (
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/format"
	"github.com/vk/nitpickgo/internal/registry"
)

// FileName is the file this module checks.
const FileName = "pyproject.toml"

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns the pyproject.toml checker.
func New() checker.Checker {
	return checker.NewStructured(checker.Descriptor{
		Name:        "pyproject",
		FileName:    FileName,
		ShouldExist: true,
		ErrorBase:   310,
	}, format.TOML{})
}

// Register registers the checker with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFile(New())
}
