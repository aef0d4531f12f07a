// Package pipfile registers existence-only checkers for Pipfile and
// Pipfile.lock, which projects should not have unless the style says so.
package pipfile

import (
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers both checkers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFile(checker.Existence("pipfile", "Pipfile", false))
	r.RegisterFile(checker.Existence("pipfile-lock", "Pipfile.lock", false))
}
