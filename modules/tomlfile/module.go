// Package tomlfile checks any TOML file named by the style.
package tomlfile

import (
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/format"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/registry"
)

const errorBase = 370

var tags = identify.New(identify.TOML)

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a checker for one TOML file.
func New(fileName string) checker.Checker {
	return checker.NewStructured(checker.Descriptor{
		Name:        "toml",
		FileName:    fileName,
		Tags:        tags,
		ShouldExist: true,
		ErrorBase:   errorBase,
	}, format.TOML{})
}

// Register registers the tag handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("toml", tags, errorBase, registry.TagHandler(tags, New))
}
