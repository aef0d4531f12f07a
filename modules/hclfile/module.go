// Package hclfile checks HCL files (*.hcl, *.tf). Blocks are compared as
// nested tables keyed by block type and labels; missing values are shown
// as HCL.
package hclfile

import (
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/format"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/registry"
)

const errorBase = 360

var tags = identify.New(identify.HCL)

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a checker for one HCL file.
func New(fileName string) checker.Checker {
	return checker.NewStructured(checker.Descriptor{
		Name:        "hcl",
		FileName:    fileName,
		Tags:        tags,
		ShouldExist: true,
		ErrorBase:   errorBase,
	}, format.HCL{Filename: fileName})
}

// Register registers the tag handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("hcl", tags, errorBase, registry.TagHandler(tags, New))
}
