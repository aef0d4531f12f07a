// Package yamlfile checks any YAML file named by the style, such as
// .pre-commit-config.yaml or CI workflow files.
package yamlfile

import (
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/format"
	"github.com/vk/nitpickgo/internal/identify"
	"github.com/vk/nitpickgo/internal/registry"
)

const errorBase = 330

var tags = identify.New(identify.YAML)

// Module implements the registry.Module interface for this package.
type Module struct{}

// New returns a checker for one YAML file.
func New(fileName string) checker.Checker {
	return checker.NewStructured(checker.Descriptor{
		Name:        "yaml",
		FileName:    fileName,
		Tags:        tags,
		ShouldExist: true,
		ErrorBase:   errorBase,
	}, format.YAML{})
}

// Register registers the tag handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("yaml", tags, errorBase, registry.TagHandler(tags, New))
}
