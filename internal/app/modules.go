package app

import (
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/modules/hclfile"
	"github.com/vk/nitpickgo/modules/jsonfile"
	"github.com/vk/nitpickgo/modules/pipfile"
	"github.com/vk/nitpickgo/modules/pyproject"
	"github.com/vk/nitpickgo/modules/setupcfg"
	"github.com/vk/nitpickgo/modules/text"
	"github.com/vk/nitpickgo/modules/tomlfile"
	"github.com/vk/nitpickgo/modules/yamlfile"
)

// coreModules is the definitive list of all checkers compiled into the
// nitpick binary. Order matters: it is the order of diagnostics for the
// exact-name checkers, and the order tag handlers are tried in. The text
// handler accepts every file and must stay last.
var coreModules = []registry.Module{
	&pyproject.Module{},
	&setupcfg.Module{},
	&pipfile.Module{},
	&jsonfile.Module{},
	&yamlfile.Module{},
	&tomlfile.Module{},
	&hclfile.Module{},
	&text.Module{},
}
