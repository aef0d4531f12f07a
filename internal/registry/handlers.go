package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/identify"
)

// RegisterFile registers a checker for the exact file name in its descriptor.
func (r *Registry) RegisterFile(c checker.Checker) {
	desc := c.Descriptor()
	if desc.FileName == "" {
		panic(fmt.Sprintf("checker '%s' has no file name", desc.Name))
	}
	if _, exists := r.byName[desc.FileName]; exists {
		panic(fmt.Sprintf("checker for file '%s' already registered", desc.FileName))
	}
	slog.Debug("Registering file checker.", "name", desc.Name, "file", desc.FileName)
	r.byName[desc.FileName] = c
	r.files = append(r.files, c)
}

// RegisterHandler registers a tag handler. tags and base describe the
// checkers it builds; they are used for start-up validation.
func (r *Registry) RegisterHandler(name string, tags identify.Tags, base int, h Handler) {
	for _, existing := range r.handlers {
		if existing.name == name {
			panic(fmt.Sprintf("handler with name '%s' already registered", name))
		}
	}
	slog.Debug("Registering tag handler.", "name", name, "tags", tags.Sorted())
	r.handlers = append(r.handlers, namedHandler{name: name, tags: tags, base: base, handler: h})
}

// TagHandler builds a Handler that accepts files sharing a tag with tags.
func TagHandler(tags identify.Tags, build func(fileName string) checker.Checker) Handler {
	return func(fileName string, fileTags identify.Tags) checker.Checker {
		if !fileTags.Intersects(tags) {
			return nil
		}
		return build(fileName)
	}
}
