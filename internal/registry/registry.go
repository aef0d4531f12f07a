package registry

import (
	"path/filepath"
	"sort"

	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/identify"
)

// Module is the interface that all checker modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Handler returns a checker for fileName when its tags are ones it handles,
// or nil to decline.
type Handler func(fileName string, tags identify.Tags) checker.Checker

// Entry is one checker scheduled for a run, bound to the file it inspects.
type Entry struct {
	FileName string
	Checker  checker.Checker
}

type namedHandler struct {
	name    string
	tags    identify.Tags
	base    int
	handler Handler
}

// Registry holds the checkers and handlers of one application instance.
type Registry struct {
	files    []checker.Checker
	byName   map[string]checker.Checker
	handlers []namedHandler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		byName: make(map[string]checker.Checker),
	}
}

// Files returns the exact-name checkers in registration order.
func (r *Registry) Files() []checker.Checker {
	return append([]checker.Checker(nil), r.files...)
}

// HandlerNames returns the tag handler names in registration order.
func (r *Registry) HandlerNames() []string {
	names := make([]string, len(r.handlers))
	for i, h := range r.handlers {
		names[i] = h.name
	}
	return names
}

// Lookup finds the checker for a file of the project rooted at root: the
// exact-name checker when there is one, else the first handler that accepts
// the file's tags, else nil.
func (r *Registry) Lookup(root, fileName string) checker.Checker {
	if c, ok := r.byName[fileName]; ok {
		return c
	}
	tags := identify.ForPath(filepath.Join(root, filepath.FromSlash(fileName)))
	for _, h := range r.handlers {
		if c := h.handler(fileName, tags); c != nil {
			return c
		}
	}
	return nil
}

// Plan lists the checkers of a run. Every exact-name checker comes first, in
// registration order. The remaining names (typically the style's file keys)
// follow in ascending order, each bound to the checker Lookup finds, or to an
// existence-only checker when no handler accepts it.
func (r *Registry) Plan(root string, names []string) []Entry {
	entries := make([]Entry, 0, len(r.files)+len(names))
	for _, c := range r.files {
		entries = append(entries, Entry{FileName: c.Descriptor().FileName, Checker: c})
	}

	for _, name := range sortedUnique(names) {
		if _, ok := r.byName[name]; ok {
			continue
		}

		c := r.Lookup(root, name)
		if c == nil {
			c = checker.Existence("files", name, true)
		}
		entries = append(entries, Entry{FileName: name, Checker: c})
	}
	return entries
}

func sortedUnique(names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
