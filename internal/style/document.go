// Package style locates, fetches, caches and loads the style document.
package style

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/vk/nitpickgo/internal/schema"
)

// Reserved top-level keys of a style document.
const (
	// FilesKey maps file names to a boolean "should exist" override.
	FilesKey = "files"
	// NitpickKey holds tool options, e.g. [nitpick.files."setup.cfg"].
	NitpickKey = "nitpick"
)

// Document is a loaded style. It is never modified after Load.
type Document struct {
	Path string
	Tree map[string]any
}

// Load reads and parses the style document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr(err, "Style file does not exist: %s", path)
	}
	tree := map[string]any{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, configErr(err, "Invalid style file %s", path)
	}
	return &Document{Path: path, Tree: tree}, nil
}

// Fragment returns the sub-tree addressed to fileName, or nil.
func (d *Document) Fragment(fileName string) any {
	return d.Tree[fileName]
}

// Files decodes the [files] table.
func (d *Document) Files() (map[string]bool, error) {
	files := map[string]bool{}
	if err := schema.Decode(FilesKey, d.Tree[FilesKey], &files); err != nil {
		return nil, err
	}
	return files, nil
}

// FileOptions returns [nitpick.files."<fileName>"], or nil.
func (d *Document) FileOptions(fileName string) map[string]any {
	nitpick, _ := d.Tree[NitpickKey].(map[string]any)
	files, _ := nitpick[FilesKey].(map[string]any)
	opts, _ := files[fileName].(map[string]any)
	return opts
}

// FileNames lists every file the style talks about: its top-level keys other
// than the reserved ones, plus the names in [files]. The [files] table is
// read leniently here; Files reports its problems.
func (d *Document) FileNames() []string {
	var names []string
	for key := range d.Tree {
		if key == FilesKey || key == NitpickKey {
			continue
		}
		names = append(names, key)
	}
	if files, ok := d.Tree[FilesKey].(map[string]any); ok {
		for key := range files {
			names = append(names, key)
		}
	}
	return names
}
