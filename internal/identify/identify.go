// Package identify derives the tags of a file from its name and, when the
// file exists, from its content. Tag-based checkers use them to decide
// whether they handle a file.
package identify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Well-known tags.
const (
	Text   = "text"
	JSON   = "json"
	YAML   = "yaml"
	TOML   = "toml"
	HCL    = "hcl"
	INI    = "ini"
	Python = "python"
)

// Tags is a set of tags.
type Tags map[string]struct{}

var byExtension = map[string][]string{
	".json": {JSON},
	".yml":  {YAML},
	".yaml": {YAML},
	".toml": {TOML},
	".hcl":  {HCL},
	".tf":   {HCL},
	".cfg":  {INI},
	".ini":  {INI},
	".py":   {Python},
}

// ForFile returns the tags of a file name. Every supported file is also text.
func ForFile(name string) Tags {
	tags := Tags{Text: {}}
	for _, tag := range byExtension[strings.ToLower(filepath.Ext(name))] {
		tags[tag] = struct{}{}
	}
	return tags
}

// content maps detected MIME types to tags. A type matches its descendants
// too, so every textual type carries the text tag.
var content = []struct {
	mime string
	tag  string
}{
	{mime: "text/plain", tag: Text},
	{mime: "application/json", tag: JSON},
	{mime: "text/x-python", tag: Python},
}

// ForPath returns the tags of the file at path. A file that is missing,
// empty or unreadable is tagged by name alone. Otherwise it also gets the
// tags of its detected content, and loses the text tag when the content is
// binary.
func ForPath(path string) Tags {
	tags := ForFile(filepath.Base(path))

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return tags
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return tags
	}

	delete(tags, Text)
	for m := mt; m != nil; m = m.Parent() {
		for _, c := range content {
			if m.Is(c.mime) {
				tags[c.tag] = struct{}{}
			}
		}
	}
	return tags
}

// New builds a tag set.
func New(tags ...string) Tags {
	t := make(Tags, len(tags))
	for _, tag := range tags {
		t[tag] = struct{}{}
	}
	return t
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// Intersects reports whether the two sets share a tag.
func (t Tags) Intersects(other Tags) bool {
	for tag := range other {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// Sorted lists the tags in ascending order.
func (t Tags) Sorted() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
