// Package project finds the project root and the primary file of a project,
// caching both.
package project

import (
	"path/filepath"

	"github.com/vk/nitpickgo/internal/cache"
	"github.com/vk/nitpickgo/internal/fsutil"
)

// RootPythonFiles are the conventional entry points, in order of preference
// for the primary file.
var RootPythonFiles = []string{"setup.py", "manage.py", "autoapp.py"}

// RootFiles mark the root directory of a project.
var RootFiles = append([]string{"pyproject.toml", "setup.cfg", "requirements*.txt", "Pipfile"}, RootPythonFiles...)

// Finder answers the per-project questions a run asks before checking.
type Finder struct {
	cache   *cache.Cache
	markers []string
}

// NewFinder builds a finder with the given root markers, or RootFiles when
// none are given.
func NewFinder(c *cache.Cache, markers ...string) *Finder {
	if len(markers) == 0 {
		markers = RootFiles
	}
	return &Finder{cache: c, markers: markers}
}

// FindRoot returns the nearest directory above file holding a root marker.
// ok is false when no such directory exists.
func (f *Finder) FindRoot(file string) (root string, ok bool, err error) {
	if cached, ok := f.cache.LoadPath(cache.KeyRootDir); ok {
		return cached, true, nil
	}

	found, err := fsutil.Climb(file, f.markers...)
	if err != nil {
		return "", false, err
	}
	if len(found) == 0 {
		return "", false, nil
	}
	root, err = f.cache.DumpPath(cache.KeyRootDir, filepath.Dir(found[0]))
	if err != nil {
		return "", false, err
	}
	return root, true, nil
}

// FindMainFile returns the primary file of the project: the first
// conventional entry point present in root, else the first *.py file in
// root, else current.
func (f *Finder) FindMainFile(root, current string) (string, error) {
	if cached, ok := f.cache.LoadPath(cache.KeyMainFile); ok {
		return cached, nil
	}

	found := current
	candidates, err := fsutil.FindFiles(root, "*.py")
	if err != nil {
		return "", err
	}
	for _, name := range RootPythonFiles {
		if path := filepath.Join(root, name); fsutil.Exists(path) {
			candidates = append([]string{path}, candidates...)
			break
		}
	}
	if len(candidates) > 0 {
		found = candidates[0]
	}
	return f.cache.DumpPath(cache.KeyMainFile, found)
}

// IsPrimary reports whether current is the file diagnostics are reported on.
func IsPrimary(current, primary string) bool {
	a, errA := filepath.Abs(current)
	b, errB := filepath.Abs(primary)
	if errA != nil || errB != nil {
		return filepath.Clean(current) == filepath.Clean(primary)
	}
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return a == b
}
