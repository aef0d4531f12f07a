// Package cache implements the resolution cache: one TOML document holding
// string values that are expensive to compute (project root, style location,
// primary file) and are reused by later invocations in the same project.
//
// The document is read fully when the cache is opened and rewritten fully on
// every Dump. Values never expire; delete the file to reset it. Writes go
// through a temp file and a rename, but concurrent invocations are not
// coordinated, so the last writer wins.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/vk/nitpickgo/internal/fsutil"
)

// Key names one cached value.
type Key string

const (
	// KeyStyle is the resolved style document path.
	KeyStyle Key = "style"
	// KeyRootDir is the project root directory.
	KeyRootDir Key = "root_dir"
	// KeyMainFile is the primary file that diagnostics are reported on.
	KeyMainFile Key = "main_python_file"
)

// FileName is the name of the cache document inside the cache directory.
const FileName = "variables.toml"

// Cache is the in-memory view of the cache document.
type Cache struct {
	workDir string
	dir     string
	persist bool
	values  map[string]string
}

// Open loads the cache document from dir. A relative dir is taken relative to
// workDir, which is also the base for the path-aware methods. A missing
// document is an empty cache; it is created on the first Dump.
func Open(workDir, dir string) (*Cache, error) {
	c := newCache(workDir, dir, true)

	data, err := os.ReadFile(c.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file %s: %w", c.Path(), err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", c.Path(), err)
	}
	for k, v := range raw {
		c.values[k] = fmt.Sprint(v)
	}
	return c, nil
}

// Empty returns a persistent cache that ignores the document on disk. The
// first Dump replaces it.
func Empty(workDir, dir string) *Cache {
	return newCache(workDir, dir, true)
}

// Ephemeral returns a cache that starts empty and never touches the disk.
// The directory is still reported by Dir for callers that store side files.
func Ephemeral(workDir, dir string) *Cache {
	return newCache(workDir, dir, false)
}

func newCache(workDir, dir string, persist bool) *Cache {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	return &Cache{
		workDir: workDir,
		dir:     dir,
		persist: persist,
		values:  make(map[string]string),
	}
}

// Dir is the absolute cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// WorkDir is the directory relative cached paths are resolved against.
func (c *Cache) WorkDir() string {
	return c.workDir
}

// Path is the absolute path of the cache document.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, FileName)
}

// Load returns the value stored under key.
func (c *Cache) Load(key Key) (string, bool) {
	v, ok := c.values[string(key)]
	return v, ok
}

// Dump stores value under key and rewrites the cache document.
func (c *Cache) Dump(key Key, value string) (string, error) {
	c.values[string(key)] = value
	if !c.persist {
		return value, nil
	}

	data, err := toml.Marshal(c.values)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := fsutil.WriteFileAtomic(c.Path(), data); err != nil {
		return "", fmt.Errorf("failed to write cache file %s: %w", c.Path(), err)
	}
	return value, nil
}

// LoadPath returns the path stored under key as an absolute path.
func (c *Cache) LoadPath(key Key) (string, bool) {
	v, ok := c.Load(key)
	if !ok || v == "" {
		return "", false
	}
	if !filepath.IsAbs(v) {
		v = filepath.Join(c.workDir, v)
	}
	return filepath.Clean(v), true
}

// DumpPath stores path relative to the working directory and returns it in
// absolute form. Paths on another volume are stored as they are.
func (c *Cache) DumpPath(key Key, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.workDir, abs)
	}
	abs = filepath.Clean(abs)

	stored := abs
	if rel, err := filepath.Rel(c.workDir, abs); err == nil {
		stored = filepath.ToSlash(rel)
	}
	if _, err := c.Dump(key, stored); err != nil {
		return "", err
	}
	return abs, nil
}
