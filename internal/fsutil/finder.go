// Package fsutil provides the file system helpers shared by the resolver,
// the cache and the checkers: climbing the directory tree, listing files in
// a single directory and writing files atomically.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FindFiles returns the files in dir (not its subdirectories) whose base name
// matches pattern, sorted by name.
func FindFiles(dir string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
