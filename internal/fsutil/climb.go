package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Climb walks up from start looking for files matching any of the glob
// patterns. The first directory holding a match wins, and every match for
// that pattern in that directory is returned, sorted. A start that names a
// file is replaced by its parent directory.
//
// A nil slice means no ancestor up to the filesystem root matched.
func Climb(start string, patterns ...string) ([]string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		for _, pattern := range patterns {
			found, err := filepath.Glob(filepath.Join(escapeMeta(current), pattern))
			if err != nil {
				return nil, err
			}
			if len(found) > 0 {
				sort.Strings(found)
				return found, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// escapeMeta quotes glob metacharacters in a literal directory path so only
// the pattern part is expanded.
func escapeMeta(dir string) string {
	if runtime.GOOS == "windows" {
		return dir
	}
	var b strings.Builder
	for _, r := range dir {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
