package style

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/vk/nitpickgo/internal/cache"
	"github.com/vk/nitpickgo/internal/ctxlog"
	"github.com/vk/nitpickgo/internal/fsutil"
)

const (
	// DefaultFileName is the style file looked up the directory tree.
	DefaultFileName = "nitpick-style.toml"
	// ManifestFileName is the project file that may name the style.
	ManifestFileName = "pyproject.toml"
)

var remotePrefixes = []string{"http://", "https://"}

// Resolver finds the style document for a project.
type Resolver struct {
	cache   *cache.Cache
	fetcher Fetcher
	climb   func(start string, patterns ...string) ([]string, error)
}

// NewResolver builds a resolver that remembers its answer in c.
func NewResolver(c *cache.Cache, fetcher Fetcher) *Resolver {
	return &Resolver{
		cache:   c,
		fetcher: fetcher,
		climb:   fsutil.Climb,
	}
}

// Resolve locates and loads the style for the project rooted at root.
func (r *Resolver) Resolve(ctx context.Context, root string) (*Document, error) {
	path, err := r.Locate(ctx, root)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Locate returns the style path, trying in order: the cached path, the
// locator in the project manifest (remote URL or local path), and the
// nearest nitpick-style.toml above root. A path found by any step but the
// first is cached.
func (r *Resolver) Locate(ctx context.Context, root string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if path, ok := r.cache.LoadPath(cache.KeyStyle); ok {
		logger.Debug("Using cached style.", "path", path)
		return path, nil
	}

	locator, err := readLocator(filepath.Join(root, ManifestFileName))
	if err != nil {
		return "", err
	}

	var path string
	switch {
	case isRemote(locator):
		path, err = r.fetch(ctx, locator)
	case locator != "":
		path, err = localStyle(root, locator)
	default:
		path, err = r.discover(root)
	}
	if err != nil {
		return "", err
	}

	logger.Info("Style resolved.", "path", path, "locator", locator)
	if _, err := r.cache.DumpPath(cache.KeyStyle, path); err != nil {
		logger.Warn("Cannot cache the style path.", "error", err)
	}
	return path, nil
}

func (r *Resolver) fetch(ctx context.Context, url string) (string, error) {
	ctxlog.FromContext(ctx).Debug("Fetching remote style.", "url", url)

	contents, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", configErr(err, "Error fetching style URL %s", url)
	}

	path := filepath.Join(r.cache.Dir(), fmt.Sprintf("style-%016x.toml", xxhash.Sum64String(url)))
	if err := fsutil.WriteFileAtomic(path, []byte(contents)); err != nil {
		return "", configErr(err, "Cannot store style fetched from %s", url)
	}
	return path, nil
}

func localStyle(root, locator string) (string, error) {
	path := locator
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if !fsutil.Exists(path) {
		return "", configErr(nil, "Style file does not exist: %s", locator)
	}
	return path, nil
}

func (r *Resolver) discover(root string) (string, error) {
	found, err := r.climb(root, DefaultFileName)
	if err != nil {
		return "", configErr(err, "Cannot search for %s", DefaultFileName)
	}
	if len(found) == 0 {
		return "", configErr(nil, "Style not configured on %s and %s not found in directory tree", ManifestFileName, DefaultFileName)
	}
	return found[0], nil
}

// readLocator returns [tool.nitpick] style from the manifest, or "" when the
// manifest or the key is absent.
func readLocator(manifest string) (string, error) {
	data, err := os.ReadFile(manifest)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", configErr(err, "Cannot read %s", manifest)
	}

	var doc struct {
		Tool struct {
			Nitpick struct {
				Style string `toml:"style"`
			} `toml:"nitpick"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", configErr(err, "Invalid %s", manifest)
	}
	return strings.TrimSpace(doc.Tool.Nitpick.Style), nil
}

func isRemote(locator string) bool {
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(locator, prefix) {
			return true
		}
	}
	return false
}
