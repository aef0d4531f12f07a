package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nitpickgo/internal/cache"
	"github.com/vk/nitpickgo/internal/diag"
)

const baseStyle = `
["pyproject.toml".tool.black]
line-length = 120

["setup.cfg".flake8]
max-line-length = 120
`

// writeTree creates files (relative path -> content) under a new temporary
// directory and returns it.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func codes(diags []diag.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestCheck_CompliantProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"nitpick-style.toml": baseStyle,
		"pyproject.toml":     "[tool.black]\nline-length = 120\n",
		"setup.cfg":          "[flake8]\nmax-line-length = 120\n",
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	assert.Empty(t, diags)
}

func TestCheck_NonCompliantProjectKeepsRegistrationOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"nitpick-style.toml": baseStyle,
		"pyproject.toml":     "[tool.black]\nline-length = 88\n",
		"Pipfile":            "",
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	require.Equal(t, []int{311, 102, 103}, codes(diags))
	assert.Contains(t, diags[0].Message, "File pyproject.toml has missing values:")
	assert.Contains(t, diags[0].Message, "line-length = 120")
	assert.Equal(t, "Missing file 'setup.cfg'. Create it with this content:\n[flake8]\nmax-line-length = 120", diags[1].Message)
	assert.Equal(t, "File 'Pipfile' should be deleted", diags[2].Message)
}

func TestCheck_OnlyPrimaryFileReports(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"other.py":           "",
		"nitpick-style.toml": baseStyle,
	})
	a, _, _ := SetupAppTest(t, &Config{})
	ctx := context.Background()

	assert.Empty(t, a.Check(ctx, filepath.Join(root, "other.py")))
	assert.NotEmpty(t, a.Check(ctx, filepath.Join(root, "setup.py")))
}

func TestCheck_FirstPythonFileIsPrimaryWithoutEntryPoint(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pyproject.toml":     "",
		"b.py":               "",
		"a.py":               "",
		"nitpick-style.toml": "",
	})
	a, _, _ := SetupAppTest(t, &Config{})
	ctx := context.Background()

	assert.Empty(t, a.Check(ctx, filepath.Join(root, "b.py")))
	// setup.cfg is missing
	assert.Equal(t, []int{102}, codes(a.Check(ctx, filepath.Join(root, "a.py"))))
}

func TestCheck_NoRootDir(t *testing.T) {
	dir := writeTree(t, map[string]string{"lonely.py": ""})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(dir, "lonely.py"))

	require.Equal(t, []int{100}, codes(diags))
	assert.Equal(t, "No root dir found (is this a Python project?)", diags[0].Message)
}

func TestCheck_StyleNotFound(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":       "",
		"pyproject.toml": "[tool.nitpick]\nstyle = \"missing.toml\"\n",
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	require.Equal(t, []int{100}, codes(diags))
	assert.Contains(t, diags[0].Message, "missing.toml")
}

func TestCheck_InvalidFragmentSkipsRulesOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":       "",
		"setup.cfg":      "",
		"pyproject.toml": "",
		"nitpick-style.toml": `
[["some.txt".contains]]
line = ""

["conf.json"]
contains_keys = ["name"]
`,
		"some.txt":  "whatever\n",
		"conf.json": `{"other": 1}`,
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	require.Equal(t, []int{341, 101}, codes(diags))
	assert.True(t, strings.HasPrefix(diags[1].Message, "File some.txt has an incorrect style. Invalid config:\n"), diags[1].Message)
}

func TestCheck_InvalidFilesTable(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"setup.cfg":          "",
		"pyproject.toml":     "",
		"nitpick-style.toml": "[files]\n\"tox.ini\" = \"yes\"\n",
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	require.NotEmpty(t, diags)
	assert.Equal(t, 101, diags[0].Code)
	assert.True(t, strings.HasPrefix(diags[0].Message, "File files has an incorrect style."), diags[0].Message)
}

func TestCheck_FilesTableOverridesExistence(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"pyproject.toml":     "",
		"Pipfile":            "",
		"nitpick-style.toml": "[files]\n\"setup.cfg\" = false\nPipfile = true\n\"tox.ini\" = true\n",
	})
	a, _, _ := SetupAppTest(t, &Config{})

	diags := a.Check(context.Background(), filepath.Join(root, "setup.py"))

	require.Equal(t, []int{102}, codes(diags))
	assert.Equal(t, "Missing file 'tox.ini'", diags[0].Message)
}

func TestRun_PrintsDiagnostics(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"pyproject.toml":     "",
		"nitpick-style.toml": "",
	})
	file := filepath.Join(root, "setup.py")
	a, out, _ := SetupAppTest(t, &Config{Files: []string{file}})

	count, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, file+":1:0: NIP102 Missing file 'setup.cfg'\n", out.String())
}

func TestRun_DefaultsToPrimaryFileOfWorkDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"manage.py":          "",
		"setup.cfg":          "",
		"pyproject.toml":     "",
		"nitpick-style.toml": "[files]\nPipfile = true\n",
	})
	a, out, _ := SetupAppTest(t, &Config{WorkDir: root})

	count, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), filepath.Join(root, "manage.py")+":1:0: NIP102 Missing file 'Pipfile'")
}

func TestNewConfig(t *testing.T) {
	valid := Config{CacheDir: ".cache/nitpick", FetchTimeout: 1, LogLevel: "info", LogFormat: "json"}

	_, err := NewConfig(valid)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no cache dir", mutate: func(c *Config) { c.CacheDir = "" }},
		{name: "no timeout", mutate: func(c *Config) { c.FetchTimeout = 0 }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			_, err := NewConfig(cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewApp_CorruptCacheIsReplaced(t *testing.T) {
	workDir := writeTree(t, map[string]string{".cache/nitpick/variables.toml": "root_dir = [broken"})
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"setup.cfg":          "",
		"pyproject.toml":     "",
		"nitpick-style.toml": "",
	})
	a, _, logs := SetupAppTest(t, &Config{WorkDir: workDir})

	assert.Empty(t, a.Check(context.Background(), filepath.Join(root, "setup.py")))
	assert.Contains(t, logs.String(), "Ignoring unreadable cache")

	root2, ok := a.Cache().LoadPath(cache.KeyRootDir)
	require.True(t, ok)
	assert.Equal(t, root, root2)
}

func TestCheck_CheckerLogsCarryCheckerAttributes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":           "",
		"setup.cfg":          "",
		"pyproject.toml":     "",
		"nitpick-style.toml": "",
	})
	a, _, logs := SetupAppTest(t, &Config{})

	a.Check(context.Background(), filepath.Join(root, "setup.py"))

	assert.Contains(t, logs.String(), "checker=pyproject target=pyproject.toml")
	assert.Contains(t, logs.String(), "tag_handlers=")
}
