// Package testutil runs the whole application against throwaway projects.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/nitpickgo/internal/app"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root        string
	Diagnostics []diag.Diagnostic
	LogOutput   string
	App         *app.App
}

// WriteProject creates files (slash-separated relative path -> content)
// under a new temporary directory and returns its path.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// RunIntegrationTest writes files as a project and checks its setup.py with
// a fresh App. The project should contain a setup.py so that it is the
// primary file.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	root := WriteProject(t, files)
	a, _, logs := app.SetupAppTest(t, &app.Config{}, modules...)
	diags := a.Check(ctx, filepath.Join(root, "setup.py"))

	return &HarnessResult{
		Root:        root,
		Diagnostics: diags,
		LogOutput:   logs.String(),
		App:         a,
	}
}
