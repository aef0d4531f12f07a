package app

import (
	"context"
	"fmt"

	"github.com/vk/nitpickgo/internal/ctxlog"
)

// Run checks every configured file, printing diagnostics as they are found.
// It returns the number of diagnostics printed.
func (a *App) Run(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files := a.config.Files
	if len(files) == 0 {
		primary, err := a.primaryFile()
		if err != nil {
			return 0, err
		}
		files = []string{primary}
	}

	count := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		for _, d := range a.Check(ctx, file) {
			if _, err := fmt.Fprintln(a.outW, d.Format(file)); err != nil {
				return count, fmt.Errorf("failed to write diagnostic: %w", err)
			}
			count++
		}
	}

	a.logger.Debug("App.Run method finished.", "files", len(files), "diagnostics", count)
	return count, nil
}

// primaryFile picks the file to inspect when none is given: the primary file
// of the project containing the working directory. Without a project the
// working directory itself is inspected, which yields the missing-root
// diagnostic.
func (a *App) primaryFile() (string, error) {
	workDir := a.cache.WorkDir()
	root, err := a.root(workDir)
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	if root == "" {
		return workDir, nil
	}
	return a.finder.FindMainFile(root, workDir)
}
