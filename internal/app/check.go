package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/ctxlog"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/fsutil"
	"github.com/vk/nitpickgo/internal/project"
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/internal/schema"
	"github.com/vk/nitpickgo/internal/style"
)

// Check inspects the project containing file and returns its diagnostics in
// order. It returns nothing unless file is the project's primary file, so
// that calling it once per file reports each problem once.
func (a *App) Check(ctx context.Context, file string) []diag.Diagnostic {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("file", file))
	logger := ctxlog.FromContext(ctx)

	root, err := a.root(file)
	if err != nil {
		return []diag.Diagnostic{configurationError(err.Error())}
	}
	if root == "" {
		return []diag.Diagnostic{configurationError("No root dir found (is this a Python project?)")}
	}

	primary, err := a.finder.FindMainFile(root, file)
	if err != nil {
		return []diag.Diagnostic{configurationError(err.Error())}
	}
	if !project.IsPrimary(file, primary) {
		logger.Debug("Not the primary file, skipping.", "primary", primary)
		return nil
	}

	doc, err := a.resolver.Resolve(ctx, root)
	if err != nil {
		var cfgErr *style.ConfigurationError
		if !errors.As(err, &cfgErr) {
			logger.Warn("Unexpected style resolution failure.", "error", err)
		}
		return []diag.Diagnostic{configurationError(err.Error())}
	}
	logger.Debug("Style resolved.", "root", root, "style", doc.Path)

	var diags []diag.Diagnostic
	overrides, err := doc.Files()
	if err != nil {
		diags = append(diags, invalidStyle(style.FilesKey, err))
	}

	for _, entry := range a.registry.Plan(root, doc.FileNames()) {
		diags = append(diags, a.checkEntry(ctx, root, doc, overrides, entry)...)
	}
	logger.Debug("Check finished.", "diagnostics", len(diags))
	return diags
}

func (a *App) root(file string) (string, error) {
	if a.config.Root != "" {
		return filepath.Abs(a.config.Root)
	}
	root, ok, err := a.finder.FindRoot(file)
	if err != nil || !ok {
		return "", err
	}
	return root, nil
}

// checkEntry runs one checker: schema validation, then the existence check,
// then the rules when the fragment is valid.
func (a *App) checkEntry(ctx context.Context, root string, doc *style.Document, overrides map[string]bool, entry registry.Entry) []diag.Diagnostic {
	c := entry.Checker
	ctx = ctxlog.With(ctx, "checker", c.Descriptor().Name, "target", entry.FileName)
	logger := ctxlog.FromContext(ctx)

	path := filepath.Join(root, filepath.FromSlash(entry.FileName))
	t := &checker.Target{
		FileName: entry.FileName,
		Path:     path,
		Exists:   fsutil.Exists(path),
		Fragment: doc.Fragment(entry.FileName),
		Options:  doc.FileOptions(entry.FileName),
	}

	var diags []diag.Diagnostic
	cfg, err := c.Validate(t)
	valid := err == nil
	if !valid {
		logger.Debug("Style fragment rejected.", "error", err)
		diags = append(diags, invalidStyle(entry.FileName, err))
	}

	var override *bool
	if v, ok := overrides[entry.FileName]; ok {
		override = &v
	}
	var suggestion string
	if s, ok := c.(checker.Suggester); ok && valid {
		suggestion = s.Suggest(t, cfg)
	}
	diags = append(diags, checker.CheckExists(c, t, override, suggestion)...)

	if valid {
		diags = append(diags, c.CheckRules(ctx, t, cfg)...)
	}
	return diags
}

func configurationError(msg string) diag.Diagnostic {
	return diag.New(diag.Core, diag.CodeConfiguration, msg)
}

func invalidStyle(name string, err error) diag.Diagnostic {
	problems := []string{err.Error()}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		problems = verr.Problems
	}
	return diag.New(diag.Core, diag.CodeInvalidStyle,
		fmt.Sprintf("File %s has an incorrect style. Invalid config:\n%s", name, strings.Join(problems, "\n")))
}
