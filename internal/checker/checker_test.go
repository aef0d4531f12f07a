package checker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nitpickgo/internal/diag"
	"github.com/vk/nitpickgo/internal/format"
)

func boolPtr(b bool) *bool { return &b }

func TestCheckExists(t *testing.T) {
	testCases := []struct {
		name        string
		defaultPol  bool
		override    *bool
		exists      bool
		wantCode    int
		wantMessage string
	}{
		{name: "should exist and missing", defaultPol: true, exists: false, wantCode: diag.CodeMissingFile, wantMessage: "Missing file 'setup.cfg'"},
		{name: "should not exist and present", defaultPol: false, exists: true, wantCode: diag.CodeDeleteFile, wantMessage: "File 'setup.cfg' should be deleted"},
		{name: "should exist and present", defaultPol: true, exists: true},
		{name: "should not exist and missing", defaultPol: false, exists: false},
		{name: "override forces existence", defaultPol: false, override: boolPtr(true), exists: false, wantCode: diag.CodeMissingFile, wantMessage: "Missing file 'setup.cfg'"},
		{name: "override forces deletion", defaultPol: true, override: boolPtr(false), exists: true, wantCode: diag.CodeDeleteFile, wantMessage: "File 'setup.cfg' should be deleted"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Existence("setupcfg", "setup.cfg", tc.defaultPol)
			target := &Target{FileName: "setup.cfg", Exists: tc.exists}

			got := CheckExists(c, target, tc.override, "")
			if tc.wantCode == 0 {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tc.wantCode, got[0].Code)
			assert.Equal(t, tc.wantMessage, got[0].Message)
			assert.Equal(t, "setupcfg", got[0].Checker)
		})
	}
}

func TestCheckExists_WithSuggestion(t *testing.T) {
	c := Existence("text", "req.txt", true)

	got := CheckExists(c, &Target{FileName: "req.txt"}, nil, "abc\ndef")
	require.Len(t, got, 1)
	assert.Equal(t, "Missing file 'req.txt'. Create it with this content:\nabc\ndef", got[0].Message)
}

func TestBase_Validate(t *testing.T) {
	b := &Base{Desc: Descriptor{Name: "toml"}}

	cfg, err := b.Validate(&Target{FileName: "x.toml", Fragment: map[string]any{"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, cfg)

	_, err = b.Validate(&Target{FileName: "x.toml", Fragment: []any{1}})
	require.Error(t, err)
}

func writeTarget(t *testing.T, name, content string) *Target {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &Target{FileName: name, Path: path, Exists: true}
}

func TestStructured_CheckRules(t *testing.T) {
	s := NewStructured(Descriptor{Name: "toml", ErrorBase: 370}, format.TOML{})
	ctx := context.Background()

	target := writeTarget(t, "ruff.toml", "line-length = 100\n[lint]\nselect = [\"E\"]\n")

	compliant := map[string]any{"lint": map[string]any{"select": []any{"E"}}}
	assert.Empty(t, s.CheckRules(ctx, target, compliant))

	expected := map[string]any{"line-length": int64(120), "lint": map[string]any{"select": []any{"E"}}}
	got := s.CheckRules(ctx, target, expected)
	require.Len(t, got, 1)
	assert.Equal(t, 371, got[0].Code)
	assert.Equal(t, "File ruff.toml has missing values:\nline-length = 120", got[0].Message)
}

func TestStructured_UnparsableFile(t *testing.T) {
	s := NewStructured(Descriptor{Name: "toml", ErrorBase: 370}, format.TOML{})
	target := writeTarget(t, "ruff.toml", "[broken")

	got := s.CheckRules(context.Background(), target, map[string]any{"a": 1})
	require.Len(t, got, 1)
	assert.Equal(t, 370, got[0].Code)
	assert.Contains(t, got[0].Message, "could not be parsed")
}

func TestStructured_MissingFileIsLeftToExistenceCheck(t *testing.T) {
	s := NewStructured(Descriptor{Name: "toml", ErrorBase: 370}, format.TOML{})

	got := s.CheckRules(context.Background(), &Target{FileName: "ruff.toml"}, map[string]any{"a": 1})
	assert.Empty(t, got)
}

func TestStructured_Suggest(t *testing.T) {
	s := NewStructured(Descriptor{Name: "yaml", ErrorBase: 330}, format.YAML{})

	assert.Equal(t, "a: 1\n", s.Suggest(nil, map[string]any{"a": int64(1)}))
	assert.Empty(t, s.Suggest(nil, map[string]any{}))
}
