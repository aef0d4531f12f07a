package flatdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	tree := map[string]any{
		"tool": map[string]any{
			"black": map[string]any{
				"line-length": int64(120),
				"targets":     []any{"py37", "py38"},
			},
		},
		"name": "demo",
	}

	want := map[string]any{
		"tool.black.line-length": int64(120),
		"tool.black.targets":     []any{"py37", "py38"},
		"name":                   "demo",
	}
	if diff := cmp.Diff(want, Flatten(tree, Separator)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_CustomSeparator(t *testing.T) {
	tree := map[string]any{"a": map[string]any{"b": 1}}

	assert.Equal(t, map[string]any{"a/b": 1}, Flatten(tree, "/"))
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		tree map[string]any
	}{
		{name: "empty", tree: map[string]any{}},
		{name: "flat", tree: map[string]any{"a": 1, "b": "two", "c": true}},
		{
			name: "deep",
			tree: map[string]any{
				"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "leaf"}}},
				"x": []any{int64(1), int64(2)},
			},
		},
		{
			name: "empty nested table",
			tree: map[string]any{"tool": map[string]any{"isort": map[string]any{}}},
		},
		{
			name: "keys containing the separator",
			tree: map[string]any{
				"setup.cfg": map[string]any{"flake8.max": 10},
				`back\slash`: map[string]any{`x.\y`: "z"},
				"trailing.":  "dot",
			},
		},
		{name: "empty key holding a table", tree: map[string]any{"": map[string]any{"a": 1}}},
		{name: "empty key holding a scalar", tree: map[string]any{"": 1, "b": 2}},
		{name: "nested empty keys", tree: map[string]any{"": map[string]any{"": map[string]any{"x": "y"}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Unflatten(Flatten(tc.tree, Separator), Separator)
			if diff := cmp.Diff(tc.tree, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten_EmptyKeyKeepsItsSegment(t *testing.T) {
	flat := Flatten(map[string]any{"": map[string]any{"a": 1}}, Separator)

	assert.Equal(t, map[string]any{".a": 1}, flat)
}

func TestMissing_EmptyKeyIsNotTheRoot(t *testing.T) {
	expected := map[string]any{"": map[string]any{"a": int64(1)}}

	assert.Equal(t, expected, Missing(expected, map[string]any{"a": int64(1)}))
	assert.Empty(t, Missing(expected, map[string]any{"": map[string]any{"a": int64(1)}, "a": int64(2)}))
}

func TestUnflatten_EscapedKeys(t *testing.T) {
	flat := Flatten(map[string]any{"setup.cfg": map[string]any{"k": "v"}}, Separator)

	require.Contains(t, flat, `setup\.cfg.k`)
	assert.Equal(t, map[string]any{"setup.cfg": map[string]any{"k": "v"}}, Unflatten(flat, Separator))
}

func TestMissing(t *testing.T) {
	actual := map[string]any{
		"tool": map[string]any{
			"black": map[string]any{"line-length": int64(120), "fast": true},
			"isort": map[string]any{"profile": "black"},
		},
	}

	testCases := []struct {
		name     string
		expected map[string]any
		want     map[string]any
	}{
		{
			name:     "subset is compliant",
			expected: map[string]any{"tool": map[string]any{"black": map[string]any{"line-length": int64(120)}}},
			want:     map[string]any{},
		},
		{
			name:     "empty expected",
			expected: map[string]any{},
			want:     map[string]any{},
		},
		{
			name:     "absent key is reported with the expected value",
			expected: map[string]any{"tool": map[string]any{"mypy": map[string]any{"strict": true}}},
			want:     map[string]any{"tool": map[string]any{"mypy": map[string]any{"strict": true}}},
		},
		{
			name:     "different value counts as missing",
			expected: map[string]any{"tool": map[string]any{"black": map[string]any{"line-length": int64(88)}}},
			want:     map[string]any{"tool": map[string]any{"black": map[string]any{"line-length": int64(88)}}},
		},
		{
			name: "only the missing leaves are kept",
			expected: map[string]any{"tool": map[string]any{
				"black": map[string]any{"line-length": int64(120), "skip-string-normalization": true},
			}},
			want: map[string]any{"tool": map[string]any{
				"black": map[string]any{"skip-string-normalization": true},
			}},
		},
		{
			name:     "numeric types compare by value",
			expected: map[string]any{"tool": map[string]any{"black": map[string]any{"line-length": 120.0}}},
			want:     map[string]any{},
		},
		{
			name:     "expected empty table is satisfied by an existing table",
			expected: map[string]any{"tool": map[string]any{"isort": map[string]any{}}},
			want:     map[string]any{},
		},
		{
			name:     "expected empty table that does not exist",
			expected: map[string]any{"tool": map[string]any{"pylint": map[string]any{}}},
			want:     map[string]any{"tool": map[string]any{"pylint": map[string]any{}}},
		},
		{
			name:     "lists are compared as whole leaves",
			expected: map[string]any{"a": []any{"x"}},
			want:     map[string]any{"a": []any{"x"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Missing(tc.expected, actual)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	in := map[any]any{
		"int":   7,
		"uint":  uint8(3),
		"float": 2.5,
		"whole": 4.0,
		"list":  []string{"a", "b"},
		"map":   map[string]int{"n": 1},
	}

	want := map[string]any{
		"int":   int64(7),
		"uint":  int64(3),
		"float": 2.5,
		"whole": int64(4),
		"list":  []any{"a", "b"},
		"map":   map[string]any{"n": int64(1)},
	}
	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(int64(1), 1.0))
	assert.True(t, Equal([]any{1, "a"}, []any{int64(1), "a"}))
	assert.False(t, Equal("1", 1))
	assert.False(t, Equal(true, "true"))
}
