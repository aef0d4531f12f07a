package text

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nitpickgo/internal/checker"
	"github.com/vk/nitpickgo/internal/schema"
)

func contains(lines ...string) map[string]any {
	items := make([]any, len(lines))
	for i, l := range lines {
		items[i] = map[string]any{"line": l}
	}
	return map[string]any{"contains": items}
}

func target(t *testing.T, content *string, fragment any) *checker.Target {
	t.Helper()
	path := filepath.Join(t.TempDir(), "some.txt")
	if content != nil {
		require.NoError(t, os.WriteFile(path, []byte(*content), 0o644))
	}
	return &checker.Target{FileName: "some.txt", Path: path, Exists: content != nil, Fragment: fragment}
}

func run(t *testing.T, tgt *checker.Target) ([]string, []int) {
	t.Helper()
	c := New(tgt.FileName)
	cfg, err := c.Validate(tgt)
	require.NoError(t, err)

	var messages []string
	var codes []int
	for _, d := range c.CheckRules(context.Background(), tgt, cfg) {
		messages = append(messages, d.Message)
		codes = append(codes, d.Code)
	}
	return messages, codes
}

func strPtr(s string) *string { return &s }

func TestCheckRules_MissingLine(t *testing.T) {
	messages, codes := run(t, target(t, strPtr("abc\n"), contains("abc", "def")))

	require.Len(t, messages, 1)
	assert.Equal(t, []int{352}, codes)
	assert.Equal(t, "File some.txt has missing lines:\ndef", messages[0])
}

func TestCheckRules_OrderInsensitive(t *testing.T) {
	messages, _ := run(t, target(t, strPtr("def\nabc\n"), contains("abc", "def")))

	assert.Empty(t, messages)
}

func TestCheckRules_MissingLinesAreSorted(t *testing.T) {
	messages, _ := run(t, target(t, strPtr("other\r\n"), contains("zeta", "alpha", "other")))

	require.Len(t, messages, 1)
	assert.Equal(t, "File some.txt has missing lines:\nalpha\nzeta", messages[0])
}

func TestCheckRules_AbsentFileIsLeftToExistenceCheck(t *testing.T) {
	messages, _ := run(t, target(t, nil, contains("abc")))

	assert.Empty(t, messages)
}

func TestValidate_RejectsBadFragments(t *testing.T) {
	testCases := []struct {
		name     string
		fragment any
	}{
		{name: "unknown key", fragment: map[string]any{"contain": []any{}}},
		{name: "empty line", fragment: contains("")},
		{name: "blank line", fragment: contains("   ")},
		{name: "unknown item key", fragment: map[string]any{"contains": []any{map[string]any{"line": "a", "x": 1}}}},
		{name: "not a table", fragment: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New("some.txt")
			_, err := c.Validate(&checker.Target{FileName: "some.txt", Fragment: tc.fragment})
			var verr *schema.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestSuggest(t *testing.T) {
	c := New("some.txt")
	tgt := &checker.Target{FileName: "some.txt", Fragment: contains("abc", "def", "abc")}
	cfg, err := c.Validate(tgt)
	require.NoError(t, err)

	s, ok := c.(checker.Suggester)
	require.True(t, ok)
	assert.Equal(t, "abc\ndef", s.Suggest(tgt, cfg))
}
