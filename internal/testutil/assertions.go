package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Codes returns the diagnostic codes of a run, in order.
func (r *HarnessResult) Codes() []int {
	codes := make([]int, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

// Find returns the messages of the diagnostics with the given code.
func (r *HarnessResult) Find(code int) []string {
	var messages []string
	for _, d := range r.Diagnostics {
		if d.Code == code {
			messages = append(messages, d.Message)
		}
	}
	return messages
}

// AssertCompliant fails the test when the run produced any diagnostic.
func AssertCompliant(t *testing.T, result *HarnessResult) {
	t.Helper()

	var lines []string
	for _, d := range result.Diagnostics {
		lines = append(lines, d.Text())
	}
	require.Empty(t, lines, "expected a compliant project, got:\n%s", strings.Join(lines, "\n"))
}

// AssertDiagnostic checks that a diagnostic with code exists and that its
// message contains every fragment.
func AssertDiagnostic(t *testing.T, result *HarnessResult, code int, fragments ...string) {
	t.Helper()

	messages := result.Find(code)
	require.NotEmpty(t, messages, "no NIP%d diagnostic; got codes %v", code, result.Codes())
	for _, fragment := range fragments {
		found := false
		for _, m := range messages {
			if strings.Contains(m, fragment) {
				found = true
				break
			}
		}
		require.True(t, found, fmt.Sprintf("no NIP%d diagnostic contains %q in %q", code, fragment, messages))
	}
}
