// Package diag defines the diagnostics a run produces.
package diag

import (
	"fmt"
	"strings"
)

// Prefix is prepended to every diagnostic code.
const Prefix = "NIP"

// Codes reserved for the core. Checkers allocate codes from their own base.
const (
	CodeConfiguration = 100
	CodeInvalidStyle  = 101
	CodeMissingFile   = 102
	CodeDeleteFile    = 103
)

// Core is the checker identity used for diagnostics not raised by a checker.
const Core = "nitpick"

// Diagnostic is one finding, reported at a line and column of the file under
// inspection.
type Diagnostic struct {
	Line    int
	Column  int
	Code    int
	Message string
	Checker string
}

// New builds a diagnostic at the default position (line 1, column 0).
func New(checker string, code int, message string) Diagnostic {
	return Diagnostic{Line: 1, Column: 0, Code: code, Message: message, Checker: checker}
}

// Text is the message prefixed with its code, e.g. "NIP102 Missing file".
func (d Diagnostic) Text() string {
	return fmt.Sprintf("%s%d %s", Prefix, d.Code, d.Message)
}

// Format renders the diagnostic the way linters print them:
// "path:line:column: NIP123 message".
func (d Diagnostic) Format(path string) string {
	return fmt.Sprintf("%s:%d:%d: %s", path, d.Line, d.Column, d.Text())
}

// Errorf builds a checker diagnostic whose message starts with the file name
// and, when suggestion is not empty, ends with it on the following lines.
func Errorf(checker string, code int, fileName, suggestion, format string, args ...any) Diagnostic {
	msg := "File " + fileName + fmt.Sprintf(format, args...)
	if s := strings.TrimRight(suggestion, "\n"); s != "" {
		msg += "\n" + s
	}
	return New(checker, code, msg)
}
