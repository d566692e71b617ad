// Package tui renders human and machine output for keysmith commands.
package tui

import "io"

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error, including its suggestion when it is an ActionableError.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Table prints rows under headers.
	Table(headers []string, rows [][]string)
	// JSON outputs a value as JSON.
	JSON(v any) error
}

// Output format names accepted by NewOutput.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewOutput creates the output for format. Anything other than "json"
// gets styled terminal output.
//
//nolint:ireturn // callers pick the variant at runtime
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
