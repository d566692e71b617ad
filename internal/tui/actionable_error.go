package tui

// ActionableError pairs a user-facing message with a suggested next step.
//
//	err := NewActionableError("The key has the wrong length.", "Check --format matches the key.")
//	output.Error(err)
//	// ✗ The key has the wrong length.
//	//   ▸ Try: Check --format matches the key.
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion is guidance for resolving the error. Optional.
	Suggestion string

	// Context is appended to the message in parentheses when set.
	Context string
}

// NewActionableError creates a new ActionableError.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// WithContext sets the context and returns e for chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
