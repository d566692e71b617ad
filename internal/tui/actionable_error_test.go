package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionableError(t *testing.T) {
	err := NewActionableError("File does not exist.", "Check the path.")
	assert.Equal(t, "File does not exist.", err.Error())

	err.WithContext("missing.txt")
	assert.Equal(t, "File does not exist. (missing.txt)", err.Error())

	var ae *ActionableError
	wrapped := fmt.Errorf("sign: %w", err)
	assert.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, "Check the path.", ae.Suggestion)
}
