package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("Name cannot be empty", "Provide a deadline name")
	assert.Equal(t, "Name cannot be empty", err.Error())
	assert.True(t, IsUserError(err))
	assert.Equal(t, "Provide a deadline name", GetSuggestion(err))
}

func TestUserErrorWithField(t *testing.T) {
	err := NewUserErrorWithField("difficulty", "42", "Difficulty out of range", "Use 1-10")
	assert.Equal(t, "Difficulty out of range: '42'", err.Error())
}

func TestSystemErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewSystemErrorWithOp("create", "could not save deadline", cause)

	assert.Equal(t, "could not save deadline during create", err.Error())
	assert.True(t, IsSystemError(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryUnknown, Classify(nil))
	assert.Equal(t, CategoryUser, Classify(NewUserError("bad", "fix")))
	assert.Equal(t, CategorySystem, Classify(NewSystemError("broken", nil)))
	assert.Equal(t, CategoryUnknown, Classify(stderrors.New("mystery")))

	// Classification sees through wrapping.
	wrapped := fmt.Errorf("context: %w", NewUserError("bad", "fix"))
	assert.Equal(t, CategoryUser, Classify(wrapped))
	assert.Equal(t, "fix", GetSuggestion(wrapped))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}
