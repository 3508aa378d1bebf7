package pgerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, CodeInvalidInput, "invalid input: some or all input values are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := errors.Wrap(ErrInvalidInput.Msg("population %q is duplicated", "Male"), "redistribute")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrDataUnavailable))

	var fe *ForecastError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, CodeInvalidInput, fe.ErrorCode)
}

func TestInvalidViolationsDoesNotTouchSentinel(t *testing.T) {
	e := NewInvalidViolations([]string{"state"})
	assert.NotNil(t, e.Extras)
	assert.Nil(t, ErrInvalidInput.Extras)
}
