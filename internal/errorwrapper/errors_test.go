package errorwrapper

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapSentinel_ChainsBothErrors(t *testing.T) {
	err := WrapSentinel(ErrCannotCreateDiffImage, os.ErrNotExist, "compose failed")

	assert.ErrorIs(t, err, ErrCannotCreateDiffImage)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "compose failed")
}

func TestWrapSentinel_NilCause(t *testing.T) {
	err := WrapSentinel(ErrDiffArtifactTimeout, nil, "no artifact")

	assert.ErrorIs(t, err, ErrDiffArtifactTimeout)
}

func TestValidationError_ClassifiesAsInvalidConfiguration(t *testing.T) {
	err := NewValidationError("baseline_dir", "", "baseline directory is required")

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "baseline_dir")
}

func TestAggregateError(t *testing.T) {
	first := NewError("first failure")
	second := WrapSentinel(ErrExternalToolFailure, nil, "second failure")
	aggregate := NewAggregateError([]error{first, second})

	assert.ErrorIs(t, aggregate, first)
	assert.ErrorIs(t, aggregate, ErrExternalToolFailure)

	var target *AggregateError
	require.ErrorAs(t, error(aggregate), &target)
	assert.Len(t, target.Errors, 2)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(cause, "writing artifact")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "writing artifact: disk full", err.Error())
}
