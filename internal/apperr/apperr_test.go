package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("delete client: %w", &ConflictError{ClientID: 7, Loans: 2, Deposits: 1})

	require.ErrorIs(t, err, ErrConflict)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Loans)
	assert.Equal(t, 1, conflict.Deposits)
	assert.Contains(t, err.Error(), "2 loan(s)")
	assert.Contains(t, err.Error(), "1 deposit(s)")
}

func TestValidationError(t *testing.T) {
	t.Run("empty collector is nil", func(t *testing.T) {
		ve := &ValidationError{}
		assert.NoError(t, ve.OrNil())
	})

	t.Run("fields are listed in order", func(t *testing.T) {
		ve := Validation("age", "must be at most 150")
		ve.Add("full_name", "field required")

		err := ve.OrNil()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Equal(t, "validation failed: age: must be at most 150; full_name: field required", err.Error())
	})
}
