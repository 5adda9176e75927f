package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("delete: %w", ErrTaskNotFound), expected: true},
		{name: "ErrTitleExists", err: ErrTitleExists, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrTitleExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrTitleExists)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestDuplicateIsConflict(t *testing.T) {
	assert.ErrorIs(t, ErrTitleExists, domain.ErrConflict)
	assert.NotErrorIs(t, ErrTaskNotFound, domain.ErrConflict)
}

func TestIsFatalError(t *testing.T) {
	wrapped := NewStoreError("snapshot", "save", "failed to write file", fmt.Errorf("%w: %w", ErrFatalIO, errors.New("disk full")))

	assert.True(t, IsFatalError(wrapped))
	assert.False(t, IsFatalError(ErrTaskNotFound))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := NewStoreError("snapshot", "load", "failed to read file", inner)

		assert.Equal(t, "load operation on snapshot failed: failed to read file: permission denied", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "restore", "negative counter", nil)

		assert.Equal(t, "restore operation on task failed: negative counter", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}
