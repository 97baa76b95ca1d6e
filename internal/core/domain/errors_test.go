package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidRecord", ErrInvalidRecord},
		{"ErrMissingField", ErrMissingField},
		{"ErrUnsupportedSource", ErrUnsupportedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestErrMissingField_Wrapped(t *testing.T) {
	err := fmt.Errorf("record 42: %w: title", ErrMissingField)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "missing canonical field")
}
