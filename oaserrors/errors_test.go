package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Source:  "Pet",
			Line:    4,
			Column:  7,
			Message: "invalid syntax",
			Cause:   cause,
		}
		assert.Equal(t, "parse error in Pet at line 4, column 7: invalid syntax: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Column is ignored without line", func(t *testing.T) {
		assert.Equal(t, "parse error in Pet", (&ParseError{Source: "Pet", Column: 3}).Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Is matches only ErrParse", func(t *testing.T) {
		err := fmt.Errorf("editor: %w", &ParseError{Message: "test"})
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("As extracts ParseError", func(t *testing.T) {
		wrapped := fmt.Errorf("wrapped: %w", &ParseError{Line: 2})
		var perr *ParseError
		require.ErrorAs(t, wrapped, &perr)
		assert.Equal(t, 2, perr.Line)
	})
}

func TestNodeError(t *testing.T) {
	tests := []struct {
		name string
		err  *NodeError
		want string
	}{
		{"empty", &NodeError{}, "node not found"},
		{"by name", &NodeError{Kind: "definition", Name: "Pet"}, "definition not found: Pet"},
		{"by id", &NodeError{Kind: "property", ID: "01J0"}, "property not found (01J0)"},
		{"with message", &NodeError{Kind: "property", Name: "age", Message: "deleted"}, "property not found: age: deleted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrNotFound)
			assert.NotErrorIs(t, tt.err, ErrConflict)
		})
	}
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Kind: "property", Name: "age", Parent: "Pet"}
	assert.Equal(t, `property name conflict: "age" already exists in Pet`, err.Error())
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "name conflict", (&ConflictError{}).Error())
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad value")
	err := &ConfigError{Option: "source.format", Value: "xml", Message: "must be json or yaml", Cause: cause}
	assert.Equal(t, "configuration error for source.format (value: xml): must be json or yaml: bad value", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, cause)
}
