// Package oaserrors provides structured error types for oasedit.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: malformed raw (source mode) text for a definition or document
//   - NodeError: a command addressed a definition or property that no longer exists
//   - ConflictError: a command would create a definition or property whose name is taken
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	if err := ed.Source().Commit(); err != nil {
//	    var perr *oaserrors.ParseError
//	    if errors.As(err, &perr) {
//	        // keep the editor open and point at perr.Line
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates raw text could not be parsed into a node.
	ErrParse = errors.New("parse error")

	// ErrNotFound indicates a command target no longer exists in the document.
	ErrNotFound = errors.New("node not found")

	// ErrConflict indicates a name collision among sibling nodes.
	ErrConflict = errors.New("name conflict")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse the raw form of a definition
// (or of a whole document) into structured nodes.
type ParseError struct {
	// Source identifies what was being parsed (a definition name or file path)
	Source string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NodeError reports a stale or unknown command target.
type NodeError struct {
	// Kind is the node kind: "definition" or "property"
	Kind string
	// Name is the node name, when the target was addressed by name
	Name string
	// ID is the node identifier, when the target was addressed by identity
	ID string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *NodeError) Error() string {
	msg := "node not found"
	if e.Kind != "" {
		msg = e.Kind + " not found"
	}
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.ID != "" {
		msg += " (" + e.ID + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *NodeError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports that a name is already used by a sibling node.
type ConflictError struct {
	// Kind is the node kind: "definition" or "property"
	Kind string
	// Name is the conflicting name
	Name string
	// Parent names the owning definition for property conflicts
	Parent string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	msg := "name conflict"
	if e.Kind != "" {
		msg = e.Kind + " name conflict"
	}
	if e.Name != "" {
		msg += fmt.Sprintf(": %q already exists", e.Name)
	}
	if e.Parent != "" {
		msg += " in " + e.Parent
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
