// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates a request failed domain validation.
var ErrValidation = errors.New("validation failed")

// ErrMissingArgument indicates a required tool argument was not provided.
var ErrMissingArgument = errors.New("missing argument")

// ErrInvalidArgument indicates a tool argument has an out-of-range or malformed value.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownTool indicates a tool name that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolError is a tool execution failure whose message is surfaced verbatim,
// either to the model as a tool result or to a direct API caller.
type ToolError struct {
	kind error
	msg  string
}

func (e *ToolError) Error() string { return e.msg }

// Unwrap exposes the sentinel so errors.Is can classify the failure.
func (e *ToolError) Unwrap() error { return e.kind }

// NotFound builds a ToolError wrapping ErrNotFound.
func NotFound(msg string) error { return &ToolError{kind: ErrNotFound, msg: msg} }

// MissingArgument builds a ToolError wrapping ErrMissingArgument.
func MissingArgument(msg string) error { return &ToolError{kind: ErrMissingArgument, msg: msg} }

// InvalidArgument builds a ToolError wrapping ErrInvalidArgument.
func InvalidArgument(msg string) error { return &ToolError{kind: ErrInvalidArgument, msg: msg} }

// UnknownTool builds a ToolError wrapping ErrUnknownTool.
func UnknownTool(name string) error {
	return &ToolError{kind: ErrUnknownTool, msg: "Unknown tool: " + name}
}

// IsToolError reports whether err is a recoverable tool-level failure, as
// opposed to an infrastructure failure that should abort the exchange.
func IsToolError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrUnknownTool)
}
