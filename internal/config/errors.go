package config

import (
	"errors"
	"fmt"
)

// ErrInvalidPort is matched (errors.Is) by every port validation failure.
var ErrInvalidPort = errors.New("port must be between 1 and 65535")

// ErrorKind represents the category of a configuration error
type ErrorKind int

const (
	// ErrKindIO indicates the config file could not be read or written
	ErrKindIO ErrorKind = iota
	// ErrKindParse indicates the config file content is not valid JSON
	ErrKindParse
	// ErrKindInvalidPort indicates a port outside 1-65535
	ErrKindInvalidPort
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindIO:
		return "I/O Error"
	case ErrKindParse:
		return "Parse Error"
	case ErrKindInvalidPort:
		return "Invalid Port"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is returned by config operations.
type Error struct {
	Kind  ErrorKind // Category of error
	Path  string    // Config file path (I/O and parse errors)
	Value string    // Offending input (invalid port errors)
	Err   error     // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Kind == ErrKindInvalidPort && e.Value != "":
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Value, e.Err)
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidPort reports whether err is a port validation failure.
func IsInvalidPort(err error) bool {
	return errors.Is(err, ErrInvalidPort)
}

func newIOError(path string, err error) *Error {
	return &Error{Kind: ErrKindIO, Path: path, Err: err}
}

func newParseError(path string, err error) *Error {
	return &Error{Kind: ErrKindParse, Path: path, Err: err}
}

func newInvalidPortError(value string, cause error) *Error {
	err := ErrInvalidPort
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidPort, cause)
	}
	return &Error{Kind: ErrKindInvalidPort, Value: value, Err: err}
}
