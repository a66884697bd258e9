package terminal

import (
	"errors"
	"fmt"
)

// ErrSetup is matched (errors.Is) by failures to enter or restore the
// terminal mode. The caller cannot safely continue after one.
var ErrSetup = errors.New("terminal setup failed")

// ErrInactive is returned when polling a console that is not in full-screen
// mode.
var ErrInactive = errors.New("console is not active")

// Error is a terminal I/O failure.
type Error struct {
	Op    string // What was being done, e.g. "enter raw mode"
	Err   error  // Underlying error
	Setup bool   // Failure to set up or restore the terminal
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes setup failures match ErrSetup.
func (e *Error) Is(target error) bool {
	return e.Setup && target == ErrSetup
}
