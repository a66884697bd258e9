package config

import (
	"strconv"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// ValidatePort checks that n is a usable TCP port.
func ValidatePort(n uint32) (uint16, error) {
	if n < MinPort || n > MaxPort {
		return 0, newInvalidPortError(strconv.FormatUint(uint64(n), 10), nil)
	}
	return uint16(n), nil
}

// ParsePort parses user-entered text as a port. Surrounding whitespace is
// ignored. Empty input is an error here; callers that treat empty input as
// "clear the port" must check for it first.
func ParsePort(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		var cause error
		if numErr, ok := err.(*strconv.NumError); ok {
			cause = numErr.Err
		}
		return 0, newInvalidPortError(s, cause)
	}
	return ValidatePort(uint32(n))
}
