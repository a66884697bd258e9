// Package proxyenv sets, clears and reads the proxy environment variables.
//
// All four names are written together. Reads prefer the lowercase name and
// fall back to the uppercase one, independently for HTTP and HTTPS, which is
// the precedence curl and most language runtimes use.
//
// Changes affect this process and any child it starts afterwards, never the
// parent shell. The shell wrapper installed by package installer applies the
// state to the interactive shell from the directive line on stdout.
package proxyenv

import (
	"fmt"
	"os"
	"strconv"

	"github.com/muurk/proxy-cli/internal/logging"
)

// Variable names, in write order.
const (
	HTTPLower  = "http_proxy"
	HTTPSLower = "https_proxy"
	HTTPUpper  = "HTTP_PROXY"
	HTTPSUpper = "HTTPS_PROXY"
)

// Names lists every variable the tool manages.
var Names = []string{HTTPLower, HTTPSLower, HTTPUpper, HTTPSUpper}

// LoopbackHost is the host every proxy URL points at.
const LoopbackHost = "127.0.0.1"

// URL returns the proxy URL for port.
func URL(port uint16) string {
	return "http://" + LoopbackHost + ":" + strconv.FormatUint(uint64(port), 10)
}

// Environment is the proxy view of a process environment.
type Environment interface {
	// Enable points all four variables at the loopback proxy on port.
	Enable(port uint16) error
	// Disable removes all four variables.
	Disable() error
	// Snapshot reads the current values.
	Snapshot() Snapshot
}

// Snapshot is a read-only view of the proxy variables at one moment.
type Snapshot struct {
	HTTP     string
	HTTPSet  bool
	HTTPS    string
	HTTPSSet bool
}

// Enabled reports whether any of the proxy variables is set. This can
// disagree with the saved config when something else changed the
// environment; the environment describes the current effect, the config the
// desired state.
func (s Snapshot) Enabled() bool {
	return s.HTTPSet || s.HTTPSSet
}

// Error reports a failed environment mutation.
type Error struct {
	Op   string // "set" or "unset"
	Name string // Variable name
	Err  error  // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("environment access: %s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

func snapshotFrom(lookup lookupFunc) Snapshot {
	var s Snapshot
	s.HTTP, s.HTTPSet = firstSet(lookup, HTTPLower, HTTPUpper)
	s.HTTPS, s.HTTPSSet = firstSet(lookup, HTTPSLower, HTTPSUpper)
	return s
}

func firstSet(lookup lookupFunc, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// OS manipulates the real process environment.
type OS struct{}

// NewOS returns the process environment.
func NewOS() *OS {
	return &OS{}
}

// Enable implements Environment.
func (*OS) Enable(port uint16) error {
	url := URL(port)
	for _, name := range Names {
		if err := os.Setenv(name, url); err != nil {
			return &Error{Op: "set", Name: name, Err: err}
		}
	}
	logging.LogEnvChange("set", Names, url)
	return nil
}

// Disable implements Environment.
func (*OS) Disable() error {
	for _, name := range Names {
		if err := os.Unsetenv(name); err != nil {
			return &Error{Op: "unset", Name: name, Err: err}
		}
	}
	logging.LogEnvChange("unset", Names, "")
	return nil
}

// Snapshot implements Environment.
func (*OS) Snapshot() Snapshot {
	return snapshotFrom(os.LookupEnv)
}
