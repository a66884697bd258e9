// Package protocol implements the one-line stdout protocol spoken to the
// shell wrapper.
//
// A process cannot change its parent's environment, so every proxy-cli run
// ends by printing exactly one directive line to stdout:
//
//	#SET_PROXY:http://127.0.0.1:7890
//	#CLEAR_PROXY
//
// The wrapper function installed into the user's shell profile reads stdout
// line by line and exports or clears HTTP_PROXY/HTTPS_PROXY (and the
// lowercase names) in the interactive shell. Everything else the program
// prints goes to stderr.
package protocol

import (
	"fmt"
	"io"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/proxyenv"
)

// Line prefixes understood by the wrapper.
const (
	SetPrefix   = "#SET_PROXY:"
	ClearMarker = "#CLEAR_PROXY"
)

// Kind distinguishes the two directives.
type Kind int

const (
	KindClear Kind = iota
	KindSet
)

// Directive is a single protocol line.
type Directive struct {
	Kind Kind
	URL  string // Only for KindSet
}

// Set returns the directive that exports the proxy on port.
func Set(port uint16) Directive {
	return Directive{Kind: KindSet, URL: proxyenv.URL(port)}
}

// Clear returns the directive that removes the proxy variables.
func Clear() Directive {
	return Directive{Kind: KindClear}
}

// FromConfig returns the directive describing cfg.
func FromConfig(cfg config.ProxyConfig) Directive {
	if cfg.Enabled && cfg.HasPort() {
		return Set(cfg.PortValue())
	}
	return Clear()
}

// String returns the line without the trailing newline.
func (d Directive) String() string {
	if d.Kind == KindSet {
		return SetPrefix + d.URL
	}
	return ClearMarker
}

// Write prints the directive as one line.
func (d Directive) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, d.String()); err != nil {
		return fmt.Errorf("failed to write directive: %w", err)
	}
	return nil
}
