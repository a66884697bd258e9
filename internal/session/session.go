// Package session applies proxy actions to the environment and the config
// file. The interactive menu and the one-shot CLI commands both go through
// it so the two surfaces cannot drift apart.
//
// Every action follows the same order: change the environment, then save
// the config. If the save fails the environment change is rolled back and
// the error returned, so a reported success always means the preference was
// persisted.
package session

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/logging"
	"github.com/muurk/proxy-cli/internal/protocol"
	"github.com/muurk/proxy-cli/internal/proxyenv"
)

// ErrNoPort is returned when enabling the proxy before a port is stored.
var ErrNoPort = errors.New("no port configured, set a port first")

// InvalidInputError reports port text that could not be used.
type InvalidInputError struct {
	Input string
	Err   error
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying validation error
func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Store persists the proxy preference. *config.Store implements it.
type Store interface {
	Load() config.ProxyConfig
	Save(config.ProxyConfig) error
}

// PortChange describes the effect of ApplyPortInput.
type PortChange int

const (
	PortUnchanged PortChange = iota
	PortSet
	PortCleared
)

// Session holds the current preference for one run of the program.
type Session struct {
	store Store
	env   proxyenv.Environment
	cfg   config.ProxyConfig
}

// New loads the preference from store.
func New(store Store, env proxyenv.Environment) *Session {
	return &Session{
		store: store,
		env:   env,
		cfg:   store.Load(),
	}
}

// Config returns the current preference.
func (s *Session) Config() config.ProxyConfig {
	return s.cfg
}

// Snapshot returns the live environment view.
func (s *Session) Snapshot() proxyenv.Snapshot {
	return s.env.Snapshot()
}

// Directive returns the stdout line describing the current preference.
func (s *Session) Directive() protocol.Directive {
	return protocol.FromConfig(s.cfg)
}

// ObservedDirective is the directive for read-only commands. A saved
// enabled flag is only repeated when the environment already carries the
// proxy URL, so a stale flag left by an earlier run is never re-applied.
func (s *Session) ObservedDirective() protocol.Directive {
	d := s.Directive()
	if d.Kind != protocol.KindSet {
		return d
	}
	snap := s.env.Snapshot()
	if snap.HTTP == d.URL || snap.HTTPS == d.URL {
		return d
	}
	return protocol.Clear()
}

// ResetOnStartup forces the saved preference to disabled. An interactive
// run calls it before showing the menu so that a crash during an earlier
// run can never revive a stale proxy.
func (s *Session) ResetOnStartup() error {
	wasEnabled := s.cfg.Enabled
	next := s.cfg
	next.Enabled = false
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("failed to reset proxy state: %w", err)
	}
	s.cfg = next
	if wasEnabled {
		logging.Info("Stale enabled flag cleared on startup", zap.Uint16("port", s.cfg.PortValue()))
	}
	return nil
}

// Enable exports the proxy variables for the stored port and persists
// enabled=true. It returns ErrNoPort without touching the environment when
// no port is stored.
func (s *Session) Enable() error {
	if !s.cfg.HasPort() {
		logging.LogAction("enable", ErrNoPort)
		return ErrNoPort
	}

	port := s.cfg.PortValue()
	if err := s.env.Enable(port); err != nil {
		logging.LogAction("enable", err)
		return err
	}

	next := s.cfg
	next.Enabled = true
	if err := s.commit(next); err != nil {
		logging.LogAction("enable", err)
		return err
	}

	logging.LogAction("enable", nil, zap.Uint16("port", port))
	return nil
}

// Disable removes the proxy variables and persists enabled=false.
func (s *Session) Disable() error {
	if err := s.env.Disable(); err != nil {
		logging.LogAction("disable", err)
		return err
	}

	next := s.cfg
	next.Enabled = false
	if err := s.commit(next); err != nil {
		logging.LogAction("disable", err)
		return err
	}

	logging.LogAction("disable", nil)
	return nil
}

// SetPort stores port. When the proxy is enabled the environment is
// re-pointed at the new port first.
func (s *Session) SetPort(port uint16) error {
	if s.cfg.Enabled {
		if err := s.env.Enable(port); err != nil {
			logging.LogAction("set-port", err)
			return err
		}
	}

	if err := s.commit(s.cfg.WithPort(port)); err != nil {
		logging.LogAction("set-port", err)
		return err
	}

	logging.LogAction("set-port", nil, zap.Uint16("port", port))
	return nil
}

// ClearPort removes the stored port, disabling the proxy first when it is
// enabled.
func (s *Session) ClearPort() error {
	if s.cfg.Enabled {
		if err := s.Disable(); err != nil {
			return err
		}
	}

	if err := s.commit(s.cfg.WithoutPort()); err != nil {
		logging.LogAction("clear-port", err)
		return err
	}

	logging.LogAction("clear-port", nil)
	return nil
}

// ApplyPortInput interprets free-form text typed by the user: empty text
// clears the port, anything else must be a valid port number.
func (s *Session) ApplyPortInput(text string) (PortChange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		if !s.cfg.HasPort() {
			return PortUnchanged, nil
		}
		if err := s.ClearPort(); err != nil {
			return PortUnchanged, err
		}
		return PortCleared, nil
	}

	port, err := config.ParsePort(text)
	if err != nil {
		return PortUnchanged, &InvalidInputError{Input: text, Err: err}
	}
	if s.cfg.HasPort() && s.cfg.PortValue() == port {
		return PortUnchanged, nil
	}
	if err := s.SetPort(port); err != nil {
		return PortUnchanged, err
	}
	return PortSet, nil
}

// commit saves next and makes it current. On failure the environment is
// restored to match the previous preference.
func (s *Session) commit(next config.ProxyConfig) error {
	if err := s.store.Save(next); err != nil {
		s.rollback()
		return err
	}
	s.cfg = next
	return nil
}

func (s *Session) rollback() {
	var err error
	if s.cfg.Enabled && s.cfg.HasPort() {
		err = s.env.Enable(s.cfg.PortValue())
	} else {
		err = s.env.Disable()
	}
	if err != nil {
		logging.Warn("Failed to roll back environment change", zap.Error(err))
	}
}
