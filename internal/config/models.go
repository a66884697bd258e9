package config

// ProxyConfig is the persisted proxy preference.
//
// Enabled implies Port != nil. Callers must not enable the proxy without a
// port; Load repairs files that break this rule.
type ProxyConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Port    *uint16 `json:"port" yaml:"port"`
}

// Default returns the configuration written on first run.
func Default() ProxyConfig {
	return ProxyConfig{Enabled: false, Port: nil}
}

// HasPort reports whether a port is stored.
func (c ProxyConfig) HasPort() bool {
	return c.Port != nil
}

// PortValue returns the stored port, or 0 when none is set.
func (c ProxyConfig) PortValue() uint16 {
	if c.Port == nil {
		return 0
	}
	return *c.Port
}

// WithPort returns a copy of c with the port set to p.
func (c ProxyConfig) WithPort(p uint16) ProxyConfig {
	c.Port = &p
	return c
}

// WithoutPort returns a copy of c with the port cleared. Clearing the port
// also disables the proxy.
func (c ProxyConfig) WithoutPort() ProxyConfig {
	c.Port = nil
	c.Enabled = false
	return c
}

// normalize repairs values that a hand-edited file may contain: a zero port
// and an enabled flag without a port.
func (c ProxyConfig) normalize() ProxyConfig {
	if c.Port != nil && *c.Port == 0 {
		c.Port = nil
	}
	if c.Port == nil {
		c.Enabled = false
	}
	return c
}
