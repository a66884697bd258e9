package proxyenv

// Memory is an in-memory Environment. It records how often it was mutated
// and can be told to fail, which makes it the environment of choice in tests.
type Memory struct {
	vars map[string]string

	// EnableErr and DisableErr, when set, are returned before any change.
	EnableErr  error
	DisableErr error

	EnableCalls  int
	DisableCalls int
}

// NewMemory returns an empty in-memory environment.
func NewMemory() *Memory {
	return &Memory{vars: make(map[string]string)}
}

// Set assigns a single variable, as external code might.
func (m *Memory) Set(name, value string) {
	m.vars[name] = value
}

// Get returns a single variable.
func (m *Memory) Get(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Enable implements Environment.
func (m *Memory) Enable(port uint16) error {
	m.EnableCalls++
	if m.EnableErr != nil {
		return &Error{Op: "set", Name: HTTPLower, Err: m.EnableErr}
	}
	url := URL(port)
	for _, name := range Names {
		m.vars[name] = url
	}
	return nil
}

// Disable implements Environment.
func (m *Memory) Disable() error {
	m.DisableCalls++
	if m.DisableErr != nil {
		return &Error{Op: "unset", Name: HTTPLower, Err: m.DisableErr}
	}
	for _, name := range Names {
		delete(m.vars, name)
	}
	return nil
}

// Snapshot implements Environment.
func (m *Memory) Snapshot() Snapshot {
	return snapshotFrom(m.Get)
}
