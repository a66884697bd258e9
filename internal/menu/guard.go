package menu

// Screen is the full-screen mode of a terminal: raw input plus the
// alternate screen.
type Screen interface {
	Enter() error
	Leave() error
}

// screenGuard tracks whether full-screen mode is held so that every exit
// path leaves it exactly once.
type screenGuard struct {
	screen Screen
	held   bool
}

func newScreenGuard(s Screen) *screenGuard {
	return &screenGuard{screen: s}
}

func (g *screenGuard) acquire() error {
	if g.held {
		return nil
	}
	if err := g.screen.Enter(); err != nil {
		return err
	}
	g.held = true
	return nil
}

// release is idempotent.
func (g *screenGuard) release() error {
	if !g.held {
		return nil
	}
	g.held = false
	return g.screen.Leave()
}

// suspended runs fn on the normal screen and re-acquires full-screen mode
// afterwards, whether or not fn failed. A failure to leave or re-enter wins
// over fn's error.
func (g *screenGuard) suspended(fn func() error) error {
	if err := g.release(); err != nil {
		return err
	}
	fnErr := fn()
	if err := g.acquire(); err != nil {
		return err
	}
	return fnErr
}
