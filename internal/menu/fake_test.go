package menu

import (
	"errors"
	"time"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/terminal"
)

var errScriptDone = errors.New("no more scripted keys")

// timedKey is a key that arrives at a fixed offset on the fake clock.
type timedKey struct {
	at  time.Duration
	key terminal.Key
}

// fakeTerm replays scripted keys on a virtual clock. Polling and sleeping
// advance the clock instead of waiting.
type fakeTerm struct {
	start   time.Time
	elapsed time.Duration
	script  []timedKey

	active   bool
	events   []string
	frames   []string
	enterErr error
	leaveErr error
	flushErr error

	// drainErr is returned once by the first non-blocking poll made at or
	// after drainErrAt.
	drainErr   error
	drainErrAt time.Duration
}

func newFakeTerm(keys ...timedKey) *fakeTerm {
	return &fakeTerm{start: time.Unix(1_700_000_000, 0), script: keys}
}

func (f *fakeTerm) now() time.Time { return f.start.Add(f.elapsed) }

func (f *fakeTerm) sleep(d time.Duration) { f.elapsed += d }

func (f *fakeTerm) Enter() error {
	if f.enterErr != nil {
		return f.enterErr
	}
	f.active = true
	f.events = append(f.events, "enter")
	return nil
}

func (f *fakeTerm) Leave() error {
	f.active = false
	f.events = append(f.events, "leave")
	return f.leaveErr
}

func (f *fakeTerm) Draw(frame string) error {
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeTerm) Size() (int, int) { return 80, 24 }

func (f *fakeTerm) FlushInput() error {
	f.events = append(f.events, "flush")
	return f.flushErr
}

func (f *fakeTerm) PollKey(timeout time.Duration) (terminal.Key, bool, error) {
	if timeout == 0 && f.drainErr != nil && f.elapsed >= f.drainErrAt {
		err := f.drainErr
		f.drainErr = nil
		return terminal.Key{}, false, err
	}

	if len(f.script) == 0 {
		if timeout < 0 {
			return terminal.Key{}, false, errScriptDone
		}
		f.elapsed += timeout
		return terminal.Key{}, false, nil
	}

	next := f.script[0]
	wait := next.at - f.elapsed
	if wait < 0 {
		wait = 0
	}
	if timeout >= 0 && wait > timeout {
		f.elapsed += timeout
		return terminal.Key{}, false, nil
	}

	f.elapsed += wait
	f.script = f.script[1:]
	return next.key, true, nil
}

func (f *fakeTerm) lastFrame() string {
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[len(f.frames)-1]
}

// fakePrompter answers the port prompt and records whether full-screen
// mode was held at the time.
type fakePrompter struct {
	term     *fakeTerm
	text     string
	ok       bool
	err      error
	panicMsg string

	calls        int
	initial      string
	activeDuring bool
}

func (p *fakePrompter) ReadLine(prompt, initial string) (string, bool, error) {
	p.calls++
	p.initial = initial
	p.activeDuring = p.term.active
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.text, p.ok, p.err
}

// memStore keeps the config in memory.
type memStore struct {
	cfg     config.ProxyConfig
	saveErr error
}

func (m *memStore) Load() config.ProxyConfig { return m.cfg }

func (m *memStore) Save(cfg config.ProxyConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	return nil
}

func down(at time.Duration) timedKey {
	return timedKey{at: at, key: terminal.Key{Code: terminal.KeyDown}}
}

func up(at time.Duration) timedKey {
	return timedKey{at: at, key: terminal.Key{Code: terminal.KeyUp}}
}

func enter(at time.Duration) timedKey {
	return timedKey{at: at, key: terminal.Key{Code: terminal.KeyEnter}}
}

func char(at time.Duration, r rune) timedKey {
	return timedKey{at: at, key: terminal.Key{Code: terminal.KeyRune, Rune: r}}
}
