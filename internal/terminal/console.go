package terminal

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/proxy-cli/internal/logging"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	keyBuffer = 64

	// escapeTimeout is how long a held ESC waits for the rest of its
	// sequence before it is reported as the Escape key.
	escapeTimeout = 50 * time.Millisecond
)

// Console is a full-screen terminal session: raw keyboard input from in and
// screen output on out. Output goes to stderr in practice so that stdout
// stays free for the shell directive.
type Console struct {
	in  *os.File
	out *os.File

	state  *term.State
	active bool

	reader  cancelreader.CancelReader
	keys    chan Key
	readErr error // set before keys is closed
	stop    chan struct{}
	wg      sync.WaitGroup
}

// chunk is one read from the input.
type chunk struct {
	data []byte
	err  error
}

// NewConsole returns a console reading keys from in and drawing on out.
func NewConsole(in, out *os.File) *Console {
	return &Console{in: in, out: out}
}

// IsTerminal reports whether both ends are attached to a TTY.
func (c *Console) IsTerminal() bool {
	return term.IsTerminal(int(c.in.Fd())) && term.IsTerminal(int(c.out.Fd()))
}

// Enter switches the terminal to raw mode and the alternate screen and starts
// reading keys. Calling Enter on an active console is a no-op.
func (c *Console) Enter() error {
	if c.active {
		return nil
	}

	state, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return &Error{Op: "enter raw mode", Err: err, Setup: true}
	}
	c.state = state

	if _, err := io.WriteString(c.out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor); err != nil {
		c.restore()
		return &Error{Op: "enter alternate screen", Err: err, Setup: true}
	}

	if err := c.startReader(); err != nil {
		_, _ = io.WriteString(c.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
		c.restore()
		return err
	}

	c.active = true
	logging.Debug("Entered full-screen mode")
	return nil
}

// Leave stops reading keys, leaves the alternate screen and restores the
// saved terminal mode. Keys read but not yet polled are discarded. Calling
// Leave on an inactive console is a no-op.
func (c *Console) Leave() error {
	if !c.active {
		return nil
	}
	c.active = false

	c.stopReader()

	var errs []error
	if _, err := io.WriteString(c.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode); err != nil {
		errs = append(errs, &Error{Op: "leave alternate screen", Err: err})
	}
	if err := c.restore(); err != nil {
		errs = append(errs, err)
	}

	logging.Debug("Left full-screen mode")
	return errors.Join(errs...)
}

func (c *Console) restore() error {
	if c.state == nil {
		return nil
	}
	state := c.state
	c.state = nil
	if err := term.Restore(int(c.in.Fd()), state); err != nil {
		return &Error{Op: "restore terminal mode", Err: err, Setup: true}
	}
	return nil
}

// Size returns the terminal dimensions, falling back to 80x24.
func (c *Console) Size() (width, height int) {
	w, h, err := term.GetSize(int(c.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// Draw clears the screen and writes frame from the top-left corner. Raw mode
// disables output post-processing, so line feeds are expanded to CRLF here.
func (c *Console) Draw(frame string) error {
	var b strings.Builder
	b.WriteString(ansi.CursorHomePosition)
	b.WriteString(ansi.EraseEntireScreen)
	b.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))

	if _, err := io.WriteString(c.out, b.String()); err != nil {
		return &Error{Op: "draw", Err: err}
	}
	return nil
}

// PollKey waits up to timeout for a key. A negative timeout blocks until a
// key arrives; zero returns immediately. ok is false when nothing arrived.
// Once reading has failed every call returns the same error.
func (c *Console) PollKey(timeout time.Duration) (Key, bool, error) {
	if c.keys == nil {
		return Key{}, false, ErrInactive
	}

	switch {
	case timeout < 0:
		k, open := <-c.keys
		return c.received(k, open)

	case timeout == 0:
		select {
		case k, open := <-c.keys:
			return c.received(k, open)
		default:
			return Key{}, false, nil
		}

	default:
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case k, open := <-c.keys:
			return c.received(k, open)
		case <-timer.C:
			return Key{}, false, nil
		}
	}
}

func (c *Console) received(k Key, open bool) (Key, bool, error) {
	if open {
		return k, true, nil
	}
	err := c.readErr
	if err == nil {
		err = io.EOF
	}
	return Key{}, false, &Error{Op: "read input", Err: err}
}

// FlushInput discards input the terminal has received but nobody has read
// yet. It fails when in is not a TTY.
func (c *Console) FlushInput() error {
	if err := flushInput(int(c.in.Fd())); err != nil {
		return &Error{Op: "flush input", Err: err}
	}
	return nil
}

// startReader begins reading from in. One goroutine reads raw bytes, a
// second decodes them so that a split escape sequence can be completed by
// the next read or timed out.
func (c *Console) startReader() error {
	r, err := cancelreader.NewReader(c.in)
	if err != nil {
		return &Error{Op: "open input reader", Err: err, Setup: true}
	}

	c.reader = r
	c.keys = make(chan Key, keyBuffer)
	c.readErr = nil
	c.stop = make(chan struct{})

	chunks := make(chan chunk)
	c.wg.Add(2)
	go c.readLoop(r, chunks, c.stop)
	go c.decodeLoop(chunks, c.keys, c.stop)
	return nil
}

// stopReader cancels the pending read and waits for both goroutines to
// exit, so no later read on in can race with them.
func (c *Console) stopReader() {
	if c.reader == nil {
		return
	}

	close(c.stop)
	c.reader.Cancel()
	c.wg.Wait()

	if err := c.reader.Close(); err != nil {
		logging.Debug("Failed to close input reader", zap.Error(err))
	}

	c.reader = nil
	c.keys = nil
}

func (c *Console) readLoop(r io.Reader, chunks chan<- chunk, stop <-chan struct{}) {
	defer c.wg.Done()
	defer close(chunks)

	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			select {
			case chunks <- chunk{data: data}:
			case <-stop:
				return
			}
		}
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return
			}
			select {
			case chunks <- chunk{err: err}:
			case <-stop:
			}
			return
		}
	}
}

func (c *Console) decodeLoop(chunks <-chan chunk, keys chan<- Key, stop <-chan struct{}) {
	defer c.wg.Done()
	defer close(keys)

	dec := NewDecoder()
	emit := func(ks []Key) bool {
		for _, k := range ks {
			select {
			case keys <- k:
			case <-stop:
				return false
			}
		}
		return true
	}

	var timeout <-chan time.Time
	for {
		select {
		case ch, open := <-chunks:
			if !open {
				return
			}
			if ch.err != nil {
				if emit(dec.Flush()) {
					c.readErr = ch.err
				}
				return
			}
			if !emit(dec.Feed(ch.data)) {
				return
			}
			timeout = nil
			if dec.Pending() {
				timeout = time.After(escapeTimeout)
			}

		case <-timeout:
			timeout = nil
			if !emit(dec.Flush()) {
				return
			}

		case <-stop:
			return
		}
	}
}
