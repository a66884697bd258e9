package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/logging"
	"github.com/muurk/proxy-cli/internal/proxyenv"
	"github.com/muurk/proxy-cli/internal/session"
	"github.com/muurk/proxy-cli/internal/terminal"
)

// Terminal is the full-screen console the menu runs on.
type Terminal interface {
	Screen
	KeySource
	Draw(frame string) error
	Size() (width, height int)
	FlushInput() error
}

// Prompter reads one line of text on the normal screen. ok is false when
// the user cancelled the prompt.
type Prompter interface {
	ReadLine(prompt, initial string) (text string, ok bool, err error)
}

// Controller runs the interactive menu.
type Controller struct {
	term     Terminal
	prompt   Prompter
	sess     *session.Session
	out      io.Writer
	opts     Options
	input    *InputReader
	renderer *Renderer
	keys     keyMap
	sleep    func(time.Duration)

	items    []Item
	selected int
	status   *StatusMessage
}

// NewController returns a menu over sess. The closing notice is written to
// out after the alternate screen has been left.
func NewController(term Terminal, prompt Prompter, sess *session.Session, out io.Writer, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		term:     term,
		prompt:   prompt,
		sess:     sess,
		out:      out,
		opts:     opts,
		input:    NewInputReader(term, opts),
		renderer: NewRenderer(),
		keys:     defaultKeyMap(),
		sleep:    time.Sleep,
		items:    DefaultItems(),
	}
}

// Run shows the menu until the user quits. Action failures are reported on
// the status line; only terminal failures are returned. Full-screen mode is
// always left before Run returns, including on panic.
func (c *Controller) Run() (err error) {
	guard := newScreenGuard(c.term)
	if err := guard.acquire(); err != nil {
		return err
	}
	defer func() {
		if rerr := guard.release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if err := c.input.ClearEventQueue(); err != nil {
		return err
	}

	for {
		if err := c.draw(); err != nil {
			return err
		}

		k, err := c.input.ReadKey()
		if err != nil {
			return err
		}

		quit, err := c.handleKey(k, guard)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}

	if err := guard.release(); err != nil {
		return err
	}
	c.printClosingNotice()
	return nil
}

// Selected returns the index of the highlighted item.
func (c *Controller) Selected() int {
	return c.selected
}

func (c *Controller) view() View {
	w, h := c.term.Size()
	return View{
		Config:   c.sess.Config(),
		Env:      c.sess.Snapshot(),
		Items:    c.items,
		Selected: c.selected,
		Status:   c.status,
		Width:    w,
		Height:   h,
	}
}

func (c *Controller) draw() error {
	return c.term.Draw(c.renderer.Render(c.view()))
}

func (c *Controller) handleKey(k terminal.Key, guard *screenGuard) (quit bool, err error) {
	switch {
	case key.Matches(k, c.keys.Up):
		c.move(-1)
	case key.Matches(k, c.keys.Down):
		c.move(1)
	case key.Matches(k, c.keys.Quit):
		return true, nil
	case key.Matches(k, c.keys.Select):
		return c.activate(guard)
	default:
		logging.LogKey(k.String(), false)
	}
	return false, nil
}

// move shifts the selection by delta, clamped to the item list.
func (c *Controller) move(delta int) {
	next := c.selected + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.items)-1 {
		next = len(c.items) - 1
	}
	c.selected = next
}

func (c *Controller) activate(guard *screenGuard) (quit bool, err error) {
	switch c.items[c.selected] {
	case ItemEnableProxy:
		return false, c.flash(c.enable())
	case ItemDisableProxy:
		return false, c.flash(c.disable())
	case ItemSetPort:
		msg, err := c.setPort(guard)
		if err != nil {
			return false, err
		}
		return false, c.flash(msg)
	case ItemExit:
		return true, nil
	}
	return false, nil
}

func (c *Controller) enable() StatusMessage {
	err := c.sess.Enable()
	switch {
	case errors.Is(err, session.ErrNoPort):
		return warning("Set a port first")
	case err != nil:
		return failure("Failed to enable proxy: %v", err)
	}
	return success("Proxy enabled: %s", proxyenv.URL(c.sess.Config().PortValue()))
}

func (c *Controller) disable() StatusMessage {
	if err := c.sess.Disable(); err != nil {
		return failure("Failed to disable proxy: %v", err)
	}
	return success("Proxy disabled")
}

// setPort runs the port prompt on the normal screen. Pending keys are
// discarded on both sides of the prompt so that neither screen sees input
// meant for the other. Input failures here become an Error status; a dead
// input stream then ends Run at the next read.
func (c *Controller) setPort(guard *screenGuard) (StatusMessage, error) {
	if err := c.input.ClearEventQueue(); err != nil {
		return failure("Failed to read input: %v", err), nil
	}

	initial := ""
	if cfg := c.sess.Config(); cfg.HasPort() {
		initial = strconv.FormatUint(uint64(cfg.PortValue()), 10)
	}

	var (
		text      string
		ok        bool
		promptErr error
	)
	err := guard.suspended(func() error {
		if err := c.term.FlushInput(); err != nil {
			logging.Debug("Input not flushed", zap.Error(err))
		}
		text, ok, promptErr = c.prompt.ReadLine("Proxy port (empty to clear)", initial)
		return nil
	})
	if err != nil {
		return StatusMessage{}, err
	}

	if err := c.input.ClearEventQueue(); err != nil {
		logging.Warn("Failed to discard input after prompt", zap.Error(err))
	}

	if promptErr != nil {
		return failure("Failed to read port: %v", promptErr), nil
	}
	if !ok {
		return info("Port unchanged"), nil
	}

	change, err := c.sess.ApplyPortInput(text)
	var invalid *session.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return failure("Invalid port %q: must be %d-%d", invalid.Input, config.MinPort, config.MaxPort), nil
	case err != nil:
		return failure("Failed to save port: %v", err), nil
	}

	switch change {
	case session.PortSet:
		return success("Port set to %d", c.sess.Config().PortValue()), nil
	case session.PortCleared:
		return info("Port cleared"), nil
	default:
		return info("Port unchanged"), nil
	}
}

// flash shows msg for StatusDuration and then clears it.
func (c *Controller) flash(msg StatusMessage) error {
	logging.Debug("Status", zap.Stringer("kind", msg.Kind), zap.String("text", msg.Text))

	c.status = &msg
	defer func() { c.status = nil }()

	if err := c.draw(); err != nil {
		return err
	}
	c.sleep(c.opts.StatusDuration)
	return nil
}

func (c *Controller) printClosingNotice() {
	if c.out == nil {
		return
	}

	cfg := c.sess.Config()
	var line string
	if cfg.Enabled {
		line = EnabledStyle.Render("Proxy enabled") + " " + proxyenv.URL(cfg.PortValue())
	} else {
		line = DisabledStyle.Render("Proxy disabled")
	}
	fmt.Fprintln(c.out, lipgloss.NewStyle().PaddingLeft(2).Render(line))
}
