package menu

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/logging"
	"github.com/muurk/proxy-cli/internal/terminal"
)

// KeySource delivers decoded keys. A negative timeout blocks, zero polls.
// *terminal.Console implements it.
type KeySource interface {
	PollKey(timeout time.Duration) (terminal.Key, bool, error)
}

// InputReader reads one logical key at a time from a KeySource, folding
// auto-repeated arrow keys into a single press.
type InputReader struct {
	src  KeySource
	opts Options

	now   func() time.Time
	sleep func(time.Duration)
}

// NewInputReader returns a reader over src.
func NewInputReader(src KeySource, opts Options) *InputReader {
	return &InputReader{
		src:   src,
		opts:  opts.withDefaults(),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// ReadKey blocks until a key arrives. After an up or down arrow it keeps
// polling until DebounceWindow has passed: repeats of the same arrow are
// discarded and any other key is returned at once in place of the arrow.
func (r *InputReader) ReadKey() (terminal.Key, error) {
	k, err := r.next()
	if err != nil {
		return terminal.Key{}, err
	}
	if !k.IsVertical() {
		return k, nil
	}

	deadline := r.now().Add(r.opts.DebounceWindow)
	for i := 0; i < r.opts.MaxDebouncePolls; i++ {
		remaining := deadline.Sub(r.now())
		if remaining <= 0 {
			break
		}

		next, ok, err := r.src.PollKey(remaining)
		if err != nil {
			return terminal.Key{}, err
		}
		if !ok {
			break
		}
		if next == k {
			logging.LogKey(next.String(), true)
			continue
		}
		return next, nil
	}

	return k, nil
}

func (r *InputReader) next() (terminal.Key, error) {
	for {
		k, ok, err := r.src.PollKey(-1)
		if err != nil {
			return terminal.Key{}, err
		}
		if ok {
			return k, nil
		}
	}
}

// ClearEventQueue discards pending input: it waits SettleDelay, drains at
// most MaxDrain queued keys without blocking, then waits again.
func (r *InputReader) ClearEventQueue() error {
	r.sleep(r.opts.SettleDelay)

	drained := 0
	for drained < r.opts.MaxDrain {
		_, ok, err := r.src.PollKey(0)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		drained++
	}
	if drained > 0 {
		logging.Debug("Discarded queued input", zap.Int("keys", drained))
	}

	r.sleep(r.opts.SettleDelay)
	return nil
}
