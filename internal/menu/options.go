package menu

import "time"

// Options tunes input handling and status display.
type Options struct {
	// DebounceWindow is how long repeats of an arrow key are swallowed after
	// the first one.
	DebounceWindow time.Duration
	// MaxDebouncePolls caps the polling loop inside one debounce window.
	MaxDebouncePolls int
	// SettleDelay is slept before and after draining the event queue.
	SettleDelay time.Duration
	// MaxDrain caps the events discarded by one ClearEventQueue.
	MaxDrain int
	// StatusDuration is how long a status message stays on screen.
	StatusDuration time.Duration
}

// DefaultOptions returns the values used by the CLI.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:   100 * time.Millisecond,
		MaxDebouncePolls: 32,
		SettleDelay:      50 * time.Millisecond,
		MaxDrain:         64,
		StatusDuration:   time.Second,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = d.DebounceWindow
	}
	if o.MaxDebouncePolls <= 0 {
		o.MaxDebouncePolls = d.MaxDebouncePolls
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	if o.MaxDrain <= 0 {
		o.MaxDrain = d.MaxDrain
	}
	if o.StatusDuration < 0 {
		o.StatusDuration = 0
	}
	return o
}
