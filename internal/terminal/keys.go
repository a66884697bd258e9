package terminal

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// KeyCode identifies a decoded key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyCtrlC
	KeyUnknown
)

var keyNames = map[KeyCode]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeySpace:     "space",
	KeyCtrlC:     "ctrl+c",
	KeyUnknown:   "unknown",
}

// Key is one logical key press.
type Key struct {
	Code KeyCode
	Rune rune // Only for KeyRune
}

// String returns the key name used in key bindings, e.g. "up", "enter" or
// "q". It satisfies fmt.Stringer so keys can be matched with bubbles/key.
func (k Key) String() string {
	if k.Code == KeyRune {
		return string(k.Rune)
	}
	if name, ok := keyNames[k.Code]; ok {
		return name
	}
	return "unknown"
}

// IsVertical reports whether k moves a selection up or down.
func (k Key) IsVertical() bool {
	return k.Code == KeyUp || k.Code == KeyDown
}

// ParseKeys decodes a complete chunk of raw terminal input into key presses.
// A trailing incomplete escape sequence is resolved as if no more input
// followed it. Use a Decoder when input arrives in pieces.
func ParseKeys(b []byte) []Key {
	d := NewDecoder()
	return append(d.Feed(b), d.Flush()...)
}

// maxPending bounds the bytes held for an unterminated sequence.
const maxPending = 64

// Decoder turns a stream of raw terminal input into key presses. An escape
// sequence split across reads is held back until the rest arrives or Flush
// is called. A single read may hold several keys when the terminal
// auto-repeats faster than we read.
type Decoder struct {
	parser  *ansi.Parser
	pending []byte
}

// NewDecoder returns a decoder with nothing held.
func NewDecoder() *Decoder {
	p := ansi.NewParser()
	p.SetDataSize(maxPending)
	return &Decoder{parser: p}
}

// Pending reports whether an incomplete sequence is held.
func (d *Decoder) Pending() bool {
	return len(d.pending) > 0
}

// Feed decodes b after any held bytes.
func (d *Decoder) Feed(b []byte) []Key {
	buf := append(d.pending, b...)
	d.pending = nil

	var keys []Key
	for len(buf) > 0 {
		if buf[0] >= 0xc0 && !utf8.FullRune(buf) {
			d.hold(buf)
			break
		}

		seq, _, n, state := ansi.DecodeSequence(buf, ansi.NormalState, d.parser)
		if state != ansi.NormalState {
			d.hold(buf)
			break
		}
		if len(seq) == 0 || n <= 0 {
			buf = buf[1:]
			continue
		}

		// SS3: ESC O completes as a two-byte escape and the key follows it.
		if len(seq) == 2 && seq[0] == ansi.ESC && seq[1] == 'O' {
			if len(buf) < 3 {
				d.hold(buf)
				break
			}
			keys = appendKey(keys, Key{Code: finalKey(buf[2], 0)})
			buf = buf[3:]
			continue
		}

		k, used := d.decode(seq)
		if used > 0 && used < n {
			n = used
		}
		keys = appendKey(keys, k)
		buf = buf[n:]
	}
	return keys
}

// Flush resolves whatever is held. A lone ESC is the Escape key; an ESC O
// without its final byte is Escape followed by O. Anything else is dropped.
func (d *Decoder) Flush() []Key {
	held := d.pending
	d.pending = nil

	switch {
	case len(held) == 1 && held[0] == ansi.ESC:
		return []Key{{Code: KeyEscape}}
	case len(held) == 2 && held[0] == ansi.ESC && held[1] == 'O':
		return []Key{{Code: KeyEscape}, {Code: KeyRune, Rune: 'O'}}
	}
	return nil
}

func (d *Decoder) hold(b []byte) {
	if len(b) > maxPending {
		return
	}
	d.pending = append([]byte(nil), b...)
}

func appendKey(keys []Key, k Key) []Key {
	if k.Code == KeyUnknown {
		return keys
	}
	return append(keys, k)
}

// decode maps one decoded sequence to a key. used is non-zero when only a
// prefix of seq was consumed.
func (d *Decoder) decode(seq []byte) (k Key, used int) {
	switch c := seq[0]; {
	case c == ansi.ESC:
		return d.decodeEscape(seq)
	case c == '\r' || c == '\n':
		return Key{Code: KeyEnter}, 0
	case c == ansi.ETX:
		return Key{Code: KeyCtrlC}, 0
	case c == ansi.DEL || c == ansi.BS:
		return Key{Code: KeyBackspace}, 0
	case c == '\t':
		return Key{Code: KeyTab}, 0
	case c == ' ':
		return Key{Code: KeySpace}, 0
	case c < 0x20 || c == ansi.CSI:
		return Key{Code: KeyUnknown}, 0
	}

	r, _ := utf8.DecodeRune(seq)
	if r == utf8.RuneError {
		return Key{Code: KeyUnknown}, 0
	}
	return Key{Code: KeyRune, Rune: r}, 0
}

func (d *Decoder) decodeEscape(seq []byte) (Key, int) {
	if len(seq) == 1 {
		return Key{Code: KeyEscape}, 0
	}

	if seq[1] == '[' {
		cmd := ansi.Cmd(d.parser.Command())
		if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
			return Key{Code: KeyUnknown}, 0
		}
		param, _ := d.parser.Param(0, 0)
		return Key{Code: finalKey(cmd.Final(), param)}, 0
	}

	// ESC followed by an ordinary key: report Escape and decode the key on
	// its own.
	return Key{Code: KeyEscape}, 1
}

func finalKey(final byte, param int) KeyCode {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	case '~':
		switch param {
		case 1, 7:
			return KeyHome
		case 4, 8:
			return KeyEnd
		}
	}
	return KeyUnknown
}
