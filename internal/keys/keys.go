// Package keys decodes raw terminal input bytes into semantic key events.
package keys

import (
	"io"
	"unicode/utf8"
)

// Kind identifies the logical key a decoded event represents.
type Kind int

const (
	Unknown Kind = iota
	Char
	Enter
	Escape
	Backspace
	Delete
	Tab
	Up
	Down
	Left
	Right
	CtrlB
	CtrlC
	CtrlU
	CtrlW
)

var kindNames = map[Kind]string{
	Unknown:   "unknown",
	Char:      "char",
	Enter:     "enter",
	Escape:    "escape",
	Backspace: "backspace",
	Delete:    "delete",
	Tab:       "tab",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	CtrlB:     "ctrl+b",
	CtrlC:     "ctrl+c",
	CtrlU:     "ctrl+u",
	CtrlW:     "ctrl+w",
}

// String returns a stable name for the kind, used in trace payloads.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one decoded keystroke. Rune is set only for Char events.
type Event struct {
	Kind Kind
	Rune rune
}

// Decoder reads raw bytes from a terminal and emits one Event per
// logical keystroke. Bytes that arrive together but belong to separate
// keystrokes are buffered, so a burst (for example a paste) decodes as
// a sequence of events rather than being dropped.
type Decoder struct {
	r       io.Reader
	pending []byte
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next blocks until one complete keystroke is available and returns it.
// Multi-byte UTF-8 characters and escape sequences are always consumed
// whole; an unrecognized sequence decodes to an Unknown event without
// desynchronizing subsequent reads.
func (d *Decoder) Next() (Event, error) {
	if len(d.pending) == 0 {
		if err := d.fill(); err != nil {
			return Event{}, err
		}
	}
	b := d.pending[0]
	switch {
	case b == 0x1b:
		return d.decodeEscape()
	case b == '\r' || b == '\n':
		d.consume(1)
		return Event{Kind: Enter}, nil
	case b == 0x7f || b == 0x08:
		d.consume(1)
		return Event{Kind: Backspace}, nil
	case b == '\t':
		d.consume(1)
		return Event{Kind: Tab}, nil
	case b == 0x02:
		d.consume(1)
		return Event{Kind: CtrlB}, nil
	case b == 0x03:
		d.consume(1)
		return Event{Kind: CtrlC}, nil
	case b == 0x15:
		d.consume(1)
		return Event{Kind: CtrlU}, nil
	case b == 0x17:
		d.consume(1)
		return Event{Kind: CtrlW}, nil
	case b < 0x20:
		d.consume(1)
		return Event{Kind: Unknown}, nil
	default:
		return d.decodeRune()
	}
}

// fill performs one blocking read and appends whatever arrived to the
// pending buffer.
func (d *Decoder) fill() error {
	buf := make([]byte, 64)
	n, err := d.r.Read(buf)
	if n > 0 {
		d.pending = append(d.pending, buf[:n]...)
		return nil
	}
	if err == nil {
		err = io.EOF
	}
	return err
}

func (d *Decoder) consume(n int) {
	d.pending = d.pending[n:]
}

// decodeRune assembles exactly one UTF-8 code point, reading further
// bytes only when the sequence is demonstrably incomplete.
func (d *Decoder) decodeRune() (Event, error) {
	for !utf8.FullRune(d.pending) && len(d.pending) < utf8.UTFMax {
		if err := d.fill(); err != nil {
			return Event{}, err
		}
	}
	r, size := utf8.DecodeRune(d.pending)
	d.consume(size)
	if r == utf8.RuneError && size == 1 {
		return Event{Kind: Unknown}, nil
	}
	return Event{Kind: Char, Rune: r}, nil
}

// decodeEscape resolves a byte sequence led by ESC. A lone ESC with no
// follow-up bytes already buffered is the Escape key itself; terminals
// transmit full CSI sequences in a single write, so once a CSI opener
// is seen the remaining bytes can be read without guessing.
func (d *Decoder) decodeEscape() (Event, error) {
	if len(d.pending) == 1 {
		d.consume(1)
		return Event{Kind: Escape}, nil
	}
	switch d.pending[1] {
	case '[':
		return d.decodeCSI()
	case 'O':
		return d.decodeSS3()
	default:
		// ESC followed by an unrelated byte: emit Escape and leave the
		// rest for the next call.
		d.consume(1)
		return Event{Kind: Escape}, nil
	}
}

// decodeCSI consumes one CSI sequence: ESC '[' parameters (0x30-0x3f),
// intermediates (0x20-0x2f), then a final byte (0x40-0x7e).
func (d *Decoder) decodeCSI() (Event, error) {
	i := 2
	for {
		for i >= len(d.pending) {
			if err := d.fill(); err != nil {
				return Event{}, err
			}
		}
		b := d.pending[i]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// Malformed sequence: drop what we consumed so far.
			d.consume(i)
			return Event{Kind: Unknown}, nil
		}
		i++
	}
	seq := string(d.pending[2 : i+1])
	d.consume(i + 1)
	switch seq {
	case "A":
		return Event{Kind: Up}, nil
	case "B":
		return Event{Kind: Down}, nil
	case "C":
		return Event{Kind: Right}, nil
	case "D":
		return Event{Kind: Left}, nil
	case "3~":
		return Event{Kind: Delete}, nil
	}
	return Event{Kind: Unknown}, nil
}

// decodeSS3 handles application-mode arrow keys (ESC 'O' final).
func (d *Decoder) decodeSS3() (Event, error) {
	for len(d.pending) < 3 {
		if err := d.fill(); err != nil {
			return Event{}, err
		}
	}
	b := d.pending[2]
	d.consume(3)
	switch b {
	case 'A':
		return Event{Kind: Up}, nil
	case 'B':
		return Event{Kind: Down}, nil
	case 'C':
		return Event{Kind: Right}, nil
	case 'D':
		return Event{Kind: Left}, nil
	}
	return Event{Kind: Unknown}, nil
}
