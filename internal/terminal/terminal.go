// Package terminal owns the interactive terminal session: raw mode
// acquisition, cursor visibility, frame painting, and the line-oriented
// fallback used when standard input is not a terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

// ErrSessionActive is returned when a second session is opened while
// another one still owns the terminal. Raw mode and cursor visibility
// are a process-wide resource; concurrent prompts are a programming
// error, not a runtime condition to recover from.
var ErrSessionActive = errors.New("terminal session already active")

var active atomic.Bool

// Session is the exclusive handle on the controlling terminal while a
// prompt runs. Exactly one may exist at a time.
type Session struct {
	in     *os.File
	stream io.Reader
	out    io.Writer

	interactive   bool
	owned         bool
	prev          *term.State
	cursorVisible bool
	lines         int

	reader    *bufio.Reader
	closeOnce sync.Once
	sig       chan os.Signal
	done      chan struct{}
}

// Open acquires the terminal. When stdin and stderr are both terminals
// it enables raw mode, hides the cursor, and installs an interrupt
// handler that restores the terminal before the process exits.
// Otherwise the session stays line-oriented: no raw mode, no cursor
// control, no screen clearing.
func Open() (*Session, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrSessionActive
	}
	s := &Session{
		in:     os.Stdin,
		stream: os.Stdin,
		out:    os.Stderr,
		owned:  true,
		reader: bufio.NewReader(os.Stdin),
	}
	if !stdinIsTerminal() || !stderrIsTerminal() {
		return s, nil
	}
	prev, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		active.Store(false)
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	s.interactive = true
	s.prev = prev
	s.cursorVisible = true
	s.HideCursor()
	s.installSignalHandler()
	return s, nil
}

// NewNonInteractive builds a line-oriented session over arbitrary
// streams. It bypasses the process-wide terminal guard and exists for
// the fallback path and for tests.
func NewNonInteractive(in io.Reader, out io.Writer) *Session {
	return &Session{
		stream: in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// NewVirtual builds an interactive-mode session over arbitrary streams:
// frames are painted and keys decoded exactly as on a real terminal,
// but no raw mode, signal handler, or process-wide guard is involved.
// It exists for tests that drive the key loop with scripted bytes.
func NewVirtual(in io.Reader, out io.Writer) *Session {
	return &Session{
		stream:        in,
		out:           out,
		interactive:   true,
		cursorVisible: true,
		reader:        bufio.NewReader(in),
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive reports whether the session controls a real terminal.
func (s *Session) Interactive() bool {
	return s.interactive
}

// Input returns the raw input stream for key decoding.
func (s *Session) Input() io.Reader {
	return s.stream
}

// Close releases the terminal: cursor shown, raw mode restored, signal
// handler removed. Safe to call from any exit path, any number of
// times, and never fails in a way that prevents process exit.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.restore()
		if s.sig != nil {
			signal.Stop(s.sig)
			close(s.done)
		}
		if s.owned {
			active.Store(false)
		}
	})
}

func (s *Session) restore() {
	if !s.interactive {
		return
	}
	s.ShowCursor()
	if s.prev != nil {
		_ = term.Restore(int(s.in.Fd()), s.prev)
	}
}

// installSignalHandler runs the release path when an interrupt arrives
// while a prompt or spinner owns the terminal, then lets the default
// termination proceed.
func (s *Session) installSignalHandler() {
	s.sig = make(chan os.Signal, 1)
	s.done = make(chan struct{})
	signal.Notify(s.sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-s.sig:
			s.restore()
			os.Exit(130)
		case <-s.done:
		}
	}()
}

// HideCursor makes the cursor invisible until shown again.
func (s *Session) HideCursor() {
	if !s.interactive || !s.cursorVisible {
		return
	}
	io.WriteString(s.out, hideCursorSeq)
	s.cursorVisible = false
}

// ShowCursor restores cursor visibility.
func (s *Session) ShowCursor() {
	if !s.interactive || s.cursorVisible {
		return
	}
	io.WriteString(s.out, showCursorSeq)
	s.cursorVisible = true
}

// Size returns the terminal dimensions, defaulting to 80x24 when they
// cannot be determined.
func (s *Session) Size() (width, height int) {
	if s.interactive && s.in != nil {
		if w, h, err := term.GetSize(int(s.in.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 80, 24
}

// Paint replaces the previously painted frame with a new one. The old
// frame is cleared in full, exactly the number of rows it occupied, so
// no stale characters survive a shrinking frame.
func (s *Session) Paint(frame string) error {
	frame = strings.TrimSuffix(frame, "\n")
	var b strings.Builder
	b.WriteString(s.clearSeq())
	b.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))
	_, err := io.WriteString(s.out, b.String())
	width, _ := s.Size()
	s.lines = FrameRows(frame, width)
	return err
}

// Finish clears the interactive frame and leaves a single static line
// in its place.
func (s *Session) Finish(line string) error {
	out := s.clearSeq() + strings.ReplaceAll(strings.TrimSuffix(line, "\n"), "\n", "\r\n") + "\r\n"
	s.lines = 0
	_, err := io.WriteString(s.out, out)
	return err
}

// ClearFrame erases the current frame without painting a replacement.
func (s *Session) ClearFrame() error {
	_, err := io.WriteString(s.out, s.clearSeq())
	s.lines = 0
	return err
}

func (s *Session) clearSeq() string {
	if s.lines <= 0 {
		return "\r" + ansi.EraseLine(2)
	}
	seq := "\r"
	if s.lines > 1 {
		seq += ansi.CursorUp(s.lines - 1)
	}
	return seq + ansi.EraseDisplay(0)
}

// FrameRows reports how many terminal rows a frame occupies at the
// given width, counting lines that wrap past the right edge.
func FrameRows(frame string, width int) int {
	frame = strings.TrimSuffix(frame, "\n")
	if frame == "" {
		return 1
	}
	rows := 0
	for _, line := range strings.Split(frame, "\n") {
		w := runewidth.StringWidth(stripANSI(line))
		if width > 0 && w > width {
			rows += (w + width - 1) / width
		} else {
			rows++
		}
	}
	return rows
}

// stripANSI removes CSI sequences so width accounting sees only
// printable cells.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// WritePrompt prints the prompt text once for the line-oriented
// fallback, with no control sequences.
func (s *Session) WritePrompt(title, description, prompt string) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	if description != "" {
		b.WriteString(description + "\n")
	}
	if prompt != "" {
		b.WriteString(prompt)
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

// WriteLine prints one plain line of output.
func (s *Session) WriteLine(line string) error {
	_, err := io.WriteString(s.out, line+"\n")
	return err
}

// ReadLine reads one line from the input stream and strips the line
// ending, handling both \n and \r\n.
func (s *Session) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
