// Package parley provides interactive terminal prompt primitives:
// single-line input, single and multi selection, confirmation,
// multi-button dialogs, scrollable lists, spinners, and multi-step
// wizards. Every primitive runs a blocking read-one-key/apply/render
// loop against an exclusively owned terminal session and degrades to a
// line-oriented mode when standard input is not a terminal.
package parley

import (
	"errors"
	"fmt"

	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// ErrCancelled is returned when the user cancels a prompt with Escape
// or Ctrl-C. It is an outcome, not a failure; callers test for it with
// errors.Is and treat it as "no answer".
var ErrCancelled = errors.New("cancelled by user")

// ErrInvalidConfiguration is returned before any interaction when a
// prompt is built with contradictory settings, for example a
// multi-select whose minimum exceeds its maximum.
var ErrInvalidConfiguration = errors.New("invalid prompt configuration")

// Validator checks a candidate answer and returns a user-facing error
// when it must be corrected. Validation failures are shown inline and
// never terminate an interactive prompt.
type Validator func(string) error

// Prompt is implemented by every primitive that can run as a wizard
// step.
type Prompt interface {
	runStep(allowBack bool) (any, outcome, error)
}

// EnableTrace turns on the diagnostic trace log at the given path (or a
// default file when empty). Intended for embedding programs debugging
// prompt flows; the library writes nothing unless this is called.
func EnableTrace(path string) {
	trace.Configure(path)
	trace.SetEnabled(true)
}

// openSession is swapped out by tests to drive prompts over in-memory
// streams.
var openSession = terminal.Open

type outcome int

const (
	outcomePending outcome = iota
	outcomeSubmitted
	outcomeCancelled
	outcomeBack
)

// machine is the shared contract across prompt variants: a view of the
// current state and a transition function over key events. The loop in
// runLoop owns everything else.
type machine interface {
	// view renders the complete frame for the current state.
	view() string
	// apply advances the state machine by one key event and reports
	// whether a terminal state was reached.
	apply(ev keys.Event) outcome
	// showCursor reports whether the hardware cursor should be visible
	// for the current state. Prompts that paint their own cursor keep
	// it hidden.
	showCursor() bool
}

// runLoop drives a prompt state machine against the terminal session:
// paint the frame, decode one keystroke, apply it, repeat until the
// machine reaches a terminal state. Ctrl-C cancels unconditionally;
// Ctrl-B backs out when the prompt runs inside a wizard.
func runLoop(sess *terminal.Session, m machine, allowBack bool) (outcome, error) {
	dec := keys.NewDecoder(sess.Input())
	for {
		if err := sess.Paint(m.view()); err != nil {
			return outcomePending, fmt.Errorf("paint frame: %w", err)
		}
		if m.showCursor() {
			sess.ShowCursor()
		} else {
			sess.HideCursor()
		}
		ev, err := dec.Next()
		if err != nil {
			return outcomePending, fmt.Errorf("read key: %w", err)
		}
		trace.Event("prompt.key", ev.Kind.String())
		if ev.Kind == keys.CtrlC {
			return outcomeCancelled, nil
		}
		if allowBack && ev.Kind == keys.CtrlB {
			return outcomeBack, nil
		}
		if out := m.apply(ev); out != outcomePending {
			return out, nil
		}
	}
}

/// finish replaces the interactive block according to the loop outcome:
// a static answer line on submission, nothing on cancel or back.
func finish(sess *terminal.Session, out outcome, successLine string) {
	switch out {
	case outcomeSubmitted:
		_ = sess.Finish(successLine)
	default:
		_ = sess.ClearFrame()
	}
	sess.ShowCursor()
}
