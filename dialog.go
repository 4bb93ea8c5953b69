package parley

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// DialogButton is one choice in a Dialog. Key is an optional hotkey
// that submits the button directly.
type DialogButton struct {
	Label string
	Key   rune
}

// Dialog prompts with a row of buttons and returns the index of the
// chosen one.
type Dialog struct {
	title       string
	description string
	buttons     []DialogButton
	theme       *Theme

	focus int
}

// NewDialog creates a dialog with the given title and a single "Ok"
// button.
func NewDialog(title string) *Dialog {
	return &Dialog{
		title:   title,
		buttons: []DialogButton{{Label: "Ok", Key: 'o'}},
		theme:   defaultTheme(),
	}
}

// Description sets the description shown after the title.
func (d *Dialog) Description(desc string) *Dialog {
	d.description = desc
	return d
}

// Buttons replaces the button row.
func (d *Dialog) Buttons(buttons ...DialogButton) *Dialog {
	d.buttons = buttons
	return d
}

// Default sets which button starts focused.
func (d *Dialog) Default(index int) *Dialog {
	d.focus = index
	return d
}

// Theme sets the theme.
func (d *Dialog) Theme(t *Theme) *Dialog {
	d.theme = t
	return d
}

// Run displays the dialog and blocks until a button is chosen or the
// dialog is cancelled. It returns the chosen button's index.
func (d *Dialog) Run() (int, error) {
	v, out, err := d.run(false)
	if err != nil {
		return 0, err
	}
	if out == outcomeCancelled {
		return 0, ErrCancelled
	}
	return v, nil
}

func (d *Dialog) runStep(allowBack bool) (any, outcome, error) {
	v, out, err := d.run(allowBack)
	return v, out, err
}

func (d *Dialog) run(allowBack bool) (int, outcome, error) {
	if err := d.check(); err != nil {
		return 0, outcomePending, err
	}
	sess, err := openSession()
	if err != nil {
		return 0, outcomePending, err
	}
	defer sess.Close()
	if !sess.Interactive() {
		v, err := d.runFallback(sess)
		if err != nil {
			return 0, outcomePending, err
		}
		return v, outcomeSubmitted, nil
	}
	trace.Event("prompt.start", map[string]string{"kind": "dialog", "title": d.title})
	out, err := runLoop(sess, d, allowBack)
	if err != nil {
		return 0, out, err
	}
	if out != outcomeSubmitted {
		finish(sess, out, "")
		trace.Event("prompt.cancel", d.title)
		return 0, out, nil
	}
	finish(sess, out, d.successView())
	trace.Event("prompt.submit", map[string]any{"title": d.title, "button": d.buttons[d.focus].Label})
	return d.focus, out, nil
}

func (d *Dialog) check() error {
	if len(d.buttons) == 0 {
		return fmt.Errorf("%w: dialog %q has no buttons", ErrInvalidConfiguration, d.title)
	}
	for _, b := range d.buttons {
		if b.Label == "" {
			return fmt.Errorf("%w: dialog %q has a button without a label", ErrInvalidConfiguration, d.title)
		}
	}
	if d.focus < 0 || d.focus >= len(d.buttons) {
		return fmt.Errorf("%w: dialog %q default button %d out of range", ErrInvalidConfiguration, d.title, d.focus)
	}
	return nil
}

func (d *Dialog) runFallback(sess *terminal.Session) (int, error) {
	if err := sess.WritePrompt(d.title, d.description, ""); err != nil {
		return 0, err
	}
	for i, b := range d.buttons {
		line := fmt.Sprintf("%d. %s", i+1, b.Label)
		if b.Key != 0 {
			line += fmt.Sprintf(" [%c]", b.Key)
		}
		if err := sess.WriteLine(line); err != nil {
			return 0, err
		}
	}
	line, err := sess.ReadLine()
	if err != nil {
		return 0, err
	}
	for i, b := range d.buttons {
		if b.Label == line {
			return i, nil
		}
		if b.Key != 0 && strings.EqualFold(line, string(b.Key)) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(d.buttons) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("no button matches %q", line)
}

func (d *Dialog) apply(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		for i, b := range d.buttons {
			if b.Key != 0 && unicode.ToLower(ev.Rune) == unicode.ToLower(b.Key) {
				d.focus = i
				return outcomeSubmitted
			}
		}
		switch ev.Rune {
		case 'h':
			d.moveFocus(-1)
		case 'l':
			d.moveFocus(1)
		}
	case keys.Left:
		d.moveFocus(-1)
	case keys.Right, keys.Tab:
		d.moveFocus(1)
	case keys.Enter:
		return outcomeSubmitted
	case keys.Escape:
		return outcomeCancelled
	}
	return outcomePending
}

// moveFocus shifts the focused button, wrapping at both ends.
func (d *Dialog) moveFocus(delta int) {
	n := len(d.buttons)
	d.focus = (d.focus + delta + n) % n
}

func (d *Dialog) showCursor() bool { return false }

func (d *Dialog) view() string {
	t := d.theme
	var b strings.Builder
	b.WriteString(t.Title.Render(d.title) + "\n")
	if d.description != "" {
		b.WriteString(t.Description.Render(d.description) + "\n")
	}
	b.WriteString("\n  ")
	for i, btn := range d.buttons {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == d.focus {
			b.WriteString(t.FocusedButton.Render(" " + btn.Label + " "))
		} else {
			b.WriteString(t.BlurredButton.Render(" " + btn.Label + " "))
		}
	}
	b.WriteString("\n\n" + renderHelp(t, []helpItem{
		{"←/→", "focus"},
		{"enter", "choose"},
	}) + "\n")
	return b.String()
}

func (d *Dialog) successView() string {
	t := d.theme
	return t.Title.Render(d.title) + t.SelectedOption.Render(" "+d.buttons[d.focus].Label)
}
