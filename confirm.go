package parley

import (
	"fmt"
	"strings"

	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// Confirm prompts for a yes-or-no decision rendered as two buttons.
type Confirm struct {
	title       string
	description string
	affirmative string
	negative    string
	theme       *Theme

	choice bool
}

// NewConfirm creates a confirmation prompt with the given title,
// defaulting to "Yes" and "No" buttons with "Yes" focused.
func NewConfirm(title string) *Confirm {
	return &Confirm{
		title:       title,
		affirmative: "Yes",
		negative:    "No",
		choice:      true,
		theme:       defaultTheme(),
	}
}

// Description sets the description shown after the title.
func (c *Confirm) Description(d string) *Confirm {
	c.description = d
	return c
}

// Affirmative sets the label of the affirmative button.
func (c *Confirm) Affirmative(label string) *Confirm {
	c.affirmative = label
	return c
}

// Negative sets the label of the negative button.
func (c *Confirm) Negative(label string) *Confirm {
	c.negative = label
	return c
}

// Default sets which button starts focused.
func (c *Confirm) Default(affirmative bool) *Confirm {
	c.choice = affirmative
	return c
}

// Theme sets the theme.
func (c *Confirm) Theme(t *Theme) *Confirm {
	c.theme = t
	return c
}

// Run displays the prompt and blocks until a button is chosen or the
// prompt is cancelled.
func (c *Confirm) Run() (bool, error) {
	v, out, err := c.run(false)
	if err != nil {
		return false, err
	}
	if out == outcomeCancelled {
		return false, ErrCancelled
	}
	return v, nil
}

func (c *Confirm) runStep(allowBack bool) (any, outcome, error) {
	v, out, err := c.run(allowBack)
	return v, out, err
}

func (c *Confirm) run(allowBack bool) (bool, outcome, error) {
	if c.affirmative == "" || c.negative == "" {
		return false, outcomePending, fmt.Errorf("%w: confirm %q has an empty button label", ErrInvalidConfiguration, c.title)
	}
	sess, err := openSession()
	if err != nil {
		return false, outcomePending, err
	}
	defer sess.Close()
	if !sess.Interactive() {
		v, err := c.runFallback(sess)
		if err != nil {
			return false, outcomePending, err
		}
		return v, outcomeSubmitted, nil
	}
	trace.Event("prompt.start", map[string]string{"kind": "confirm", "title": c.title})
	out, err := runLoop(sess, c, allowBack)
	if err != nil {
		return false, out, err
	}
	if out != outcomeSubmitted {
		finish(sess, out, "")
		trace.Event("prompt.cancel", c.title)
		return false, out, nil
	}
	finish(sess, out, c.successView())
	trace.Event("prompt.submit", map[string]any{"title": c.title, "choice": c.choice})
	return c.choice, out, nil
}

func (c *Confirm) runFallback(sess *terminal.Session) (bool, error) {
	hint := fmt.Sprintf("[%s/%s] ", c.affirmative, c.negative)
	if err := sess.WritePrompt(c.title, c.description, hint); err != nil {
		return false, err
	}
	line, err := sess.ReadLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return c.choice, nil
	case strings.ToLower(c.affirmative), "y", "yes":
		return true, nil
	case strings.ToLower(c.negative), "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("answer %q matches neither %q nor %q", line, c.affirmative, c.negative)
}

func (c *Confirm) apply(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		switch ev.Rune {
		case 'y', 'Y':
			c.choice = true
			return outcomeSubmitted
		case 'n', 'N':
			c.choice = false
			return outcomeSubmitted
		case 'h', 'l':
			c.choice = !c.choice
		}
	case keys.Left, keys.Right, keys.Tab:
		c.choice = !c.choice
	case keys.Enter:
		return outcomeSubmitted
	case keys.Escape:
		return outcomeCancelled
	}
	return outcomePending
}

func (c *Confirm) showCursor() bool { return false }

func (c *Confirm) view() string {
	t := c.theme
	var b strings.Builder
	b.WriteString(t.Title.Render(c.title) + "\n")
	if c.description != "" {
		b.WriteString(t.Description.Render(c.description) + "\n")
	}
	b.WriteString("\n")
	yes := t.BlurredButton.Render(" " + c.affirmative + " ")
	no := t.BlurredButton.Render(" " + c.negative + " ")
	if c.choice {
		yes = t.FocusedButton.Render(" " + c.affirmative + " ")
	} else {
		no = t.FocusedButton.Render(" " + c.negative + " ")
	}
	b.WriteString("  " + yes + "  " + no + "\n")
	b.WriteString("\n" + renderHelp(t, []helpItem{
		{"←/→", "toggle"},
		{"y/n", "answer"},
		{"enter", "confirm"},
	}) + "\n")
	return b.String()
}

func (c *Confirm) successView() string {
	t := c.theme
	label := c.negative
	if c.choice {
		label = c.affirmative
	}
	return t.Title.Render(c.title) + t.SelectedOption.Render(" "+label)
}
