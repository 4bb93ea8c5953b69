package parley

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/parley-cli/parley/internal/trace"
)

// Answers collects wizard results keyed by step name.
type Answers map[string]any

// String returns the answer for name as a string, or "" when absent or
// of another type.
func (a Answers) String(name string) string {
	if v, ok := a[name].(string); ok {
		return v
	}
	return ""
}

// Bool returns the answer for name as a bool, or false when absent or
// of another type.
func (a Answers) Bool(name string) bool {
	if v, ok := a[name].(bool); ok {
		return v
	}
	return false
}

// WizardContext is what a step's build function sees: every answer
// recorded so far and the wizard's position.
type WizardContext struct {
	names   []string
	current int
	answers Answers
	theme   *Theme
}

// Answers returns the answers recorded by earlier steps.
func (c *WizardContext) Answers() Answers {
	return c.answers
}

// Breadcrumb renders the wizard's step names with the current one
// highlighted, for embedding in a step's title or description.
func (c *WizardContext) Breadcrumb() string {
	t := c.theme
	parts := make([]string, len(c.names))
	for i, name := range c.names {
		switch {
		case i < c.current:
			parts[i] = t.BreadcrumbVisited.Render(name)
		case i == c.current:
			parts[i] = t.BreadcrumbActive.Render(name)
		default:
			parts[i] = t.BreadcrumbFuture.Render(name)
		}
	}
	return strings.Join(parts, t.BreadcrumbVisited.Render(t.BreadcrumbSeparator))
}

// wizardStep pairs a step name with its build function. The built
// prompt is retained so that backing into the step restores its state,
// previous answer included.
type wizardStep struct {
	name   string
	build  func(ctx *WizardContext) Prompt
	prompt Prompt
}

// Wizard runs a sequence of prompts, each built from the answers so
// far. Ctrl-B re-enters the previous step; cancelling any step cancels
// the wizard.
type Wizard struct {
	steps []*wizardStep
	theme *Theme
}

// NewWizard creates an empty wizard.
func NewWizard() *Wizard {
	return &Wizard{theme: defaultTheme()}
}

// Step appends a named step. The built prompt is reused when the step
// is re-entered, unless an earlier answer changed in the meantime, in
// which case the build function runs again with the fresh answers.
func (w *Wizard) Step(name string, build func(ctx *WizardContext) Prompt) *Wizard {
	w.steps = append(w.steps, &wizardStep{name: name, build: build})
	return w
}

// Theme sets the theme used by the breadcrumb helper.
func (w *Wizard) Theme(t *Theme) *Wizard {
	w.theme = t
	return w
}

// Run executes the steps in order and returns the answers keyed by step
// name. It returns ErrCancelled as soon as any step is cancelled.
func (w *Wizard) Run() (Answers, error) {
	if len(w.steps) == 0 {
		return nil, fmt.Errorf("%w: wizard has no steps", ErrInvalidConfiguration)
	}
	names := make([]string, len(w.steps))
	for i, st := range w.steps {
		names[i] = st.name
	}
	answers := Answers{}
	trace.Event("wizard.start", names)
	for idx := 0; idx < len(w.steps); {
		st := w.steps[idx]
		ctx := &WizardContext{names: names, current: idx, answers: answers, theme: w.theme}
		if st.prompt == nil {
			st.prompt = st.build(ctx)
		}
		trace.Event("wizard.step", st.name)
		value, out, err := st.prompt.runStep(idx > 0)
		if err != nil {
			return nil, fmt.Errorf("wizard step %q: %w", st.name, err)
		}
		switch out {
		case outcomeBack:
			idx--
		case outcomeCancelled:
			trace.Event("wizard.cancel", st.name)
			return nil, ErrCancelled
		default:
			if prev, ok := answers[st.name]; ok && !reflect.DeepEqual(prev, value) {
				// A changed answer invalidates the cached prompts of
				// later steps so their build functions see the new
				// value on re-entry.
				for _, later := range w.steps[idx+1:] {
					later.prompt = nil
				}
			}
			answers[st.name] = value
			idx++
		}
	}
	trace.Event("wizard.done", len(w.steps))
	return answers, nil
}
