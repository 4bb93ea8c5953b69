package parley

import (
	"fmt"
	"strings"

	"github.com/parley-cli/parley/internal/filter"
	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// MultiSelect prompts for any number of options out of a list, bounded
// by optional minimum and maximum counts.
type MultiSelect[T any] struct {
	title       string
	description string
	options     []Option[T]
	filterable  bool
	minLimit    int
	maxLimit    int
	height      int
	theme       *Theme

	selected  map[int]bool
	filtering bool
	query     string
	matches   []filter.Match
	cursor    int
	capacity  int
	width     int
	errMsg    string
}

// NewMultiSelect creates a multiple-choice prompt with the given title.
func NewMultiSelect[T any](title string) *MultiSelect[T] {
	return &MultiSelect[T]{
		title:    title,
		theme:    defaultTheme(),
		selected: map[int]bool{},
	}
}

// Description sets the description shown after the title.
func (ms *MultiSelect[T]) Description(d string) *MultiSelect[T] {
	ms.description = d
	return ms
}

// Options sets the choices. Options marked selected start toggled on.
func (ms *MultiSelect[T]) Options(opts ...Option[T]) *MultiSelect[T] {
	ms.options = opts
	for i, o := range opts {
		if o.Selected {
			ms.selected[i] = true
		}
	}
	return ms
}

// Filterable enables the '/' fuzzy filter.
func (ms *MultiSelect[T]) Filterable(on bool) *MultiSelect[T] {
	ms.filterable = on
	return ms
}

// Min requires at least n selections to submit.
func (ms *MultiSelect[T]) Min(n int) *MultiSelect[T] {
	ms.minLimit = n
	return ms
}

// Max allows at most n selections. Toggling past the limit is a no-op.
func (ms *MultiSelect[T]) Max(n int) *MultiSelect[T] {
	ms.maxLimit = n
	return ms
}

// Height caps the frame height in rows. Zero means use the terminal
// height.
func (ms *MultiSelect[T]) Height(h int) *MultiSelect[T] {
	ms.height = h
	return ms
}

// Theme sets the theme.
func (ms *MultiSelect[T]) Theme(t *Theme) *MultiSelect[T] {
	ms.theme = t
	return ms
}

// Run displays the prompt and blocks until a valid set of options is
// submitted or the prompt is cancelled.
func (ms *MultiSelect[T]) Run() ([]T, error) {
	v, out, err := ms.run(false)
	if err != nil {
		return nil, err
	}
	if out == outcomeCancelled {
		return nil, ErrCancelled
	}
	return v, nil
}

func (ms *MultiSelect[T]) runStep(allowBack bool) (any, outcome, error) {
	v, out, err := ms.run(allowBack)
	return v, out, err
}

func (ms *MultiSelect[T]) run(allowBack bool) ([]T, outcome, error) {
	if err := ms.check(); err != nil {
		return nil, outcomePending, err
	}
	sess, err := openSession()
	if err != nil {
		return nil, outcomePending, err
	}
	defer sess.Close()
	ms.errMsg = ""
	if !sess.Interactive() {
		v, err := ms.runFallback(sess)
		if err != nil {
			return nil, outcomePending, err
		}
		return v, outcomeSubmitted, nil
	}
	w, h := sess.Size()
	ms.width = w
	if ms.height > 0 && ms.height < h {
		h = ms.height
	}
	ms.capacity = listCapacity(h)
	ms.refilter()
	trace.Event("prompt.start", map[string]string{"kind": "multiselect", "title": ms.title})
	out, err := runLoop(sess, ms, allowBack)
	if err != nil {
		return nil, out, err
	}
	if out != outcomeSubmitted {
		finish(sess, out, "")
		trace.Event("prompt.cancel", ms.title)
		return nil, out, nil
	}
	values, labels := ms.chosen()
	finish(sess, out, ms.successView(labels))
	trace.Event("prompt.submit", map[string]any{"title": ms.title, "labels": labels})
	return values, out, nil
}

func (ms *MultiSelect[T]) check() error {
	if len(ms.options) == 0 {
		return fmt.Errorf("%w: multiselect %q has no options", ErrInvalidConfiguration, ms.title)
	}
	if ms.maxLimit > 0 && ms.minLimit > ms.maxLimit {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidConfiguration, ms.minLimit, ms.maxLimit)
	}
	if ms.maxLimit > 0 && len(ms.selected) > ms.maxLimit {
		return fmt.Errorf("%w: %d options preselected, max is %d", ErrInvalidConfiguration, len(ms.selected), ms.maxLimit)
	}
	return nil
}

func (ms *MultiSelect[T]) chosen() ([]T, []string) {
	var values []T
	var labels []string
	for i, o := range ms.options {
		if ms.selected[i] {
			values = append(values, o.Value)
			labels = append(labels, o.Label)
		}
	}
	return values, labels
}

func (ms *MultiSelect[T]) runFallback(sess *terminal.Session) ([]T, error) {
	if err := sess.WritePrompt(ms.title, ms.description, ""); err != nil {
		return nil, err
	}
	for i, o := range ms.options {
		if err := sess.WriteLine(fmt.Sprintf("%d. %s", i+1, o.Label)); err != nil {
			return nil, err
		}
	}
	line, err := sess.ReadLine()
	if err != nil {
		return nil, err
	}
	var values []T
	count := 0
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		o, ok := matchOption(ms.options, part)
		if !ok {
			return nil, fmt.Errorf("no option matches %q", part)
		}
		values = append(values, o.Value)
		count++
	}
	if msg := ms.limitError(count); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}
	return values, nil
}

func (ms *MultiSelect[T]) limitError(count int) string {
	if ms.minLimit > 0 && count < ms.minLimit {
		return fmt.Sprintf("select at least %d options", ms.minLimit)
	}
	if ms.maxLimit > 0 && count > ms.maxLimit {
		return fmt.Sprintf("select at most %d options", ms.maxLimit)
	}
	return ""
}

func (ms *MultiSelect[T]) refilter() {
	labels := make([]string, len(ms.options))
	for i, o := range ms.options {
		labels[i] = o.Label
	}
	ms.matches = filter.Filter(ms.query, labels)
	ms.cursor = 0
}

func (ms *MultiSelect[T]) apply(ev keys.Event) outcome {
	ms.errMsg = ""
	if ms.filtering {
		return ms.applyFiltering(ev)
	}
	switch ev.Kind {
	case keys.Char:
		switch ev.Rune {
		case '/':
			if ms.filterable {
				ms.filtering = true
			}
		case ' ', 'x':
			ms.toggle()
		case 'a':
			ms.toggleAll()
		case 'j':
			ms.moveDown()
		case 'k':
			ms.moveUp()
		case 'h':
			ms.pageLeft()
		case 'l':
			ms.pageRight()
		}
	case keys.Up:
		ms.moveUp()
	case keys.Down:
		ms.moveDown()
	case keys.Left:
		ms.pageLeft()
	case keys.Right:
		ms.pageRight()
	case keys.Enter:
		ms.errMsg = ms.limitError(len(ms.selected))
		if ms.errMsg == "" {
			return outcomeSubmitted
		}
	case keys.Escape:
		if ms.query != "" {
			ms.query = ""
			ms.refilter()
			return outcomePending
		}
		return outcomeCancelled
	}
	return outcomePending
}

func (ms *MultiSelect[T]) applyFiltering(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		ms.query += string(ev.Rune)
		ms.refilter()
	case keys.Backspace:
		if ms.query != "" {
			r := []rune(ms.query)
			ms.query = string(r[:len(r)-1])
			ms.refilter()
		}
	case keys.Enter:
		ms.filtering = false
	case keys.Escape:
		ms.filtering = false
		ms.query = ""
		ms.refilter()
	case keys.Up:
		ms.moveUp()
	case keys.Down:
		ms.moveDown()
	}
	return outcomePending
}

func (ms *MultiSelect[T]) toggle() {
	if len(ms.matches) == 0 {
		return
	}
	idx := ms.matches[ms.cursor].Index
	if ms.selected[idx] {
		delete(ms.selected, idx)
		return
	}
	if ms.maxLimit > 0 && len(ms.selected) >= ms.maxLimit {
		return
	}
	ms.selected[idx] = true
}

// toggleAll selects every visible option, or deselects them all when
// they are already selected. Selecting is skipped when it would exceed
// the maximum.
func (ms *MultiSelect[T]) toggleAll() {
	allOn := len(ms.matches) > 0
	for _, m := range ms.matches {
		if !ms.selected[m.Index] {
			allOn = false
			break
		}
	}
	if allOn {
		for _, m := range ms.matches {
			delete(ms.selected, m.Index)
		}
		return
	}
	add := 0
	for _, m := range ms.matches {
		if !ms.selected[m.Index] {
			add++
		}
	}
	if ms.maxLimit > 0 && len(ms.selected)+add > ms.maxLimit {
		return
	}
	for _, m := range ms.matches {
		ms.selected[m.Index] = true
	}
}

func (ms *MultiSelect[T]) moveUp() {
	if len(ms.matches) == 0 {
		return
	}
	if ms.cursor == 0 {
		ms.cursor = len(ms.matches) - 1
		return
	}
	ms.cursor--
}

func (ms *MultiSelect[T]) moveDown() {
	if len(ms.matches) == 0 {
		return
	}
	if ms.cursor == len(ms.matches)-1 {
		ms.cursor = 0
		return
	}
	ms.cursor++
}

func (ms *MultiSelect[T]) pageLeft() {
	if ms.cursor >= ms.capacity {
		ms.cursor -= ms.capacity
	} else {
		ms.cursor = 0
	}
}

func (ms *MultiSelect[T]) pageRight() {
	if len(ms.matches) == 0 {
		return
	}
	if ms.cursor+ms.capacity < len(ms.matches) {
		ms.cursor += ms.capacity
	} else {
		ms.cursor = len(ms.matches) - 1
	}
}

func (ms *MultiSelect[T]) showCursor() bool { return false }

func (ms *MultiSelect[T]) view() string {
	t := ms.theme
	var b strings.Builder
	b.WriteString(t.Title.Render(ms.title) + "\n")
	if ms.description != "" {
		b.WriteString(t.Description.Render(ms.description) + "\n")
	}
	if ms.filtering {
		b.WriteString(t.InputPrompt.Render("/") + ms.query + t.InputCursor.Render(" ") + "\n")
	} else if ms.query != "" {
		b.WriteString(t.Description.Render("/"+ms.query) + "\n")
	}
	start := (ms.cursor / max(ms.capacity, 1)) * ms.capacity
	end := min(start+ms.capacity, len(ms.matches))
	for i := start; i < end; i++ {
		m := ms.matches[i]
		label := fitLabel(ms.options[m.Index].Label, ms.width-6)
		if i == ms.cursor {
			b.WriteString(t.Cursor.Render(">"))
		} else {
			b.WriteString(" ")
		}
		if ms.selected[m.Index] {
			b.WriteString(t.SelectedPrefixStyle.Render(t.SelectedPrefix) + " ")
			b.WriteString(highlightLabel(t, t.SelectedOption, label, m.Spans))
		} else {
			b.WriteString(t.UnselectedPrefixStyle.Render(t.UnselectedPrefix) + " ")
			b.WriteString(highlightLabel(t, t.UnselectedOption, label, m.Spans))
		}
		b.WriteString("\n")
	}
	if ms.errMsg != "" {
		b.WriteString("\n" + t.ErrorIndicator.Render("* "+ms.errMsg))
	}
	b.WriteString("\n" + ms.helpView() + "\n")
	return b.String()
}

func (ms *MultiSelect[T]) helpView() string {
	if ms.filtering {
		return renderHelp(ms.theme, []helpItem{{"enter", "apply"}, {"esc", "clear"}})
	}
	items := []helpItem{
		{"↑/↓", "navigate"},
		{"space", "toggle"},
		{"a", "toggle all"},
		{"enter", "confirm"},
	}
	if len(ms.matches) > ms.capacity {
		items = append(items, helpItem{"←/→", "page"})
	}
	if ms.filterable {
		items = append(items, helpItem{"/", "filter"})
	}
	return renderHelp(ms.theme, items)
}

func (ms *MultiSelect[T]) successView(labels []string) string {
	t := ms.theme
	return t.Title.Render(ms.title) + t.SelectedOption.Render(" "+strings.Join(labels, ", "))
}
