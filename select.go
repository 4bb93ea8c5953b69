package parley

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parley-cli/parley/internal/filter"
	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// Select prompts for exactly one option out of a list, with optional
// fuzzy filtering and pagination.
type Select[T any] struct {
	title       string
	description string
	options     []Option[T]
	filterable  bool
	height      int
	theme       *Theme

	filtering bool
	query     string
	matches   []filter.Match
	cursor    int
	capacity  int
	width     int
}

// NewSelect creates a single-choice prompt with the given title.
func NewSelect[T any](title string) *Select[T] {
	return &Select[T]{
		title:  title,
		theme:  defaultTheme(),
		height: 0,
	}
}

// Description sets the description shown after the title.
func (s *Select[T]) Description(d string) *Select[T] {
	s.description = d
	return s
}

// Options sets the choices.
func (s *Select[T]) Options(opts ...Option[T]) *Select[T] {
	s.options = opts
	return s
}

// Filterable enables the '/' fuzzy filter.
func (s *Select[T]) Filterable(on bool) *Select[T] {
	s.filterable = on
	return s
}

// Height caps the frame height in rows. Zero means use the terminal
// height.
func (s *Select[T]) Height(h int) *Select[T] {
	s.height = h
	return s
}

// Theme sets the theme.
func (s *Select[T]) Theme(t *Theme) *Select[T] {
	s.theme = t
	return s
}

// Run displays the prompt and blocks until an option is chosen or the
// prompt is cancelled.
func (s *Select[T]) Run() (T, error) {
	v, out, err := s.run(false)
	if err != nil {
		return v, err
	}
	if out == outcomeCancelled {
		var zero T
		return zero, ErrCancelled
	}
	return v, nil
}

func (s *Select[T]) runStep(allowBack bool) (any, outcome, error) {
	v, out, err := s.run(allowBack)
	return v, out, err
}

func (s *Select[T]) run(allowBack bool) (T, outcome, error) {
	var zero T
	if len(s.options) == 0 {
		return zero, outcomePending, fmt.Errorf("%w: select %q has no options", ErrInvalidConfiguration, s.title)
	}
	sess, err := openSession()
	if err != nil {
		return zero, outcomePending, err
	}
	defer sess.Close()
	if !sess.Interactive() {
		v, err := s.runFallback(sess)
		if err != nil {
			return zero, outcomePending, err
		}
		return v, outcomeSubmitted, nil
	}
	w, h := sess.Size()
	s.width = w
	if s.height > 0 && s.height < h {
		h = s.height
	}
	s.capacity = listCapacity(h)
	s.refilter()
	trace.Event("prompt.start", map[string]string{"kind": "select", "title": s.title})
	out, err := runLoop(sess, s, allowBack)
	if err != nil {
		return zero, out, err
	}
	if out != outcomeSubmitted {
		finish(sess, out, "")
		trace.Event("prompt.cancel", s.title)
		return zero, out, nil
	}
	chosen := s.options[s.matches[s.cursor].Index]
	finish(sess, out, s.successView(chosen.Label))
	trace.Event("prompt.submit", map[string]string{"title": s.title, "label": chosen.Label})
	return chosen.Value, out, nil
}

// listCapacity is how many options fit on one page, leaving room for
// the title, filter, and help rows. Terminals shorter than 8 rows are
// treated as 8 so at least a few options stay visible.
func listCapacity(height int) int {
	if height < 8 {
		height = 8
	}
	return height - 4
}

func (s *Select[T]) runFallback(sess *terminal.Session) (T, error) {
	var zero T
	if err := sess.WritePrompt(s.title, s.description, ""); err != nil {
		return zero, err
	}
	for i, o := range s.options {
		if err := sess.WriteLine(fmt.Sprintf("%d. %s", i+1, o.Label)); err != nil {
			return zero, err
		}
	}
	line, err := sess.ReadLine()
	if err != nil {
		return zero, err
	}
	if o, ok := matchOption(s.options, line); ok {
		return o.Value, nil
	}
	return zero, fmt.Errorf("no option matches %q", line)
}

// matchOption resolves a fallback answer: by label, by the value's
// string form, then by 1-based index.
func matchOption[T any](options []Option[T], line string) (Option[T], bool) {
	for _, o := range options {
		if o.Label == line {
			return o, true
		}
	}
	for _, o := range options {
		if fmt.Sprint(o.Value) == line {
			return o, true
		}
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	var zero Option[T]
	return zero, false
}

func (s *Select[T]) refilter() {
	labels := make([]string, len(s.options))
	for i, o := range s.options {
		labels[i] = o.Label
	}
	s.matches = filter.Filter(s.query, labels)
	s.cursor = 0
}

func (s *Select[T]) apply(ev keys.Event) outcome {
	if s.filtering {
		return s.applyFiltering(ev)
	}
	switch ev.Kind {
	case keys.Char:
		switch ev.Rune {
		case '/':
			if s.filterable {
				s.filtering = true
			}
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case 'h':
			s.pageLeft()
		case 'l':
			s.pageRight()
		}
	case keys.Up:
		s.moveUp()
	case keys.Down:
		s.moveDown()
	case keys.Left:
		s.pageLeft()
	case keys.Right:
		s.pageRight()
	case keys.Enter:
		if len(s.matches) > 0 {
			return outcomeSubmitted
		}
	case keys.Escape:
		if s.query != "" {
			s.query = ""
			s.refilter()
			return outcomePending
		}
		return outcomeCancelled
	}
	return outcomePending
}

func (s *Select[T]) applyFiltering(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		s.query += string(ev.Rune)
		s.refilter()
	case keys.Backspace:
		if s.query != "" {
			r := []rune(s.query)
			s.query = string(r[:len(r)-1])
			s.refilter()
		}
	case keys.Enter:
		s.filtering = false
	case keys.Escape:
		s.filtering = false
		s.query = ""
		s.refilter()
	case keys.Up:
		s.moveUp()
	case keys.Down:
		s.moveDown()
	}
	return outcomePending
}

func (s *Select[T]) moveUp() {
	if len(s.matches) == 0 {
		return
	}
	if s.cursor == 0 {
		s.cursor = len(s.matches) - 1
		return
	}
	s.cursor--
}

func (s *Select[T]) moveDown() {
	if len(s.matches) == 0 {
		return
	}
	if s.cursor == len(s.matches)-1 {
		s.cursor = 0
		return
	}
	s.cursor++
}

func (s *Select[T]) pageLeft() {
	if s.cursor >= s.capacity {
		s.cursor -= s.capacity
	} else {
		s.cursor = 0
	}
}

func (s *Select[T]) pageRight() {
	if len(s.matches) == 0 {
		return
	}
	if s.cursor+s.capacity < len(s.matches) {
		s.cursor += s.capacity
	} else {
		s.cursor = len(s.matches) - 1
	}
}

func (s *Select[T]) showCursor() bool { return false }

func (s *Select[T]) view() string {
	t := s.theme
	var b strings.Builder
	b.WriteString(t.Title.Render(s.title) + "\n")
	if s.description != "" {
		b.WriteString(t.Description.Render(s.description) + "\n")
	}
	if s.filtering {
		b.WriteString(t.InputPrompt.Render("/") + s.query + t.InputCursor.Render(" ") + "\n")
	} else if s.query != "" {
		b.WriteString(t.Description.Render("/"+s.query) + "\n")
	}
	start := (s.cursor / max(s.capacity, 1)) * s.capacity
	end := min(start+s.capacity, len(s.matches))
	for i := start; i < end; i++ {
		m := s.matches[i]
		label := fitLabel(s.options[m.Index].Label, s.width-4)
		if i == s.cursor {
			b.WriteString(t.Cursor.Render("> "))
			b.WriteString(highlightLabel(t, t.SelectedOption, label, m.Spans))
		} else {
			b.WriteString("  ")
			b.WriteString(highlightLabel(t, t.UnselectedOption, label, m.Spans))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + s.helpView() + "\n")
	return b.String()
}

func (s *Select[T]) helpView() string {
	items := []helpItem{
		{"↑/↓", "navigate"},
		{"enter", "select"},
	}
	if len(s.matches) > s.capacity {
		items = append(items, helpItem{"←/→", "page"})
	}
	if s.filterable {
		if s.filtering {
			items = []helpItem{{"enter", "apply"}, {"esc", "clear"}}
		} else {
			items = append(items, helpItem{"/", "filter"})
		}
	}
	return renderHelp(s.theme, items)
}

func (s *Select[T]) successView(label string) string {
	t := s.theme
	return t.Title.Render(s.title) + t.SelectedOption.Render(" "+label)
}
