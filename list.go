package parley

import (
	"strings"

	"github.com/parley-cli/parley/internal/filter"
	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// List displays a read-only scrollable list of items. It carries no
// answer; Run returns once the user dismisses it.
type List struct {
	title       string
	description string
	items       []string
	filterable  bool
	height      int
	theme       *Theme

	filtering bool
	query     string
	matches   []filter.Match
	offset    int
	capacity  int
	width     int
}

// NewList creates a list browser with the given title.
func NewList(title string) *List {
	return &List{
		title: title,
		theme: defaultTheme(),
	}
}

// Description sets the description shown after the title.
func (l *List) Description(d string) *List {
	l.description = d
	return l
}

// Items sets the lines to display.
func (l *List) Items(items ...string) *List {
	l.items = items
	return l
}

// Filterable enables the '/' fuzzy filter.
func (l *List) Filterable(on bool) *List {
	l.filterable = on
	return l
}

// Height caps the frame height in rows. Zero means use the terminal
// height.
func (l *List) Height(h int) *List {
	l.height = h
	return l
}

// Theme sets the theme.
func (l *List) Theme(t *Theme) *List {
	l.theme = t
	return l
}

// Run displays the list and blocks until the user dismisses it with
// Enter, or cancels.
func (l *List) Run() error {
	_, out, err := l.run(false)
	if err != nil {
		return err
	}
	if out == outcomeCancelled {
		return ErrCancelled
	}
	return nil
}

func (l *List) runStep(allowBack bool) (any, outcome, error) {
	_, out, err := l.run(allowBack)
	return nil, out, err
}

func (l *List) run(allowBack bool) (any, outcome, error) {
	sess, err := openSession()
	if err != nil {
		return nil, outcomePending, err
	}
	defer sess.Close()
	if !sess.Interactive() {
		return nil, outcomeSubmitted, l.runFallback(sess)
	}
	w, h := sess.Size()
	l.width = w
	if l.height > 0 && l.height < h {
		h = l.height
	}
	l.capacity = listPageSize(h)
	l.refilter()
	trace.Event("prompt.start", map[string]string{"kind": "list", "title": l.title})
	out, err := runLoop(sess, l, allowBack)
	if err != nil {
		return nil, out, err
	}
	if out != outcomeSubmitted {
		finish(sess, out, "")
		trace.Event("prompt.cancel", l.title)
		return nil, out, nil
	}
	finish(sess, out, l.theme.Title.Render(l.title))
	trace.Event("prompt.submit", l.title)
	return nil, out, nil
}

// listPageSize leaves an extra row for the page indicator compared to
// the selectable lists.
func listPageSize(height int) int {
	if height < 8 {
		height = 8
	}
	return height - 5
}

func (l *List) runFallback(sess *terminal.Session) error {
	if err := sess.WritePrompt(l.title, l.description, ""); err != nil {
		return err
	}
	for _, item := range l.items {
		if err := sess.WriteLine(item); err != nil {
			return err
		}
	}
	return nil
}

func (l *List) refilter() {
	l.matches = filter.Filter(l.query, l.items)
	l.offset = 0
}

func (l *List) pages() int {
	if l.capacity <= 0 || len(l.matches) == 0 {
		return 1
	}
	return (len(l.matches) + l.capacity - 1) / l.capacity
}

func (l *List) apply(ev keys.Event) outcome {
	if l.filtering {
		return l.applyFiltering(ev)
	}
	switch ev.Kind {
	case keys.Char:
		switch ev.Rune {
		case '/':
			if l.filterable {
				l.filtering = true
			}
		case 'j':
			l.scroll(1)
		case 'k':
			l.scroll(-1)
		case 'h':
			l.scroll(-l.capacity)
		case 'l':
			l.scroll(l.capacity)
		}
	case keys.Up:
		l.scroll(-1)
	case keys.Down:
		l.scroll(1)
	case keys.Left:
		l.scroll(-l.capacity)
	case keys.Right:
		l.scroll(l.capacity)
	case keys.Enter:
		return outcomeSubmitted
	case keys.Escape:
		if l.query != "" {
			l.query = ""
			l.refilter()
			return outcomePending
		}
		return outcomeCancelled
	}
	return outcomePending
}

func (l *List) applyFiltering(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		l.query += string(ev.Rune)
		l.refilter()
	case keys.Backspace:
		if l.query != "" {
			r := []rune(l.query)
			l.query = string(r[:len(r)-1])
			l.refilter()
		}
	case keys.Enter:
		l.filtering = false
	case keys.Escape:
		l.filtering = false
		l.query = ""
		l.refilter()
	case keys.Up:
		l.scroll(-1)
	case keys.Down:
		l.scroll(1)
	}
	return outcomePending
}

func (l *List) scroll(delta int) {
	maxOffset := len(l.matches) - l.capacity
	if maxOffset < 0 {
		maxOffset = 0
	}
	l.offset += delta
	if l.offset < 0 {
		l.offset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
}

func (l *List) showCursor() bool { return false }

func (l *List) view() string {
	t := l.theme
	var b strings.Builder
	b.WriteString(t.Title.Render(l.title) + "\n")
	if l.description != "" {
		b.WriteString(t.Description.Render(l.description) + "\n")
	}
	if l.filtering {
		b.WriteString(t.InputPrompt.Render("/") + l.query + t.InputCursor.Render(" ") + "\n")
	} else if l.query != "" {
		b.WriteString(t.Description.Render("/"+l.query) + "\n")
	}
	end := min(l.offset+l.capacity, len(l.matches))
	for i := l.offset; i < end; i++ {
		m := l.matches[i]
		label := fitLabel(l.items[m.Index], l.width-2)
		b.WriteString("  " + highlightLabel(t, t.UnselectedOption, label, m.Spans) + "\n")
	}
	if pages := l.pages(); pages > 1 {
		cur := l.offset/max(l.capacity, 1) + 1
		b.WriteString(t.Description.Render(strings.Repeat("•", cur)+strings.Repeat("◦", pages-cur)) + "\n")
	}
	items := []helpItem{
		{"↑/↓", "scroll"},
		{"enter", "close"},
	}
	if l.filterable && !l.filtering {
		items = append(items, helpItem{"/", "filter"})
	}
	if l.filtering {
		items = []helpItem{{"enter", "apply"}, {"esc", "clear"}}
	}
	b.WriteString("\n" + renderHelp(t, items) + "\n")
	return b.String()
}
