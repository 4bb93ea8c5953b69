package parley

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/parley-cli/parley/internal/filter"
)

type helpItem struct {
	key  string
	desc string
}

// renderHelp joins key hints into the footer line every prompt shows.
func renderHelp(t *Theme, items []helpItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString(t.HelpSep.Render(" • "))
		}
		b.WriteString(t.HelpKey.Render(it.key))
		b.WriteString(t.HelpDesc.Render(" " + it.desc))
	}
	return b.String()
}

// highlightLabel styles a label, switching to the match-highlight style
// for characters inside the given spans.
func highlightLabel(t *Theme, base lipgloss.Style, label string, spans []filter.Span) string {
	if len(spans) == 0 {
		return base.Render(label)
	}
	var b strings.Builder
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(t.MatchHighlight.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range label {
		m := filter.Highlighted(spans, i)
		if m != runMatched {
			flush()
			runMatched = m
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

// fitLabel truncates a label to the available width, appending an
// ellipsis when something was cut.
func fitLabel(label string, width int) string {
	if width <= 0 {
		return label
	}
	return truncate.StringWithTail(label, uint(width), "…")
}
