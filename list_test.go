package parley

import (
	"fmt"
	"strings"
	"testing"

	"github.com/parley-cli/parley/internal/keys"
)

func changelogList() *List {
	items := make([]string, 12)
	for i := range items {
		items[i] = fmt.Sprintf("entry %02d", i+1)
	}
	l := NewList("Changelog").Items(items...).Filterable(true).Theme(ThemeBase())
	l.capacity = 4
	l.width = 80
	l.refilter()
	return l
}

func TestListScrollClamps(t *testing.T) {
	l := changelogList()
	press(l, key(keys.Up))
	if l.offset != 0 {
		t.Fatalf("expected scroll to clamp at the top, got offset %d", l.offset)
	}
	for i := 0; i < 20; i++ {
		press(l, key(keys.Down))
	}
	if l.offset != 8 {
		t.Fatalf("expected scroll to clamp at the bottom, got offset %d", l.offset)
	}
}

func TestListPageNavigation(t *testing.T) {
	l := changelogList()
	press(l, key(keys.Right))
	if l.offset != 4 {
		t.Fatalf("expected Right to advance a page, got offset %d", l.offset)
	}
	press(l, key(keys.Left))
	if l.offset != 0 {
		t.Fatalf("expected Left to go back a page, got offset %d", l.offset)
	}
	if l.pages() != 3 {
		t.Fatalf("expected 3 pages, got %d", l.pages())
	}
}

func TestListEnterDismisses(t *testing.T) {
	l := changelogList()
	out := press(l, key(keys.Enter))
	if out != outcomeSubmitted {
		t.Fatalf("expected Enter to dismiss the list, got %v", out)
	}
}

func TestListEscapeCancels(t *testing.T) {
	l := changelogList()
	out := press(l, key(keys.Escape))
	if out != outcomeCancelled {
		t.Fatalf("expected Escape to cancel, got %v", out)
	}
}

func TestListFilterNarrowsItems(t *testing.T) {
	l := changelogList()
	press(l, chars("/02")...)
	if len(l.matches) == len(l.items) {
		t.Fatalf("expected the filter to narrow items")
	}
	found := false
	for _, m := range l.matches {
		if l.items[m.Index] == "entry 02" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected entry 02 to match, got %v", l.matches)
	}
}

func TestListViewShowsWindowAndPager(t *testing.T) {
	l := changelogList()
	press(l, key(keys.Right))
	view := l.view()
	if !containsStripped(view, "entry 05") {
		t.Fatalf("expected second page content in view:\n%s", view)
	}
	if containsStripped(view, "entry 01") {
		t.Fatalf("expected first page content scrolled away:\n%s", view)
	}
}

func TestListFallbackPrintsItems(t *testing.T) {
	sc := scriptSessions(t, "")
	err := NewList("Changelog").Items("first", "second").Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	out := sc.output()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("expected items in fallback output, got %q", out)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("fallback output must not contain escape sequences, got %q", out)
	}
}
