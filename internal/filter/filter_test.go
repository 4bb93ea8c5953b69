package filter

import "testing"

func TestEmptyQueryKeepsOriginalOrder(t *testing.T) {
	labels := []string{"banana", "apple", "cherry"}
	matches := Filter("", labels)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Index != i {
			t.Fatalf("match %d: expected index %d, got %d", i, i, m.Index)
		}
		if len(m.Spans) != 0 {
			t.Fatalf("match %d: expected no spans for empty query, got %v", i, m.Spans)
		}
	}
}

func TestSubsequenceMatching(t *testing.T) {
	labels := []string{"new-window", "kill-window", "rename-session"}
	matches := Filter("nwin", labels)
	if len(matches) == 0 {
		t.Fatalf("expected matches for subsequence query")
	}
	for _, m := range matches {
		if m.Index == 2 {
			t.Fatalf("rename-session should not match %q", "nwin")
		}
	}
	if matches[0].Index != 0 {
		t.Fatalf("expected new-window ranked first, got index %d", matches[0].Index)
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	matches := Filter("RW", []string{"rename-window"})
	if len(matches) != 1 {
		t.Fatalf("expected case-insensitive match, got %d matches", len(matches))
	}
}

func TestNoMatches(t *testing.T) {
	matches := Filter("zzz", []string{"alpha", "beta"})
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %v", matches)
	}
}

func TestSpansCoverMatchedBytes(t *testing.T) {
	matches := Filter("abc", []string{"abc"})
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	spans := matches[0].Spans
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != 3 {
		t.Fatalf("expected a single [0,3) span, got %v", spans)
	}
}

func TestAdjacentOffsetsCoalesce(t *testing.T) {
	matches := Filter("ac", []string{"abc"})
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	spans := matches[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected two spans for non-adjacent matches, got %v", spans)
	}
	if spans[0] != (Span{Start: 0, End: 1}) || spans[1] != (Span{Start: 2, End: 3}) {
		t.Fatalf("unexpected spans %v", spans)
	}
}

func TestHighlighted(t *testing.T) {
	spans := []Span{{Start: 2, End: 4}}
	cases := []struct {
		offset int
		want   bool
	}{
		{0, false},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, tc := range cases {
		if got := Highlighted(spans, tc.offset); got != tc.want {
			t.Fatalf("offset %d: expected %v, got %v", tc.offset, tc.want, got)
		}
	}
}
