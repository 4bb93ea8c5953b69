// Package filter ranks option labels against a fuzzy query.
package filter

import "github.com/sahilm/fuzzy"

// Span is a half-open [Start, End) byte range of a label that matched
// the query, used for highlighting.
type Span struct {
	Start int
	End   int
}

// Match pairs a source label index with the highlight spans of the
// matched characters.
type Match struct {
	Index int
	Spans []Span
}

// Filter returns the labels matching query as a case-insensitive
// ordered subsequence, best match first. Scoring follows sahilm/fuzzy:
// adjacent and early matches outrank scattered ones, and equal scores
// keep the original label order. An empty query matches every label in
// original order with no spans.
func Filter(query string, labels []string) []Match {
	if query == "" {
		all := make([]Match, len(labels))
		for i := range labels {
			all[i] = Match{Index: i}
		}
		return all
	}
	ranked := fuzzy.Find(query, labels)
	matches := make([]Match, 0, len(ranked))
	for _, m := range ranked {
		matches = append(matches, Match{
			Index: m.Index,
			Spans: coalesce(m.Str, m.MatchedIndexes),
		})
	}
	return matches
}

// coalesce folds the per-character match offsets into contiguous byte
// spans covering whole characters.
func coalesce(label string, offsets []int) []Span {
	if len(offsets) == 0 {
		return nil
	}
	matched := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		matched[o] = true
	}
	var spans []Span
	prev := -1
	for i, r := range label {
		if !matched[i] {
			continue
		}
		end := i + runeLen(r)
		if prev >= 0 && spans[len(spans)-1].End == i {
			spans[len(spans)-1].End = end
		} else {
			spans = append(spans, Span{Start: i, End: end})
		}
		prev = i
	}
	return spans
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// Highlighted reports whether the byte offset falls inside any span.
func Highlighted(spans []Span, offset int) bool {
	for _, sp := range spans {
		if offset >= sp.Start && offset < sp.End {
			return true
		}
	}
	return false
}
