package keys

import (
	"strings"
	"testing"
)

func decodeAll(t *testing.T, input string) []Event {
	t.Helper()
	d := NewDecoder(strings.NewReader(input))
	var events []Event
	for {
		ev, err := d.Next()
		if err != nil {
			return events
		}
		events = append(events, ev)
	}
}

func TestDecoderPlainCharacters(t *testing.T) {
	events := decodeAll(t, "ab")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for i, want := range []rune{'a', 'b'} {
		if events[i].Kind != Char || events[i].Rune != want {
			t.Fatalf("event %d: expected Char %q, got %v %q", i, want, events[i].Kind, events[i].Rune)
		}
	}
}

func TestDecoderMultiByteRune(t *testing.T) {
	events := decodeAll(t, "é世")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Rune != 'é' || events[1].Rune != '世' {
		t.Fatalf("unexpected runes %q %q", events[0].Rune, events[1].Rune)
	}
}

func TestDecoderControlKeys(t *testing.T) {
	cases := []struct {
		input string
		want  Kind
	}{
		{"\r", Enter},
		{"\n", Enter},
		{"\t", Tab},
		{"\x7f", Backspace},
		{"\x08", Backspace},
		{"\x02", CtrlB},
		{"\x03", CtrlC},
		{"\x15", CtrlU},
		{"\x17", CtrlW},
	}
	for _, tc := range cases {
		events := decodeAll(t, tc.input)
		if len(events) != 1 || events[0].Kind != tc.want {
			t.Fatalf("input %q: expected %v, got %v", tc.input, tc.want, events)
		}
	}
}

func TestDecoderArrowSequences(t *testing.T) {
	cases := []struct {
		input string
		want  Kind
	}{
		{"\x1b[A", Up},
		{"\x1b[B", Down},
		{"\x1b[C", Right},
		{"\x1b[D", Left},
		{"\x1bOA", Up},
		{"\x1bOB", Down},
		{"\x1b[3~", Delete},
	}
	for _, tc := range cases {
		events := decodeAll(t, tc.input)
		if len(events) != 1 || events[0].Kind != tc.want {
			t.Fatalf("input %q: expected %v, got %v", tc.input, tc.want, events)
		}
	}
}

func TestDecoderLoneEscape(t *testing.T) {
	events := decodeAll(t, "\x1b")
	if len(events) != 1 || events[0].Kind != Escape {
		t.Fatalf("expected a single Escape, got %v", events)
	}
}

func TestDecoderEscapeThenText(t *testing.T) {
	events := decodeAll(t, "\x1b[Ax")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != Up {
		t.Fatalf("expected Up first, got %v", events[0].Kind)
	}
	if events[1].Kind != Char || events[1].Rune != 'x' {
		t.Fatalf("expected Char x second, got %v", events[1])
	}
}

func TestDecoderInvalidBytesDoNotStall(t *testing.T) {
	events := decodeAll(t, "\xffa")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != Unknown {
		t.Fatalf("expected Unknown for invalid byte, got %v", events[0].Kind)
	}
	if events[1].Kind != Char || events[1].Rune != 'a' {
		t.Fatalf("expected Char a after invalid byte, got %v", events[1])
	}
}
