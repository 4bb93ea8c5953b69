package parley

import (
	"bytes"
	"strings"
	"testing"

	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
)

// scriptSessions makes each prompt in the test open a line-oriented
// session answering with the next scripted line. Output is captured per
// session.
type scriptedIO struct {
	outs []*bytes.Buffer
}

func (sc *scriptedIO) output() string {
	var b strings.Builder
	for _, out := range sc.outs {
		b.WriteString(out.String())
	}
	return b.String()
}

func scriptSessions(t *testing.T, answers ...string) *scriptedIO {
	t.Helper()
	sc := &scriptedIO{}
	idx := 0
	prev := openSession
	openSession = func() (*terminal.Session, error) {
		if idx >= len(answers) {
			t.Fatalf("prompt opened session %d but only %d answers scripted", idx+1, len(answers))
		}
		out := &bytes.Buffer{}
		sc.outs = append(sc.outs, out)
		s := terminal.NewNonInteractive(strings.NewReader(answers[idx]+"\n"), out)
		idx++
		return s, nil
	}
	t.Cleanup(func() { openSession = prev })
	return sc
}

// virtualSessions makes each prompt open an interactive-mode session
// fed by the next scripted key bytes, so the paint-decode-apply loop
// runs the same way it does on a real terminal.
func virtualSessions(t *testing.T, inputs ...string) *scriptedIO {
	t.Helper()
	sc := &scriptedIO{}
	idx := 0
	prev := openSession
	openSession = func() (*terminal.Session, error) {
		if idx >= len(inputs) {
			t.Fatalf("prompt opened session %d but only %d inputs scripted", idx+1, len(inputs))
		}
		out := &bytes.Buffer{}
		sc.outs = append(sc.outs, out)
		s := terminal.NewVirtual(strings.NewReader(inputs[idx]), out)
		idx++
		return s, nil
	}
	t.Cleanup(func() { openSession = prev })
	return sc
}

// press feeds key events to a machine and returns the last outcome.
func press(m machine, evs ...keys.Event) outcome {
	out := outcomePending
	for _, ev := range evs {
		out = m.apply(ev)
	}
	return out
}

func chars(s string) []keys.Event {
	var evs []keys.Event
	for _, r := range s {
		evs = append(evs, keys.Event{Kind: keys.Char, Rune: r})
	}
	return evs
}

func key(k keys.Kind) keys.Event {
	return keys.Event{Kind: k}
}

// containsStripped checks for a substring after removing any styling
// sequences, so assertions hold regardless of the colour profile the
// test environment negotiates.
func containsStripped(s, substr string) bool {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return strings.Contains(b.String(), substr)
}
