package parley

import (
	"errors"
	"testing"

	"github.com/parley-cli/parley/internal/keys"
)

func TestConfirmTogglesFocus(t *testing.T) {
	c := NewConfirm("Proceed?").Theme(ThemeBase())
	if !c.choice {
		t.Fatalf("expected affirmative focused by default")
	}
	press(c, key(keys.Right))
	if c.choice {
		t.Fatalf("expected Right to move focus to negative")
	}
	press(c, key(keys.Left))
	if !c.choice {
		t.Fatalf("expected Left to move focus back")
	}
	press(c, key(keys.Tab))
	if c.choice {
		t.Fatalf("expected Tab to toggle focus")
	}
}

func TestConfirmShortcutsSubmitImmediately(t *testing.T) {
	c := NewConfirm("Proceed?").Theme(ThemeBase())
	out := press(c, chars("n")...)
	if out != outcomeSubmitted || c.choice {
		t.Fatalf("expected n to submit the negative, got %v choice=%v", out, c.choice)
	}

	c = NewConfirm("Proceed?").Default(false).Theme(ThemeBase())
	out = press(c, chars("y")...)
	if out != outcomeSubmitted || !c.choice {
		t.Fatalf("expected y to submit the affirmative, got %v choice=%v", out, c.choice)
	}
}

func TestConfirmEnterSubmitsFocused(t *testing.T) {
	c := NewConfirm("Proceed?").Theme(ThemeBase())
	press(c, key(keys.Right))
	out := press(c, key(keys.Enter))
	if out != outcomeSubmitted || c.choice {
		t.Fatalf("expected Enter to submit the focused negative")
	}
}

func TestConfirmEmptyLabelIsInvalid(t *testing.T) {
	scriptSessions(t)
	_, err := NewConfirm("Proceed?").Affirmative("").Run()
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestConfirmFallbackAnswers(t *testing.T) {
	cases := []struct {
		answer string
		def    bool
		want   bool
	}{
		{"yes", false, true},
		{"y", false, true},
		{"No", true, false},
		{"n", true, false},
		{"Yes", false, true},
		{"", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		scriptSessions(t, tc.answer)
		v, err := NewConfirm("Proceed?").Default(tc.def).Run()
		if err != nil {
			t.Fatalf("answer %q: %v", tc.answer, err)
		}
		if v != tc.want {
			t.Fatalf("answer %q default %v: expected %v, got %v", tc.answer, tc.def, tc.want, v)
		}
	}
}

func TestConfirmFallbackRejectsUnknownAnswer(t *testing.T) {
	scriptSessions(t, "maybe")
	_, err := NewConfirm("Proceed?").Run()
	if err == nil {
		t.Fatalf("expected an error for an unmatched answer")
	}
}

func TestConfirmCustomLabelsInFallback(t *testing.T) {
	scriptSessions(t, "deploy")
	v, err := NewConfirm("Ship it?").Affirmative("Deploy").Negative("Abort").Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !v {
		t.Fatalf("expected the affirmative label to match case-insensitively")
	}
}
