package parley

import (
	"errors"
	"strings"
	"testing"
)

func TestSpinReturnsWorkerValue(t *testing.T) {
	sc := scriptSessions(t, "")
	v, err := Spin(NewSpinner("Fetching releases"), func(h *SpinnerHandle) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
	if !strings.Contains(sc.output(), "Fetching releases") {
		t.Fatalf("expected the title in fallback output, got %q", sc.output())
	}
}

func TestSpinPropagatesWorkerError(t *testing.T) {
	scriptSessions(t, "")
	boom := errors.New("boom")
	_, err := Spin(NewSpinner("Working"), func(h *SpinnerHandle) (struct{}, error) {
		return struct{}{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected worker error, got %v", err)
	}
}

func TestSpinnerRunWrapsClosure(t *testing.T) {
	scriptSessions(t, "")
	ran := false
	err := NewSpinner("Working").Run(func(h *SpinnerHandle) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran {
		t.Fatalf("expected the worker to run")
	}
}

func TestSpinnerHandleTitleUpdates(t *testing.T) {
	h := &SpinnerHandle{title: "one"}
	h.SetTitle("two")
	if h.currentTitle() != "two" {
		t.Fatalf("expected updated title, got %q", h.currentTitle())
	}
}

func TestSpinnerStylesAreComplete(t *testing.T) {
	styles := []SpinnerStyle{
		SpinnerDots, SpinnerJump, SpinnerLine, SpinnerPoints,
		SpinnerMeter, SpinnerMiniDots, SpinnerEllipsis,
	}
	for i, st := range styles {
		if len(st.Frames) == 0 {
			t.Fatalf("style %d has no frames", i)
		}
		if st.Fps <= 0 {
			t.Fatalf("style %d has no frame interval", i)
		}
	}
}

func TestSpinnerViewCyclesFrames(t *testing.T) {
	sp := NewSpinner("Working").Style(SpinnerLine).Theme(ThemeBase())
	first := sp.view()
	sp.frame = 1
	second := sp.view()
	if first == second {
		t.Fatalf("expected distinct frames, got %q twice", first)
	}
}
