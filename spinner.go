package parley

import (
	"strings"
	"sync"
	"time"

	"github.com/parley-cli/parley/internal/trace"
)

// SpinnerStyle is an animation: a frame cycle and the interval between
// frames.
type SpinnerStyle struct {
	Frames []string
	Fps    time.Duration
}

var (
	SpinnerDots     = SpinnerStyle{Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}, Fps: time.Second / 10}
	SpinnerJump     = SpinnerStyle{Frames: []string{"⢄", "⢂", "⢁", "⡁", "⡈", "⡐", "⡠"}, Fps: time.Second / 10}
	SpinnerLine     = SpinnerStyle{Frames: []string{"-", "\\", "|", "/"}, Fps: time.Second / 10}
	SpinnerPoints   = SpinnerStyle{Frames: []string{"∙∙∙", "●∙∙", "∙●∙", "∙∙●"}, Fps: time.Second / 7}
	SpinnerMeter    = SpinnerStyle{Frames: []string{"▱▱▱", "▰▱▱", "▰▰▱", "▰▰▰", "▰▰▱", "▰▱▱", "▱▱▱"}, Fps: time.Second / 7}
	SpinnerMiniDots = SpinnerStyle{Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, Fps: time.Second / 12}
	SpinnerEllipsis = SpinnerStyle{Frames: []string{"", ".", "..", "..."}, Fps: time.Second / 3}
)

// SpinnerHandle is passed to the spinner's worker so it can retitle the
// spinner while running. It is safe for concurrent use.
type SpinnerHandle struct {
	mu    sync.Mutex
	title string
}

// SetTitle replaces the spinner title shown next to the animation.
func (h *SpinnerHandle) SetTitle(title string) {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()
}

func (h *SpinnerHandle) currentTitle() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Spinner shows an animation while a worker function runs in a
// goroutine.
type Spinner struct {
	title string
	style SpinnerStyle
	theme *Theme
	frame int
}

// NewSpinner creates a spinner with the given title and the dots
// animation.
func NewSpinner(title string) *Spinner {
	return &Spinner{
		title: title,
		style: SpinnerDots,
		theme: defaultTheme(),
	}
}

// Style sets the animation.
func (sp *Spinner) Style(style SpinnerStyle) *Spinner {
	sp.style = style
	return sp
}

// Theme sets the theme.
func (sp *Spinner) Theme(t *Theme) *Spinner {
	sp.theme = t
	return sp
}

// Run animates the spinner while fn runs in its own goroutine and
// returns fn's error once it finishes. Without a terminal the title is
// printed once and fn runs inline.
func (sp *Spinner) Run(fn func(*SpinnerHandle) error) error {
	_, err := spin(sp, func(h *SpinnerHandle) (struct{}, error) {
		return struct{}{}, fn(h)
	})
	return err
}

// Spin animates sp while fn runs in its own goroutine and returns fn's
// value and error once it finishes.
func Spin[T any](sp *Spinner, fn func(*SpinnerHandle) (T, error)) (T, error) {
	return spin(sp, fn)
}

type spinResult[T any] struct {
	value T
	err   error
}

func spin[T any](sp *Spinner, fn func(*SpinnerHandle) (T, error)) (T, error) {
	var zero T
	handle := &SpinnerHandle{title: sp.title}
	sess, err := openSession()
	if err != nil {
		return zero, err
	}
	defer sess.Close()
	if !sess.Interactive() {
		if err := sess.WriteLine(sp.title); err != nil {
			return zero, err
		}
		return fn(handle)
	}
	trace.Event("spinner.start", sp.title)

	done := make(chan spinResult[T], 1)
	go func() {
		v, err := fn(handle)
		done <- spinResult[T]{value: v, err: err}
	}()

	ticker := time.NewTicker(sp.style.Fps)
	defer ticker.Stop()
	for {
		sp.title = handle.currentTitle()
		if err := sess.Paint(sp.view()); err != nil {
			return zero, err
		}
		select {
		case res := <-done:
			sess.ClearFrame()
			sess.ShowCursor()
			trace.Event("spinner.done", sp.title)
			return res.value, res.err
		case <-ticker.C:
			sp.frame = (sp.frame + 1) % len(sp.style.Frames)
		}
	}
}

func (sp *Spinner) view() string {
	t := sp.theme
	frame := sp.style.Frames[sp.frame]
	var b strings.Builder
	b.WriteString(t.Cursor.Render(frame))
	if frame != "" {
		b.WriteString(" ")
	}
	b.WriteString(t.Title.Render(sp.title) + "\n")
	return b.String()
}
