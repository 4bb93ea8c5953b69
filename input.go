package parley

import (
	"sort"
	"strings"
	"unicode"

	rank "github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/parley-cli/parley/internal/keys"
	"github.com/parley-cli/parley/internal/terminal"
	"github.com/parley-cli/parley/internal/trace"
)

// Input prompts for a single line of text. The buffer is addressed by
// code points, so editing never splits a multi-byte character.
type Input struct {
	title         string
	description   string
	prompt        string
	placeholder   string
	password      bool
	inline        bool
	suggestions   []string
	autocomplete  func(string) []string
	validate      Validator
	validateOnKey bool
	theme         *Theme

	buf    []rune
	cursor int
	errMsg string
	ghost  string
}

// NewInput creates a text input with the given title.
func NewInput(title string) *Input {
	return &Input{
		title:  title,
		prompt: "> ",
		theme:  defaultTheme(),
	}
}

// Description sets the description shown after the title.
func (in *Input) Description(d string) *Input {
	in.description = d
	return in
}

// Prompt sets the prompt string shown before the input, "> " by
// default.
func (in *Input) Prompt(p string) *Input {
	in.prompt = p
	return in
}

// Placeholder sets the hint text shown while the buffer is empty.
func (in *Input) Placeholder(p string) *Input {
	in.placeholder = p
	return in
}

// Password masks the entered text.
func (in *Input) Password(on bool) *Input {
	in.password = on
	return in
}

// Inline renders title, description, and prompt on a single line.
func (in *Input) Inline(on bool) *Input {
	in.inline = on
	return in
}

// Default pre-fills the buffer with a value, cursor at the end.
func (in *Input) Default(value string) *Input {
	in.buf = []rune(value)
	in.cursor = len(in.buf)
	return in
}

// Suggestions sets the completion candidates offered as ghost text and
// accepted with Tab. Candidates are prefix-filtered by the current
// buffer and ranked.
func (in *Input) Suggestions(s []string) *Input {
	in.suggestions = s
	return in
}

// Autocomplete installs a function mapping the current buffer to ranked
// completion candidates, replacing the built-in prefix filter.
func (in *Input) Autocomplete(fn func(query string) []string) *Input {
	in.autocomplete = fn
	return in
}

// Validate sets the validator run on submission attempts. A non-nil
// result is shown inline and blocks submission until resolved.
func (in *Input) Validate(fn Validator) *Input {
	in.validate = fn
	return in
}

// ValidateOnKeystroke additionally runs the validator after every edit,
// keeping the error line current while typing.
func (in *Input) ValidateOnKeystroke(on bool) *Input {
	in.validateOnKey = on
	return in
}

// Theme sets the theme.
func (in *Input) Theme(t *Theme) *Input {
	in.theme = t
	return in
}

// Run displays the input and blocks until the user submits a value or
// cancels.
func (in *Input) Run() (string, error) {
	v, out, err := in.run(false)
	if err != nil {
		return "", err
	}
	if out == outcomeCancelled {
		return "", ErrCancelled
	}
	return v, nil
}

func (in *Input) runStep(allowBack bool) (any, outcome, error) {
	v, out, err := in.run(allowBack)
	return v, out, err
}

func (in *Input) run(allowBack bool) (string, outcome, error) {
	sess, err := openSession()
	if err != nil {
		return "", outcomePending, err
	}
	defer sess.Close()
	in.errMsg = ""
	if !sess.Interactive() {
		v, err := in.runFallback(sess)
		if err != nil {
			return "", outcomePending, err
		}
		return v, outcomeSubmitted, nil
	}
	trace.Event("prompt.start", map[string]string{"kind": "input", "title": in.title})
	out, err := runLoop(sess, in, allowBack)
	if err != nil {
		return "", out, err
	}
	finish(sess, out, in.successView())
	if out != outcomeSubmitted {
		trace.Event("prompt.cancel", in.title)
		return "", out, nil
	}
	trace.Event("prompt.submit", in.title)
	return string(in.buf), out, nil
}

func (in *Input) runFallback(sess *terminal.Session) (string, error) {
	if err := sess.WritePrompt(in.title, in.description, in.prompt); err != nil {
		return "", err
	}
	line, err := sess.ReadLine()
	if err != nil {
		return "", err
	}
	if line == "" && len(in.buf) > 0 {
		line = string(in.buf)
	}
	if in.validate != nil {
		if verr := in.validate(line); verr != nil {
			return "", verr
		}
	}
	return line, nil
}

func (in *Input) apply(ev keys.Event) outcome {
	switch ev.Kind {
	case keys.Char:
		in.insertRune(ev.Rune)
	case keys.Backspace:
		if in.cursor > 0 {
			in.buf = append(in.buf[:in.cursor-1], in.buf[in.cursor:]...)
			in.cursor--
		}
	case keys.Delete:
		if in.cursor < len(in.buf) {
			in.buf = append(in.buf[:in.cursor], in.buf[in.cursor+1:]...)
		}
	case keys.Left:
		if in.cursor > 0 {
			in.cursor--
		}
	case keys.Right:
		if in.cursor < len(in.buf) {
			in.cursor++
		}
	case keys.CtrlU:
		in.buf = append([]rune{}, in.buf[in.cursor:]...)
		in.cursor = 0
	case keys.CtrlW:
		in.deleteWordBackward()
	case keys.Tab:
		if in.ghost != "" {
			in.buf = append(in.buf, []rune(in.ghost)...)
			in.cursor = len(in.buf)
		}
	case keys.Enter:
		in.errMsg = in.runValidator()
		if in.errMsg == "" {
			return outcomeSubmitted
		}
		return outcomePending
	case keys.Escape:
		return outcomeCancelled
	default:
		return outcomePending
	}
	if in.validateOnKey {
		in.errMsg = in.runValidator()
	} else {
		in.errMsg = ""
	}
	in.refreshGhost()
	return outcomePending
}

func (in *Input) showCursor() bool { return false }

func (in *Input) insertRune(r rune) {
	in.buf = append(in.buf[:in.cursor], append([]rune{r}, in.buf[in.cursor:]...)...)
	in.cursor++
}

// deleteWordBackward removes the word before the cursor. With masking
// on, the whole prefix is cleared instead so word boundaries are not
// revealed.
func (in *Input) deleteWordBackward() {
	if in.password {
		in.buf = append([]rune{}, in.buf[in.cursor:]...)
		in.cursor = 0
		return
	}
	i := in.cursor
	for i > 0 && isWordSep(in.buf[i-1]) {
		i--
	}
	for i > 0 && !isWordSep(in.buf[i-1]) {
		i--
	}
	in.buf = append(in.buf[:i], in.buf[in.cursor:]...)
	in.cursor = i
}

func isWordSep(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

func (in *Input) runValidator() string {
	if in.validate == nil {
		return ""
	}
	if err := in.validate(string(in.buf)); err != nil {
		return err.Error()
	}
	return ""
}

// refreshGhost recomputes the inline completion shown after the buffer.
func (in *Input) refreshGhost() {
	in.ghost = ""
	if len(in.buf) == 0 {
		return
	}
	q := string(in.buf)
	for _, c := range in.candidates() {
		if g := foldRemainder(c, q); g != "" {
			in.ghost = g
			return
		}
	}
}

// foldRemainder returns what candidate adds beyond query when query is
// a case-insensitive prefix of it. The comparison is rune-wise so case
// folds that change byte length cannot split a character.
func foldRemainder(candidate, query string) string {
	cr := []rune(candidate)
	qr := []rune(query)
	if len(cr) <= len(qr) || !foldPrefixRunes(cr, qr) {
		return ""
	}
	return string(cr[len(qr):])
}

func foldPrefixRunes(s, prefix []rune) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if unicode.ToLower(s[i]) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}

// candidates returns completion candidates for the current buffer, best
// first. The caller-provided autocompleter wins; otherwise the static
// suggestions are prefix-filtered and ranked by edit distance.
func (in *Input) candidates() []string {
	q := string(in.buf)
	if in.autocomplete != nil {
		return in.autocomplete(q)
	}
	if len(in.suggestions) == 0 {
		return nil
	}
	qr := []rune(q)
	var prefixed []string
	for _, s := range in.suggestions {
		if foldPrefixRunes([]rune(s), qr) {
			prefixed = append(prefixed, s)
		}
	}
	if len(prefixed) <= 1 {
		return prefixed
	}
	ranks := rank.RankFindNormalizedFold(q, prefixed)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Distance < ranks[j].Distance })
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

func (in *Input) display() string {
	if !in.password {
		return string(in.buf)
	}
	return strings.Repeat("*", len(in.buf))
}

func (in *Input) view() string {
	t := in.theme
	var b strings.Builder
	if in.inline {
		b.WriteString(t.Title.Render(in.title))
		if in.description != "" {
			b.WriteString(t.Description.Render(" " + in.description))
		}
		b.WriteString(t.InputPrompt.Render(in.prompt))
	} else {
		b.WriteString(t.Title.Render(in.title) + "\n")
		if in.description != "" {
			b.WriteString(t.Description.Render(in.description) + "\n")
		}
		b.WriteString(t.InputPrompt.Render(in.prompt))
	}
	in.renderBuffer(&b)
	if in.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(t.ErrorIndicator.Render("* " + in.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

// renderBuffer paints the buffer with a software cursor: the character
// under the cursor (or a trailing space) in the cursor style, ghost
// completion in the placeholder style.
func (in *Input) renderBuffer(b *strings.Builder) {
	t := in.theme
	if len(in.buf) == 0 && in.placeholder != "" {
		ph := []rune(in.placeholder)
		b.WriteString(t.InputCursor.Render(string(ph[0])))
		if len(ph) > 1 {
			b.WriteString(t.InputPlaceholder.Render(string(ph[1:])))
		}
		return
	}
	display := []rune(in.display())
	b.WriteString(string(display[:in.cursor]))
	if in.cursor < len(display) {
		b.WriteString(t.InputCursor.Render(string(display[in.cursor])))
		b.WriteString(string(display[in.cursor+1:]))
		if in.ghost != "" {
			b.WriteString(t.InputPlaceholder.Render(in.ghost))
		}
		return
	}
	if in.ghost != "" {
		g := []rune(in.ghost)
		b.WriteString(t.InputCursor.Render(string(g[0])))
		if len(g) > 1 {
			b.WriteString(t.InputPlaceholder.Render(string(g[1:])))
		}
		return
	}
	b.WriteString(t.InputCursor.Render(" "))
}

func (in *Input) successView() string {
	t := in.theme
	value := in.display()
	if in.password {
		value = strings.Repeat("*", 12)
	}
	return t.Title.Render(in.title) + t.SelectedOption.Render(" "+value)
}
