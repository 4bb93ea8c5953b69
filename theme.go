package parley

import "github.com/charmbracelet/lipgloss"

// Theme maps every style role used by the prompts to a concrete style.
// A theme is plain data: derive a variant by copying a preset and
// overriding the roles you care about.
//
//	t := parley.ThemeCharm()
//	t.SelectedPrefix = " •"
//	t.Title = t.Title.Underline(true)
type Theme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Cursor      lipgloss.Style

	SelectedOption        lipgloss.Style
	SelectedPrefix        string
	SelectedPrefixStyle   lipgloss.Style
	UnselectedOption      lipgloss.Style
	UnselectedPrefix      string
	UnselectedPrefixStyle lipgloss.Style
	MatchHighlight        lipgloss.Style

	InputCursor      lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputPrompt      lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style

	FocusedButton lipgloss.Style
	BlurredButton lipgloss.Style

	ErrorIndicator lipgloss.Style

	BreadcrumbActive    lipgloss.Style
	BreadcrumbVisited   lipgloss.Style
	BreadcrumbFuture    lipgloss.Style
	BreadcrumbSeparator string
}

// ThemeBase returns a colorless theme: plain prefixes, a reverse-video
// cursor, and no foreground styling. Useful on dumb terminals and as a
// base for custom palettes.
func ThemeBase() *Theme {
	return &Theme{
		SelectedPrefix:      "[•]",
		UnselectedPrefix:    "[ ]",
		BreadcrumbSeparator: " > ",

		Cursor:           lipgloss.NewStyle(),
		MatchHighlight:   lipgloss.NewStyle().Underline(true),
		InputCursor:      lipgloss.NewStyle().Reverse(true),
		InputPlaceholder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FocusedButton:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
		BlurredButton:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0")),
	}
}

// ThemeCharm returns the default theme.
func ThemeCharm() *Theme {
	var (
		normal  = lipgloss.Color("252")
		indigo  = lipgloss.Color("#7571f9")
		red     = lipgloss.Color("#ff4672")
		fuchsia = lipgloss.Color("#f780e2")
		green   = lipgloss.Color("#02bf87")
		cream   = lipgloss.Color("#fffdf5")
	)
	t := ThemeBase()
	t.Title = lipgloss.NewStyle().Foreground(indigo).Bold(true)
	t.Description = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	t.Cursor = lipgloss.NewStyle().Foreground(fuchsia)
	t.ErrorIndicator = lipgloss.NewStyle().Foreground(red)

	t.SelectedPrefix = " ✓"
	t.SelectedPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#02a877"))
	t.SelectedOption = lipgloss.NewStyle().Foreground(green)
	t.UnselectedPrefix = " •"
	t.UnselectedPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	t.UnselectedOption = lipgloss.NewStyle().Foreground(normal)
	t.MatchHighlight = lipgloss.NewStyle().Foreground(fuchsia).Underline(true)

	t.InputCursor = lipgloss.NewStyle().Foreground(green).Reverse(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	t.InputPrompt = lipgloss.NewStyle().Foreground(fuchsia)

	t.HelpKey = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	t.HelpDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#4a4a4a"))
	t.HelpSep = lipgloss.NewStyle().Foreground(lipgloss.Color("#3c3c3c"))

	t.FocusedButton = lipgloss.NewStyle().Foreground(cream).Background(fuchsia)
	t.BlurredButton = lipgloss.NewStyle().Foreground(normal).Background(lipgloss.Color("238"))

	t.BreadcrumbActive = t.Title
	t.BreadcrumbVisited = lipgloss.NewStyle().Foreground(normal)
	t.BreadcrumbFuture = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	return t
}

// ThemeDracula returns a theme using the dracula palette.
func ThemeDracula() *Theme {
	var (
		background = lipgloss.Color("#282a36")
		foreground = lipgloss.Color("#f8f8f2")
		comment    = lipgloss.Color("#6272a4")
		green      = lipgloss.Color("#50fa7b")
		purple     = lipgloss.Color("#bd93f9")
		red        = lipgloss.Color("#ff5555")
		yellow     = lipgloss.Color("#f1fa8c")
	)
	t := ThemeBase()
	t.Title = lipgloss.NewStyle().Foreground(purple).Bold(true)
	t.Description = lipgloss.NewStyle().Foreground(comment)
	t.Cursor = lipgloss.NewStyle().Foreground(yellow)
	t.ErrorIndicator = lipgloss.NewStyle().Foreground(red)

	t.SelectedPrefix = " [•]"
	t.SelectedPrefixStyle = lipgloss.NewStyle().Foreground(green)
	t.SelectedOption = lipgloss.NewStyle().Foreground(green)
	t.UnselectedPrefix = " [ ]"
	t.UnselectedPrefixStyle = lipgloss.NewStyle().Foreground(comment)
	t.UnselectedOption = lipgloss.NewStyle().Foreground(foreground)
	t.MatchHighlight = lipgloss.NewStyle().Foreground(purple).Underline(true)

	t.InputCursor = lipgloss.NewStyle().Foreground(yellow).Reverse(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(comment)
	t.InputPrompt = lipgloss.NewStyle().Foreground(yellow)

	t.HelpKey = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	t.HelpDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#4a4a4a"))
	t.HelpSep = lipgloss.NewStyle().Foreground(lipgloss.Color("#3c3c3c"))

	t.FocusedButton = lipgloss.NewStyle().Foreground(yellow).Background(purple)
	t.BlurredButton = lipgloss.NewStyle().Foreground(foreground).Background(background)

	t.BreadcrumbActive = t.Title
	t.BreadcrumbVisited = lipgloss.NewStyle().Foreground(foreground)
	t.BreadcrumbFuture = lipgloss.NewStyle().Foreground(comment)
	return t
}

// ThemeBase16 returns a theme restricted to the 16 base ANSI colors.
func ThemeBase16() *Theme {
	t := ThemeBase()
	t.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	t.Description = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	t.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	t.ErrorIndicator = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	t.SelectedPrefix = " [•]"
	t.SelectedPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	t.SelectedOption = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	t.UnselectedPrefix = " [ ]"
	t.UnselectedPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	t.UnselectedOption = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	t.MatchHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true)

	t.InputCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Reverse(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	t.InputPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	t.HelpKey = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	t.HelpDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	t.HelpSep = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	t.FocusedButton = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("5"))
	t.BlurredButton = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0"))

	t.BreadcrumbActive = t.Title
	t.BreadcrumbVisited = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	t.BreadcrumbFuture = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return t
}

// ThemeCatppuccin returns a theme using the catppuccin mocha palette.
func ThemeCatppuccin() *Theme {
	var (
		base     = lipgloss.Color("#1e1e2e")
		text     = lipgloss.Color("#cdd6f4")
		subtext0 = lipgloss.Color("#a6adc8")
		overlay0 = lipgloss.Color("#6c7086")
		overlay1 = lipgloss.Color("#7f849c")
		green    = lipgloss.Color("#a6e3a1")
		red      = lipgloss.Color("#f38ba8")
		pink     = lipgloss.Color("#f5c2e7")
		mauve    = lipgloss.Color("#cba6f7")
		rosewtr  = lipgloss.Color("#f5e0dc")
	)
	t := ThemeBase()
	t.Title = lipgloss.NewStyle().Foreground(mauve).Bold(true)
	t.Description = lipgloss.NewStyle().Foreground(subtext0)
	t.Cursor = lipgloss.NewStyle().Foreground(pink)
	t.ErrorIndicator = lipgloss.NewStyle().Foreground(red)

	t.SelectedPrefix = " [•]"
	t.SelectedPrefixStyle = lipgloss.NewStyle().Foreground(green)
	t.SelectedOption = lipgloss.NewStyle().Foreground(green)
	t.UnselectedPrefix = " [ ]"
	t.UnselectedPrefixStyle = lipgloss.NewStyle().Foreground(text)
	t.UnselectedOption = lipgloss.NewStyle().Foreground(text)
	t.MatchHighlight = lipgloss.NewStyle().Foreground(mauve).Underline(true)

	t.InputCursor = lipgloss.NewStyle().Foreground(rosewtr).Reverse(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(overlay0)
	t.InputPrompt = lipgloss.NewStyle().Foreground(pink)

	t.HelpKey = lipgloss.NewStyle().Foreground(subtext0)
	t.HelpDesc = lipgloss.NewStyle().Foreground(overlay1)
	t.HelpSep = lipgloss.NewStyle().Foreground(subtext0)

	t.FocusedButton = lipgloss.NewStyle().Foreground(base).Background(pink)
	t.BlurredButton = lipgloss.NewStyle().Foreground(text).Background(base)

	t.BreadcrumbActive = t.Title
	t.BreadcrumbVisited = lipgloss.NewStyle().Foreground(text)
	t.BreadcrumbFuture = lipgloss.NewStyle().Foreground(overlay0)
	return t
}

func defaultTheme() *Theme {
	return ThemeCharm()
}
