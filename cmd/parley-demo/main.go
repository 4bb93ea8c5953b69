// Command parley-demo walks through every prompt primitive once. It
// exists for manual testing of key handling, themes, and the
// non-interactive fallback (pipe answers into stdin to exercise it).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parley-cli/parley"
)

const (
	envTheme   = "PARLEY_DEMO_THEME"
	envTrace   = "PARLEY_DEMO_TRACE"
	envLogFile = "PARLEY_DEMO_LOG_FILE"
)

func main() {
	fs := flag.NewFlagSet("parley-demo", flag.ExitOnError)
	themeName := fs.String("theme", envOrDefault(envTheme, "charm"), "theme: base, charm, dracula, base16, catppuccin")
	trace := fs.Bool("trace", os.Getenv(envTrace) != "", "enable JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(envLogFile, ""), "path to the trace log file")
	fs.Parse(os.Args[1:])

	theme, err := themeByName(*themeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if *trace {
		parley.EnableTrace(*logFile)
	}

	if err := run(theme); err != nil {
		if errors.Is(err, parley.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func themeByName(name string) (*parley.Theme, error) {
	switch strings.ToLower(name) {
	case "base":
		return parley.ThemeBase(), nil
	case "charm":
		return parley.ThemeCharm(), nil
	case "dracula":
		return parley.ThemeDracula(), nil
	case "base16":
		return parley.ThemeBase16(), nil
	case "catppuccin":
		return parley.ThemeCatppuccin(), nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

func run(theme *parley.Theme) error {
	answers, err := parley.NewWizard().
		Theme(theme).
		Step("name", func(ctx *parley.WizardContext) parley.Prompt {
			return parley.NewInput("What's your project called?").
				Description(ctx.Breadcrumb()).
				Placeholder("my-project").
				Suggestions([]string{"parley", "payload", "pantry"}).
				Validate(func(v string) error {
					if v == "" {
						return errors.New("a name is required")
					}
					return nil
				}).
				Theme(theme)
		}).
		Step("language", func(ctx *parley.WizardContext) parley.Prompt {
			return parley.NewSelect[string]("Pick a language").
				Description(ctx.Breadcrumb()).
				Filterable(true).
				Options(
					parley.NewOption("Go", "go"),
					parley.NewOption("Rust", "rust"),
					parley.NewOption("Python", "python"),
					parley.NewOption("TypeScript", "typescript"),
				).
				Theme(theme)
		}).
		Step("features", func(ctx *parley.WizardContext) parley.Prompt {
			return parley.NewMultiSelect[string]("Enable features").
				Description(ctx.Breadcrumb()).
				Options(
					parley.NewOption("CI pipeline", "ci").WithSelected(true),
					parley.NewOption("Linting", "lint"),
					parley.NewOption("Docs site", "docs"),
				).
				Min(1).
				Theme(theme)
		}).
		Step("confirm", func(ctx *parley.WizardContext) parley.Prompt {
			return parley.NewConfirm("Create " + ctx.Answers().String("name") + "?").
				Description(ctx.Breadcrumb()).
				Theme(theme)
		}).
		Run()
	if err != nil {
		return err
	}
	if !answers.Bool("confirm") {
		return nil
	}

	if err := parley.NewSpinner("Scaffolding project").
		Style(parley.SpinnerMiniDots).
		Theme(theme).
		Run(func(h *parley.SpinnerHandle) error {
			time.Sleep(600 * time.Millisecond)
			h.SetTitle("Writing files")
			time.Sleep(600 * time.Millisecond)
			return nil
		}); err != nil {
		return err
	}

	choice, err := parley.NewDialog("Project created").
		Description("What next?").
		Buttons(
			parley.DialogButton{Label: "Open", Key: 'o'},
			parley.DialogButton{Label: "Show summary", Key: 's'},
			parley.DialogButton{Label: "Quit", Key: 'q'},
		).
		Theme(theme).
		Run()
	if err != nil {
		return err
	}
	if choice == 1 {
		return parley.NewList("Summary").
			Items(
				"name: "+answers.String("name"),
				"language: "+fmt.Sprint(answers["language"]),
				"features: "+fmt.Sprint(answers["features"]),
			).
			Theme(theme).
			Run()
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
