package parley

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompt plays back a fixed sequence of outcomes, recording how
// often it ran and whether backing out was permitted.
type scriptedPrompt struct {
	outcomes  []outcome
	values    []any
	runs      int
	allowBack []bool
}

func (p *scriptedPrompt) runStep(allowBack bool) (any, outcome, error) {
	i := p.runs
	p.runs++
	p.allowBack = append(p.allowBack, allowBack)
	var v any
	if i < len(p.values) {
		v = p.values[i]
	}
	return v, p.outcomes[i], nil
}

func step(p Prompt) func(ctx *WizardContext) Prompt {
	return func(ctx *WizardContext) Prompt { return p }
}

func TestWizardCollectsAnswersInOrder(t *testing.T) {
	name := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}, values: []any{"Ada"}}
	env := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}, values: []any{"prod"}}

	answers, err := NewWizard().
		Step("name", step(name)).
		Step("environment", step(env)).
		Run()
	require.NoError(t, err)
	assert.Equal(t, "Ada", answers.String("name"))
	assert.Equal(t, "prod", answers.String("environment"))
	assert.Equal(t, []bool{false}, name.allowBack)
	assert.Equal(t, []bool{true}, env.allowBack)
}

func TestWizardBackReentersPreviousStep(t *testing.T) {
	first := &scriptedPrompt{
		outcomes: []outcome{outcomeSubmitted, outcomeSubmitted},
		values:   []any{"draft", "final"},
	}
	second := &scriptedPrompt{
		outcomes: []outcome{outcomeBack, outcomeSubmitted},
		values:   []any{nil, true},
	}

	answers, err := NewWizard().
		Step("title", step(first)).
		Step("publish", step(second)).
		Run()
	require.NoError(t, err)
	assert.Equal(t, 2, first.runs, "backing out should re-run the previous step")
	assert.Equal(t, 2, second.runs)
	assert.Equal(t, "final", answers.String("title"))
	assert.True(t, answers.Bool("publish"))
}

func TestWizardReusesPromptInstances(t *testing.T) {
	builds := 0
	p := &scriptedPrompt{
		outcomes: []outcome{outcomeSubmitted, outcomeSubmitted},
		values:   []any{"a", "a"},
	}
	backer := &scriptedPrompt{
		outcomes: []outcome{outcomeBack, outcomeSubmitted},
		values:   []any{nil, "b"},
	}

	_, err := NewWizard().
		Step("one", func(ctx *WizardContext) Prompt {
			builds++
			return p
		}).
		Step("two", step(backer)).
		Run()
	require.NoError(t, err)
	assert.Equal(t, 1, builds, "re-entering a step must reuse the built prompt")
}

func TestWizardRebuildsLaterStepWhenAnswerChanges(t *testing.T) {
	first := &scriptedPrompt{
		outcomes: []outcome{outcomeSubmitted, outcomeSubmitted},
		values:   []any{"sqlite", "postgres"},
	}
	seconds := []*scriptedPrompt{
		{outcomes: []outcome{outcomeBack}},
		{outcomes: []outcome{outcomeSubmitted}, values: []any{"done"}},
	}
	builds := 0
	var seen []string

	answers, err := NewWizard().
		Step("driver", step(first)).
		Step("dsn", func(ctx *WizardContext) Prompt {
			seen = append(seen, ctx.Answers().String("driver"))
			p := seconds[builds]
			builds++
			return p
		}).
		Run()
	require.NoError(t, err)
	assert.Equal(t, 2, builds, "changing an earlier answer must rebuild the later step")
	assert.Equal(t, []string{"sqlite", "postgres"}, seen)
	assert.Equal(t, "postgres", answers.String("driver"))
	assert.Equal(t, "done", answers.String("dsn"))
}

func TestWizardCancelPropagates(t *testing.T) {
	first := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}, values: []any{"x"}}
	second := &scriptedPrompt{outcomes: []outcome{outcomeCancelled}}
	third := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}}

	_, err := NewWizard().
		Step("one", step(first)).
		Step("two", step(second)).
		Step("three", step(third)).
		Run()
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 0, third.runs, "cancel must stop the wizard immediately")
}

func TestWizardContextSeesEarlierAnswers(t *testing.T) {
	first := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}, values: []any{"staging"}}
	var seen string

	second := &scriptedPrompt{outcomes: []outcome{outcomeSubmitted}, values: []any{true}}
	_, err := NewWizard().
		Step("environment", step(first)).
		Step("confirm", func(ctx *WizardContext) Prompt {
			seen = ctx.Answers().String("environment")
			return second
		}).
		Run()
	require.NoError(t, err)
	assert.Equal(t, "staging", seen)
}

func TestWizardWithoutStepsIsInvalid(t *testing.T) {
	_, err := NewWizard().Run()
	require.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestWizardBreadcrumbHighlightsCurrentStep(t *testing.T) {
	ctx := &WizardContext{
		names:   []string{"name", "environment", "confirm"},
		current: 1,
		answers: Answers{},
		theme:   ThemeBase(),
	}
	crumb := ctx.Breadcrumb()
	for _, name := range ctx.names {
		assert.True(t, containsStripped(crumb, name), "breadcrumb missing %q", name)
	}
	assert.True(t, containsStripped(crumb, ThemeBase().BreadcrumbSeparator))
}

func TestWizardRunsEndToEndOverFallbackSessions(t *testing.T) {
	scriptSessions(t, "Ada", "yes")
	answers, err := NewWizard().
		Step("name", func(ctx *WizardContext) Prompt {
			return NewInput("Name")
		}).
		Step("confirm", func(ctx *WizardContext) Prompt {
			return NewConfirm("Create user " + ctx.Answers().String("name") + "?")
		}).
		Run()
	require.NoError(t, err)
	assert.Equal(t, "Ada", answers.String("name"))
	assert.True(t, answers.Bool("confirm"))
}
