package ui

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/cockroachdb/errors"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("ui: aborted")

// ErrNothingSelected is returned when a required selection comes back empty.
var ErrNothingSelected = errors.New("ui: nothing selected")

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Defaults []int // indices into Options
	Help     string
	PageSize int
}

// PromptDriver abstracts the terminal so command logic can be tested without
// a real TTY.
type PromptDriver interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
}

// NewSurveyDriver returns the survey-backed driver. Help text is revealed
// with "?" as in every survey prompt.
func NewSurveyDriver() PromptDriver {
	return surveyDriver{ask: survey.AskOne}
}

type surveyDriver struct {
	ask func(survey.Prompt, interface{}, ...survey.AskOpt) error
}

func (d surveyDriver) askOne(ctx context.Context, prompt survey.Prompt, answer interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := d.ask(prompt, answer, survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "?"
		icons.MarkedOption.Text = "[x]"
		icons.UnmarkedOption.Text = "[ ]"
	}))
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var answer bool
	err := d.askOne(ctx, &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}, &answer)
	return answer, err
}

func (d surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if defaults := defaultsFromIndices(cfg.Options, cfg.Defaults); len(defaults) > 0 {
		prompt.Default = defaults
	}

	var answers []core.OptionAnswer
	if err := d.askOne(ctx, prompt, &answers); err != nil {
		return nil, err
	}
	picked := make([]int, 0, len(answers))
	for _, answer := range answers {
		picked = append(picked, answer.Index)
	}
	return picked, nil
}

// SelectUseCases asks which use cases to render. All are preselected; an
// empty answer is an error.
func SelectUseCases(ctx context.Context, driver PromptDriver, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	defaults := make([]int, len(names))
	for i := range names {
		defaults[i] = i
	}
	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Use cases to render:",
		Options:  names,
		Defaults: defaults,
		Help:     "Space toggles a use case, enter confirms.",
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(names) {
			out = append(out, names[idx])
		}
	}
	if len(out) == 0 {
		return nil, ErrNothingSelected
	}
	return out, nil
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(ctx context.Context, driver PromptDriver, path string) (bool, error) {
	return driver.Confirm(ctx, ConfirmConfig{
		Message: "Overwrite " + path + "?",
	})
}

// defaultsFromIndices maps in-range indices back to option labels, which is
// the form survey accepts as a MultiSelect default.
func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
