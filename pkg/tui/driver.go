package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single-line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // multi-select only; indices into Options
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal so the wizard loop can be scripted in
// tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// DriverOption customises the survey driver.
type DriverOption func(*surveyDriver)

// WithStdio points prompts at the given streams instead of the process
// terminal.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) DriverOption {
	return func(d *surveyDriver) {
		d.askOpts = append(d.askOpts, survey.WithStdio(in, out, errOut))
	}
}

// WithErrorIcon replaces the marker survey prints in front of a rejected
// answer.
func WithErrorIcon(icon string) DriverOption {
	return func(d *surveyDriver) {
		if icon == "" {
			return
		}
		d.askOpts = append(d.askOpts, survey.WithIcons(func(set *survey.IconSet) {
			set.Error.Text = icon
		}))
	}
}

type surveyDriver struct {
	out     io.Writer
	askOpts []survey.AskOpt
}

// NewSurveyDriver returns the interactive driver. Info messages go to out.
func NewSurveyDriver(out io.Writer, opts ...DriverOption) PromptDriver {
	d := &surveyDriver{out: out}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// ask runs one prompt. Survey cannot be interrupted mid-prompt, so ctx is
// only checked before asking.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any, extra ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := append(append([]survey.AskOpt{}, d.askOpts...), extra...)
	err := survey.AskOne(prompt, response, opts...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, io.EOF):
		return ErrAborted
	default:
		return fmt.Errorf("tui: prompt %q: %w", promptMessage(prompt), err)
	}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var answer string
	var extra []survey.AskOpt
	if validate := cfg.Validator; validate != nil {
		extra = append(extra, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer, extra...)
	return strings.TrimSpace(answer), err
}

// Select answers with the chosen index. An out of range DefaultIndex leaves
// the cursor on the first option.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if len(cfg.Options) == 0 {
		return -1, fmt.Errorf("tui: %q has no options", cfg.Message)
	}
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var idx int
	if err := d.ask(ctx, prompt, &idx); err != nil {
		return -1, err
	}
	return idx, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if picked := optionsAt(cfg.Options, cfg.Defaults); len(picked) > 0 {
		prompt.Default = picked
	}
	var labels []string
	if err := d.ask(ctx, prompt, &labels); err != nil {
		return nil, err
	}
	return indicesOf(cfg.Options, labels), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer)
	return strings.TrimRight(answer, "\n"), err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func promptMessage(p survey.Prompt) string {
	switch v := p.(type) {
	case *survey.Input:
		return v.Message
	case *survey.Select:
		return v.Message
	case *survey.MultiSelect:
		return v.Message
	case *survey.Multiline:
		return v.Message
	}
	return ""
}

// indicesOf maps answered labels back to option positions, in option order.
func indicesOf(options, labels []string) []int {
	picked := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		picked[label] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := picked[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func optionsAt(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
