// Package tui fills a live form from the terminal. Each prompt stands in for
// a user leaving a field, so fields are validated as soon as they are
// answered and re-prompted while invalid.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/constraint"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/submit"
)

const noneOption = "(none)"

// Session drives a form through prompts, submits it and acknowledges the
// outcome.
type Session struct {
	driver PromptDriver
	theme  Theme
	logger zerolog.Logger
	title  string
}

// New constructs a session using the survey driver unless overridden.
func New(options ...Option) *Session {
	s := &Session{
		driver: NewSurveyDriver(),
		theme:  DefaultTheme(),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Notifier returns a submit.Notifier that prints the notice and blocks until
// the user presses Enter.
func (s *Session) Notifier() submit.Notifier {
	return submit.NotifierFunc(func(ctx context.Context, notice submit.Notice) error {
		if s.driver == nil {
			return ErrNoDriver
		}
		prefix := s.theme.SuccessPrefix
		if notice.Kind == submit.NoticeFailure {
			prefix = s.theme.ErrorPrefix
		}
		if err := s.driver.Info(ctx, prefix+notice.Message); err != nil {
			return err
		}
		_, err := s.driver.Input(ctx, InputConfig{Message: "Press Enter to continue"})
		return err
	})
}

// Run prompts every field of f in document order, asks for confirmation and
// submits. A rejected submission can be retried with the answers kept. Run
// returns nil once a submission succeeds and ErrAborted when the user
// declines to submit or to retry. A submission whose success notice could not
// be acknowledged is not retried; its error wraps submit.ErrNotAcknowledged.
func (s *Session) Run(ctx context.Context, f *form.Form) error {
	if s.driver == nil {
		return ErrNoDriver
	}
	if f == nil {
		return errors.New("tui: form is nil")
	}
	if s.title != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+s.title); err != nil {
			return err
		}
	}
	prompts := collectPrompts(f)

fill:
	for {
		if err := s.fill(ctx, f, prompts); err != nil {
			return err
		}
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit the form?", Default: true})
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}

		for {
			err := f.Submit(ctx)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, submit.ErrNotAcknowledged):
				return err
			case errors.Is(err, ErrAborted), ctx.Err() != nil:
				return err
			case errors.Is(err, submit.ErrInvalid):
				s.logger.Debug().Msg("answers invalid at submit, prompting again")
				continue fill
			case errors.Is(err, submit.ErrInFlight):
				return err
			}

			s.logger.Debug().Err(err).Msg("submission rejected")
			retry, cerr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Retry the submission?", Default: true})
			if cerr != nil {
				return cerr
			}
			if !retry {
				return fmt.Errorf("%w: %w", ErrAborted, err)
			}
		}
	}
}

func (s *Session) fill(ctx context.Context, f *form.Form, prompts promptText) error {
	seenGroups := make(map[string]bool)
	for _, in := range f.Inputs() {
		if in.IsRadio() {
			if seenGroups[in.Name()] {
				continue
			}
			seenGroups[in.Name()] = true
			if err := s.promptGroup(ctx, f, in.Name(), prompts); err != nil {
				return err
			}
			continue
		}
		if !promptable(in.Type()) {
			continue
		}
		if err := s.promptInput(ctx, f, in, prompts.labels[in.ID()]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptInput(ctx context.Context, f *form.Form, in *form.Input, label string) error {
	if label == "" {
		label = in.Name()
	}
	slot := f.ErrorSlotFor(in)

	for {
		if in.Checkable() {
			checked, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: in.Checked()})
			if err != nil {
				return err
			}
			in.SetChecked(checked)
		} else {
			cfg := InputConfig{Message: label, Default: in.Value(), Help: helpFor(in)}
			var (
				value string
				err   error
			)
			if constraint.NormalizeType(in.Type()) == constraint.TypePassword {
				value, err = s.driver.Password(ctx, cfg)
			} else {
				value, err = s.driver.Input(ctx, cfg)
			}
			if err != nil {
				return err
			}
			in.SetValue(value)
		}

		in.Blur()
		if in.Validity().Valid() {
			return nil
		}
		form.Validate(in, slot)
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+errorText(slot, label)); err != nil {
			return err
		}
	}
}

func (s *Session) promptGroup(ctx context.Context, f *form.Form, name string, prompts promptText) error {
	radios := f.Group(name)
	if len(radios) == 0 {
		return nil
	}
	legend := prompts.legends[name]
	if legend == "" {
		legend = name
	}
	slot := f.ErrorSlotFor(radios[0])

	options := make([]string, 0, len(radios)+1)
	defaultIndex := -1
	for i, radio := range radios {
		text := prompts.labels[radio.ID()]
		if text == "" {
			text = radio.Value()
		}
		options = append(options, text)
		if radio.Checked() {
			defaultIndex = i
		}
	}
	if !radios[0].Required() {
		options = append(options, noneOption)
		if defaultIndex < 0 {
			defaultIndex = len(options) - 1
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: legend, Options: options, DefaultIndex: defaultIndex})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(radios) {
			radios[idx].SetChecked(true)
		} else {
			for _, radio := range radios {
				radio.SetChecked(false)
			}
		}

		valid := true
		for _, radio := range radios {
			form.Validate(radio, slot)
			valid = valid && radio.Validity().Valid()
		}
		if valid {
			return nil
		}
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+errorText(slot, legend)); err != nil {
			return err
		}
	}
}

type promptText struct {
	labels  map[string]string
	legends map[string]string
}

func collectPrompts(f *form.Form) promptText {
	prompts := promptText{labels: make(map[string]string), legends: make(map[string]string)}
	form.Walk(f, func(n form.Node) {
		switch node := n.(type) {
		case *form.Label:
			prompts.labels[node.For] = node.Text
		case *form.Fieldset:
			legend := node.Legend()
			if legend == nil {
				return
			}
			form.Walk(node, func(child form.Node) {
				if in, ok := child.(*form.Input); ok && in.IsRadio() {
					prompts.legends[in.Name()] = legend.Text
				}
			})
		}
	})
	return prompts
}

func promptable(t string) bool {
	switch constraint.NormalizeType(t) {
	case constraint.TypeHidden, constraint.TypeSubmit, constraint.TypeReset,
		constraint.TypeButton, constraint.TypeImage, constraint.TypeFile:
		return false
	default:
		return true
	}
}

func helpFor(in *form.Input) string {
	if in.Pattern() != "" && constraint.SupportsPattern(in.Type()) {
		return "Expected format: " + in.Pattern()
	}
	if constraint.NormalizeType(in.Type()) == constraint.TypeEmail {
		return "An email address, e.g. name@example.com"
	}
	return ""
}

func errorText(slot *form.ErrorSlot, prompt string) string {
	if slot != nil && slot.Text != "" {
		return slot.Text
	}
	return form.ErrorText(prompt)
}
