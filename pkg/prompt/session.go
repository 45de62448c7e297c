package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// ErrCancelled is returned by Run when the user declines to send the form.
var ErrCancelled = errors.New("prompt: submission cancelled")

// maxAttempts bounds how often Run re-asks invalid fields.
const maxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithConfirm asks for confirmation before sending.
func WithConfirm(confirm bool) Option {
	return func(s *Session) {
		s.confirm = confirm
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session walks a form's fields through a Driver.
type Session struct {
	driver  Driver
	confirm bool
	logger  *slog.Logger
}

// NewSession builds a session on driver.
func NewSession(driver Driver, opts ...Option) *Session {
	s := &Session{driver: driver, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Fill asks for every field in declaration order. Read-only fields are
// shown, not asked. Answers are checked against the field rules while
// typing when the driver supports it.
func (s *Session) Fill(ctx context.Context, f *form.Form) error {
	return s.ask(ctx, f, f.Schema().FieldNames())
}

// Run fills the form, re-asks fields that fail validation and submits. The
// notification of the attempt is printed through the driver.
func (s *Session) Run(ctx context.Context, f *form.Form) (form.Report, error) {
	if err := s.Fill(ctx, f); err != nil {
		return form.Report{}, err
	}
	if s.confirm {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Send " + submitLabel(f) + "?", Default: true})
		if err != nil {
			return form.Report{}, err
		}
		if !ok {
			return form.Report{}, ErrCancelled
		}
	}

	for attempt := 1; ; attempt++ {
		report := f.Submit(ctx)
		switch report.Outcome {
		case form.OutcomeSubmitted:
			n := report.Notification
			msg := n.Title
			if n.Description != "" {
				msg += ": " + n.Description
			}
			return report, s.driver.Info(ctx, msg)
		case form.OutcomeIgnored:
			return report, nil
		}

		if attempt >= maxAttempts {
			return report, fmt.Errorf("prompt: %s still invalid after %d attempts: %w", f.Schema().ID, attempt, report.Errors)
		}
		names := make([]string, 0, len(report.Errors))
		for _, fe := range report.Errors {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", fe.Field, fe.Message)); err != nil {
				return report, err
			}
			names = append(names, fe.Field)
		}
		s.logger.Debug("re-asking invalid fields", "form", f.Schema().ID, "fields", names)
		if err := s.ask(ctx, f, names); err != nil {
			return report, err
		}
	}
}

func (s *Session) ask(ctx context.Context, f *form.Form, names []string) error {
	schema := f.Schema()
	validator, err := validation.New(schema)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	for _, name := range names {
		field, ok := schema.Field(name)
		if !ok {
			continue
		}
		current := f.Value(name)
		if field.ReadOnly {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, current)); err != nil {
				return err
			}
			continue
		}

		check := func(value string) error {
			if msg, ok := validator.Field(name, value); !ok {
				return errors.New(msg)
			}
			return nil
		}

		var answer string
		switch field.Type {
		case model.FieldTypeSelect:
			answer, err = s.askSelect(ctx, field, current)
		case model.FieldTypeTextarea:
			answer, err = s.driver.TextArea(ctx, InputConfig{Message: field.Label, Default: current, Help: field.Placeholder, Validator: check})
		default:
			answer, err = s.driver.Input(ctx, InputConfig{Message: field.Label, Default: current, Help: field.Placeholder, Validator: check})
		}
		if err != nil {
			return err
		}
		f.SetValue(name, answer)
	}
	return nil
}

func (s *Session) askSelect(ctx context.Context, field model.Field, current string) (string, error) {
	labels := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		labels = append(labels, field.OptionLabel(opt.Value))
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: slices.Index(field.OptionValues(), current),
		Help:         field.Placeholder,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", fmt.Errorf("prompt: %s: selection %d out of range", field.Name, idx)
	}
	return field.Options[idx].Value, nil
}

func submitLabel(f *form.Form) string {
	if label := f.Schema().SubmitLabel; label != "" {
		return label
	}
	return f.Schema().ID
}
