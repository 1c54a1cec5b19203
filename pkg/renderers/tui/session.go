package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
)

// Fill runs an interactive session against f. Every answer goes through
// f.Change; a field whose answer fails validation is shown its message and
// prompted again. Once the form is valid the user confirms the submission.
// After a failed submission the user may edit the retained values and retry.
func (r *Renderer) Fill(ctx context.Context, fm model.FormModel, f *form.Form) (form.Result, error) {
	for {
		for _, field := range fm.Fields {
			if err := r.promptUntilValid(ctx, field, f); err != nil {
				return form.Result{}, err
			}
		}

		if !f.CanSubmit() {
			// Only reachable when a field outside the model blocks validity.
			return form.Result{}, form.ErrInvalid
		}

		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s registration?", submitLabel(fm)),
			Default: true,
		})
		if err != nil {
			return form.Result{}, err
		}
		if !ok {
			return form.Result{}, ErrDeclined
		}

		result, err := f.Submit(ctx)
		if err != nil {
			return result, err
		}
		if result.Success != "" || result.Failure == "" {
			if err := r.driver.Info(ctx, r.theme.SuccessPrefix+result.Success); err != nil {
				return result, err
			}
			return result, nil
		}

		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+result.Failure); err != nil {
			return result, err
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Edit your answers and try again?",
			Default: true,
		})
		if err != nil {
			return result, err
		}
		if !retry {
			return result, nil
		}
		r.logger.Debug("tui retrying registration", "failure", result.Failure)
	}
}

func (r *Renderer) promptUntilValid(ctx context.Context, field model.Field, f *form.Form) error {
	for attempt := 1; ; attempt++ {
		in, err := r.prompt(ctx, field, f.Snapshot())
		if err != nil {
			return err
		}
		if err := f.Change(in); err != nil {
			return fmt.Errorf("tui: %s: %w", field.Name, err)
		}

		msg := f.Snapshot().Errors[field.Name]
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (r *Renderer) prompt(ctx context.Context, field model.Field, snap form.Snapshot) (form.Input, error) {
	current, _ := snap.Values.Get(field.Name)

	switch {
	case field.Type == model.FieldTypeBoolean:
		checked, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fieldLabel(field) + "?",
			Default: checked,
			Help:    field.Help,
		})
		if err != nil {
			return form.Input{}, err
		}
		return form.Checkbox(field.Name, answer), nil

	case len(field.Options) > 0:
		value, _ := current.(string)
		labels := make([]string, len(field.Options))
		defaultIndex := 0
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == value {
				defaultIndex = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      fieldLabel(field),
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         field.Help,
		})
		if err != nil {
			return form.Input{}, err
		}
		chosen := ""
		if idx >= 0 && idx < len(field.Options) {
			chosen = field.Options[idx].Value
		}
		inputType := form.InputSelect
		if field.Widget == model.WidgetRadio {
			inputType = form.InputRadio
		}
		return form.Input{Name: field.Name, Type: inputType, Value: chosen}, nil

	default:
		value, _ := current.(string)
		help := field.Help
		if help == "" {
			help = field.Placeholder
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: fieldLabel(field),
			Default: value,
			Help:    help,
		})
		if err != nil {
			return form.Input{}, err
		}
		return form.Text(field.Name, answer), nil
	}
}
