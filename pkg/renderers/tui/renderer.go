// Package tui fills the registration form from a terminal and renders plain
// text summaries of form state.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Renderer implements render.Renderer for terminals and drives interactive
// sessions through Fill.
type Renderer struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	logger      *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer backed by survey unless WithPromptDriver
// says otherwise.
func New(options ...Option) *Renderer {
	r := &Renderer{
		theme:       DefaultTheme,
		maxAttempts: 5,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format produced by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes a plain text summary of the form state: one line per field
// with its value, an indented message for invalid fields, the last server
// message and whether submission is available.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	if form.Title != "" {
		b.WriteString(form.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", len([]rune(form.Title))))
		b.WriteByte('\n')
	}
	if opts.Success != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.SuccessPrefix, opts.Success)
	}
	if opts.Failure != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, opts.Failure)
	}
	for _, field := range form.Fields {
		fmt.Fprintf(&b, "%s: %s\n", fieldLabel(field), displayValue(field, opts))
		if msg := opts.Errors[field.Name]; msg != "" {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, msg)
		}
	}

	state := "enabled"
	switch {
	case opts.Submitting:
		state = "pending"
	case opts.SubmitDisabled():
		state = "disabled"
	}
	fmt.Fprintf(&b, "%s: %s\n", submitLabel(form), state)
	return b.Bytes(), nil
}

func fieldLabel(field model.Field) string {
	label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(field.Label), ":"))
	if label == "" {
		return field.Name
	}
	return label
}

func submitLabel(form model.FormModel) string {
	if form.SubmitLabel != "" {
		return form.SubmitLabel
	}
	return "Submit"
}

func displayValue(field model.Field, opts render.RenderOptions) string {
	if field.Type == model.FieldTypeBoolean {
		if opts.Checked(field.Name) {
			return "yes"
		}
		return "no"
	}
	value := opts.Value(field.Name)
	if value == "" {
		return "(empty)"
	}
	for _, opt := range field.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
