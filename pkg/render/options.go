package render

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/schema"
)

// RenderOptions describe per-request data renderers use to reflect the form
// state without mutating the model.
type RenderOptions struct {
	// Values pre-populates controls, keyed by field name.
	Values map[string]any
	// Errors holds the message shown next to each field; "" renders nothing.
	Errors map[string]string
	// Valid mirrors the form validity flag.
	Valid bool
	// Submitting is true while a request is pending.
	Submitting bool
	// Success and Failure carry the server message of the last attempt.
	Success string
	Failure string
	// Hidden fields are emitted as hidden inputs (CSRF token and friends).
	Hidden map[string]string
	// Action overrides the form action attribute. Empty keeps the model
	// endpoint.
	Action string
}

// SubmitDisabled reports whether the submit control must be inert.
func (o RenderOptions) SubmitDisabled() bool {
	return !o.Valid || o.Submitting
}

// Value returns the rendered value for a field as a string.
func (o RenderOptions) Value(name string) string {
	v, ok := o.Values[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Checked reports whether a boolean field is on.
func (o RenderOptions) Checked(name string) bool {
	b, _ := o.Values[name].(bool)
	return b
}

// OptionsFromSnapshot maps a form snapshot onto render options.
func OptionsFromSnapshot(snap form.Snapshot) RenderOptions {
	errs := make(map[string]string, len(snap.Errors))
	for name, msg := range snap.Errors {
		errs[name] = msg
	}
	return RenderOptions{
		Values: map[string]any{
			schema.FieldUsername:    snap.Values.Username,
			schema.FieldFavLanguage: snap.Values.FavLanguage,
			schema.FieldFavFood:     snap.Values.FavFood,
			schema.FieldAgreement:   snap.Values.Agreement,
		},
		Errors:     errs,
		Valid:      snap.Valid,
		Submitting: snap.Submitting,
		Success:    snap.Result.Success,
		Failure:    snap.Result.Failure,
	}
}
