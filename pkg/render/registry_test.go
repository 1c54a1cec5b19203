package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

type stubRenderer struct {
	name string
	got  render.RenderOptions
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, f model.FormModel, opts render.RenderOptions) ([]byte, error) {
	s.got = opts
	return []byte(s.name + ":" + f.ID), nil
}

func TestRegistry_DefaultAndLookup(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(&stubRenderer{name: "vanilla"})
	reg.MustRegister(&stubRenderer{name: "text"})

	if err := reg.Register(&stubRenderer{name: "text"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"text", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	out, contentType, err := reg.Render(context.Background(), "", model.FormModel{ID: "registration"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render default: %v", err)
	}
	if string(out) != "vanilla:registration" || contentType != "text/plain" {
		t.Fatalf("unexpected default render %q %q", out, contentType)
	}

	if err := reg.SetDefault("text"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got := reg.MustGet("").Name(); got != "text" {
		t.Fatalf("default = %q", got)
	}

	if _, err := reg.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if err := reg.SetDefault("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOptionsFromSnapshot(t *testing.T) {
	snap := form.Snapshot{
		Values: form.Values{Username: "al", FavLanguage: "rust", Agreement: true},
		Errors: form.FieldErrors{"username": "username must be at least 3 characters"},
		Result: form.Result{Failure: "Username is taken"},
	}

	opts := render.OptionsFromSnapshot(snap)
	if opts.Value("username") != "al" || opts.Value("favFood") != "" {
		t.Fatalf("unexpected values %+v", opts.Values)
	}
	if !opts.Checked("agreement") || opts.Checked("username") {
		t.Fatalf("unexpected checked state %+v", opts.Values)
	}
	if opts.Errors["username"] != "username must be at least 3 characters" {
		t.Fatalf("errors not carried: %+v", opts.Errors)
	}
	if opts.Failure != "Username is taken" || opts.Success != "" {
		t.Fatalf("result not carried: %+v", opts)
	}
	if !opts.SubmitDisabled() {
		t.Fatalf("invalid snapshot must disable submit")
	}

	snap.Valid = true
	if render.OptionsFromSnapshot(snap).SubmitDisabled() {
		t.Fatalf("valid idle snapshot should enable submit")
	}
	snap.Submitting = true
	if !render.OptionsFromSnapshot(snap).SubmitDisabled() {
		t.Fatalf("submitting snapshot must disable submit")
	}
}
