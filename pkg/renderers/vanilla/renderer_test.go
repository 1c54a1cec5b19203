package vanilla_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-regform/pkg/form"
	pkgmodel "github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/uischema"
)

func registrationModel(t *testing.T) pkgmodel.FormModel {
	t.Helper()
	model, err := pkgmodel.NewBuilder().Build(schema.Registration(), "https://example.test/registration", "POST")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	store, err := uischema.Default()
	if err != nil {
		t.Fatalf("uischema: %v", err)
	}
	if err := uischema.NewDecorator(store).Decorate(&model); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	return model
}

func renderDoc(t *testing.T, r *vanilla.Renderer, opts render.RenderOptions) *goquery.Document {
	t.Helper()
	out, err := r.Render(context.Background(), registrationModel(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_InitialForm(t *testing.T) {
	r := newRenderer(t)
	doc := renderDoc(t, r, render.OptionsFromSnapshot(form.New().Snapshot()))

	if got := doc.Find("h2").Text(); got != "Create an Account" {
		t.Fatalf("title = %q", got)
	}
	if action, _ := doc.Find("form").Attr("action"); action != "https://example.test/registration" {
		t.Fatalf("action = %q", action)
	}
	if doc.Find("input#username[type=text]").Length() != 1 {
		t.Fatalf("username input missing")
	}
	if placeholder, _ := doc.Find("input#username").Attr("placeholder"); placeholder != "Type Username" {
		t.Fatalf("placeholder = %q", placeholder)
	}
	if max, _ := doc.Find("input#username").Attr("maxlength"); max != "20" {
		t.Fatalf("maxlength = %q", max)
	}
	if n := doc.Find(`input[type=radio][name=favLanguage]`).Length(); n != 2 {
		t.Fatalf("expected 2 language radios, got %d", n)
	}
	if n := doc.Find("select#favFood option").Length(); n != 4 {
		t.Fatalf("expected placeholder plus 3 food options, got %d", n)
	}
	if doc.Find("input#agreement[type=checkbox]").Length() != 1 {
		t.Fatalf("agreement checkbox missing")
	}
	if doc.Find(".validation").Length() != 0 {
		t.Fatalf("fresh form should not show validation messages")
	}
	if doc.Find("h4.success, h4.error").Length() != 0 {
		t.Fatalf("fresh form should not show result messages")
	}
	if _, disabled := doc.Find("input[type=submit]").Attr("disabled"); !disabled {
		t.Fatalf("submit must be disabled while invalid")
	}
	if href, _ := doc.Find("link[rel=stylesheet]").Attr("href"); href != "/assets/regform.css" {
		t.Fatalf("stylesheet href = %q", href)
	}
}

func TestRender_ReflectsState(t *testing.T) {
	f := form.New()
	for _, in := range []form.Input{
		form.Text("username", "ab"),
		form.Text("favLanguage", "rust"),
		form.Text("favFood", "pizza"),
		form.Checkbox("agreement", true),
	} {
		if err := f.Change(in); err != nil {
			t.Fatalf("change: %v", err)
		}
	}
	opts := render.OptionsFromSnapshot(f.Snapshot())
	opts.Failure = "<script>alert(1)</script>Username is taken"
	opts.Hidden = render.MergeHiddenFields(nil, render.CSRFToken("", "tok"))

	doc := renderDoc(t, newRenderer(t), opts)

	if got := doc.Find(`[data-field=username] .validation`).Text(); got != "username must be at least 3 characters" {
		t.Fatalf("username message = %q", got)
	}
	if v, _ := doc.Find("input#username").Attr("value"); v != "ab" {
		t.Fatalf("username value = %q", v)
	}
	if _, checked := doc.Find(`input[name=favLanguage][value=rust]`).Attr("checked"); !checked {
		t.Fatalf("rust radio should be checked")
	}
	if _, selected := doc.Find(`select#favFood option[value=pizza]`).Attr("selected"); !selected {
		t.Fatalf("pizza should be selected")
	}
	if _, checked := doc.Find("input#agreement").Attr("checked"); !checked {
		t.Fatalf("agreement should be checked")
	}
	failure := doc.Find("h4.error")
	if failure.Find("script").Length() != 0 || !strings.Contains(failure.Text(), "Username is taken") {
		t.Fatalf("failure message not sanitized: %q", failure.Text())
	}
	if v, _ := doc.Find(`input[type=hidden][name=_csrf]`).Attr("value"); v != "tok" {
		t.Fatalf("csrf value = %q", v)
	}
	if _, disabled := doc.Find("input[type=submit]").Attr("disabled"); !disabled {
		t.Fatalf("submit must stay disabled while a field is invalid")
	}
}

func TestRender_SubmitEnabledWhenValid(t *testing.T) {
	opts := render.RenderOptions{Valid: true, Success: "Welcome!"}
	doc := renderDoc(t, newRenderer(t), opts)

	if _, disabled := doc.Find("input[type=submit]").Attr("disabled"); disabled {
		t.Fatalf("submit should be enabled")
	}
	if got := doc.Find("h4.success").Text(); got != "Welcome!" {
		t.Fatalf("success = %q", got)
	}

	opts.Submitting = true
	doc = renderDoc(t, newRenderer(t), opts)
	if _, disabled := doc.Find("input[type=submit]").Attr("disabled"); !disabled {
		t.Fatalf("submit must be disabled while submitting")
	}
}

func TestRender_Theme(t *testing.T) {
	cfg, err := vanilla.ThemeConfig(vanilla.DefaultManifest(), "dark", map[string]string{"color-accent": "#ff0000"})
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if cfg.CSSVars["--color-bg"] != "#1f2933" || cfg.CSSVars["--color-accent"] != "#ff0000" {
		t.Fatalf("css vars not merged: %v", cfg.CSSVars)
	}

	doc := renderDoc(t, newRenderer(t, vanilla.WithTheme(cfg)), render.RenderOptions{})
	container := doc.Find(".regform")
	if v, _ := container.Attr("data-variant"); v != "dark" {
		t.Fatalf("variant = %q", v)
	}
	style, _ := container.Attr("style")
	if !strings.Contains(style, "--color-accent: #ff0000;") {
		t.Fatalf("style missing css var: %q", style)
	}

	if _, err := vanilla.ThemeConfig(vanilla.DefaultManifest(), "sepia", nil); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestRender_InlineStyles(t *testing.T) {
	doc := renderDoc(t, newRenderer(t, vanilla.WithInlineStyles(true)), render.RenderOptions{})
	if !strings.Contains(doc.Find("style").Text(), ".regform") {
		t.Fatalf("expected embedded stylesheet")
	}
	if doc.Find("link[rel=stylesheet]").Length() != 0 {
		t.Fatalf("inline mode should not link the stylesheet")
	}
}

func TestAssetsFS_ServesStylesheet(t *testing.T) {
	f, err := vanilla.AssetsFS().Open(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
	_ = f.Close()
}
