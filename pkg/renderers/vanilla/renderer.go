// Package vanilla renders the registration form as server-side HTML with no
// client runtime.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	"github.com/goliatone/go-regform/pkg/render/template/pongo"
)

const formTemplate = "templates/form.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved theme: CSS variables on the container and the
// stylesheet URL from the theme assets.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithInlineStyles embeds the default stylesheet in a <style> tag instead of
// linking it. Useful for standalone files.
func WithInlineStyles(inline bool) Option {
	return func(c *config) {
		c.inlineStyles = inline
	}
}

// Renderer is the HTML renderer.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	theme        *theme.RendererConfig
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:    templates,
		theme:        cfg.theme,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form with the state carried by options.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	name := formTemplate
	if r.theme != nil && r.theme.Partials[FormPartial] != "" {
		name = r.theme.Partials[FormPartial]
	}
	result, err := r.templates.RenderTemplate(name, r.view(form, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) view(form model.FormModel, options render.RenderOptions) map[string]any {
	action := options.Action
	if action == "" {
		action = form.Endpoint
	}
	submitLabel := form.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	hidden := make([]map[string]any, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, fieldView(field, options))
	}

	view := map[string]any{
		"form": map[string]any{
			"id":           form.ID,
			"title":        form.Title,
			"method":       form.Method,
			"submit_label": submitLabel,
		},
		"action":          action,
		"fields":          fields,
		"hidden":          hidden,
		"success":         sanitizeMessage(options.Success),
		"failure":         sanitizeMessage(options.Failure),
		"submit_disabled": options.SubmitDisabled(),
		"submitting":      options.Submitting,
	}

	stylesheet := "/assets/" + StylesheetName
	if r.theme != nil {
		view["theme_name"] = r.theme.Theme
		view["theme_variant"] = r.theme.Variant
		view["theme_style"] = cssVarsStyle(r.theme.CSSVars)
		if r.theme.AssetURL != nil {
			if url := r.theme.AssetURL("vanilla.stylesheet"); url != "" {
				stylesheet = url
			}
		}
	}
	if r.inlineStyles {
		view["inline_css"] = defaultStylesheet()
	} else {
		view["stylesheet"] = stylesheet
	}
	return view
}

func fieldView(field model.Field, options render.RenderOptions) map[string]any {
	value := options.Value(field.Name)
	view := map[string]any{
		"name":        field.Name,
		"widget":      string(field.Widget),
		"label":       field.Label,
		"placeholder": field.Placeholder,
		"help":        field.Help,
		"required":    field.Required,
		"value":       value,
		"checked":     options.Checked(field.Name),
		"error":       sanitizeMessage(options.Errors[field.Name]),
	}
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		view["minlength"] = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMaxLength); ok {
		view["maxlength"] = rule.Params["value"]
	}

	opts := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		opts = append(opts, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": opt.Value == value,
		})
	}
	view["options"] = opts
	return view
}
