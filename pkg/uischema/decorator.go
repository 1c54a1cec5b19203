package uischema

import (
	"fmt"
	"strings"

	pkgmodel "github.com/goliatone/go-regform/pkg/model"
)

// Decorator applies overlay copy and widgets to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model. Overlays that reference fields,
// widgets or option values the model does not know about are rejected so a
// stale overlay cannot silently hide a choice.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	overlay, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}

	if overlay.Form.Title != "" {
		form.Title = overlay.Form.Title
	}
	if overlay.Form.SubmitLabel != "" {
		form.SubmitLabel = overlay.Form.SubmitLabel
	}
	form.Metadata = mergeStringMap(form.Metadata, overlay.Form.Metadata)

	for name, cfg := range overlay.Fields {
		field, ok := form.Field(name)
		if !ok {
			return fmt.Errorf("uischema: form %q (file %s) configures unknown field %q", overlay.ID, overlay.Source, name)
		}
		if err := applyField(field, cfg); err != nil {
			return fmt.Errorf("uischema: form %q field %q: %w", overlay.ID, name, err)
		}
	}
	return nil
}

func applyField(field *pkgmodel.Field, cfg FieldConfig) error {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Help != "" {
		field.Help = cfg.Help
	}
	if widget := strings.TrimSpace(cfg.Widget); widget != "" {
		w, err := widgetFor(field, widget)
		if err != nil {
			return err
		}
		field.Widget = w
	}
	if len(cfg.Options) > 0 {
		ordered, err := reorderOptions(field.Options, cfg.Options)
		if err != nil {
			return err
		}
		field.Options = ordered
	}
	return nil
}

func widgetFor(field *pkgmodel.Field, raw string) (pkgmodel.Widget, error) {
	w := pkgmodel.Widget(strings.ToLower(raw))
	switch w {
	case pkgmodel.WidgetText:
		if field.Type != pkgmodel.FieldTypeString {
			return "", fmt.Errorf("widget %q requires a string field", w)
		}
	case pkgmodel.WidgetRadio, pkgmodel.WidgetSelect:
		if len(field.Options) == 0 {
			return "", fmt.Errorf("widget %q requires options", w)
		}
	case pkgmodel.WidgetCheckbox:
		if field.Type != pkgmodel.FieldTypeBoolean {
			return "", fmt.Errorf("widget %q requires a boolean field", w)
		}
	default:
		return "", fmt.Errorf("unknown widget %q", raw)
	}
	return w, nil
}

// reorderOptions places configured options first, in overlay order, and keeps
// any remaining model options after them.
func reorderOptions(current []pkgmodel.Option, configured []OptionConfig) ([]pkgmodel.Option, error) {
	byValue := make(map[string]pkgmodel.Option, len(current))
	for _, opt := range current {
		byValue[opt.Value] = opt
	}

	out := make([]pkgmodel.Option, 0, len(current))
	used := make(map[string]struct{}, len(configured))
	for _, cfg := range configured {
		opt, ok := byValue[cfg.Value]
		if !ok {
			return nil, fmt.Errorf("unknown option %q", cfg.Value)
		}
		if _, dup := used[cfg.Value]; dup {
			return nil, fmt.Errorf("duplicate option %q", cfg.Value)
		}
		used[cfg.Value] = struct{}{}
		if cfg.Label != "" {
			opt.Label = cfg.Label
		}
		out = append(out, opt)
	}
	for _, opt := range current {
		if _, ok := used[opt.Value]; !ok {
			out = append(out, opt)
		}
	}
	return out, nil
}

func mergeStringMap(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(extra))
	}
	for k, v := range extra {
		base[k] = v
	}
	return base
}
