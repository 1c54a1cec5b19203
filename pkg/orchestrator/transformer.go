package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

// Transformer mutates a FormModel once UI schema decorators have run.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides from a YAML (or JSON)
// document:
//
//	title: Join the club
//	submitLabel: Sign up
//	fields:
//	  username:
//	    label: "Handle:"
//	    placeholder: pick a handle
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title       string                `yaml:"title"`
	SubmitLabel string                `yaml:"submitLabel"`
	Metadata    map[string]string     `yaml:"metadata"`
	Fields      map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label       string            `yaml:"label"`
	Placeholder string            `yaml:"placeholder"`
	Help        string            `yaml:"help"`
	Metadata    map[string]string `yaml:"metadata"`
}

// NewPresetTransformer constructs a transformer from raw bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto form. Unknown field names are an error so
// typos surface instead of silently doing nothing.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}
	if t.document.SubmitLabel != "" {
		form.SubmitLabel = t.document.SubmitLabel
	}
	form.Metadata = mergeStringMap(form.Metadata, t.document.Metadata)

	for name, patch := range t.document.Fields {
		field, ok := form.Field(name)
		if !ok {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
	field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
