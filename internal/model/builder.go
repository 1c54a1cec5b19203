package model

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/schema"
)

var (
	errSchemaMissing   = errors.New("model builder: schema is required")
	errEndpointMissing = errors.New("model builder: endpoint is required")
)

// Options configures the behaviour of the Builder.
type Options struct {
	ID      string
	Labeler func(string) string
}

// Builder converts a validation schema into a form model suitable for
// rendering.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	if options.Labeler == nil {
		options.Labeler = DefaultLabeler
	}
	if options.ID == "" {
		options.ID = "registration"
	}
	return &Builder{opts: options}
}

// Build derives one field per schema entry, in schema order. Boolean fields
// become checkboxes, strings with a oneOf rule become selects and the rest are
// text inputs; presentation overlays can refine widgets afterwards.
func (b *Builder) Build(s *schema.Schema, endpoint, method string) (FormModel, error) {
	if s == nil {
		return FormModel{}, errSchemaMissing
	}
	if strings.TrimSpace(endpoint) == "" {
		return FormModel{}, errEndpointMissing
	}
	if method == "" {
		method = http.MethodPost
	}

	form := FormModel{
		ID:       b.opts.ID,
		Endpoint: endpoint,
		Method:   strings.ToUpper(method),
	}

	for _, name := range s.Fields() {
		rules, _ := s.Field(name)
		form.Fields = append(form.Fields, b.field(rules))
	}
	return form, nil
}

func (b *Builder) field(rules *schema.Field) Field {
	field := Field{
		Name:     rules.Name(),
		Type:     FieldTypeString,
		Widget:   WidgetText,
		Required: rules.IsRequired(),
		Label:    b.opts.Labeler(rules.Name()),
	}

	if rules.Type() == schema.TypeBoolean {
		field.Type = FieldTypeBoolean
		field.Widget = WidgetCheckbox
	} else if options := rules.Options(); len(options) > 0 {
		field.Widget = WidgetSelect
		for _, value := range options {
			field.Options = append(field.Options, Option{Value: value, Label: b.opts.Labeler(value)})
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleOneOf,
			Params: map[string]string{"values": strings.Join(options, ",")},
		})
	}

	if field.Required {
		field.Validations = append([]ValidationRule{{Kind: ValidationRuleRequired}}, field.Validations...)
	}
	if min, ok := rules.MinLength(); ok {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(min)},
		})
	}
	if max, ok := rules.MaxLength(); ok {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(max)},
		})
	}
	return field
}

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label, splitting
// on separators and camelCase boundaries ("favLanguage" -> "Fav Language").
func DefaultLabeler(name string) string {
	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	prev := rune(0)
	for i, r := range input {
		if i > 0 && isLower(prev) && isUpper(r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func titleCase(words string) string {
	parts := strings.Fields(words)
	for i, part := range parts {
		lower := strings.ToLower(part)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}
