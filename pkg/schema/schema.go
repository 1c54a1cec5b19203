// Package schema holds the registration form's validation rules. Each field is
// an ordered rule chain (trim, required, min/max length, oneOf) whose failures
// map to entries of a named message dictionary. Validation is synchronous;
// callers that model it as a reaction can run it inline.
package schema

import (
	"fmt"
)

// Field names of the registration form.
const (
	FieldUsername    = "username"
	FieldFavLanguage = "favLanguage"
	FieldFavFood     = "favFood"
	FieldAgreement   = "agreement"
)

var (
	// LanguageOptions are the accepted favLanguage values.
	LanguageOptions = []string{"javascript", "rust"}
	// FoodOptions are the accepted favFood values.
	FoodOptions = []string{"broccoli", "spaghetti", "pizza"}
)

// Schema is an ordered set of field chains plus the message dictionary they
// resolve against.
type Schema struct {
	fields   []*Field
	index    map[string]*Field
	messages Messages
}

// New assembles a schema from field chains. Duplicate or unnamed fields are
// rejected.
func New(messages Messages, fields ...*Field) (*Schema, error) {
	if messages == nil {
		messages = DefaultMessages()
	}
	s := &Schema{
		index:    make(map[string]*Field, len(fields)),
		messages: messages,
	}
	for _, field := range fields {
		if field == nil {
			continue
		}
		if field.name == "" {
			return nil, fmt.Errorf("schema: field name is required")
		}
		if _, exists := s.index[field.name]; exists {
			return nil, fmt.Errorf("schema: duplicate field %q", field.name)
		}
		s.fields = append(s.fields, field)
		s.index[field.name] = field
	}
	return s, nil
}

// MustNew panics when New fails. Intended for package-level wiring.
func MustNew(messages Messages, fields ...*Field) *Schema {
	s, err := New(messages, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Registration returns the built-in registration schema.
func Registration() *Schema {
	return MustNew(DefaultMessages(),
		String(FieldUsername).
			Trim().
			Required(UsernameRequired).
			Min(3, UsernameMin).
			Max(20, UsernameMax),
		String(FieldFavLanguage).
			Trim().
			Required(FavLanguageRequired).
			OneOf(LanguageOptions, FavLanguageOptions),
		String(FieldFavFood).
			Trim().
			Required(FavFoodRequired).
			OneOf(FoodOptions, FavFoodOptions),
		Boolean(FieldAgreement).
			Required(AgreementRequired).
			OneOf([]string{"true"}, AgreementOptions),
	)
}

// WithMessages returns a copy of the schema resolving against msgs merged
// over the current dictionary.
func (s *Schema) WithMessages(msgs Messages) *Schema {
	clone := &Schema{
		fields:   s.fields,
		index:    s.index,
		messages: s.messages.Merge(msgs),
	}
	return clone
}

// Messages returns a copy of the dictionary in use.
func (s *Schema) Messages() Messages {
	return s.messages.Merge(nil)
}

// Fields returns field names in declaration order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.name
	}
	return names
}

// Field looks up a field chain by name.
func (s *Schema) Field(name string) (*Field, bool) {
	field, ok := s.index[name]
	return field, ok
}

// ValidateAt validates a single field value. It returns a *ValidationError
// for rule failures and ErrUnknownField for names outside the schema.
func (s *Schema) ValidateAt(name string, value any) error {
	field, ok := s.index[name]
	if !ok {
		return unknownField(name)
	}
	return field.Validate(value, s.messages)
}

// Validate checks every field and returns the message per field, "" for
// fields that pass.
func (s *Schema) Validate(values map[string]any) map[string]string {
	out := make(map[string]string, len(s.fields))
	for _, field := range s.fields {
		out[field.name] = MessageOf(field.Validate(values[field.name], s.messages))
	}
	return out
}

// IsValid reports whether every field passes.
func (s *Schema) IsValid(values map[string]any) bool {
	for _, field := range s.fields {
		if err := field.Validate(values[field.name], s.messages); err != nil {
			return false
		}
	}
	return true
}
