package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Values is the registration payload. The JSON shape is what the endpoint
// receives.
type Values struct {
	Username    string `json:"username"`
	FavLanguage string `json:"favLanguage"`
	FavFood     string `json:"favFood"`
	Agreement   bool   `json:"agreement"`
}

// DefaultValues returns the values a fresh or freshly reset form holds.
func DefaultValues() Values {
	return Values{}
}

// Get returns the value stored under a field name.
func (v Values) Get(name string) (any, bool) {
	switch name {
	case schema.FieldUsername:
		return v.Username, true
	case schema.FieldFavLanguage:
		return v.FavLanguage, true
	case schema.FieldFavFood:
		return v.FavFood, true
	case schema.FieldAgreement:
		return v.Agreement, true
	default:
		return nil, false
	}
}

// Set stores value under a field name. Text fields take strings; agreement
// takes a bool or a "true"/"false" string.
func (v *Values) Set(name string, value any) error {
	switch name {
	case schema.FieldUsername, schema.FieldFavLanguage, schema.FieldFavFood:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrValueType, name, value)
		}
		switch name {
		case schema.FieldUsername:
			v.Username = s
		case schema.FieldFavLanguage:
			v.FavLanguage = s
		default:
			v.FavFood = s
		}
		return nil
	case schema.FieldAgreement:
		switch b := value.(type) {
		case bool:
			v.Agreement = b
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return fmt.Errorf("%w: %s expects a boolean, got %q", ErrValueType, name, b)
			}
			v.Agreement = parsed
		default:
			return fmt.Errorf("%w: %s expects a boolean, got %T", ErrValueType, name, value)
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
}

// Map returns the values keyed by field name, the shape schema validation
// consumes.
func (v Values) Map() map[string]any {
	return map[string]any{
		schema.FieldUsername:    v.Username,
		schema.FieldFavLanguage: v.FavLanguage,
		schema.FieldFavFood:     v.FavFood,
		schema.FieldAgreement:   v.Agreement,
	}
}

// FieldErrors maps a field name to its current message; "" means valid.
type FieldErrors map[string]string

func newFieldErrors(fields []string) FieldErrors {
	out := make(FieldErrors, len(fields))
	for _, name := range fields {
		out[name] = ""
	}
	return out
}

func (e FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Any reports whether at least one field carries a message.
func (e FieldErrors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Result is the outcome of the most recent submit attempt. At most one of
// Success and Failure is set.
type Result struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// Empty reports whether no attempt has produced a message yet.
func (r Result) Empty() bool {
	return r.Success == "" && r.Failure == ""
}
