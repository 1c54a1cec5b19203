package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Type is the value kind a field accepts.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
)

// Step is one rule in a field chain. Steps run in declaration order and the
// first failing step decides the message.
type Step struct {
	Rule    string
	Limit   int
	Allowed []string
	Message MessageKey
}

// Field is the rule chain for a single form field. Build one with String or
// Boolean and the chained helpers.
type Field struct {
	name  string
	typ   Type
	trim  bool
	steps []Step
}

// String starts a string field chain.
func String(name string) *Field {
	return &Field{name: strings.TrimSpace(name), typ: TypeString}
}

// Boolean starts a boolean field chain.
func Boolean(name string) *Field {
	return &Field{name: strings.TrimSpace(name), typ: TypeBoolean}
}

// Trim strips surrounding whitespace before any rule runs.
func (f *Field) Trim() *Field {
	f.trim = true
	return f
}

// Required fails when the value is absent. For strings an empty (trimmed)
// value also counts as absent.
func (f *Field) Required(msg MessageKey) *Field {
	f.steps = append(f.steps, Step{Rule: RuleRequired, Message: msg})
	return f
}

// Min enforces a minimum character count.
func (f *Field) Min(limit int, msg MessageKey) *Field {
	f.steps = append(f.steps, Step{Rule: RuleMin, Limit: limit, Message: msg})
	return f
}

// Max enforces a maximum character count.
func (f *Field) Max(limit int, msg MessageKey) *Field {
	f.steps = append(f.steps, Step{Rule: RuleMax, Limit: limit, Message: msg})
	return f
}

// OneOf restricts the value to the allowed set. Boolean fields compare
// against "true"/"false".
func (f *Field) OneOf(allowed []string, msg MessageKey) *Field {
	f.steps = append(f.steps, Step{Rule: RuleOneOf, Allowed: append([]string(nil), allowed...), Message: msg})
	return f
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the accepted value kind.
func (f *Field) Type() Type { return f.typ }

// Trimmed reports whether the value is trimmed before validation.
func (f *Field) Trimmed() bool { return f.trim }

// Steps returns a copy of the rule chain.
func (f *Field) Steps() []Step {
	out := make([]Step, len(f.steps))
	for i, step := range f.steps {
		step.Allowed = append([]string(nil), step.Allowed...)
		out[i] = step
	}
	return out
}

// IsRequired reports whether the chain contains a required step.
func (f *Field) IsRequired() bool {
	_, ok := f.step(RuleRequired)
	return ok
}

// MinLength returns the min step limit, if any.
func (f *Field) MinLength() (int, bool) {
	step, ok := f.step(RuleMin)
	return step.Limit, ok
}

// MaxLength returns the max step limit, if any.
func (f *Field) MaxLength() (int, bool) {
	step, ok := f.step(RuleMax)
	return step.Limit, ok
}

// Options returns the oneOf allowed values, if any.
func (f *Field) Options() []string {
	step, ok := f.step(RuleOneOf)
	if !ok {
		return nil
	}
	return append([]string(nil), step.Allowed...)
}

func (f *Field) step(rule string) (Step, bool) {
	for _, step := range f.steps {
		if step.Rule == rule {
			return step, true
		}
	}
	return Step{}, false
}

// Validate runs the chain against value using msgs for the failure text.
func (f *Field) Validate(value any, msgs Messages) error {
	switch f.typ {
	case TypeBoolean:
		return f.validateBool(value, msgs)
	default:
		return f.validateString(value, msgs)
	}
}

func (f *Field) validateString(value any, msgs Messages) error {
	str, present, ok := castString(value)
	if !ok {
		return f.typeError()
	}
	if present && f.trim {
		str = strings.TrimSpace(str)
	}

	for _, step := range f.steps {
		switch step.Rule {
		case RuleRequired:
			if !present || str == "" {
				return f.fail(step, msgs)
			}
		case RuleMin:
			if present && utf8.RuneCountInString(str) < step.Limit {
				return f.fail(step, msgs)
			}
		case RuleMax:
			if present && utf8.RuneCountInString(str) > step.Limit {
				return f.fail(step, msgs)
			}
		case RuleOneOf:
			if present && !contains(step.Allowed, str) {
				return f.fail(step, msgs)
			}
		}
	}
	return nil
}

func (f *Field) validateBool(value any, msgs Messages) error {
	b, present, ok := castBool(value)
	if !ok {
		return f.typeError()
	}

	for _, step := range f.steps {
		switch step.Rule {
		case RuleRequired:
			if !present {
				return f.fail(step, msgs)
			}
		case RuleOneOf:
			if present && !contains(step.Allowed, strconv.FormatBool(b)) {
				return f.fail(step, msgs)
			}
		}
	}
	return nil
}

func (f *Field) fail(step Step, msgs Messages) error {
	return &ValidationError{
		Field:   f.name,
		Rule:    step.Rule,
		Message: msgs.Text(step.Message),
	}
}

func (f *Field) typeError() error {
	return &ValidationError{
		Field:   f.name,
		Rule:    RuleType,
		Message: fmt.Sprintf("%s must be a `%s` type", f.name, f.typ),
	}
}

func castString(value any) (string, bool, bool) {
	switch v := value.(type) {
	case nil:
		return "", false, true
	case string:
		return v, true, true
	case *string:
		if v == nil {
			return "", false, true
		}
		return *v, true, true
	case fmt.Stringer:
		return v.String(), true, true
	case bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return fmt.Sprint(v), true, true
	default:
		return "", false, false
	}
}

func castBool(value any) (bool, bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false, true
	case bool:
		return v, true, true
	case *bool:
		if v == nil {
			return false, false, true
		}
		return *v, true, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, false, true
		}
		parsed, err := strconv.ParseBool(trimmed)
		if err != nil {
			return false, false, false
		}
		return parsed, true, true
	default:
		return false, false, false
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
