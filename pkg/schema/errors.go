package schema

import (
	"errors"
	"fmt"
)

// Rule identifiers reported on ValidationError.
const (
	RuleRequired = "required"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleOneOf    = "oneOf"
	RuleType     = "type"
)

var (
	// ErrUnknownField is returned when a field is not part of the schema.
	ErrUnknownField = errors.New("schema: unknown field")
)

// ValidationError describes the first rule a field value failed.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// MessageOf returns the user-facing message for err, or "" when err is nil.
// Errors that are not validation errors are reported verbatim.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func unknownField(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownField, name)
}
