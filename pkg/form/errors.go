package form

import "errors"

var (
	// ErrInvalid is returned by Submit while the form does not pass the
	// schema; the submit control is inert in that state.
	ErrInvalid = errors.New("form: values do not pass validation")
	// ErrSubmitInFlight is returned by Submit while a previous submission has
	// not settled.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrNoSubmitter is returned by Submit when no transport is configured.
	ErrNoSubmitter = errors.New("form: submitter is not configured")
	// ErrUnknownField is returned by Change for names outside the form.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrValueType is returned by Change when a value cannot be stored in
	// the field.
	ErrValueType = errors.New("form: invalid value type")
)

// userMessenger is implemented by transport errors that carry a message meant
// for the person filling in the form.
type userMessenger interface {
	UserMessage() string
}

// FailureMessage extracts the text shown for a failed submission.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessenger
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
