package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Submitter delivers a payload to the registration endpoint and returns the
// success message the endpoint answered with.
type Submitter interface {
	Submit(ctx context.Context, payload any) (string, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload any) (string, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, payload any) (string, error) {
	return f(ctx, payload)
}

// Outcome labels a settled submit attempt.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeRejected Outcome = "rejected"
)

// Recorder observes form activity. The metrics package provides the
// Prometheus implementation.
type Recorder interface {
	FieldChanged(field string, valid bool)
	Submitted(outcome Outcome, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) FieldChanged(string, bool)          {}
func (nopRecorder) Submitted(Outcome, time.Duration) {}

// Option customises a Form.
type Option func(*Form)

// WithSchema replaces the registration schema.
func WithSchema(s *schema.Schema) Option {
	return func(f *Form) {
		if s != nil {
			f.schema = s
		}
	}
}

// WithSubmitter sets the transport used by Submit.
func WithSubmitter(s Submitter) Option {
	return func(f *Form) {
		f.submitter = s
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(f *Form) {
		if r != nil {
			f.recorder = r
		}
	}
}

// WithClock overrides the time source used to measure submissions.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}
