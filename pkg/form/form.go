package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Snapshot is a consistent copy of the form state.
type Snapshot struct {
	Values     Values      `json:"values"`
	Errors     FieldErrors `json:"errors"`
	Valid      bool        `json:"valid"`
	Submitting bool        `json:"submitting"`
	Result     Result      `json:"result"`
}

// CanSubmit reports whether the submit control is enabled.
func (s Snapshot) CanSubmit() bool {
	return s.Valid && !s.Submitting
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

// Form holds the registration state: current values, per-field messages, the
// overall validity flag and the result of the last submit attempt. It is safe
// for concurrent use.
type Form struct {
	schema    *schema.Schema
	submitter Submitter
	logger    *slog.Logger
	recorder  Recorder
	now       func() time.Time

	mu         sync.Mutex
	values     Values
	errors     FieldErrors
	valid      bool
	submitting bool
	result     Result
	listeners  map[int]Listener
	nextID     int
}

// New builds a Form at its initial state: default values, no messages, and a
// validity flag derived from the defaults.
func New(opts ...Option) *Form {
	f := &Form{
		schema:    schema.Registration(),
		logger:    slog.Default(),
		recorder:  nopRecorder{},
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.errors = newFieldErrors(f.fieldNames())
	f.setValues(DefaultValues())
	return f
}

// Schema returns the schema the form validates against.
func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// CanSubmit reports whether Submit would currently start a request.
func (f *Form) CanSubmit() bool {
	return f.Snapshot().CanSubmit()
}

// Subscribe registers a listener and returns a function that removes it.
func (f *Form) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = l
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners, id)
			f.mu.Unlock()
		})
	}
}

// Change stores a field value, validates that field alone and refreshes the
// overall validity flag. Other fields keep their messages.
func (f *Form) Change(in Input) error {
	if _, ok := f.schema.Field(in.Name); !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, in.Name)
	}

	f.mu.Lock()
	next := f.values
	if err := next.Set(in.Name, in.normalized()); err != nil {
		f.mu.Unlock()
		return err
	}

	msg := ""
	if err := f.schema.ValidateAt(in.Name, in.normalized()); err != nil {
		msg = schema.MessageOf(err)
	}
	f.errors[in.Name] = msg
	f.setValues(next)
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.recorder.FieldChanged(in.Name, msg == "")
	f.logger.Debug("form field changed", "field", in.Name, "valid", msg == "", "form_valid", snap.Valid)
	f.notify(snap)
	return nil
}

// Submit posts the current values. It refuses to start while the form is
// invalid or while another submission is pending. A transport failure is not
// returned as an error: it settles into Result.Failure and the values stay.
// On success the values return to their defaults.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	switch {
	case f.submitting:
		f.mu.Unlock()
		f.recorder.Submitted(OutcomeRejected, 0)
		return Result{}, ErrSubmitInFlight
	case !f.valid:
		f.mu.Unlock()
		f.recorder.Submitted(OutcomeRejected, 0)
		return Result{}, ErrInvalid
	case f.submitter == nil:
		f.mu.Unlock()
		return Result{}, ErrNoSubmitter
	}
	f.submitting = true
	payload := f.values
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	start := f.now()
	message, err := f.submitter.Submit(ctx, payload)
	elapsed := f.now().Sub(start)

	f.mu.Lock()
	f.submitting = false
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		f.result = Result{Failure: FailureMessage(err)}
	} else {
		f.result = Result{Success: message}
		f.errors = newFieldErrors(f.fieldNames())
		f.setValues(DefaultValues())
	}
	result := f.result
	snap = f.snapshotLocked()
	f.mu.Unlock()

	f.recorder.Submitted(outcome, elapsed)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelInfo
		}
		f.logger.Log(ctx, level, "registration failed", "message", result.Failure, "elapsed", elapsed, "error", err)
	} else {
		f.logger.Info("registration submitted", "message", result.Success, "elapsed", elapsed)
	}
	f.notify(snap)
	return result, nil
}

// Reset restores the initial state. It is ignored while a submission is
// pending.
func (f *Form) Reset() {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return
	}
	f.errors = newFieldErrors(f.fieldNames())
	f.result = Result{}
	f.setValues(DefaultValues())
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)
}

// setValues is the single write path for values, so the validity flag always
// describes the stored values. Caller holds mu (or owns f exclusively).
func (f *Form) setValues(v Values) {
	f.values = v
	f.valid = f.schema.IsValid(v.Map())
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Values:     f.values,
		Errors:     f.errors.clone(),
		Valid:      f.valid,
		Submitting: f.submitting,
		Result:     f.result,
	}
}

func (f *Form) notify(snap Snapshot) {
	f.mu.Lock()
	listeners := make([]Listener, 0, len(f.listeners))
	for id := 0; id < f.nextID; id++ {
		if l, ok := f.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	f.mu.Unlock()
	for _, l := range listeners {
		l(snap)
	}
}

func (f *Form) fieldNames() []string {
	return f.schema.Fields()
}
