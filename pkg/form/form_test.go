package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/schema"
)

type stubSubmitter struct {
	mu       sync.Mutex
	payloads []form.Values
	message  string
	err      error
}

func (s *stubSubmitter) Submit(_ context.Context, payload any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload.(form.Values))
	return s.message, s.err
}

type userError struct{ msg string }

func (e userError) Error() string       { return "status 422: " + e.msg }
func (e userError) UserMessage() string { return e.msg }

type recorded struct {
	changes  []string
	outcomes []form.Outcome
}

func (r *recorded) FieldChanged(field string, valid bool) {
	state := "invalid"
	if valid {
		state = "valid"
	}
	r.changes = append(r.changes, field+":"+state)
}

func (r *recorded) Submitted(outcome form.Outcome, _ time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

func fill(t *testing.T, f *form.Form, username, lang, food string, agree bool) {
	t.Helper()
	for _, in := range []form.Input{
		form.Text(schema.FieldUsername, username),
		{Name: schema.FieldFavLanguage, Type: form.InputRadio, Value: lang},
		{Name: schema.FieldFavFood, Type: form.InputSelect, Value: food},
		form.Checkbox(schema.FieldAgreement, agree),
	} {
		if err := f.Change(in); err != nil {
			t.Fatalf("change %s: %v", in.Name, err)
		}
	}
}

func TestNew_InitialState(t *testing.T) {
	f := form.New()
	snap := f.Snapshot()

	want := form.Snapshot{
		Values: form.DefaultValues(),
		Errors: form.FieldErrors{
			schema.FieldUsername:    "",
			schema.FieldFavLanguage: "",
			schema.FieldFavFood:     "",
			schema.FieldAgreement:   "",
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("initial snapshot mismatch (-want +got):\n%s", diff)
	}
	if f.CanSubmit() {
		t.Fatalf("fresh form must not be submittable")
	}
}

func TestChange_ValidatesOnlyChangedField(t *testing.T) {
	f := form.New()

	if err := f.Change(form.Text(schema.FieldUsername, "ab")); err != nil {
		t.Fatalf("change: %v", err)
	}
	snap := f.Snapshot()
	if got := snap.Errors[schema.FieldUsername]; got != "username must be at least 3 characters" {
		t.Fatalf("username message = %q", got)
	}
	if got := snap.Errors[schema.FieldFavFood]; got != "" {
		t.Fatalf("untouched field should keep an empty message, got %q", got)
	}

	if err := f.Change(form.Text(schema.FieldFavFood, "tacos")); err != nil {
		t.Fatalf("change: %v", err)
	}
	snap = f.Snapshot()
	if got := snap.Errors[schema.FieldFavFood]; got != "favFood must be either broccoli, spaghetti or pizza" {
		t.Fatalf("favFood message = %q", got)
	}
	if got := snap.Errors[schema.FieldUsername]; got != "username must be at least 3 characters" {
		t.Fatalf("earlier message should survive other changes, got %q", got)
	}

	if err := f.Change(form.Checkbox(schema.FieldAgreement, false)); err != nil {
		t.Fatalf("change: %v", err)
	}
	if got := f.Snapshot().Errors[schema.FieldAgreement]; got != "agreement must be accepted" {
		t.Fatalf("agreement message = %q", got)
	}
}

func TestChange_ValidityTracksValues(t *testing.T) {
	f := form.New()
	fill(t, f, "  alice  ", "rust", "pizza", true)
	if !f.CanSubmit() {
		t.Fatalf("expected form to be valid, snapshot %+v", f.Snapshot())
	}

	if err := f.Change(form.Text(schema.FieldUsername, "")); err != nil {
		t.Fatalf("change: %v", err)
	}
	snap := f.Snapshot()
	if snap.Valid {
		t.Fatalf("clearing username must invalidate the form")
	}
	if snap.Errors[schema.FieldUsername] != "username is required" {
		t.Fatalf("username message = %q", snap.Errors[schema.FieldUsername])
	}
}

func TestChange_Errors(t *testing.T) {
	f := form.New()

	if err := f.Change(form.Text("password", "x")); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Change(form.Text(schema.FieldAgreement, "maybe")); !errors.Is(err, form.ErrValueType) {
		t.Fatalf("expected ErrValueType, got %v", err)
	}
	if err := f.Change(form.Text(schema.FieldAgreement, "true")); err != nil {
		t.Fatalf("string booleans should be accepted: %v", err)
	}
	if !f.Snapshot().Values.Agreement {
		t.Fatalf("agreement should be stored as true")
	}
}

func TestSubmit_SuccessResetsForm(t *testing.T) {
	sub := &stubSubmitter{message: "Welcome aboard, alice!"}
	rec := &recorded{}
	f := form.New(form.WithSubmitter(sub), form.WithRecorder(rec))
	fill(t, f, " alice ", "javascript", "broccoli", true)

	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(form.Result{Success: "Welcome aboard, alice!"}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	wantPayload := []form.Values{{Username: " alice ", FavLanguage: "javascript", FavFood: "broccoli", Agreement: true}}
	if diff := cmp.Diff(wantPayload, sub.payloads); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	snap := f.Snapshot()
	if diff := cmp.Diff(form.DefaultValues(), snap.Values); diff != "" {
		t.Fatalf("values were not reset (-want +got):\n%s", diff)
	}
	if snap.Valid || snap.Submitting {
		t.Fatalf("reset form should be invalid and idle, got %+v", snap)
	}
	if diff := cmp.Diff([]form.Outcome{form.OutcomeSuccess}, rec.outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_FailureKeepsValues(t *testing.T) {
	sub := &stubSubmitter{err: userError{msg: "Username is taken"}}
	f := form.New(form.WithSubmitter(sub))
	fill(t, f, "bob", "rust", "pizza", true)
	before := f.Snapshot().Values

	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(form.Result{Failure: "Username is taken"}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	snap := f.Snapshot()
	if diff := cmp.Diff(before, snap.Values); diff != "" {
		t.Fatalf("values changed after failure (-want +got):\n%s", diff)
	}
	if !snap.CanSubmit() {
		t.Fatalf("form should be submittable again after a failure")
	}

	sub.err = nil
	sub.message = "ok"
	result, err = f.Submit(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if diff := cmp.Diff(form.Result{Success: "ok"}, result); diff != "" {
		t.Fatalf("retry should clear the failure (-want +got):\n%s", diff)
	}
}

func TestSubmit_PlainErrorUsesErrorText(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("connection refused")}
	f := form.New(form.WithSubmitter(sub))
	fill(t, f, "carol", "rust", "spaghetti", true)

	result, _ := f.Submit(context.Background())
	if result.Failure != "connection refused" {
		t.Fatalf("failure = %q", result.Failure)
	}
}

func TestSubmit_RejectsInvalidForm(t *testing.T) {
	sub := &stubSubmitter{}
	rec := &recorded{}
	f := form.New(form.WithSubmitter(sub), form.WithRecorder(rec))

	if _, err := f.Submit(context.Background()); !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(sub.payloads) != 0 {
		t.Fatalf("invalid form must not reach the submitter")
	}
	if diff := cmp.Diff([]form.Outcome{form.OutcomeRejected}, rec.outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_NoSubmitter(t *testing.T) {
	f := form.New()
	fill(t, f, "dave", "rust", "pizza", true)
	if _, err := f.Submit(context.Background()); !errors.Is(err, form.ErrNoSubmitter) {
		t.Fatalf("expected ErrNoSubmitter, got %v", err)
	}
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sub := form.SubmitterFunc(func(ctx context.Context, _ any) (string, error) {
		close(entered)
		<-release
		return "done", nil
	})
	f := form.New(form.WithSubmitter(sub))
	fill(t, f, "erin", "javascript", "pizza", true)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-entered

	snap := f.Snapshot()
	if !snap.Submitting || snap.CanSubmit() {
		t.Fatalf("pending submission should disable submit, got %+v", snap)
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, form.ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if f.Snapshot().Submitting {
		t.Fatalf("submitting flag should clear once settled")
	}
}

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	f := form.New()
	var got []bool
	unsubscribe := f.Subscribe(func(s form.Snapshot) {
		got = append(got, s.Valid)
	})

	fill(t, f, "frank", "rust", "pizza", true)
	unsubscribe()
	unsubscribe()
	if err := f.Change(form.Text(schema.FieldUsername, "")); err != nil {
		t.Fatalf("change: %v", err)
	}

	if diff := cmp.Diff([]bool{false, false, false, true}, got); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestReset_ClearsState(t *testing.T) {
	f := form.New(form.WithSubmitter(&stubSubmitter{err: errors.New("boom")}))
	fill(t, f, "gina", "rust", "pizza", true)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	f.Reset()
	snap := f.Snapshot()
	if !snap.Result.Empty() || snap.Errors.Any() || snap.Values != form.DefaultValues() {
		t.Fatalf("reset left state behind: %+v", snap)
	}
}

func TestWithSchema_CustomMessages(t *testing.T) {
	s := schema.Registration().WithMessages(schema.Messages{schema.UsernameMin: "too short"})
	f := form.New(form.WithSchema(s))
	if err := f.Change(form.Text(schema.FieldUsername, "a")); err != nil {
		t.Fatalf("change: %v", err)
	}
	if got := f.Snapshot().Errors[schema.FieldUsername]; got != "too short" {
		t.Fatalf("username message = %q", got)
	}
}

func TestFailureMessage(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"nil":          {err: nil, want: ""},
		"plain":        {err: errors.New("boom"), want: "boom"},
		"user message": {err: userError{msg: "Username is taken"}, want: "Username is taken"},
		"wrapped":      {err: errors.Join(errors.New("ctx"), userError{msg: "nope"}), want: "nope"},
		"empty user":   {err: userError{}, want: "status 422: "},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := form.FailureMessage(tt.err); got != tt.want {
				t.Fatalf("FailureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
