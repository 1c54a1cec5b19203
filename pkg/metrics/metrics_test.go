package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/metrics"
)

func TestRecorder_CountsFieldChanges(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(metrics.WithRegistry(reg))

	rec.FieldChanged("username", false)
	rec.FieldChanged("username", true)
	rec.FieldChanged("username", true)

	expected := `
# HELP regform_field_changes_total Total number of registration field changes
# TYPE regform_field_changes_total counter
regform_field_changes_total{field="username",valid="false"} 1
regform_field_changes_total{field="username",valid="true"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "regform_field_changes_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestRecorder_Submissions(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

	rec.Submitted(form.OutcomeSuccess, 200*time.Millisecond)
	rec.Submitted(form.OutcomeFailure, 300*time.Millisecond)
	rec.Submitted(form.OutcomeRejected, 0)

	expected := `
# HELP test_submissions_total Total number of registration submit attempts by outcome
# TYPE test_submissions_total counter
test_submissions_total{outcome="failure"} 1
test_submissions_total{outcome="rejected"} 1
test_submissions_total{outcome="success"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_submissions_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}

	count, err := testutil.GatherAndCount(reg, "test_submission_duration_seconds")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one duration series, got %d", count)
	}
}

func TestRecorder_Sessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(metrics.WithRegistry(reg))

	rec.SessionOpened()
	rec.SessionOpened()
	rec.SessionClosed()

	expected := `
# HELP regform_sessions_active Number of form sessions held by the server
# TYPE regform_sessions_active gauge
regform_sessions_active 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "regform_sessions_active"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestRecorder_WiredIntoForm(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(metrics.WithRegistry(reg))
	f := form.New(form.WithRecorder(rec))

	if err := f.Change(form.Text("username", "al")); err != nil {
		t.Fatalf("change: %v", err)
	}

	expected := `
# HELP regform_field_changes_total Total number of registration field changes
# TYPE regform_field_changes_total counter
regform_field_changes_total{field="username",valid="false"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "regform_field_changes_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
