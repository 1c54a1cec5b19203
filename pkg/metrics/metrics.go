// Package metrics exposes registration form activity as Prometheus metrics.
//
// Metrics collected:
//   - regform_field_changes_total: field changes by field and resulting validity
//   - regform_submissions_total: submit attempts by outcome
//   - regform_submission_duration_seconds: round trip of settled submissions
//   - regform_sessions_active: form sessions held by the web server
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-regform/pkg/form"
)

// Config configures the recorder.
type Config struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64
	Registry    prometheus.Registerer
}

// Option configures the recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the submission duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		if len(buckets) > 0 {
			c.Buckets = buckets
		}
	}
}

// WithRegistry sets the registerer. Default: prometheus.DefaultRegisterer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		if registry != nil {
			c.Registry = registry
		}
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "regform",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder implements form.Recorder.
type Recorder struct {
	fieldChanges   *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	submitDuration prometheus.Histogram
	sessions       prometheus.Gauge
}

var _ form.Recorder = (*Recorder)(nil)

// New registers the metrics and returns a recorder. Registering twice against
// the same registry panics, as promauto does.
func New(opts ...Option) *Recorder {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	factory := promauto.With(cfg.Registry)

	return &Recorder{
		fieldChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "field_changes_total",
			Help:        "Total number of registration field changes",
			ConstLabels: cfg.ConstLabels,
		}, []string{"field", "valid"}),

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "submissions_total",
			Help:        "Total number of registration submit attempts by outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),

		submitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "submission_duration_seconds",
			Help:        "Registration request round trip in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),

		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "sessions_active",
			Help:        "Number of form sessions held by the server",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// FieldChanged counts a field change.
func (r *Recorder) FieldChanged(field string, valid bool) {
	if r == nil {
		return
	}
	r.fieldChanges.WithLabelValues(field, strconv.FormatBool(valid)).Inc()
}

// Submitted counts a submit attempt. Rejected attempts never reached the
// endpoint and are not timed.
func (r *Recorder) Submitted(outcome form.Outcome, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(string(outcome)).Inc()
	if outcome != form.OutcomeRejected {
		r.submitDuration.Observe(elapsed.Seconds())
	}
}

// SessionOpened increments the active session gauge.
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}
