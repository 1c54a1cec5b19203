package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-regform/pkg/metrics"
)

// DefaultSessionTTL bounds how long an idle visitor keeps their form state.
const DefaultSessionTTL = 30 * time.Minute

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer selects the renderer used for the page. Empty keeps the
// registry default.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.rendererName = name
	}
}

// WithSessionTTL sets the idle expiry of visitor sessions.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMetrics records form activity on rec and serves gatherer on /metrics.
func WithMetrics(rec *metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = rec
		s.gatherer = gatherer
	}
}

// WithSecureCookies marks the session cookie Secure, for deployments behind
// TLS.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secureCookies = secure
	}
}
