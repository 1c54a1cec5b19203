package tui

import (
	"log/slog"
)

// Theme captures optional prefixes applied to printed messages.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is applied unless WithTheme overrides it.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "! ",
	SuccessPrefix: "✓ ",
}

// Option configures the TUI renderer and sessions.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how many times one field is re-prompted after a
// validation failure. Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
