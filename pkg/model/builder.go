package model

import (
	"github.com/goliatone/go-regform/internal/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Builder converts a validation schema into a form model.
type Builder interface {
	Build(s *schema.Schema, endpoint, method string) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*model.Options)

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *model.Options) {
		opts.Labeler = labeler
	}
}

// WithFormID sets the id stamped on built models.
func WithFormID(id string) BuilderOption {
	return func(opts *model.Options) {
		opts.ID = id
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := model.Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(cfg)
}

// DefaultLabeler is the label generator used when none is configured.
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}
