package regform

import (
	"context"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

// RenderOptions describes the form state a renderer reflects; alias exported
// via the root package for convenience.
type RenderOptions = render.RenderOptions

// Prepared aliases the pipeline output: validation rules plus form model.
type Prepared = orchestrator.Prepared

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds the registration form from the bundled contract and
// renders it with the named renderer ("" selects vanilla). It is the simplest
// entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	out, _, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Renderer:      rendererName,
		RenderOptions: opts,
	})
	return out, err
}

// WithEndpoint overrides the registration endpoint taken from the contract.
func WithEndpoint(endpoint string) orchestrator.Option {
	return orchestrator.WithEndpoint(endpoint)
}
