package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/uischema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithContract supplies raw OpenAPI data (JSON or YAML) in place of the
// bundled registration contract.
func WithContract(raw []byte) Option {
	return func(o *Orchestrator) {
		o.contractRaw = raw
	}
}

// WithOperationID selects the contract operation backing the form.
func WithOperationID(id string) Option {
	return func(o *Orchestrator) {
		o.operationID = id
	}
}

// WithEndpoint overrides the endpoint derived from the contract servers.
func WithEndpoint(endpoint string) Option {
	return func(o *Orchestrator) {
		o.endpoint = strings.TrimSpace(endpoint)
	}
}

// WithMessages overrides validation messages by key; keys not listed keep the
// default text.
func WithMessages(msgs schema.Messages) Option {
	return func(o *Orchestrator) {
		o.messages = msgs
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that gets the last word on the
// form model, after UI schema decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the generated form
// model before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// Prepared is the outcome of the pipeline before rendering: the validation
// rules the form enforces and the model renderers draw.
type Prepared struct {
	Schema   *schema.Schema
	Model    model.FormModel
	Endpoint string
	Method   string
}

// Request describes a render call.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries the form state to reflect.
	RenderOptions render.RenderOptions
}

// Orchestrator coordinates the pipeline from contract to rendered output. It
// applies sensible defaults (bundled contract, vanilla renderer, embedded UI
// schema) while remaining open to dependency injection.
type Orchestrator struct {
	contractRaw       []byte
	operationID       string
	endpoint          string
	messages          schema.Messages
	builder           model.Builder
	registry          *render.Registry
	defaultRenderer   string
	decorators        []model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	transformer       Transformer

	mu       sync.Mutex
	prepared *Prepared
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		operationID:     contract.DefaultOperationID,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	return o
}

// Registry returns the renderer registry, creating the default one (vanilla)
// on first use.
func (o *Orchestrator) Registry() (*render.Registry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.registryLocked()
}

// Prepare runs the contract → schema → model → decorator → transformer stages. A successful
// result is cached, so later calls are cheap and return the same rules.
func (o *Orchestrator) Prepare(ctx context.Context) (*Prepared, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.prepared != nil {
		return o.prepared, nil
	}

	c, err := o.loadContract(ctx)
	if err != nil {
		return nil, err
	}
	if o.operationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}

	var msgs schema.Messages
	if len(o.messages) > 0 {
		msgs = schema.DefaultMessages().Merge(o.messages)
	}
	rules, err := c.Schema(o.operationID, msgs)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build schema: %w", err)
	}

	endpoint := o.endpoint
	if endpoint == "" {
		if endpoint, err = c.Endpoint(o.operationID); err != nil {
			return nil, fmt.Errorf("orchestrator: resolve endpoint: %w", err)
		}
	}
	method := c.Method(o.operationID)

	form, err := o.builder.Build(rules, endpoint, method)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if form.Title == "" {
		form.Title = c.Title()
	}

	decorators, err := o.allDecorators()
	if err != nil {
		return nil, err
	}
	if err := model.Apply(&form, decorators...); err != nil {
		return nil, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return nil, err
	}

	o.prepared = &Prepared{
		Schema:   rules,
		Model:    form,
		Endpoint: endpoint,
		Method:   method,
	}
	return o.prepared, nil
}

// Generate prepares the form (when not yet prepared) and renders it with the
// requested renderer, returning the output and its content type.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, string, error) {
	prepared, err := o.Prepare(ctx)
	if err != nil {
		return nil, "", err
	}
	registry, err := o.Registry()
	if err != nil {
		return nil, "", err
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	output, contentType, err := registry.Render(ctx, name, prepared.Model, req.RenderOptions)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: %w", err)
	}
	return output, contentType, nil
}

func (o *Orchestrator) loadContract(ctx context.Context) (*contract.Contract, error) {
	if len(o.contractRaw) == 0 {
		c, err := contract.Default(ctx)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load bundled contract: %w", err)
		}
		return c, nil
	}
	c, err := contract.Load(ctx, o.contractRaw)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load contract: %w", err)
	}
	return c, nil
}

func (o *Orchestrator) registryLocked() (*render.Registry, error) {
	if o.registry != nil {
		return o.registry, nil
	}
	renderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	o.registry = render.NewRegistry()
	o.registry.MustRegister(renderer)
	return o.registry, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

// allDecorators puts the UI schema decorator ahead of caller decorators.
func (o *Orchestrator) allDecorators() ([]model.Decorator, error) {
	fsys := o.uiSchemaFS
	if !o.uiSchemaSpecified && fsys == nil {
		fsys = uischema.EmbeddedFS()
	}
	if fsys == nil {
		return o.decorators, nil
	}

	store, err := uischema.LoadFS(fsys)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load ui schema: %w", err)
	}
	if store.Empty() {
		return o.decorators, nil
	}
	out := make([]model.Decorator, 0, len(o.decorators)+1)
	out = append(out, uischema.NewDecorator(store))
	return append(out, o.decorators...), nil
}
