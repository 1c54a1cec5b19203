// Package contract loads the OpenAPI description of the registration endpoint
// and exposes the pieces the form needs: the operation's method and path, the
// absolute endpoint URL, and the request body schema as validation rules.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/schema"
)

// DefaultOperationID is the registration operation in the embedded contract.
const DefaultOperationID = "createRegistration"

//go:embed registration.openapi.yaml
var embeddedContract []byte

var (
	// ErrOperationNotFound is returned when an operation id is not declared.
	ErrOperationNotFound = errors.New("contract: operation not found")
	// ErrNoRequestBody is returned when an operation has no JSON request body.
	ErrNoRequestBody = errors.New("contract: operation has no JSON request body")
)

// Operation is the subset of an OpenAPI operation the form consumes.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	Body    *openapi3.Schema
}

// Contract wraps a loaded and validated OpenAPI document.
type Contract struct {
	doc        *openapi3.T
	operations map[string]Operation
}

// Embedded returns the raw bundled contract.
func Embedded() []byte {
	return append([]byte(nil), embeddedContract...)
}

// Default loads the bundled contract.
func Default(ctx context.Context) (*Contract, error) {
	return Load(ctx, embeddedContract)
}

// Load parses and validates raw (JSON or YAML) OpenAPI 3 data.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	c := &Contract{
		doc:        doc,
		operations: make(map[string]Operation),
	}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				c.collect(method, path, op)
			}
		}
	}
	return c, nil
}

func (c *Contract) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	c.operations[id] = Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Summary: op.Summary,
		Body:    requestSchema(op.RequestBody),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

// Title returns the document title.
func (c *Contract) Title() string {
	if c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Operation looks up an operation by id.
func (c *Contract) Operation(id string) (Operation, error) {
	op, ok := c.operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// Endpoint returns the absolute URL for an operation, joining the first
// server URL with the operation path.
func (c *Contract) Endpoint(id string) (string, error) {
	op, err := c.Operation(id)
	if err != nil {
		return "", err
	}
	base := ""
	if len(c.doc.Servers) > 0 && c.doc.Servers[0] != nil {
		base = strings.TrimRight(c.doc.Servers[0].URL, "/")
	}
	return base + op.Path, nil
}

// Method returns the HTTP method for an operation, POST when unknown.
func (c *Contract) Method(id string) string {
	op, err := c.Operation(id)
	if err != nil || op.Method == "" {
		return http.MethodPost
	}
	return op.Method
}

// Schema converts the operation's JSON request body into validation rules
// resolved against msgs (the default dictionary when nil).
func (c *Contract) Schema(id string, msgs schema.Messages) (*schema.Schema, error) {
	op, err := c.Operation(id)
	if err != nil {
		return nil, err
	}
	if op.Body == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, id)
	}
	s, err := schema.FromOpenAPI(op.Body, msgs)
	if err != nil {
		return nil, fmt.Errorf("contract: %s: %w", id, err)
	}
	return s, nil
}
