// Package openapi loads the HTTP API contract and validates requests against
// it with kin-openapi.
package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yaml
var document []byte

// ErrRouteNotFound is returned when a request matches no contract operation.
var ErrRouteNotFound = errors.New("openapi: route not found")

// Document returns the raw embedded contract.
func Document() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Contract is a loaded and validated API document with its request router.
type Contract struct {
	spec   *openapi3.T
	router routers.Router
}

// Load parses and validates the embedded contract.
func Load(ctx context.Context) (*Contract, error) {
	return LoadFromData(ctx, document)
}

// LoadFromData parses and validates raw as an OpenAPI 3 document.
func LoadFromData(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}

	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		return nil, fmt.Errorf("openapi: build router: %w", err)
	}
	return &Contract{spec: spec, router: router}, nil
}

// OperationIDs lists the operation ids of the contract keyed by "METHOD path".
func (c *Contract) OperationIDs() map[string]string {
	out := make(map[string]string)
	for path, item := range c.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			out[method+" "+path] = op.OperationID
		}
	}
	return out
}

// MarshalJSON encodes the contract as JSON.
func (c *Contract) MarshalJSON() ([]byte, error) {
	return c.spec.MarshalJSON()
}

// ValidateRequest checks r (parameters and body) against the matching
// operation. The request body stays readable afterwards.
func (c *Contract) ValidateRequest(r *http.Request) error {
	route, pathParams, err := c.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path)
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return fmt.Errorf("openapi: invalid request: %w", err)
	}
	return nil
}
