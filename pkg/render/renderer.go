package render

import (
	"context"

	"github.com/goliatone/go-formcalc/pkg/model"
)

// Renderer converts a FormState into a byte representation (HTML, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, state model.FormState, options RenderOptions) ([]byte, error)
}
