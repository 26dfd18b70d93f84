package template

import (
	"io"
)

// TemplateRenderer is the engine contract used by HTML renderers. RenderTemplate
// resolves a named template, RenderString parses inline content. When writers
// are supplied the output is also written to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
