package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// PageTemplate is the default page template name.
const PageTemplate = "page.tpl"

// TemplatesFS exposes the embedded template bundle. Paths are relative to the
// templates directory so theme partials can name files directly.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
