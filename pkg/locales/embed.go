package locales

import (
	"embed"
	"io/fs"
)

//go:embed catalogs/*.yaml
var embedded embed.FS

// EmbeddedFS exposes the built-in catalogs (en, es).
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "catalogs")
	if err != nil {
		return embedded
	}
	return sub
}

// Default loads the built-in catalogs with "en" as the fallback locale.
func Default(options ...Option) (*Catalog, error) {
	return LoadFS(EmbeddedFS(), options...)
}
