package formcalc

import (
	"io/fs"

	"github.com/goliatone/go-formcalc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// ThemeAssetsFS exposes the bundled theme stylesheets.
//
// Typical mount:
//
//	mux.PathPrefix(themes.AssetPrefix + "/").Handler(
//	  http.StripPrefix(themes.AssetPrefix+"/",
//	    http.FileServerFS(formcalc.ThemeAssetsFS()),
//	  ),
//	)
func ThemeAssetsFS() fs.FS {
	return themes.AssetsFS()
}
