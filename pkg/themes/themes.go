// Package themes ships the calculator's go-theme manifest and turns a theme
// selection into the renderer configuration consumed by the HTML renderer.
package themes

import (
	"embed"
	"io/fs"
)

const (
	// DefaultName is the name of the bundled manifest.
	DefaultName = "formcalc"
	// DefaultVariant names the base token set of the bundled manifest.
	DefaultVariant = "light"
	// AssetPrefix is the URL prefix the bundled assets are served under.
	AssetPrefix = "/assets/themes/formcalc"

	// PagePartial is the Partials key naming the page template.
	PagePartial = "formcalc.page"
	// StylesheetAsset is the asset key of the variant stylesheet.
	StylesheetAsset = "stylesheet"
)

//go:embed assets/*.css
var assetFiles embed.FS

// AssetsFS exposes the stylesheets referenced by the default manifest. Paths
// are relative to AssetPrefix.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		return assetFiles
	}
	return sub
}
