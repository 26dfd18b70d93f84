package themes

import theme "github.com/goliatone/go-theme"

// Default returns a fresh copy of the bundled manifest: a light base palette
// and a dark variant.
func Default() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-background": "#f6f7fb",
			"color-surface":    "#ffffff",
			"color-text":       "#1f2330",
			"color-muted":      "#5c6377",
			"color-accent":     "#3557d6",
			"color-error":      "#c0392b",
			"font-family":      "system-ui, sans-serif",
			"radius":           "6px",
		},
		Templates: map[string]string{
			PagePartial: "page.tpl",
		},
		Assets: theme.Assets{
			Prefix: AssetPrefix,
			Files: map[string]string{
				StylesheetAsset: "formcalc.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-background": "#14161d",
					"color-surface":    "#1f2330",
					"color-text":       "#e8eaf2",
					"color-muted":      "#a0a6b8",
					"color-accent":     "#7d97ff",
					"color-error":      "#ff7b6b",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						StylesheetAsset: "formcalc.dark.css",
					},
				},
			},
		},
	}
}
