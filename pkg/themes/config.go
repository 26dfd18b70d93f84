package themes

import (
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Fallbacks are the partials used when a manifest does not override them.
func Fallbacks() map[string]string {
	return map[string]string{
		PagePartial: "page.tpl",
	}
}

// RendererConfig merges a selection into the shape renderers consume: tokens
// and templates of the base manifest overridden by the selected variant, CSS
// custom properties derived from the tokens, and an asset URL resolver.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := make(map[string]string, len(manifest.Tokens))
	partials := Fallbacks()
	files := make(map[string]string, len(manifest.Assets.Files))
	prefix := manifest.Assets.Prefix

	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	for key, value := range manifest.Templates {
		partials[key] = value
	}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			partials[key] = value
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[strings.TrimSpace(key)]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}
