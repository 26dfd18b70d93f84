package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcalc/pkg/i18n"
)

// RenderOptions describe per-request data renderers use to localize and style
// their output without touching the form state.
type RenderOptions struct {
	// Locale selects the catalog used for labels, titles and messages.
	Locale string
	// Translator resolves catalog keys. When nil, built-in English is used.
	Translator i18n.Translator
	// OnMissing customises the text used for untranslated keys.
	OnMissing i18n.MissingTranslationHandler
	// Theme carries resolved go-theme tokens; renderers that do not style
	// their output ignore it.
	Theme *theme.RendererConfig
	// Action is the URL HTML forms post back to. Defaults to "/".
	Action string
}

// Localizer builds the i18n.Localizer described by the options.
func (o RenderOptions) Localizer() *i18n.Localizer {
	return i18n.NewLocalizer(o.Translator, o.Locale, i18n.WithMissingHandler(o.OnMissing))
}
