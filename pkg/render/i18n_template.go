package render

import (
	"strings"

	"github.com/goliatone/go-formcalc/pkg/i18n"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
}

// TemplateI18nFuncs returns helpers suitable for injecting into template
// engines. The main helper signature is:
//
//	translate(key, "name", value, ...) string
//
// Trailing arguments are name/value pairs expanded into {name} placeholders;
// a dangling name is ignored.
func TemplateI18nFuncs(l *i18n.Localizer, cfg TemplateI18nConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	return map[string]any{
		translateName: func(key string, pairs ...string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			var params map[string]string
			if len(pairs) >= 2 {
				params = make(map[string]string, len(pairs)/2)
				for i := 0; i+1 < len(pairs); i += 2 {
					params[pairs[i]] = pairs[i+1]
				}
			}
			return l.Text(key, params)
		},
		"current_locale": func() string {
			return l.Locale()
		},
	}
}
