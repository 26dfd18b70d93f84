package i18n

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formcalc/pkg/model"
)

// Message keys shared by the engine and the renderers.
const (
	KeyAppTitle         = "app.title"
	KeyAppAuthor        = "app.author"
	KeySelectFormula    = "form.selectFormula"
	KeyCalculate        = "form.calculate"
	KeyCalculateAgain   = "form.calculateAgain"
	KeyInvalidNumber    = "form.invalidNumber"
	KeyQuadraticResult  = "result.quadratic"
	KeyQuadraticNone    = "result.quadratic.none"
	KeyPythagorasResult = "result.pythagoras"
	KeyCylinderResult   = "result.cylinder"
	KeyGravitationForce = "result.gravitation"
)

// Defaults holds the built-in English messages. Placeholders use {name}.
var Defaults = map[string]string{
	KeyAppTitle:         "Calculator",
	KeyAppAuthor:        "by Alejandra Carrillo",
	KeySelectFormula:    "Select a formula",
	KeyCalculate:        "Calculate",
	KeyCalculateAgain:   "Calculate again?",
	KeyInvalidNumber:    "Enter a valid number",
	KeyQuadraticResult:  "x1 = {x1}, x2 = {x2}",
	KeyQuadraticNone:    "No real solution",
	KeyPythagorasResult: "c = {c}",
	KeyCylinderResult:   "Area = {area}",
	KeyGravitationForce: "F = {force} N",
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithMissingHandler overrides how untranslated keys are rendered.
func WithMissingHandler(handler MissingTranslationHandler) Option {
	return func(l *Localizer) {
		if handler != nil {
			l.onMissing = handler
		}
	}
}

// Localizer binds a Translator to a locale and expands {placeholders}. A nil
// Translator is valid and yields the built-in English text.
type Localizer struct {
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
}

// NewLocalizer returns a Localizer for locale backed by t.
func NewLocalizer(t Translator, locale string, options ...Option) *Localizer {
	l := &Localizer{
		translator: t,
		locale:     strings.TrimSpace(locale),
		onMissing:  DefaultMissingHandler,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Locale reports the bound locale.
func (l *Localizer) Locale() string {
	if l == nil {
		return ""
	}
	return l.locale
}

// WithLocale returns a copy of l bound to locale.
func (l *Localizer) WithLocale(locale string) *Localizer {
	if l == nil {
		return NewLocalizer(nil, locale)
	}
	clone := *l
	clone.locale = strings.TrimSpace(locale)
	return &clone
}

// Text translates key, falling back to Defaults, and expands params.
func (l *Localizer) Text(key string, params map[string]string) string {
	return Interpolate(l.lookup(key, Defaults[key]), params)
}

// Label returns the localized label of slot under kind.
func (l *Localizer) Label(kind model.FormulaKind, slot model.Slot) string {
	key := model.LabelKey(kind, slot)
	if key == "" {
		return ""
	}
	return l.lookup(key, model.DefaultLabel(kind, slot))
}

// Title returns the localized name of kind.
func (l *Localizer) Title(kind model.FormulaKind) string {
	return l.lookup(model.Spec(kind).TitleKey, model.DefaultTitle(kind))
}

// Hint returns the optional explanatory markup for kind, or "" when the
// translator has none.
func (l *Localizer) Hint(kind model.FormulaKind) string {
	if l == nil || l.translator == nil || !kind.Valid() {
		return ""
	}
	msg, err := l.translator.Translate(l.locale, HintKey(kind))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

// HintKey returns the catalog key of the hint shown under the selector.
func HintKey(kind model.FormulaKind) string {
	return "hints." + kind.String()
}

func (l *Localizer) lookup(key, fallback string) string {
	if l == nil {
		return DefaultMissingHandler("", key, fallback, ErrMissingTranslator)
	}
	onMissing := l.onMissing
	if onMissing == nil {
		onMissing = DefaultMissingHandler
	}
	if l.translator == nil {
		return onMissing(l.locale, key, fallback, ErrMissingTranslator)
	}
	msg, err := l.translator.Translate(l.locale, key)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	return onMissing(l.locale, key, fallback, err)
}

// Interpolate replaces {name} placeholders in template with params[name].
// Unknown placeholders are left untouched.
func Interpolate(template string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(params)*2)
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
