package formula

import (
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/validation"
)

// Option configures an Engine.
type Option func(*Engine)

// WithTranslator sets the Translator used for result texts.
func WithTranslator(t i18n.Translator) Option {
	return func(e *Engine) {
		e.translator = t
	}
}

// WithLocale selects the locale passed to the Translator.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		e.locale = locale
	}
}

// WithMissingTranslationHandler controls the text used for untranslated keys.
func WithMissingTranslationHandler(handler i18n.MissingTranslationHandler) Option {
	return func(e *Engine) {
		e.onMissing = handler
	}
}

// Engine evaluates formulas. It holds no mutable state and is safe to share.
type Engine struct {
	translator i18n.Translator
	locale     string
	onMissing  i18n.MissingTranslationHandler
	localizer  *i18n.Localizer
}

// New constructs an Engine. Without options, result texts are English.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.localizer = i18n.NewLocalizer(e.translator, e.locale, i18n.WithMissingHandler(e.onMissing))
	return e
}

// ForLocale returns a copy of e producing texts for locale.
func (e *Engine) ForLocale(locale string) *Engine {
	if e == nil {
		return New(WithLocale(locale))
	}
	clone := *e
	clone.locale = locale
	clone.localizer = e.localizer.WithLocale(locale)
	return &clone
}

// Locale reports the locale used for result texts.
func (e *Engine) Locale() string {
	if e == nil {
		return ""
	}
	return e.locale
}

// Evaluate validates the fields required by kind and, when all of them hold
// complete numbers, computes the formula. The returned Fields carry fresh
// error flags: required slots are flagged when invalid, every other slot is
// cleared. The input is never modified.
func (e *Engine) Evaluate(kind model.FormulaKind, fields model.Fields) model.Outcome {
	if e == nil {
		e = New()
	}

	spec := model.Spec(kind)
	updated := fields
	values := make(map[model.Slot]float32, len(spec.Required))
	valid := spec.Kind == kind && kind.Valid()

	for _, slot := range model.Slots() {
		field := fields.Get(slot)
		if !spec.Requires(slot) {
			updated = updated.With(slot, field.WithError(false))
			continue
		}
		value, ok := validation.ParseNumber(field.Value)
		updated = updated.With(slot, field.WithError(!ok))
		if !ok {
			valid = false
			continue
		}
		values[slot] = value
	}

	if !valid {
		return model.Invalid(updated)
	}

	return model.Success(e.compute(kind, values), updated)
}

func (e *Engine) compute(kind model.FormulaKind, v map[model.Slot]float32) string {
	l := e.localizer
	a, b, c := v[model.SlotA], v[model.SlotB], v[model.SlotC]

	switch kind {
	case model.GeneralQuadratic:
		x1, x2, ok := quadraticRoots(a, b, c)
		if !ok {
			return l.Text(i18n.KeyQuadraticNone, nil)
		}
		return l.Text(i18n.KeyQuadraticResult, map[string]string{
			"x1": FormatFloat32(x1),
			"x2": FormatFloat32(x2),
		})
	case model.Pythagoras:
		return l.Text(i18n.KeyPythagorasResult, map[string]string{
			"c": FormatFloat32(hypotenuse(a, b)),
		})
	case model.CylinderArea:
		return l.Text(i18n.KeyCylinderResult, map[string]string{
			"area": FormatFloat64(cylinderArea(a, b)),
		})
	case model.GravitationLaw:
		return l.Text(i18n.KeyGravitationForce, map[string]string{
			"force": FormatFloat64(gravitationalForce(a, b, c)),
		})
	default:
		return ""
	}
}
