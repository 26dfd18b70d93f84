package i18n_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/model"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizer_TextUsesTranslationAndParams(t *testing.T) {
	l := i18n.NewLocalizer(stubTranslator{
		i18n.KeyPythagorasResult: "hipotenusa = {c}",
	}, "es")

	if got := l.Text(i18n.KeyPythagorasResult, map[string]string{"c": "5.0"}); got != "hipotenusa = 5.0" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := l.Text(i18n.KeyQuadraticNone, nil); got != "No real solution" {
		t.Fatalf("expected built-in fallback, got %q", got)
	}
}

func TestLocalizer_NilTranslatorFallsBack(t *testing.T) {
	l := i18n.NewLocalizer(nil, "")

	if got := l.Label(model.CylinderArea, model.SlotB); got != "Height" {
		t.Fatalf("expected default label, got %q", got)
	}
	if got := l.Label(model.Pythagoras, model.SlotC); got != "" {
		t.Fatalf("expected no label for unused slot, got %q", got)
	}
	if got := l.Title(model.GravitationLaw); got != "Law of gravitation" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestLocalizer_MissingHandler(t *testing.T) {
	var seen []string
	l := i18n.NewLocalizer(stubTranslator{}, "fr", i18n.WithMissingHandler(func(locale, key, fallback string, err error) string {
		seen = append(seen, locale+":"+key)
		return "[" + key + "]"
	}))

	if got := l.Text(i18n.KeyCalculate, nil); got != "["+i18n.KeyCalculate+"]" {
		t.Fatalf("unexpected missing output %q", got)
	}
	if len(seen) != 1 || seen[0] != "fr:"+i18n.KeyCalculate {
		t.Fatalf("handler not invoked as expected: %v", seen)
	}
}

func TestLocalizer_WithLocaleCopies(t *testing.T) {
	base := i18n.NewLocalizer(nil, "en")
	es := base.WithLocale("es")

	if base.Locale() != "en" || es.Locale() != "es" {
		t.Fatalf("unexpected locales: base=%q es=%q", base.Locale(), es.Locale())
	}
}

func TestInterpolate(t *testing.T) {
	got := i18n.Interpolate("x1 = {x1}, x2 = {x2}, {unknown}", map[string]string{"x1": "2.0", "x2": "1.0"})
	if got != "x1 = 2.0, x2 = 1.0, {unknown}" {
		t.Fatalf("unexpected interpolation %q", got)
	}
}
