package locales_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/model"
)

func TestDefault_LoadsEmbeddedCatalogs(t *testing.T) {
	catalog, err := locales.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "es"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	msg, err := catalog.Translate("es", i18n.KeyQuadraticNone)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if msg != "No hay solución real" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDefault_CoversEveryKey(t *testing.T) {
	catalog, err := locales.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	var keys []string
	for key := range i18n.Defaults {
		keys = append(keys, key)
	}
	for _, kind := range model.Kinds() {
		keys = append(keys, model.Spec(kind).TitleKey, i18n.HintKey(kind))
		for _, slot := range model.Spec(kind).Required {
			keys = append(keys, model.LabelKey(kind, slot))
		}
	}

	for _, locale := range catalog.Locales() {
		for _, key := range keys {
			if _, err := catalog.Translate(locale, key); err != nil {
				t.Errorf("%s: %v", locale, err)
			}
		}
	}
}

func TestTranslate_FallbackChain(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("messages:\n  greet: Hello\n  bye: Bye\n")},
		"es.json": {Data: []byte(`{"locale":"es","messages":{"greet":"Hola"}}`)},
	}
	catalog, err := locales.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		locale, key, want string
	}{
		{"es", "greet", "Hola"},
		{"es-MX", "greet", "Hola"},
		{"es_AR", "greet", "Hola"},
		{"es", "bye", "Bye"},
		{"fr", "greet", "Hello"},
		{"", "greet", "Hello"},
	}
	for _, tt := range tests {
		got, err := catalog.Translate(tt.locale, tt.key)
		if err != nil {
			t.Fatalf("translate %s/%s: %v", tt.locale, tt.key, err)
		}
		if got != tt.want {
			t.Errorf("translate %s/%s = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}

	if _, err := catalog.Translate("es", "missing"); !errors.Is(err, locales.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", err)
	}
	if !catalog.Has("es-MX") || catalog.Has("fr") {
		t.Fatalf("unexpected Has results")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"empty file":  {"en.yaml": {Data: []byte("  ")}},
		"bad payload": {"en.yaml": {Data: []byte("messages: [unterminated")}},
		"duplicate key": {
			"a/en.yaml": {Data: []byte("messages:\n  greet: Hello\n")},
			"b/en.yaml": {Data: []byte("messages:\n  greet: Hi\n")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := locales.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMerge_Overrides(t *testing.T) {
	base, err := locales.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	override, err := locales.LoadFS(fstest.MapFS{
		"es.yaml": {Data: []byte("messages:\n  result.quadratic.none: Sin solución\n")},
	})
	if err != nil {
		t.Fatalf("load override: %v", err)
	}

	merged := base.Merge(override)
	engine := formula.New(formula.WithTranslator(merged), formula.WithLocale("es"))
	if got := engine.Evaluate(model.GeneralQuadratic, model.FieldsOf("1", "0", "1")).Text; got != "Sin solución" {
		t.Fatalf("override not applied, got %q", got)
	}
	if got := engine.Evaluate(model.CylinderArea, model.FieldsOf("1", "1")).Text; got != "Área = 12.5664" {
		t.Fatalf("base message lost, got %q", got)
	}
	if msg, _ := base.Translate("es", "result.quadratic.none"); msg != "No hay solución real" {
		t.Fatalf("merge mutated base catalog: %q", msg)
	}
}

func TestLocalizer_SpanishLabels(t *testing.T) {
	catalog, err := locales.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	l := i18n.NewLocalizer(catalog, "es")

	got := []string{
		l.Label(model.CylinderArea, model.SlotA),
		l.Label(model.CylinderArea, model.SlotB),
		l.Label(model.GravitationLaw, model.SlotC),
		l.Title(model.Pythagoras),
	}
	want := []string{"Radio", "Altura", "Distancia", "Pitágoras"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if l.Hint(model.Pythagoras) == "" {
		t.Fatalf("expected hint markup")
	}
}
