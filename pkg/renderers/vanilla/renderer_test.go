package vanilla_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

func TestRenderer_ShowsFlaggedFields(t *testing.T) {
	r := newRenderer(t)

	state, _ := form.Submit(form.New(), formula.New())
	out, err := r.Render(context.Background(), state, render.RenderOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<title>Calculator</title>",
		"by Alejandra Carrillo",
		`<option value="quadratic" selected>Quadratic formula</option>`,
		`<option value="gravitation">Law of gravitation</option>`,
		`<label for="formcalc-a">Value A</label>`,
		`<label for="formcalc-c">Value C</label>`,
		`id="formcalc-b-error">Enter a valid number</p>`,
		`aria-invalid="true"`,
		`action="/"`,
		`pattern="-?[0-9]*\.?[0-9]*"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, `class="result"`) {
		t.Errorf("result must be hidden after an invalid submit")
	}
}

func TestRenderer_ShowsResult(t *testing.T) {
	r := newRenderer(t)

	state := form.Select(form.New(), model.Pythagoras)
	state = form.EditAll(state, map[model.Slot]string{model.SlotA: "3", model.SlotB: "4"})
	state, _ = form.Submit(state, formula.New())

	catalog, err := locales.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	out, err := r.Render(context.Background(), state, render.RenderOptions{Action: "/calc", Translator: catalog})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<output class="result">c = 5.0</output>`,
		`value="3"`,
		`action="/calc"`,
		`pattern="[0-9]*\.?[0-9]*"`,
		"<em>a</em>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, `id="formcalc-c"`) {
		t.Errorf("pythagoras must not render slot c")
	}
	if strings.Contains(html, "aria-invalid") {
		t.Errorf("no field should be flagged")
	}
}

func TestRenderer_SpanishCatalogAndTheme(t *testing.T) {
	catalog, err := locales.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	selector, err := themes.NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	cfg, err := selector.Resolve("", "dark")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}

	r := newRenderer(t)
	state := form.Select(form.New(), model.CylinderArea)
	out, err := r.Render(context.Background(), state, render.RenderOptions{
		Locale:     "es",
		Translator: catalog,
		Theme:      cfg,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<html lang="es">`,
		`<label for="formcalc-a">Radio</label>`,
		`<label for="formcalc-b">Altura</label>`,
		`href="/assets/themes/formcalc/formcalc.dark.css"`,
		"--color-accent: #7d97ff;",
		`data-variant="dark"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_SanitizesHints(t *testing.T) {
	translator := i18n.TranslatorFunc(func(_, key string, _ ...any) (string, error) {
		if key == i18n.HintKey(model.Pythagoras) {
			return `<em>ok</em><script>alert(1)</script><a href="javascript:x">link</a>`, nil
		}
		return "", errors.New("missing")
	})

	r := newRenderer(t)
	out, err := r.Render(context.Background(), form.Select(form.New(), model.Pythagoras), render.RenderOptions{Translator: translator})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<em>ok</em>") {
		t.Errorf("expected emphasis to survive sanitizing")
	}
	if strings.Contains(html, "<script>") || strings.Contains(html, "javascript:") {
		t.Errorf("unsafe hint markup leaked: %s", html)
	}
}

func TestRenderer_ThemePartialSelectsTemplate(t *testing.T) {
	files := fstest.MapFS{
		"page.tpl":        {Data: []byte("default")},
		"acme/result.tpl": {Data: []byte("{{ view.formulaTitle }}|{{ view.result }}")},
	}
	r, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	state := form.Select(form.New(), model.Pythagoras)
	state = form.EditAll(state, map[model.Slot]string{model.SlotA: "5", model.SlotB: "12"})
	state, _ = form.Submit(state, formula.New())

	selector, err := themes.NewSelector(themes.WithManifest(acmeManifest()))
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	cfg, err := selector.Resolve("acme", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	out, err := r.Render(context.Background(), state, render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "Pythagoras|c = 13.0" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != "html" || r.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, form.New(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestSanitizeHint(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"  plain  ":                "plain",
		"<b>x</b><sup>2</sup>":     "x<sup>2</sup>",
		`<em onclick="x()">y</em>`: "<em>y</em>",
	}
	for in, want := range tests {
		if got := vanilla.SanitizeHint(in); got != want {
			t.Errorf("SanitizeHint(%q) = %q, want %q", in, got, want)
		}
	}
}

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}
