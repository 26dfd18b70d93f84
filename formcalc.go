package formcalc

import (
	"context"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/orchestrator"
	"github.com/goliatone/go-formcalc/pkg/render"
)

// FormulaKind aliases model.FormulaKind for callers of the top-level package.
type FormulaKind = model.FormulaKind

// Slot aliases model.Slot.
type Slot = model.Slot

// FormState aliases model.FormState.
type FormState = model.FormState

// RenderOptions describes per-request overrides that renderers can use.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML applies values to the named formula, evaluates it, and renders
// the calculator page. It is the simplest entry point for callers that just
// want HTML output.
func GenerateHTML(ctx context.Context, kind FormulaKind, values map[Slot]string, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Formula:  kind,
		Values:   values,
		Submit:   true,
		Renderer: "html",
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// NewEngine returns a formula engine producing texts for locale from the
// embedded catalogs.
func NewEngine(locale string) (*formula.Engine, error) {
	catalog, err := locales.Default()
	if err != nil {
		return nil, err
	}
	return formula.New(formula.WithTranslator(catalog), formula.WithLocale(locale)), nil
}

// LoadCatalog returns the embedded message catalogs merged with any catalog
// files found in dir. An empty dir returns the embedded catalogs unchanged.
func LoadCatalog(dir string) (*locales.Catalog, error) {
	catalog, err := locales.Default()
	if err != nil {
		return nil, err
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return catalog, nil
	}
	override, err := locales.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("formcalc: load catalogs from %s: %w", dir, err)
	}
	return catalog.Merge(override), nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithLocale sets the locale used for labels, hints and result texts.
func WithLocale(locale string) orchestrator.Option {
	return orchestrator.WithLocale(locale)
}
