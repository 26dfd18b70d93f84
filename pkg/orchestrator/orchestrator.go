package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/renderers/pdf"
	"github.com/goliatone/go-formcalc/pkg/renderers/tui"
	"github.com/goliatone/go-formcalc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

const defaultRendererName = "html"

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry supplies the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithTranslator supplies the message catalog. The embedded catalogs are used
// when omitted.
func WithTranslator(translator i18n.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = translator
	}
}

// WithLocale sets the locale used when a request names none.
func WithLocale(locale string) Option {
	return func(o *Orchestrator) {
		o.locale = strings.TrimSpace(locale)
	}
}

// WithThemeSelector passes a go-theme selector through so theme and variant
// choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithTheme sets the theme and variant used when a request names none.
func WithTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// Orchestrator turns a Request into rendered output.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	translator      i18n.Translator
	locale          string
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	engine          *formula.Engine
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations: embedded
// catalogs, the bundled theme, and the html, tui and pdf renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		locale:          locales.DefaultLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one calculator screen to render.
type Request struct {
	// Formula selects the active formula.
	Formula model.FormulaKind

	// Values are typed into the active slots, subject to the keystroke filter.
	Values map[model.Slot]string

	// Submit evaluates the formula after the values are applied.
	Submit bool

	// Renderer names the renderer to use. If empty, the configured default
	// renderer is used.
	Renderer string

	// Locale overrides the configured locale.
	Locale string

	// ThemeName and ThemeVariant override the configured theme.
	ThemeName    string
	ThemeVariant string

	// Action is forwarded to renderers that produce HTML forms.
	Action string
}

// Result carries the state that was rendered alongside the output.
type Result struct {
	State       model.FormState
	Outcome     model.Outcome
	Output      []byte
	ContentType string
}

// Generate builds the form state for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if !req.Formula.Valid() {
		return Result{}, fmt.Errorf("orchestrator: %w: %d", model.ErrUnknownFormula, int(req.Formula))
	}

	locale := o.locale
	if strings.TrimSpace(req.Locale) != "" {
		locale = strings.TrimSpace(req.Locale)
	}

	state, outcome := o.State(req.Formula, req.Values, req.Submit, locale)

	cfg, err := o.themeConfig(req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}
	output, err := renderer.Render(ctx, state, render.RenderOptions{
		Locale:     locale,
		Translator: o.translator,
		Theme:      cfg,
		Action:     req.Action,
	})
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Result{
		State:       state,
		Outcome:     outcome,
		Output:      output,
		ContentType: renderer.ContentType(),
	}, nil
}

// State applies the form transitions for kind and values and, when submit is
// set, evaluates the formula in locale.
func (o *Orchestrator) State(kind model.FormulaKind, values map[model.Slot]string, submit bool, locale string) (model.FormState, model.Outcome) {
	state := form.EditAll(form.Select(form.New(), kind), values)
	if !submit {
		return state, model.Invalid(state.Fields)
	}
	return form.Submit(state, o.engine.ForLocale(locale))
}

// Engine exposes the formula engine bound to the configured catalog.
func (o *Orchestrator) Engine() *formula.Engine {
	return o.engine
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) themeConfig(req Request) (*theme.RendererConfig, error) {
	if o.selector == nil {
		return nil, nil
	}
	name := req.ThemeName
	if strings.TrimSpace(name) == "" {
		name = o.themeName
	}
	variant := req.ThemeVariant
	if strings.TrimSpace(variant) == "" {
		variant = o.themeVariant
	}
	selection, err := o.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return themes.RendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.translator == nil {
		catalog, err := locales.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load catalogs: %w", err)
			return
		}
		o.translator = catalog
	}
	if o.selector == nil {
		selector, err := themes.NewSelector()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme selector: %w", err)
			return
		}
		o.selector = selector
	}
	if o.registry == nil {
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		text, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
			return
		}
		report, err := pdf.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: pdf renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(html, text, report)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: renderer registry: %w", err)
			return
		}
		o.registry = registry
	}
	o.engine = formula.New(
		formula.WithTranslator(o.translator),
		formula.WithLocale(o.locale),
	)
}
