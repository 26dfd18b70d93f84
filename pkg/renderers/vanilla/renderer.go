// Package vanilla renders the calculator as a server-side HTML page using
// pongo2 templates.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
	rendertemplate "github.com/goliatone/go-formcalc/pkg/render/template"
	"github.com/goliatone/go-formcalc/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	page             string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPageTemplate overrides the page template used when the theme does not
// name one.
func WithPageTemplate(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.page = name
		}
	}
}

// Renderer implements render.Renderer producing a full HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	page      string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), page: PageTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, page: cfg.page}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of Render output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the calculator page for state.
func (r *Renderer) Render(ctx context.Context, state model.FormState, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	l := opts.Localizer()
	action := strings.TrimSpace(opts.Action)
	if action == "" {
		action = "/"
	}

	data := map[string]any{
		"view":   form.BuildView(state, l),
		"hint":   SanitizeHint(l.Hint(state.Kind)),
		"action": action,
		"theme":  themeData(opts),
	}
	for name, fn := range render.TemplateI18nFuncs(l, render.TemplateI18nConfig{}) {
		data[name] = fn
	}

	page := r.page
	if opts.Theme != nil {
		if partial := strings.TrimSpace(opts.Theme.Partials[themes.PagePartial]); partial != "" {
			page = partial
		}
	}

	result, err := r.templates.RenderTemplate(page, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type themeView struct {
	Name       string   `json:"name"`
	Variant    string   `json:"variant"`
	Stylesheet string   `json:"stylesheet,omitempty"`
	CSSVars    []cssVar `json:"cssVars,omitempty"`
}

func themeData(opts render.RenderOptions) themeView {
	cfg := opts.Theme
	if cfg == nil {
		return themeView{}
	}
	view := themeView{Name: cfg.Theme, Variant: cfg.Variant}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(themes.StylesheetAsset)
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		view.CSSVars = append(view.CSSVars, cssVar{Name: name, Value: cfg.CSSVars[name]})
	}
	return view
}
