package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
)

// Renderer implements render.Renderer for terminal output. Render prints a
// plain-text summary of a FormState; Run drives an interactive session.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, stdout).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{theme: DefaultTheme}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the localized screen as plain text, one line per element.
func (r *Renderer) Render(ctx context.Context, state model.FormState, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := form.BuildView(state, opts.Localizer())

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", view.Title, view.Author)
	fmt.Fprintf(&b, "%s: %s\n", view.SelectLabel, view.FormulaTitle)
	for _, field := range view.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", field.Label, field.Value)
		if field.HasError {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, field.Error)
		}
	}
	if view.ResultVisible {
		fmt.Fprintf(&b, "\n%s%s\n", r.theme.ResultPrefix, view.Result)
	}
	return []byte(b.String()), nil
}
