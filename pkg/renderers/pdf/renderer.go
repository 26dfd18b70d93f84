// Package pdf renders the calculator screen as a one page PDF summary.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/phpdave11/gofpdf"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
)

// Token names read from the theme when present.
const (
	TokenText   = "color-text"
	TokenAccent = "color-accent"
	TokenError  = "color-error"
)

// Option configures the PDF renderer.
type Option func(*Renderer)

// WithPageSize selects the page size passed to gofpdf ("A4", "Letter", ...).
func WithPageSize(size string) Option {
	return func(r *Renderer) {
		if size = strings.TrimSpace(size); size != "" {
			r.pageSize = size
		}
	}
}

// WithCompression toggles stream compression. Uncompressed output is useful
// when inspecting documents.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// Renderer implements render.Renderer producing application/pdf documents.
type Renderer struct {
	pageSize string
	compress bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a PDF renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{pageSize: "A4", compress: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "pdf"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render writes the title, the selected formula, each active field with its
// error text, and the result when visible.
func (r *Renderer) Render(ctx context.Context, state model.FormState, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pdf: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := opts.Localizer()
	view := form.BuildView(state, l)
	colors := paletteFrom(opts)

	doc := gofpdf.New("P", "mm", r.pageSize, "")
	doc.SetCompression(r.compress)
	doc.SetTitle(view.Title, true)
	doc.SetAuthor(view.Author, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	colors.text.apply(doc)
	doc.Cell(0, 10, tr(view.Title))
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, tr(view.Author))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, tr(view.FormulaTitle))
	doc.Ln(8)
	if hint := plainText(l.Hint(state.Kind)); hint != "" {
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 5, tr(hint), "", "L", false)
		doc.Ln(2)
	}

	doc.SetFont("Helvetica", "", 11)
	for _, field := range view.Fields {
		doc.Cell(0, 6, tr(fmt.Sprintf("%s: %s", field.Label, field.Value)))
		doc.Ln(6)
		if field.HasError {
			colors.danger.apply(doc)
			doc.Cell(0, 6, tr(field.Error))
			doc.Ln(6)
			colors.text.apply(doc)
		}
	}

	if view.ResultVisible {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 13)
		colors.accent.apply(doc)
		doc.Cell(0, 8, tr(view.Result))
		doc.Ln(8)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: write document: %w", err)
	}
	return buf.Bytes(), nil
}

type rgb struct {
	r, g, b int
}

func (c rgb) apply(doc *gofpdf.Fpdf) {
	doc.SetTextColor(c.r, c.g, c.b)
}

type palette struct {
	text, accent, danger rgb
}

var defaultPalette = palette{
	text:   rgb{0x1f, 0x23, 0x30},
	accent: rgb{0x35, 0x57, 0xd6},
	danger: rgb{0xc0, 0x39, 0x2b},
}

func paletteFrom(opts render.RenderOptions) palette {
	p := defaultPalette
	if opts.Theme == nil {
		return p
	}
	if c, ok := parseHex(opts.Theme.Tokens[TokenText]); ok {
		p.text = c
	}
	if c, ok := parseHex(opts.Theme.Tokens[TokenAccent]); ok {
		p.accent = c
	}
	if c, ok := parseHex(opts.Theme.Tokens[TokenError]); ok {
		p.danger = c
	}
	return p
}

// parseHex accepts #rgb and #rrggbb.
func parseHex(raw string) (rgb, bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

// plainText drops any markup from catalog hints; PDF text has no tags.
func plainText(markup string) string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(markup)))
}
