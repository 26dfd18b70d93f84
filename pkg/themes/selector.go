package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrUnknownTheme is returned when no manifest matches the requested name.
	ErrUnknownTheme = errors.New("themes: unknown theme")
	// ErrUnknownVariant is returned when a manifest lacks the requested variant.
	ErrUnknownVariant = errors.New("themes: unknown variant")
)

// Option configures a Selector.
type Option func(*Selector)

// WithDefaults sets the theme and variant used when Select receives blanks.
func WithDefaults(name, variant string) Option {
	return func(s *Selector) {
		if name = strings.TrimSpace(name); name != "" {
			s.defaultTheme = name
		}
		if variant = strings.TrimSpace(variant); variant != "" {
			s.defaultVariant = variant
		}
	}
}

// WithManifest registers an additional manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(s *Selector) {
		if manifest != nil {
			s.pending = append(s.pending, manifest)
		}
	}
}

// Selector resolves theme selections from registered manifests. It satisfies
// theme.ThemeSelector.
type Selector struct {
	provider       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	pending        []*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the bundled manifest plus any supplied through
// options with a go-theme registry.
func NewSelector(options ...Option) (*Selector, error) {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest),
		pending:        []*theme.Manifest{Default()},
		defaultTheme:   DefaultName,
		defaultVariant: DefaultVariant,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	registry := theme.NewRegistry()
	for _, manifest := range s.pending {
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, errors.New("themes: manifest name is required")
		}
		if _, exists := s.manifests[name]; exists {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", name, err)
		}
		s.manifests[name] = manifest
	}
	s.pending = nil
	s.provider = registry

	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, s.defaultTheme)
	}
	return s, nil
}

// Provider exposes the underlying go-theme registry.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Names lists registered theme names in sorted order.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the selectable variants of a theme, base variant first.
func (s *Selector) Variants(name string) []string {
	manifest, ok := s.manifests[strings.TrimSpace(name)]
	if !ok {
		return nil
	}
	out := []string{DefaultVariant}
	var extra []string
	for variant := range manifest.Variants {
		if variant != DefaultVariant {
			extra = append(extra, variant)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Select resolves name and variant, falling back to the configured defaults
// for blank values. The base variant is always selectable.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant != DefaultVariant {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Resolve selects a theme and derives its renderer configuration.
func (s *Selector) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}
