// Package locales loads message catalogs used to localize labels, titles and
// result templates. Catalogs are YAML or JSON documents:
//
//	locale: es
//	messages:
//	  result.quadratic.none: No hay solución real
//
// A Catalog implements i18n.Translator.
package locales

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcalc/pkg/i18n"
)

// DefaultLocale is the fallback locale when none is configured.
const DefaultLocale = "en"

// ErrMissingMessage is returned by Translate when no locale in the fallback
// chain defines the key.
var ErrMissingMessage = errors.New("locales: message not found")

var _ i18n.Translator = (*Catalog)(nil)

// Option configures catalog loading.
type Option func(*Catalog)

// WithDefaultLocale sets the last locale consulted by Translate.
func WithDefaultLocale(locale string) Option {
	return func(c *Catalog) {
		if trimmed := normaliseLocale(locale); trimmed != "" {
			c.defaultLocale = trimmed
		}
	}
}

// Catalog maps locale -> key -> message.
type Catalog struct {
	defaultLocale string
	messages      map[string]map[string]string
}

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// New returns an empty catalog.
func New(options ...Option) *Catalog {
	c := &Catalog{
		defaultLocale: DefaultLocale,
		messages:      make(map[string]map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// LoadFS walks fsys and loads every .yaml, .yml and .json catalog. Files may
// omit the locale field, in which case the file name (es.yaml) provides it.
// Defining the same key twice for a locale is an error. A nil fsys yields an
// empty catalog.
func LoadFS(fsys fs.FS, options ...Option) (*Catalog, error) {
	c := New(options...)
	if fsys == nil {
		return c, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("locales: read %s: %w", p, err)
		}

		doc, err := parseCatalog(data, p)
		if err != nil {
			return err
		}

		locale := normaliseLocale(doc.Locale)
		if locale == "" {
			locale = normaliseLocale(strings.TrimSuffix(path.Base(p), path.Ext(p)))
		}
		if locale == "" {
			return fmt.Errorf("locales: file %s does not declare a locale", p)
		}

		for key, msg := range doc.Messages {
			if err := c.add(locale, key, msg); err != nil {
				return fmt.Errorf("locales: file %s: %w", p, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Merge returns a new catalog holding c's messages overridden by other's.
// The default locale of c is kept.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := New(WithDefaultLocale(c.DefaultLocale()))
	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for locale, messages := range src.messages {
			if merged.messages[locale] == nil {
				merged.messages[locale] = make(map[string]string, len(messages))
			}
			for key, msg := range messages {
				merged.messages[locale][key] = msg
			}
		}
	}
	return merged
}

// Translate resolves key for locale, trying the full tag (es-MX), its base
// language (es) and finally the default locale. Extra args are ignored;
// placeholders are expanded by i18n.Localizer.
func (c *Catalog) Translate(locale, key string, _ ...any) (string, error) {
	if c == nil {
		return "", i18n.ErrMissingTranslator
	}
	key = strings.TrimSpace(key)
	for _, candidate := range c.chain(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingMessage, key, locale)
}

// Has reports whether locale (or its base language) has messages loaded.
func (c *Catalog) Has(locale string) bool {
	if c == nil {
		return false
	}
	norm := normaliseLocale(locale)
	if _, ok := c.messages[norm]; ok {
		return true
	}
	_, ok := c.messages[baseLanguage(norm)]
	return ok
}

// Locales returns the loaded locales sorted alphabetically.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// DefaultLocale reports the fallback locale.
func (c *Catalog) DefaultLocale() string {
	if c == nil || c.defaultLocale == "" {
		return DefaultLocale
	}
	return c.defaultLocale
}

func (c *Catalog) add(locale, key, msg string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty message key")
	}
	messages := c.messages[locale]
	if messages == nil {
		messages = make(map[string]string)
		c.messages[locale] = messages
	}
	if _, exists := messages[key]; exists {
		return fmt.Errorf("duplicate key %q for locale %s", key, locale)
	}
	messages[key] = msg
	return nil
}

func (c *Catalog) chain(locale string) []string {
	norm := normaliseLocale(locale)
	var out []string
	seen := make(map[string]struct{}, 3)
	for _, candidate := range []string{norm, baseLanguage(norm), c.DefaultLocale()} {
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("locales: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = catalogFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return catalogFile{}, fmt.Errorf("locales: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func normaliseLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	return strings.ToLower(trimmed)
}

func baseLanguage(locale string) string {
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}
