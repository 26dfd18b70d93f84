package i18n

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to the missing handler when no Translator is
// configured.
var ErrMissingTranslator = errors.New("i18n: translator not configured")

// Translator resolves a message key for a locale. Implementations return an
// error (or an empty string) when the key is unknown; callers then fall back
// to the built-in text.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler produces the string used when a key cannot be
// translated. fallback is the built-in text for the key (possibly empty) and
// err the translator failure, if any.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// DefaultMissingHandler returns the fallback text, or the key itself when no
// fallback exists so gaps stay visible.
func DefaultMissingHandler(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
