// Package i18n provides the key → display-string lookup table consulted by
// every rendering step, with one catalog per supported locale.
package i18n

import "strings"

const (
	// LocaleEnglish selects the English catalog.
	LocaleEnglish = "en"
	// LocaleJapanese selects the Japanese catalog.
	LocaleJapanese = "ja"
	// DefaultLocale is used when no locale was chosen or the chosen value is
	// not a supported locale.
	DefaultLocale = LocaleEnglish
)

// Translator resolves translation keys against one locale's catalog, falling
// back to English and finally to the key itself so a missing entry never
// blanks the UI.
type Translator struct {
	locale string
}

// NewTranslator builds a Translator for the requested locale, degrading to
// DefaultLocale for unknown values.
func NewTranslator(locale string) Translator {
	return Translator{locale: NormalizeLocale(locale)}
}

// NormalizeLocale maps arbitrary input to a supported locale code.
func NormalizeLocale(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case LocaleEnglish:
		return LocaleEnglish
	case LocaleJapanese:
		return LocaleJapanese
	default:
		return DefaultLocale
	}
}

// SupportedLocale reports whether the given code names a supported locale.
func SupportedLocale(locale string) bool {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case LocaleEnglish, LocaleJapanese:
		return true
	default:
		return false
	}
}

// Locale returns the resolved locale code.
func (translator Translator) Locale() string {
	return translator.locale
}

// T resolves key for the translator's locale.
func (translator Translator) T(key string) string {
	if catalog, ok := catalogs[translator.locale]; ok {
		if translated, present := catalog[key]; present {
			return translated
		}
	}
	if translated, present := catalogs[LocaleEnglish][key]; present {
		return translated
	}
	return key
}

// Catalog returns a copy of the full catalog for the translator's locale, for
// shipping to the browser shell in one payload.
func (translator Translator) Catalog() map[string]string {
	source := catalogs[translator.locale]
	catalog := make(map[string]string, len(source))
	for key, value := range source {
		catalog[key] = value
	}
	return catalog
}

// SupportedLocales lists the locale codes with catalogs, default first.
func SupportedLocales() []string {
	return []string{LocaleEnglish, LocaleJapanese}
}
