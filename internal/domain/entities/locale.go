package entities

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is the active display language. Only the tags in SupportedLocales
// are valid values.
type Locale string

const (
	English Locale = "en"
	Bengali Locale = "bn"
)

// SupportedLocales lists the closed set of locales; the first one is the
// default used before any persisted preference is applied.
var SupportedLocales = []Locale{English, Bengali}

// DefaultLocale is the first supported locale.
func DefaultLocale() Locale { return SupportedLocales[0] }

// ParseLocale accepts a BCP 47 tag ("bn", "bn-BD", "en_US") and reduces it to
// a supported locale by its base language.
func ParseLocale(raw string) (Locale, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", "-"))
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range SupportedLocales {
		if base.String() == string(l) {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l belongs to SupportedLocales.
func (l Locale) Valid() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// Tag returns the x/text language tag for l.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Next returns the locale following l in SupportedLocales, wrapping around.
func (l Locale) Next() Locale {
	for i, s := range SupportedLocales {
		if s == l {
			return SupportedLocales[(i+1)%len(SupportedLocales)]
		}
	}
	return DefaultLocale()
}

func (l Locale) String() string { return string(l) }

// SupportedTags returns the language tags of SupportedLocales, default first.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(SupportedLocales))
	for i, l := range SupportedLocales {
		tags[i] = l.Tag()
	}
	return tags
}
