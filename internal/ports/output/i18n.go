package output

import "shikkha/internal/domain/entities"

// T exposes a minimal i18n contract for user-facing messages.
// Implementations provide message lookup + templating for a given locale.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}

// Catalog is a complete namespace → key → string mapping for one locale.
type Catalog map[string]map[string]string

// MessageResolver maps a locale to its static message catalog.
type MessageResolver interface {
	T
	// Plural renders a count-dependent message; count is exposed as .Count.
	Plural(locale, key string, count int, data map[string]any) string
	Messages(locale entities.Locale) Catalog
}
