package i18n

import (
	"embed"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output ports.
var (
	_ output.T               = (*Translator)(nil)
	_ output.MessageResolver = (*Translator)(nil)
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer, plus the
// flattened per-locale catalogs used by renderers that need the whole table.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	catalogs        map[entities.Locale]output.Catalog
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "en").
//
// It loads translations from the embedded active.*.toml files and fails when
// a supported locale is missing or when locales disagree on their keys.
func NewTranslator(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	catalogs := make(map[entities.Locale]output.Catalog, len(entities.SupportedLocales))
	for _, loc := range entities.SupportedLocales {
		file := "active." + string(loc) + ".toml"
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
		raw, err := localeFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", file, err)
		}
		catalog, err := parseCatalog(raw)
		if err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", file, err)
		}
		catalogs[loc] = catalog
	}

	if err := checkCoverage(catalogs); err != nil {
		return nil, err
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		catalogs:        catalogs,
	}, nil
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	return t.localize(locale, key, data, nil)
}

// Plural renders a pluralized message; count is also exposed to the
// template as .Count.
func (t *Translator) Plural(locale, key string, count int, data map[string]any) string {
	merged := map[string]any{"Count": count}
	for k, v := range data {
		merged[k] = v
	}
	return t.localize(locale, key, merged, count)
}

func (t *Translator) localize(locale, key string, data map[string]any, pluralCount any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  pluralCount,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s, locales=%v): %v", key, languages, err)
		return key
	}
	return msg
}

// Messages returns a copy of the full catalog for locale. Unsupported locales
// resolve to the default locale's catalog.
func (t *Translator) Messages(locale entities.Locale) output.Catalog {
	catalog, ok := t.catalogs[locale]
	if !ok {
		catalog = t.catalogs[entities.DefaultLocale()]
	}
	out := make(output.Catalog, len(catalog))
	for ns, keys := range catalog {
		copied := make(map[string]string, len(keys))
		for k, v := range keys {
			copied[k] = v
		}
		out[ns] = copied
	}
	return out
}

// parseCatalog flattens a message file into namespace → key → string.
// Top-level tables are namespaces; a nested table is a plural message and
// contributes its "other" form.
func parseCatalog(raw []byte) (output.Catalog, error) {
	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	catalog := make(output.Catalog, len(doc))
	for ns, v := range doc {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("top-level key %q must be a namespace table", ns)
		}
		keys := make(map[string]string, len(table))
		for key, val := range table {
			switch msg := val.(type) {
			case string:
				keys[key] = msg
			case map[string]any:
				other, ok := msg["other"].(string)
				if !ok {
					return nil, fmt.Errorf("plural message %s.%s has no \"other\" form", ns, key)
				}
				keys[key] = other
			default:
				return nil, fmt.Errorf("message %s.%s has unsupported type %T", ns, key, val)
			}
		}
		catalog[ns] = keys
	}
	return catalog, nil
}

// checkCoverage verifies that every locale defines exactly the same keys.
func checkCoverage(catalogs map[entities.Locale]output.Catalog) error {
	union := map[string]struct{}{}
	for _, catalog := range catalogs {
		for _, key := range flatKeys(catalog) {
			union[key] = struct{}{}
		}
	}
	var problems []string
	for _, loc := range entities.SupportedLocales {
		catalog, ok := catalogs[loc]
		if !ok {
			problems = append(problems, fmt.Sprintf("locale %s has no catalog", loc))
			continue
		}
		have := map[string]struct{}{}
		for _, key := range flatKeys(catalog) {
			have[key] = struct{}{}
		}
		for key := range union {
			if _, ok := have[key]; !ok {
				problems = append(problems, fmt.Sprintf("locale %s is missing %s", loc, key))
			}
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("i18n: incomplete catalogs: %s", strings.Join(problems, "; "))
	}
	return nil
}

func flatKeys(catalog output.Catalog) []string {
	var keys []string
	for ns, msgs := range catalog {
		for k := range msgs {
			keys = append(keys, ns+"."+k)
		}
	}
	sort.Strings(keys)
	return keys
}
