package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
)

const langParam = "lang"

var tagMatcher = language.NewMatcher(entities.SupportedTags())

// requestLocale picks the content language: the lang query parameter when
// present (and it must be supported), else the best Accept-Language match,
// else fallback.
func requestLocale(r *http.Request, fallback entities.Locale) (entities.Locale, error) {
	if raw := strings.TrimSpace(r.URL.Query().Get(langParam)); raw != "" {
		locale, ok := entities.ParseLocale(raw)
		if !ok {
			return fallback, domain.ErrUnsupportedLocale
		}
		return locale, nil
	}
	return acceptedLocale(r, fallback), nil
}

// acceptedLocale negotiates Accept-Language against the supported locales.
func acceptedLocale(r *http.Request, fallback entities.Locale) entities.Locale {
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := tagMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return entities.SupportedLocales[index]
}

// responseLocale is the language used for messages in a response. An
// unsupported lang parameter falls through to Accept-Language.
func (h *Handler) responseLocale(r *http.Request) entities.Locale {
	if locale, err := requestLocale(r, h.defaultLocale); err == nil {
		return locale
	}
	return acceptedLocale(r, h.defaultLocale)
}
