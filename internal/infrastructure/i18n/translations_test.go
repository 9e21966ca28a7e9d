package i18n

import (
	"reflect"
	"strings"
	"testing"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

func newTestTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := NewTranslator("en")
	if err != nil {
		t.Fatalf("NewTranslator() error = %v", err)
	}
	return tr
}

func TestCatalogsHaveIdenticalKeyCoverage(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	base := flatKeys(tr.Messages(entities.DefaultLocale()))
	if len(base) == 0 {
		t.Fatalf("default catalog is empty")
	}
	for _, loc := range entities.SupportedLocales {
		got := flatKeys(tr.Messages(loc))
		if !reflect.DeepEqual(got, base) {
			t.Fatalf("locale %s keys differ from %s:\n got  %v\n want %v", loc, entities.DefaultLocale(), got, base)
		}
	}
}

func TestEveryMessageIsNonEmpty(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	for _, loc := range entities.SupportedLocales {
		for ns, keys := range tr.Messages(loc) {
			for k, v := range keys {
				if strings.TrimSpace(v) == "" {
					t.Errorf("%s: %s.%s is empty", loc, ns, k)
				}
			}
		}
	}
}

func TestToggleRoundTripIsByteIdentical(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	before := tr.Messages(entities.English)
	bengali := tr.Messages(entities.Bengali)
	after := tr.Messages(entities.English)

	if reflect.DeepEqual(before, bengali) {
		t.Fatalf("en and bn catalogs should differ")
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("en catalog changed across a toggle")
	}
	if got, want := tr.T("en", "nav.home", nil), before["nav"]["home"]; got != want {
		t.Fatalf("T(nav.home) = %q, want %q", got, want)
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	m := tr.Messages(entities.English)
	m["nav"]["home"] = "mutated"
	if tr.Messages(entities.English)["nav"]["home"] == "mutated" {
		t.Fatalf("Messages() leaked internal state")
	}
}

func TestMessagesUnknownLocaleFallsBackToDefault(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	if !reflect.DeepEqual(tr.Messages("fr"), tr.Messages(entities.DefaultLocale())) {
		t.Fatalf("unknown locale should resolve to the default catalog")
	}
}

func TestT(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{name: "plain en", locale: "en", key: "nav.home", want: "Home"},
		{name: "plain bn", locale: "bn", key: "nav.home", want: "হোম"},
		{name: "template", locale: "en", key: "login.success", data: map[string]any{"Name": "Rina"}, want: "Welcome back, Rina"},
		{name: "unknown locale falls back", locale: "fr", key: "nav.login", want: "Login"},
		{name: "missing key returns key", locale: "en", key: "nav.nope", want: "nav.nope"},
		{name: "empty key", locale: "en", key: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tr.T(tc.locale, tc.key, tc.data); got != tc.want {
				t.Fatalf("T(%q, %q) = %q, want %q", tc.locale, tc.key, got, tc.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t)
	if got := tr.Plural("en", "dashboard.count", 1, nil); got != "1 post" {
		t.Fatalf("Plural(1) = %q", got)
	}
	if got := tr.Plural("en", "dashboard.count", 3, nil); got != "3 posts" {
		t.Fatalf("Plural(3) = %q", got)
	}
	if got := tr.Plural("bn", "dashboard.count", 3, nil); got != "3টি পোস্ট" {
		t.Fatalf("Plural(bn, 3) = %q", got)
	}
}

func TestCheckCoverageReportsMissingKeys(t *testing.T) {
	t.Parallel()

	err := checkCoverage(map[entities.Locale]output.Catalog{
		entities.English: {"nav": {"home": "Home", "login": "Login"}},
		entities.Bengali: {"nav": {"home": "হোম"}},
	})
	if err == nil || !strings.Contains(err.Error(), "locale bn is missing nav.login") {
		t.Fatalf("checkCoverage() error = %v", err)
	}
}

func TestParseCatalogRejectsBareTopLevelValues(t *testing.T) {
	t.Parallel()

	if _, err := parseCatalog([]byte(`title = "x"`)); err == nil {
		t.Fatalf("expected error for top-level message outside a namespace")
	}
	if _, err := parseCatalog([]byte("[ns.count]\none = \"x\"\n")); err == nil {
		t.Fatalf("expected error for plural without other form")
	}
}
