package store

import (
	"log"
	"sync"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// LocaleKey is the storage key holding the locale tag.
const LocaleKey = "locale"

// LocaleStore holds the active locale of a client scope.
//
// It starts at the default locale so the first render does not depend on
// storage; Hydrate applies the persisted preference once afterwards.
type LocaleStore struct {
	kv output.KeyValueStore

	mu       sync.Mutex
	current  entities.Locale
	hydrated sync.Once
	subs     listeners[entities.Locale]
}

func NewLocaleStore(kv output.KeyValueStore) *LocaleStore {
	return &LocaleStore{kv: kv, current: entities.DefaultLocale()}
}

func (s *LocaleStore) Get() entities.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set persists and publishes l. Setting the current value does nothing;
// unsupported values are ignored.
func (s *LocaleStore) Set(l entities.Locale) {
	if !l.Valid() {
		log.Printf("locale: ignoring unsupported locale %q", l)
		return
	}
	s.mu.Lock()
	if s.current == l {
		s.mu.Unlock()
		return
	}
	if err := s.kv.Set(LocaleKey, string(l)); err != nil {
		log.Printf("locale: persist %q: %v", l, err)
	}
	s.current = l
	s.mu.Unlock()

	s.subs.notify(l)
}

// Toggle switches to the next supported locale and returns it.
func (s *LocaleStore) Toggle() entities.Locale {
	next := s.Get().Next()
	s.Set(next)
	return next
}

// Hydrate applies the persisted locale. Only the first call has an effect;
// a missing or invalid stored value leaves the default in place.
func (s *LocaleStore) Hydrate() {
	s.hydrated.Do(func() {
		raw, ok, err := s.kv.Get(LocaleKey)
		if err != nil {
			log.Printf("locale: read persisted value: %v", err)
			return
		}
		if !ok {
			return
		}
		l, ok := entities.ParseLocale(raw)
		if !ok {
			return
		}
		s.mu.Lock()
		if s.current == l {
			s.mu.Unlock()
			return
		}
		s.current = l
		s.mu.Unlock()
		s.subs.notify(l)
	})
}

// Subscribe registers fn for locale changes.
func (s *LocaleStore) Subscribe(fn func(entities.Locale)) (unsubscribe func()) {
	return s.subs.add(fn)
}
