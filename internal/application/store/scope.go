package store

import (
	"time"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// Scope owns the per-client stores and is passed explicitly to every
// component that reads or mutates them.
type Scope struct {
	Locale   *LocaleStore
	Session  *SessionStore
	Toasts   *ToastQueue
	Messages output.MessageResolver
}

// ScopeOptions configures NewScope. Zero values select production defaults.
type ScopeOptions struct {
	Scheduler output.Scheduler
	ToastTTL  time.Duration
}

func NewScope(kv output.KeyValueStore, auth output.Authenticator, messages output.MessageResolver, opts ScopeOptions) *Scope {
	return &Scope{
		Locale:   NewLocaleStore(kv),
		Session:  NewSessionStore(auth, kv),
		Toasts:   NewToastQueue(opts.Scheduler, opts.ToastTTL),
		Messages: messages,
	}
}

// T renders key in the active locale.
func (s *Scope) T(key string, data map[string]any) string {
	return s.Messages.T(string(s.Locale.Get()), key, data)
}

// Plural renders a count-dependent key in the active locale.
func (s *Scope) Plural(key string, count int, data map[string]any) string {
	return s.Messages.Plural(string(s.Locale.Get()), key, count, data)
}

// Catalog returns the full message table of the active locale.
func (s *Scope) Catalog() output.Catalog {
	return s.Messages.Messages(s.Locale.Get())
}

// Notify pushes a toast whose text is key rendered in the active locale.
func (s *Scope) Notify(kind entities.ToastKind, key string, data map[string]any) entities.ToastID {
	return s.Toasts.Push(s.T(key, data), kind)
}

// NotifyError turns err into an error toast. A message supplied by the
// backend wins; otherwise the domain code picks a localized message.
func (s *Scope) NotifyError(err error) entities.ToastID {
	if msg, ok := domain.RemoteMessage(err); ok {
		return s.Toasts.Push(msg, entities.ToastError)
	}
	return s.Notify(entities.ToastError, domain.MessageKey(err), nil)
}

// Close releases timers held by the scope.
func (s *Scope) Close() {
	s.Toasts.Close()
}
