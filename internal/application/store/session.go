package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// SessionKey is the storage key holding the serialized admin session.
const SessionKey = "admin_session"

// SessionStore holds the authenticated admin of a client scope. Listeners
// receive nil when the session goes away.
type SessionStore struct {
	auth output.Authenticator
	kv   output.KeyValueStore

	mu      sync.Mutex
	current *entities.AdminSession
	subs    listeners[*entities.AdminSession]
}

// NewSessionStore reads the persisted session once.
func NewSessionStore(auth output.Authenticator, kv output.KeyValueStore) *SessionStore {
	s := &SessionStore{auth: auth, kv: kv}
	sess, err := s.load()
	if err != nil {
		log.Printf("session: %v", err)
	}
	s.current = sess
	return s
}

// Login checks credentials with the backend and persists the resulting
// session. On failure the current session is left untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (entities.AdminSession, error) {
	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return entities.AdminSession{}, err
	}
	if sess.Token == "" {
		return entities.AdminSession{}, fmt.Errorf("login: empty token: %w", domain.ErrUnauthorized)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return entities.AdminSession{}, fmt.Errorf("login: encode session: %w", err)
	}

	s.mu.Lock()
	if err := s.kv.Set(SessionKey, string(raw)); err != nil {
		log.Printf("session: persist: %v", err)
	}
	stored := sess
	s.current = &stored
	s.mu.Unlock()

	s.subs.notify(copySession(&stored))
	return sess, nil
}

// Logout clears the session and its persisted form unconditionally.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	if err := s.kv.Remove(SessionKey); err != nil {
		log.Printf("session: clear persisted: %v", err)
	}
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if had {
		s.subs.notify(nil)
	}
}

func (s *SessionStore) Current() (entities.AdminSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return entities.AdminSession{}, false
	}
	return *s.current, true
}

// Reload re-reads storage, picking up a login or logout performed by another
// process sharing the same store, and notifies when the session changed.
func (s *SessionStore) Reload() error {
	sess, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	if sameSession(s.current, sess) {
		s.mu.Unlock()
		return nil
	}
	s.current = sess
	s.mu.Unlock()

	s.subs.notify(copySession(sess))
	return nil
}

// Subscribe registers fn for session changes.
func (s *SessionStore) Subscribe(fn func(*entities.AdminSession)) (unsubscribe func()) {
	return s.subs.add(fn)
}

// IsAdmin reports whether the session's role is the admin marker.
func IsAdmin(sess entities.AdminSession) bool {
	return sess.IsAdmin()
}

func (s *SessionStore) load() (*entities.AdminSession, error) {
	raw, ok, err := s.kv.Get(SessionKey)
	if err != nil {
		return nil, fmt.Errorf("read persisted session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var sess entities.AdminSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Token == "" {
		// A corrupt entry counts as signed out.
		return nil, nil
	}
	return &sess, nil
}

func sameSession(a, b *entities.AdminSession) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copySession(s *entities.AdminSession) *entities.AdminSession {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
