package store

import (
	"context"
	"errors"
	"testing"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
)

func TestSessionStoreLoginPersists(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	s := NewSessionStore(newFakeAuth(), kv)
	var got []*entities.AdminSession
	s.Subscribe(func(sess *entities.AdminSession) { got = append(got, sess) })

	sess, err := s.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !IsAdmin(sess) {
		t.Fatalf("IsAdmin() = false for admin session")
	}
	cur, ok := s.Current()
	if !ok || cur.Token != "tok-admin" {
		t.Fatalf("Current() = %+v, %v", cur, ok)
	}
	if _, ok, _ := kv.Get(SessionKey); !ok {
		t.Fatalf("session not persisted")
	}
	if len(got) != 1 || got[0] == nil || got[0].User.Name != "Admin" {
		t.Fatalf("notifications = %v", got)
	}

	// A fresh store over the same storage starts signed in.
	again := NewSessionStore(newFakeAuth(), kv)
	if cur, ok := again.Current(); !ok || cur != sess {
		t.Fatalf("restored session = %+v, %v", cur, ok)
	}
}

func TestSessionStoreLoginFailureKeepsState(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	s := NewSessionStore(newFakeAuth(), kv)
	calls := 0
	s.Subscribe(func(*entities.AdminSession) { calls++ })

	_, err := s.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidLogin) {
		t.Fatalf("Login() error = %v, want ErrInvalidLogin", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("session present after failed login")
	}
	if sets, _ := kv.writes(); sets != 0 || calls != 0 {
		t.Fatalf("failed login wrote %d times, notified %d times", sets, calls)
	}
}

func TestSessionStoreLogoutIsUnconditional(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	s := NewSessionStore(newFakeAuth(), kv)
	calls := 0
	s.Subscribe(func(*entities.AdminSession) { calls++ })

	s.Logout()
	if _, removes := kv.writes(); removes != 1 {
		t.Fatalf("Logout() without session removed %d times, want 1", removes)
	}
	if calls != 0 {
		t.Fatalf("Logout() without session notified")
	}

	if _, err := s.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	s.Logout()
	if _, ok := s.Current(); ok {
		t.Fatalf("session present after Logout")
	}
	if _, ok, _ := kv.Get(SessionKey); ok {
		t.Fatalf("persisted session present after Logout")
	}
	if calls != 2 {
		t.Fatalf("notified %d times, want 2 (login + logout)", calls)
	}
}

func TestSessionStoreReloadObservesExternalChanges(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	auth := newFakeAuth()
	tabA := NewSessionStore(auth, kv)
	tabB := NewSessionStore(auth, kv)

	if _, err := tabA.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	var seen []*entities.AdminSession
	tabB.Subscribe(func(sess *entities.AdminSession) { seen = append(seen, sess) })

	if err := tabB.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if _, ok := tabB.Current(); !ok {
		t.Fatalf("tab B did not pick up login")
	}
	if err := tabB.Reload(); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Fatalf("unchanged Reload notified: %d", len(seen))
	}

	tabA.Logout()
	if err := tabB.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, ok := tabB.Current(); ok {
		t.Fatalf("tab B still signed in after logout in tab A")
	}
	if len(seen) != 2 || seen[1] != nil {
		t.Fatalf("seen = %v, want trailing nil", seen)
	}
}

func TestSessionStoreIgnoresCorruptPersistedValue(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	_ = kv.MemoryStore.Set(SessionKey, "{not json")
	s := NewSessionStore(newFakeAuth(), kv)
	if _, ok := s.Current(); ok {
		t.Fatalf("corrupt session treated as signed in")
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	if IsAdmin(entities.AdminSession{User: entities.User{Role: "editor"}}) {
		t.Fatalf("editor reported as admin")
	}
	if !IsAdmin(entities.AdminSession{User: entities.User{Role: entities.RoleAdmin}}) {
		t.Fatalf("admin not reported as admin")
	}
}
