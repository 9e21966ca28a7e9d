package store

import (
	"context"
	"reflect"
	"testing"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sess       *entities.AdminSession
		wantState  GuardState
		wantTarget output.View
	}{
		{name: "no session", sess: nil, wantState: GuardRedirecting, wantTarget: output.ViewLogin},
		{name: "non admin", sess: &entities.AdminSession{Token: "t", User: entities.User{Role: "editor"}}, wantState: GuardRedirecting, wantTarget: output.ViewHome},
		{name: "admin", sess: &entities.AdminSession{Token: "t", User: entities.User{Role: entities.RoleAdmin}}, wantState: GuardAuthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state, target := Decide(tc.sess)
			if state != tc.wantState || target != tc.wantTarget {
				t.Fatalf("Decide() = (%v, %q), want (%v, %q)", state, target, tc.wantState, tc.wantTarget)
			}
		})
	}
}

func TestAuthGuardMount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		email     string
		wantState GuardState
		wantNav   []output.View
	}{
		{name: "signed out", email: "", wantState: GuardRedirecting, wantNav: []output.View{output.ViewLogin}},
		{name: "non admin", email: "editor@example.com", wantState: GuardRedirecting, wantNav: []output.View{output.ViewHome}},
		{name: "admin", email: "admin@example.com", wantState: GuardAuthorized, wantNav: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sessions := NewSessionStore(newFakeAuth(), newCountingKV())
			if tc.email != "" {
				if _, err := sessions.Login(context.Background(), tc.email, "secret"); err != nil {
					t.Fatal(err)
				}
			}
			nav := &recordingNav{}
			g := NewAuthGuard(sessions, nav)
			if g.State() != GuardChecking {
				t.Fatalf("initial state = %v, want checking", g.State())
			}
			g.Mount()
			if g.State() != tc.wantState {
				t.Fatalf("State() = %v, want %v", g.State(), tc.wantState)
			}
			if got := nav.visited(); !reflect.DeepEqual(got, tc.wantNav) {
				t.Fatalf("navigations = %v, want %v", got, tc.wantNav)
			}
		})
	}
}

func TestAuthGuardReactsToLogout(t *testing.T) {
	t.Parallel()

	sessions := NewSessionStore(newFakeAuth(), newCountingKV())
	if _, err := sessions.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	nav := &recordingNav{}
	g := NewAuthGuard(sessions, nav)
	var states []GuardState
	g.Subscribe(func(s GuardState) { states = append(states, s) })
	g.Mount()

	sessions.Logout()
	if g.State() != GuardRedirecting || g.Target() != output.ViewLogin {
		t.Fatalf("after logout: state %v target %q", g.State(), g.Target())
	}
	if got := nav.visited(); !reflect.DeepEqual(got, []output.View{output.ViewLogin}) {
		t.Fatalf("navigations = %v", got)
	}
	if !reflect.DeepEqual(states, []GuardState{GuardAuthorized, GuardRedirecting}) {
		t.Fatalf("states = %v", states)
	}
}

func TestAuthGuardUnmountStopsFollowing(t *testing.T) {
	t.Parallel()

	sessions := NewSessionStore(newFakeAuth(), newCountingKV())
	if _, err := sessions.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	nav := &recordingNav{}
	g := NewAuthGuard(sessions, nav)
	g.Mount()
	g.Unmount()
	sessions.Logout()
	if len(nav.visited()) != 0 {
		t.Fatalf("unmounted guard navigated: %v", nav.visited())
	}
	if g.State() != GuardChecking {
		t.Fatalf("State() after Unmount = %v", g.State())
	}
}

func TestAuthGuardRedirectFiresOncePerTransition(t *testing.T) {
	t.Parallel()

	kv := newCountingKV()
	sessions := NewSessionStore(newFakeAuth(), kv)
	nav := &recordingNav{}
	g := NewAuthGuard(sessions, nav)
	g.Mount()
	g.Mount()
	_ = sessions.Reload()
	if got := len(nav.visited()); got != 1 {
		t.Fatalf("navigated %d times, want 1", got)
	}
}
