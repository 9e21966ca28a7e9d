package store

import (
	"sync"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// GuardState is the state of an AuthGuard.
type GuardState int

const (
	GuardChecking GuardState = iota
	GuardAuthorized
	GuardRedirecting
)

func (s GuardState) String() string {
	switch s {
	case GuardChecking:
		return "checking"
	case GuardAuthorized:
		return "authorized"
	case GuardRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Decide maps a session to the guard outcome: no session goes to login, a
// non-admin goes home, an admin is let through.
func Decide(sess *entities.AdminSession) (GuardState, output.View) {
	switch {
	case sess == nil:
		return GuardRedirecting, output.ViewLogin
	case !sess.IsAdmin():
		return GuardRedirecting, output.ViewHome
	default:
		return GuardAuthorized, ""
	}
}

// AuthGuard gates an admin-only view. It re-evaluates whenever the session
// store changes while mounted, so a logout elsewhere closes the view.
type AuthGuard struct {
	sessions *SessionStore
	nav      output.Navigator

	mu          sync.Mutex
	state       GuardState
	target      output.View
	unsubscribe func()
	subs        listeners[GuardState]
}

func NewAuthGuard(sessions *SessionStore, nav output.Navigator) *AuthGuard {
	return &AuthGuard{sessions: sessions, nav: nav, state: GuardChecking}
}

// Mount evaluates the current session and starts following session changes.
func (g *AuthGuard) Mount() {
	g.mu.Lock()
	if g.unsubscribe == nil {
		g.unsubscribe = g.sessions.Subscribe(g.evaluate)
	}
	g.mu.Unlock()

	sess, ok := g.sessions.Current()
	if !ok {
		g.evaluate(nil)
		return
	}
	g.evaluate(&sess)
}

// Unmount stops following the session store and resets to Checking.
func (g *AuthGuard) Unmount() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.state = GuardChecking
	g.target = ""
	g.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *AuthGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Target is the view the guard redirected to, if redirecting.
func (g *AuthGuard) Target() output.View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

// Subscribe registers fn for state transitions.
func (g *AuthGuard) Subscribe(fn func(GuardState)) (unsubscribe func()) {
	return g.subs.add(fn)
}

func (g *AuthGuard) evaluate(sess *entities.AdminSession) {
	next, target := Decide(sess)

	g.mu.Lock()
	changed := next != g.state || target != g.target
	g.state = next
	g.target = target
	g.mu.Unlock()

	if !changed {
		return
	}
	g.subs.notify(next)
	if next == GuardRedirecting && g.nav != nil {
		g.nav.Navigate(target)
	}
}
