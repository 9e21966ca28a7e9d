package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/infrastructure/storage"
	"shikkha/internal/ports/output"
)

// countingKV wraps a MemoryStore and counts writes.
type countingKV struct {
	*storage.MemoryStore
	mu      sync.Mutex
	sets    int
	removes int
}

func newCountingKV() *countingKV {
	return &countingKV{MemoryStore: storage.NewMemoryStore()}
}

func (c *countingKV) Set(key, value string) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.MemoryStore.Set(key, value)
}

func (c *countingKV) Remove(key string) error {
	c.mu.Lock()
	c.removes++
	c.mu.Unlock()
	return c.MemoryStore.Remove(key)
}

func (c *countingKV) writes() (sets, removes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets, c.removes
}

type fakeAuth struct {
	sessions map[string]entities.AdminSession // keyed by email
	password string
	calls    int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (entities.AdminSession, error) {
	f.calls++
	sess, ok := f.sessions[email]
	if !ok || password != f.password {
		return entities.AdminSession{}, &domain.RemoteError{Status: 401, Err: domain.ErrInvalidLogin}
	}
	return sess, nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		password: "secret",
		sessions: map[string]entities.AdminSession{
			"admin@example.com":  {Token: "tok-admin", User: entities.User{Name: "Admin", Email: "admin@example.com", Role: entities.RoleAdmin}},
			"editor@example.com": {Token: "tok-editor", User: entities.User{Name: "Editor", Email: "editor@example.com", Role: "editor"}},
		},
	}
}

type recordingNav struct {
	mu    sync.Mutex
	views []output.View
}

func (n *recordingNav) Navigate(to output.View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, to)
}

func (n *recordingNav) visited() []output.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]output.View(nil), n.views...)
}

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) output.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.pending {
		if !t.fired && !t.stopped && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.f()
	}
}

func (s *manualScheduler) active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// mapResolver serves fixed catalogs.
type mapResolver map[entities.Locale]output.Catalog

func (m mapResolver) T(locale, key string, _ map[string]any) string {
	for ns, keys := range m[entities.Locale(locale)] {
		for k, v := range keys {
			if ns+"."+k == key {
				return v
			}
		}
	}
	return key
}

func (m mapResolver) Plural(locale, key string, _ int, data map[string]any) string {
	return m.T(locale, key, data)
}

func (m mapResolver) Messages(locale entities.Locale) output.Catalog {
	return m[locale]
}
