package store

import "sync"

type subscription[T any] struct {
	id int
	fn func(T)
}

// listeners is an ordered subscriber list. notify runs callbacks outside the
// lock, in subscription order, so a callback may unsubscribe itself.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscription[T]
}

func (l *listeners[T]) add(fn func(T)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	id := l.next
	l.subs = append(l.subs, subscription[T]{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	snapshot := make([]subscription[T], len(l.subs))
	copy(snapshot, l.subs)
	l.mu.Unlock()
	for _, s := range snapshot {
		s.fn(v)
	}
}
