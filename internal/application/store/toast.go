package store

import (
	"sync"
	"time"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// DefaultToastTTL is how long a toast stays visible without dismissal.
const DefaultToastTTL = 5 * time.Second

// ClockScheduler schedules callbacks on the wall clock.
type ClockScheduler struct{}

func (ClockScheduler) AfterFunc(d time.Duration, f func()) output.Timer {
	return time.AfterFunc(d, f)
}

// ToastQueue is the ordered list of visible notifications. Each toast gets
// its own expiry timer; expiry and dismissal of one toast never touch the
// position of the others.
type ToastQueue struct {
	sched output.Scheduler
	ttl   time.Duration

	mu     sync.Mutex
	nextID entities.ToastID
	items  []entities.Toast
	timers map[entities.ToastID]output.Timer
	subs   listeners[[]entities.Toast]

	// pending marks a change not delivered yet; notifying is set while one
	// goroutine drains pending changes to subscribers.
	pending   bool
	notifying bool
}

// NewToastQueue uses the wall clock when sched is nil and DefaultToastTTL
// when ttl is not positive.
func NewToastQueue(sched output.Scheduler, ttl time.Duration) *ToastQueue {
	if sched == nil {
		sched = ClockScheduler{}
	}
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastQueue{
		sched:  sched,
		ttl:    ttl,
		timers: map[entities.ToastID]output.Timer{},
	}
}

// Push appends a toast and schedules its expiry. Unknown kinds are shown as info.
func (q *ToastQueue) Push(message string, kind entities.ToastKind) entities.ToastID {
	if !kind.Valid() {
		kind = entities.ToastInfo
	}

	q.mu.Lock()
	q.nextID++
	id := q.nextID
	q.items = append(q.items, entities.Toast{ID: id, Message: message, Kind: kind})
	q.mu.Unlock()

	timer := q.sched.AfterFunc(q.ttl, func() { q.remove(id, false) })

	q.mu.Lock()
	if q.indexLocked(id) >= 0 {
		q.timers[id] = timer
	}
	q.mu.Unlock()

	q.publish()
	return id
}

// Dismiss removes a toast immediately. Unknown or expired ids are ignored.
func (q *ToastQueue) Dismiss(id entities.ToastID) {
	q.remove(id, true)
}

// List returns the visible toasts in push order.
func (q *ToastQueue) List() []entities.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Subscribe registers fn for queue changes; fn receives the new list.
func (q *ToastQueue) Subscribe(fn func([]entities.Toast)) (unsubscribe func()) {
	return q.subs.add(fn)
}

// Close stops all pending expiry timers and empties the queue.
func (q *ToastQueue) Close() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
	q.mu.Unlock()
}

func (q *ToastQueue) remove(id entities.ToastID, stopTimer bool) {
	q.mu.Lock()
	i := q.indexLocked(id)
	if i < 0 {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items[:i:i], q.items[i+1:]...)
	if t, ok := q.timers[id]; ok {
		if stopTimer {
			t.Stop()
		}
		delete(q.timers, id)
	}
	q.mu.Unlock()

	q.publish()
}

// publish delivers the current list to subscribers. Deliveries never overlap:
// a change made while another goroutine (or a subscriber) is notifying is
// picked up by that drain loop, so the last list delivered is always List().
func (q *ToastQueue) publish() {
	q.mu.Lock()
	q.pending = true
	if q.notifying {
		q.mu.Unlock()
		return
	}
	q.notifying = true
	for q.pending {
		q.pending = false
		snapshot := q.snapshotLocked()
		q.mu.Unlock()
		q.subs.notify(snapshot)
		q.mu.Lock()
	}
	q.notifying = false
	q.mu.Unlock()
}

func (q *ToastQueue) indexLocked(id entities.ToastID) int {
	for i, t := range q.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (q *ToastQueue) snapshotLocked() []entities.Toast {
	out := make([]entities.Toast, len(q.items))
	copy(out, q.items)
	return out
}
