package flows

import (
	"sync/atomic"

	"shikkha/internal/domain"
)

// inflight is the "disabled submit button": one call at a time per form.
type inflight struct {
	busy atomic.Bool
}

func (f *inflight) acquire() error {
	if !f.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	return nil
}

func (f *inflight) release() { f.busy.Store(false) }

// Busy reports whether a call is outstanding.
func (f *inflight) Busy() bool { return f.busy.Load() }
