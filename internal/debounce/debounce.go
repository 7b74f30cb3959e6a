// Package debounce implements a trailing-edge debouncer: the most recent
// value is emitted only after a quiet period with no newer one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer stabilizes a rapidly-changing input. Send replaces any pending
// value and restarts the quiet-period timer; once the timer fires, the
// latest value is delivered on C. Intermediate values are never emitted.
type Debouncer[T any] struct {
	quiet time.Duration
	out   chan T

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	stopped bool
}

func New[T any](quiet time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		quiet: quiet,
		out:   make(chan T, 1),
	}
}

// Send feeds the next input value, cancelling any pending emission.
func (d *Debouncer[T]) Send(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.emit)
}

// emit runs under the lock end to end so a concurrent Stop can never be
// overtaken by a late timer fire. The send cannot block: emits are
// serialized here and the one-slot buffer was just drained.
func (d *Debouncer[T]) emit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	// Drop a stale unread emission so the channel always holds the latest.
	select {
	case <-d.out:
	default:
	}
	d.out <- d.pending
}

// C delivers stabilized values. Buffered with one slot; an unread stale
// value is replaced by a newer one, never queued behind it.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending emission and discards an unread one; after it
// returns, nothing is delivered on C. Further Sends are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	select {
	case <-d.out:
	default:
	}
}
