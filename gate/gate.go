package gate

import (
	"context"
	"sync"
)

// Gate admits at most limit callers per window. Capacity comes back only
// through Reset (or Release, for the enter/exit policy).
type Gate struct {
	mu      sync.Mutex
	limit   int
	count   int
	waiting int
	wake    chan struct{} // closed and replaced on every broadcast
	closed  bool
	onWait  func(delta int)
}

// Option configures a Gate
type Option func(*Gate)

// WithWaitObserver registers fn to be told each time a caller starts (+1) or
// stops (-1) blocking in Acquire. fn runs with the gate locked and must not
// call back into the gate.
func WithWaitObserver(fn func(delta int)) Option {
	return func(g *Gate) {
		if fn != nil {
			g.onWait = fn
		}
	}
}

// New creates a gate admitting limit callers per window
func New(limit int, opts ...Option) (*Gate, error) {
	if limit <= 0 {
		return nil, NewInvalidLimitError(limit)
	}
	g := &Gate{
		limit:  limit,
		wake:   make(chan struct{}),
		onWait: func(int) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Acquire blocks until the caller is counted against the current window.
//
// Every wake-up re-checks the count under the mutex, so a broadcast never
// admits more than limit callers. If ctx ends first the count is left
// untouched and an error matching ErrInterruptedWait is returned.
func (g *Gate) Acquire(ctx context.Context) error {
	g.mu.Lock()
	for !g.closed && g.count >= g.limit {
		wake := g.wake
		g.waiting++
		g.onWait(1)
		g.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			g.mu.Lock()
			g.waiting--
			g.onWait(-1)
			g.mu.Unlock()
			return NewInterruptedWaitError(ctx.Err())
		}

		g.mu.Lock()
		g.waiting--
		g.onWait(-1)
	}
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	g.count++
	g.mu.Unlock()
	return nil
}

// Reset zeroes the admitted count and wakes every waiter
func (g *Gate) Reset() {
	g.mu.Lock()
	g.count = 0
	g.broadcast()
	g.mu.Unlock()
}

// Release gives one admission back. Only the enter/exit policy calls it.
func (g *Gate) Release() {
	g.mu.Lock()
	if g.count > 0 {
		g.count--
	}
	g.broadcast()
	g.mu.Unlock()
}

// Close wakes all waiters with ErrClosed and rejects future callers
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.broadcast()
}

// Count returns the admissions in the current window
func (g *Gate) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// Waiting returns the number of callers blocked in Acquire
func (g *Gate) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting
}

func (g *Gate) Limit() int {
	return g.limit
}

// broadcast must be called with g.mu held
func (g *Gate) broadcast() {
	close(g.wake)
	g.wake = make(chan struct{})
}
