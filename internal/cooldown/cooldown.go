// Package cooldown rate-limits calls to the text-generation service. Each
// (operation, actor) pair gets one successful pass per window; the guard is
// process-local by design and loses its state on restart.
package cooldown

import (
	"sync"
	"time"
)

const DefaultWindow = 5000 * time.Millisecond

// Guard is a keyed check-and-arm limiter. The zero value is not usable;
// construct with New.
type Guard struct {
	mu     sync.Mutex
	expiry map[string]entry
	window time.Duration
	now    func() time.Time
	after  func(d time.Duration, f func())
}

type entry struct {
	until time.Time
	gen   uint64
}

// Option configures a Guard.
type Option func(*Guard)

// WithWindow overrides the cooldown duration.
func WithWindow(d time.Duration) Option {
	return func(g *Guard) { g.window = d }
}

// WithClock injects the time source used to compute remaining windows.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithAfterFunc injects the timer scheduler used for self-clearing entries.
func WithAfterFunc(after func(d time.Duration, f func())) Option {
	return func(g *Guard) { g.after = after }
}

func New(opts ...Option) *Guard {
	g := &Guard{
		expiry: make(map[string]entry),
		window: DefaultWindow,
		now:    time.Now,
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAndArm reports whether the caller may proceed. On success the window
// is armed immediately, inside the same critical section as the check, so
// two concurrent calls for one key can never both pass. During an active
// window the call does not extend the window; it only reports the time
// remaining.
func (g *Guard) CheckAndArm(operation, actor string) (remaining time.Duration, ok bool) {
	key := operation + "-" + actor

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prev, exists := g.expiry[key]
	if exists {
		if rem := prev.until.Sub(now); rem > 0 {
			return rem, false
		}
		// timer has logically expired but not yet fired; treat as clear
	}

	gen := prev.gen + 1
	g.expiry[key] = entry{until: now.Add(g.window), gen: gen}
	g.after(g.window, func() {
		g.mu.Lock()
		// a stale timer from an earlier window must not clear a newer one
		if cur, ok := g.expiry[key]; ok && cur.gen == gen {
			delete(g.expiry, key)
		}
		g.mu.Unlock()
	})
	return 0, true
}

// Window returns the configured cooldown duration.
func (g *Guard) Window() time.Duration { return g.window }
