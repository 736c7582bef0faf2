package coach

import "sync"

// Guard enforces mutual exclusion between session engines: at most one owner
// may hold the guard at a time. Accidental duplicate connections would open
// two microphones and two transports against the same remote quota, so "one
// active session" is a hard invariant, not a convention.
//
// The zero value is an unheld guard ready for use.
type Guard struct {
	mu     sync.Mutex
	holder any
}

// DefaultGuard is the process-wide guard used when an engine is not given
// its own. Tests instantiate independent guards per case.
var DefaultGuard = &Guard{}

// Acquire attempts to take the guard for owner. It fails fast, returning
// false and doing nothing, when the guard is already held.
func (g *Guard) Acquire(owner any) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holder != nil {
		return false
	}
	g.holder = owner
	return true
}

// Release clears the guard unconditionally. It is safe to call multiple
// times and from any lifecycle state, including after partial failure.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.holder = nil
}

// Holder returns the current owner, or nil when the guard is free. The
// engine uses this to ignore a late "open" event that arrives after an
// intervening disconnect.
func (g *Guard) Holder() any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder
}

// Held reports whether the guard is currently held.
func (g *Guard) Held() bool {
	return g.Holder() != nil
}
