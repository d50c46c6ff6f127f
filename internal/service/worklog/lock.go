package worklog

import "sync"

// sessionLock is the in-process mutual-exclusion gate for today's session
// state. Single coarse lock, not distributed: running multiple processes
// against the same store voids the guarantee.
type sessionLock struct {
	mu sync.Mutex
}

// with runs fn while holding the lock. The deferred unlock releases on every
// exit path, panics included.
func (l *sessionLock) with(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}
