// Package orglock provides named in-process locks keyed by organization
// identity. The rename and delete sequences are multi-step and
// non-transactional, so the registry holds the organization's lock for the
// whole sequence; without it two concurrent renames (or a rename racing a
// delete) can interleave partition copies and drops.
//
// Locks are in-process only. A multi-instance deployment would need a
// distributed lease instead.
package orglock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Registry hands out one mutex per key, creating entries on demand and
// discarding them once the last holder releases.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New creates an empty lock registry.
func New() *Registry {
	return &Registry{locks: make(map[string]*entry)}
}

// Lock acquires the named lock, blocking until it is available, and returns
// the release function. The caller must invoke the release exactly once,
// typically via defer.
func (r *Registry) Lock(key string) func() {
	r.mu.Lock()
	e, ok := r.locks[key]
	if !ok {
		e = &entry{}
		r.locks[key] = e
	}
	e.refs++
	r.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			r.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(r.locks, key)
			}
			r.mu.Unlock()
		})
	}
}

// Len reports how many keys currently have holders or waiters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
