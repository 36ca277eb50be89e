// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the core interfaces.

package fake

import (
	"sync"

	"github.com/momentics/streamrelay/api"
)

// Reactor is a fake implementation of api.Reactor for testing.
// Readiness is delivered manually through Fire.
type Reactor struct {
	mu          sync.Mutex
	callbacks   map[uintptr]func(api.Readiness)
	registerErr error
	closed      bool
}

// NewReactor creates a fake reactor with default settings.
func NewReactor() *Reactor {
	return &Reactor{callbacks: make(map[uintptr]func(api.Readiness))}
}

// SetRegisterErr makes subsequent Register calls fail with err.
func (r *Reactor) SetRegisterErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerErr = err
}

// Register implements api.Reactor.Register.
func (r *Reactor) Register(fd uintptr, cb func(api.Readiness)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registerErr != nil {
		return r.registerErr
	}
	r.callbacks[fd] = cb
	return nil
}

// Unregister implements api.Reactor.Unregister.
func (r *Reactor) Unregister(fd uintptr) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callbacks, fd)
	return nil
}

// Close implements api.Reactor.Close.
func (r *Reactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Fire delivers readiness to the callback registered for fd.
// Reports whether a callback was registered.
func (r *Reactor) Fire(fd uintptr, readiness api.Readiness) bool {
	r.mu.Lock()
	cb, ok := r.callbacks[fd]
	r.mu.Unlock()
	if !ok {
		return false
	}
	cb(readiness)
	return true
}

// Registered reports whether fd currently has a callback.
func (r *Reactor) Registered(fd uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.callbacks[fd]
	return ok
}
