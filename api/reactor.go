// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface for the cooperative readiness reactor
// consumed by peer construction, regardless of the polling mechanism
// behind it (epoll, kqueue, fakes in tests).

package api

// Readiness is a bitmask of I/O conditions reported for a handle.
type Readiness uint8

const (
	// Readable means a read call will make progress.
	Readable Readiness = 1 << iota
	// Writable means a write call will make progress.
	Writable
	// HangUp means the remote end closed or the handle errored;
	// pending reads and writes should be retried to observe the error.
	HangUp
)

// Reactor multiplexes readiness notifications for registered handles.
type Reactor interface {
	// Register associates fd with a readiness callback. The callback
	// runs on the reactor's poll goroutine and must not block.
	Register(fd uintptr, cb func(Readiness)) error

	// Unregister removes fd from the watch set.
	Unregister(fd uintptr) error

	// Close cleans up the poller backend.
	Close() error
}
