// File: internal/fdio/duplex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SharedFD: one descriptor, two independently ownable roles. The
// descriptor is never duplicated (duplication would diverge stream
// positions); it is released when the last role closes.

package fdio

import (
	"sync/atomic"

	"github.com/momentics/streamrelay/api"
)

// SharedFD wraps one AsyncFD behind a role refcount.
type SharedFD struct {
	afd  *AsyncFD
	refs atomic.Int32
}

// NewSharedFD wraps afd. Roles are handed out by ReadRole/WriteRole.
func NewSharedFD(afd *AsyncFD) *SharedFD {
	return &SharedFD{afd: afd}
}

// ReadRole returns a read view of the shared descriptor.
func (s *SharedFD) ReadRole() api.ReadHalf {
	s.refs.Add(1)
	return &readRole{shared: s}
}

// WriteRole returns a write view of the shared descriptor.
func (s *SharedFD) WriteRole() api.WriteHalf {
	s.refs.Add(1)
	return &writeRole{shared: s}
}

// release drops one role reference; the last one closes the AsyncFD.
func (s *SharedFD) release() error {
	if s.refs.Add(-1) == 0 {
		return s.afd.Close()
	}
	return nil
}

type readRole struct {
	shared *SharedFD
	closed atomic.Bool
}

func (r *readRole) Read(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, api.ErrHalfClosed
	}
	return r.shared.afd.Read(p)
}

func (r *readRole) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.shared.release()
}

type writeRole struct {
	shared *SharedFD
	closed atomic.Bool
}

func (w *writeRole) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, api.ErrHalfClosed
	}
	return w.shared.afd.Write(p)
}

// Flush is a no-op: writes go straight to the descriptor.
func (w *writeRole) Flush() error { return nil }

func (w *writeRole) CloseWrite() error {
	if w.closed.Load() {
		return api.ErrHalfClosed
	}
	return w.shared.afd.ShutdownWrite()
}

func (w *writeRole) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	return w.shared.release()
}
