// File: internal/fdio/asyncfd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// AsyncFD: a non-blocking descriptor whose reads and writes suspend the
// calling goroutine against the readiness reactor instead of the kernel.

package fdio

import (
	"errors"
	"io"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
)

// Raw syscalls, swappable in tests to exercise errno edge cases.
var (
	sysRead  = unix.Read
	sysWrite = unix.Write
)

// AsyncFD drives one non-blocking descriptor through the reactor.
// The descriptor must already be in non-blocking mode.
type AsyncFD struct {
	fd      int
	reactor api.Reactor

	// ownsFD: close the descriptor when this AsyncFD closes. False for
	// borrowed process streams (stdin/stdout).
	ownsFD bool

	// alwaysReady: the kernel refused to poll this handle (regular
	// files return EPERM from epoll_ctl). Non-blocking I/O on such
	// handles never returns EAGAIN, so no suspension is needed.
	alwaysReady bool

	readable chan struct{}
	writable chan struct{}
	done     chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewAsyncFD registers fd with the reactor. EPERM from registration
// downgrades the descriptor to always-ready mode instead of failing.
func NewAsyncFD(fd int, r api.Reactor, ownsFD bool) (*AsyncFD, error) {
	a := &AsyncFD{
		fd:       fd,
		reactor:  r,
		ownsFD:   ownsFD,
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	if err := r.Register(uintptr(fd), a.onReady); err != nil {
		if errors.Is(err, unix.EPERM) {
			a.alwaysReady = true
			return a, nil
		}
		return nil, err
	}
	return a, nil
}

// FD returns the underlying descriptor number.
func (a *AsyncFD) FD() int { return a.fd }

// onReady runs on the reactor goroutine. Non-blocking sends: the edge
// is latched, extra edges while one is pending carry no information.
func (a *AsyncFD) onReady(r api.Readiness) {
	if r&(api.Readable|api.HangUp) != 0 {
		select {
		case a.readable <- struct{}{}:
		default:
		}
	}
	if r&(api.Writable|api.HangUp) != 0 {
		select {
		case a.writable <- struct{}{}:
		default:
		}
	}
}

// Read fills p, suspending on EAGAIN until the reactor reports the
// descriptor readable. A zero-length read maps to io.EOF.
func (a *AsyncFD) Read(p []byte) (int, error) {
	for {
		select {
		case <-a.done:
			return 0, api.ErrHalfClosed
		default:
		}

		n, err := sysRead(a.fd, p)
		if err == nil {
			if n == 0 && len(p) > 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err == unix.EINTR {
			continue
		}
		if err != unix.EAGAIN || a.alwaysReady {
			return 0, err
		}

		select {
		case <-a.readable:
		case <-a.done:
			return 0, api.ErrHalfClosed
		}
	}
}

// Write pushes all of p, suspending on EAGAIN until writable.
func (a *AsyncFD) Write(p []byte) (int, error) {
	var total int
	for total < len(p) {
		select {
		case <-a.done:
			return total, api.ErrHalfClosed
		default:
		}

		n, err := sysWrite(a.fd, p[total:])
		if n > 0 {
			total += n
		}
		if err == nil {
			continue
		}
		if err == unix.EINTR {
			continue
		}
		if err != unix.EAGAIN || a.alwaysReady {
			return total, err
		}

		select {
		case <-a.writable:
		case <-a.done:
			return total, api.ErrHalfClosed
		}
	}
	return total, nil
}

// ShutdownWrite half-closes the write side for socket-backed
// descriptors; for everything else it is a no-op.
func (a *AsyncFD) ShutdownWrite() error {
	err := unix.Shutdown(a.fd, unix.SHUT_WR)
	if err == nil || errors.Is(err, unix.ENOTSOCK) {
		return nil
	}
	return err
}

// Close unregisters from the reactor, wakes suspended goroutines and,
// when this AsyncFD owns the descriptor, closes it.
func (a *AsyncFD) Close() error {
	a.closeOnce.Do(func() {
		close(a.done)
		if !a.alwaysReady {
			_ = a.reactor.Unregister(uintptr(a.fd))
		}
		if a.ownsFD {
			a.closeErr = unix.Close(a.fd)
		}
	})
	return a.closeErr
}
