//go:build linux
// +build linux

// File: reactor/epoll_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based readiness loop and factory.

package reactor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
)

// Loop is an edge-triggered epoll readiness loop.
type Loop struct {
	epfd      int
	callbacks sync.Map // map[uintptr]func(api.Readiness)
	closeOnce sync.Once
	log       zerolog.Logger
}

// NewLoop constructs the platform readiness loop.
func NewLoop(log zerolog.Logger) (*Loop, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &Loop{epfd: epfd, log: log}, nil
}

// Register adds fd to the epoll watch set with a readiness callback.
// The raw epoll error is preserved so callers can detect EPERM for
// handles the kernel refuses to poll (regular files).
func (l *Loop) Register(fd uintptr, cb func(api.Readiness)) error {
	ev := unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLRDHUP | unix.EPOLLET,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	l.callbacks.Store(fd, cb)
	return nil
}

// Unregister removes fd from the epoll watch set.
func (l *Loop) Unregister(fd uintptr) error {
	l.callbacks.Delete(fd)
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// Poll dispatches up to one batch of readiness events.
// timeoutMs < 0 means block until an event arrives.
func (l *Loop) Poll(timeoutMs int) (int, error) {
	const maxEvents = 128
	var events [maxEvents]unix.EpollEvent

	n, err := unix.EpollWait(l.epfd, events[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil // interrupted by signal, not an error
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}

	for i := 0; i < n; i++ {
		ev := events[i]
		fd := uintptr(ev.Fd)

		val, ok := l.callbacks.Load(fd)
		if !ok {
			continue
		}

		var r api.Readiness
		if ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP) != 0 {
			r |= api.Readable
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			r |= api.Writable
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			r |= api.HangUp
		}

		cb, _ := val.(func(api.Readiness))
		// Deferred recover keeps the loop alive across callback panics.
		func() {
			defer func() {
				if p := recover(); p != nil {
					l.log.Error().Interface("panic", p).Uint("fd", uint(fd)).Msg("readiness callback panicked")
				}
			}()
			cb(r)
		}()
	}

	return n, nil
}

// Run polls until ctx is canceled or polling fails.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := l.Poll(pollSliceMs); err != nil {
			return err
		}
	}
}

// pollSliceMs bounds one Poll call so Run can observe cancellation.
const pollSliceMs = 100

// Close releases the epoll instance.
func (l *Loop) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = unix.Close(l.epfd)
	})
	return err
}
