// File: internal/fdio/nonblock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking-mode probe and switch via fcntl(2).

package fdio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// IsNonblocking reports whether fd currently has O_NONBLOCK set.
func IsNonblocking(fd int) (bool, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return false, fmt.Errorf("fcntl F_GETFL: %w", err)
	}
	return flags&unix.O_NONBLOCK != 0, nil
}

// SetNonblocking switches O_NONBLOCK on or off for fd. The underlying
// fcntl is idempotent: setting a mode the fd already has is a no-op.
func SetNonblocking(fd int, nonblocking bool) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return fmt.Errorf("fcntl F_GETFL: %w", err)
	}
	if nonblocking {
		flags |= unix.O_NONBLOCK
	} else {
		flags &^= unix.O_NONBLOCK
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags); err != nil {
		return fmt.Errorf("fcntl F_SETFL: %w", err)
	}
	return nil
}
