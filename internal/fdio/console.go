// File: internal/fdio/console.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Console blocking-mode bookkeeping: switch a shared stream to
// non-blocking with a recorded restore obligation, and revert exactly
// what was changed on exit. Restore failures are logged and swallowed
// because teardown must not fail the process.

package fdio

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
)

// PrepareStream switches fd to non-blocking mode if it is currently
// blocking, recording the obligation in *restore first: if the switch
// itself fails the flag stays correct, since restoring a stream that is
// still blocking is a no-op. An already non-blocking stream is left
// untouched and records no obligation.
func PrepareStream(fd int, name string, restore *bool, log zerolog.Logger) error {
	nb, err := IsNonblocking(fd)
	if err != nil {
		return fmt.Errorf("probe %s blocking mode: %w", name, err)
	}
	if nb {
		return nil
	}
	log.Info().Str("stream", name).Msg("setting console stream to nonblocking mode")
	*restore = true
	if err := SetNonblocking(fd, true); err != nil {
		return fmt.Errorf("set %s nonblocking: %w", name, err)
	}
	return nil
}

// RestoreConsole reverts the blocking-mode changes recorded in st.
// Idempotent: flags only ever request "back to blocking", and the
// underlying fcntl is a no-op when the mode already matches. Streams
// this process never touched are left alone.
func RestoreConsole(st api.ConsoleState, log zerolog.Logger) {
	restoreStreams(st, unix.Stdin, unix.Stdout, log)
}

func restoreStreams(st api.ConsoleState, stdinFD, stdoutFD int, log zerolog.Logger) {
	log.Debug().Msg("restoring console blocking status")
	if st.RestoreStdin {
		restoreBlocking(stdinFD, "stdin", log)
	}
	if st.RestoreStdout {
		restoreBlocking(stdoutFD, "stdout", log)
	}
}

func restoreBlocking(fd int, name string, log zerolog.Logger) {
	log.Info().Str("stream", name).Msg("restoring blocking mode")
	if err := SetNonblocking(fd, false); err != nil {
		log.Debug().Err(err).Str("stream", name).Msg("restore failed")
	}
}
