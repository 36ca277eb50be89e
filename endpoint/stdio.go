// File: endpoint/stdio.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Console endpoint: the process's inherited stdin/stdout as one peer.
// Construction may switch the shared streams to non-blocking mode and
// records in ConsoleState exactly what it changed, so that restoration
// on exit touches nothing this process did not touch.

package endpoint

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
	"github.com/momentics/streamrelay/internal/fdio"
)

// Stdio is the console endpoint specifier. Safe to construct at most
// once per process; the registry enforces single use.
type Stdio struct{}

// Construct implements api.Specifier.
func (Stdio) Construct(p api.ConstructParams) api.PeerConstructor {
	p.Log.Debug().Msg("constructing console peer")
	peer, err := newConsolePeer(p)
	if err != nil {
		return api.OnceErr(err)
	}
	return api.Once(peer)
}

// StdioClass is the registry metadata for Stdio.
var StdioClass = api.Class{
	Name:      "stdio",
	Prefixes:  []string{"-", "stdio:", "inetd:"},
	Arg:       api.ArgNone,
	SingleUse: true,
	Help: `Read input from console, print to console.

This specifier can be specified only one time.

When the inetd: form is used it should also disable logging to stderr;
that suppression is not implemented.

Example: simulate cat(1).

    streamrelay - -
`,
	Parse: func(string) (api.Specifier, error) { return Stdio{}, nil },
}

func newConsolePeer(p api.ConstructParams) (api.Peer, error) {
	if err := fdio.PrepareStream(unix.Stdin, "stdin", &p.State.RestoreStdin, p.Log); err != nil {
		return api.Peer{}, err
	}
	if err := fdio.PrepareStream(unix.Stdout, "stdout", &p.State.RestoreStdout, p.Log); err != nil {
		return api.Peer{}, err
	}

	// The process streams are borrowed, never closed: closing a role
	// only detaches it from the reactor.
	in, err := fdio.NewAsyncFD(unix.Stdin, p.Reactor, false)
	if err != nil {
		return api.Peer{}, fmt.Errorf("register stdin: %w", err)
	}
	out, err := fdio.NewAsyncFD(unix.Stdout, p.Reactor, false)
	if err != nil {
		_ = in.Close()
		return api.Peer{}, fmt.Errorf("register stdout: %w", err)
	}

	installInterruptWatcher(p.State.Snapshot(), p.Log)

	return api.Peer{
		R: fdio.NewSharedFD(in).ReadRole(),
		W: fdio.NewSharedFD(out).WriteRole(),
	}, nil
}

// RestoreConsole reverts the blocking-mode changes recorded in st.
// Call it on every exit path; it is idempotent and never fails the
// process.
func RestoreConsole(st api.ConsoleState, log zerolog.Logger) {
	fdio.RestoreConsole(st, log)
}

var watcherOnce sync.Once

// installInterruptWatcher arms a one-shot watcher that restores the
// console from a by-value snapshot and terminates the process on the
// first interrupt, without returning control to the normal flow.
func installInterruptWatcher(snap api.ConsoleState, log zerolog.Logger) {
	watcherOnce.Do(func() {
		log.Info().Msg("installing interrupt watcher")
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, unix.SIGTERM)
		go watchInterrupts(ch, snap, log, os.Exit)
	})
}

// watchInterrupts blocks until the first signal, restores the console
// from the snapshot it was armed with and terminates the process.
func watchInterrupts(ch <-chan os.Signal, snap api.ConsoleState, log zerolog.Logger, exit func(int)) {
	<-ch
	log.Info().Msg("interrupt: restoring console blocking status")
	fdio.RestoreConsole(snap, log)
	exit(0)
}
