// File: endpoint/file.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// File endpoint: open an existing entity for read and write and use it
// like a socket. Intended for device nodes, fifos and similar; the file
// is never created.

package endpoint

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
	"github.com/momentics/streamrelay/internal/fdio"
)

// OpenAsync opens the entity at Path for read and write and exposes it
// as a duplex peer over one shared descriptor.
type OpenAsync struct {
	Path string
}

// Construct implements api.Specifier.
func (s OpenAsync) Construct(p api.ConstructParams) api.PeerConstructor {
	p.Log.Debug().Str("path", s.Path).Msg("constructing file peer")
	fd, err := unix.Open(s.Path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return api.OnceErr(fmt.Errorf("open %s: %w", s.Path, err))
	}
	peer, err := adoptDescriptor(fd, p)
	if err != nil {
		return api.OnceErr(err)
	}
	return api.Once(peer)
}

// OpenAsyncClass is the registry metadata for OpenAsync.
var OpenAsyncClass = api.Class{
	Name:     "open-async",
	Prefixes: []string{"open-async:"},
	Arg:      api.ArgPath,
	Help: `Open file for read and write and use it like a socket.
Not for regular files; the file must already exist.

Example: serve blobs of random data

    streamrelay tcp-l:127.0.0.1:8088 open-async:/dev/urandom
`,
	Parse: func(arg string) (api.Specifier, error) {
		if arg == "" {
			return nil, fmt.Errorf("open-async: requires a path")
		}
		return OpenAsync{Path: arg}, nil
	},
}

// adoptDescriptor takes ownership of fd, switches it to non-blocking
// mode and wraps it once so both peer halves share the one descriptor.
// On failure fd is closed; no partial peer escapes.
func adoptDescriptor(fd int, p api.ConstructParams) (api.Peer, error) {
	if err := fdio.SetNonblocking(fd, true); err != nil {
		_ = unix.Close(fd)
		return api.Peer{}, fmt.Errorf("set fd %d nonblocking: %w", fd, err)
	}
	afd, err := fdio.NewAsyncFD(fd, p.Reactor, true)
	if err != nil {
		_ = unix.Close(fd)
		return api.Peer{}, fmt.Errorf("register fd %d: %w", fd, err)
	}
	shared := fdio.NewSharedFD(afd)
	return api.Peer{R: shared.ReadRole(), W: shared.WriteRole()}, nil
}
