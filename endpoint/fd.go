// File: endpoint/fd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adopted-descriptor endpoint: use an already-open descriptor number,
// handed down by a parent process, like a socket.

package endpoint

import (
	"fmt"
	"strconv"

	"github.com/momentics/streamrelay/api"
)

// OpenFD adopts descriptor FD as a duplex peer. The caller vouches for
// the descriptor: adopting an invalid, closed or otherwise-owned number
// is undefined at the OS level and is not detected here. Ownership
// transfers to the peer; the descriptor is closed when the last role
// closes.
type OpenFD struct {
	FD int
}

// Construct implements api.Specifier.
func (s OpenFD) Construct(p api.ConstructParams) api.PeerConstructor {
	p.Log.Debug().Int("fd", s.FD).Msg("constructing descriptor peer")
	peer, err := adoptDescriptor(s.FD, p)
	if err != nil {
		return api.OnceErr(err)
	}
	return api.Once(peer)
}

// OpenFDClass is the registry metadata for OpenFD.
var OpenFDClass = api.Class{
	Name:     "open-fd",
	Prefixes: []string{"open-fd:"},
	Arg:      api.ArgInt,
	Help: `Use specified file descriptor like a socket.

Example: serve random data to clients

    streamrelay tcp-l:127.0.0.1:8088 open-fd:55   55< /dev/urandom
`,
	Parse: func(arg string) (api.Specifier, error) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("open-fd: bad descriptor number %q: %w", arg, err)
		}
		return OpenFD{FD: n}, nil
	},
}
