// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package fdio implements descriptor-level plumbing for peer
// construction: blocking-mode probe and switch, reactor-suspended
// non-blocking reads and writes, and the shared duplex wrapper that
// exposes one descriptor as independently ownable read and write roles.
package fdio
