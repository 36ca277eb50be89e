// File: api/peer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core peer abstraction: a bidirectional asynchronous byte-stream
// endpoint handed to the relay driver.

package api

// ReadHalf is the asynchronous read capability of a peer.
type ReadHalf interface {
	// Read fills p with available bytes, suspending the calling
	// goroutine until the underlying handle is readable.
	Read(p []byte) (int, error)

	// Close releases this role's claim on the underlying handle.
	Close() error
}

// WriteHalf is the asynchronous write capability of a peer.
type WriteHalf interface {
	// Write pushes p to the underlying handle, suspending until the
	// handle accepts all of it.
	Write(p []byte) (int, error)

	// Flush forces any locally buffered bytes down to the OS handle.
	Flush() error

	// CloseWrite signals end-of-stream to the remote side where the
	// handle supports half-close; elsewhere it is a no-op.
	CloseWrite() error

	Close() error
}

// Peer pairs a read half and a write half. Both halves may be views of
// the same OS handle; each is independently usable and closeable.
type Peer struct {
	R ReadHalf
	W WriteHalf
}
