// Package fake
// Author: momentics <momentics@gmail.com>
//
// In-memory peer halves for exercising constructor and source
// plumbing without OS handles.

package fake

import (
	"io"
	"sync"

	"github.com/momentics/streamrelay/api"
)

// Buffer is an in-memory duplex store implementing both peer halves.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// NewBuffer creates an empty fake half pair backing store.
func NewBuffer() *Buffer { return &Buffer{} }

// NewPeer returns a peer whose halves share one Buffer.
func NewPeer() (api.Peer, *Buffer) {
	b := NewBuffer()
	return api.Peer{R: b, W: b}, b
}

// Read implements api.ReadHalf.
func (b *Buffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.data) == 0 {
		if b.closed {
			return 0, io.EOF
		}
		return 0, nil
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

// Write implements api.WriteHalf.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, api.ErrHalfClosed
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// Flush implements api.WriteHalf.
func (b *Buffer) Flush() error { return nil }

// CloseWrite implements api.WriteHalf.
func (b *Buffer) CloseWrite() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Close implements both halves.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Bytes returns a copy of the current contents.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
