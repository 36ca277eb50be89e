// File: api/constructor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PeerConstructor sum type: the one-shot-or-repeating producer of peers
// yielded by a specifier.

package api

import "context"

// PeerSource is a lazy, possibly never-ending sequence of peers, used
// by listener-like specifiers that accept connections repeatedly.
type PeerSource interface {
	// Next blocks until a peer is available, the source is closed, or
	// ctx is canceled.
	Next(ctx context.Context) (Peer, error)

	// CloseSource stops production. Peers already produced remain
	// deliverable through Next.
	CloseSource() error
}

// PeerConstructor is the outcome of Specifier.Construct: either a
// single already-resolved peer (then exhausted) or a repeating source.
type PeerConstructor struct {
	once     *Result[Peer]
	consumed bool
	source   PeerSource
}

// Once wraps one successfully constructed peer.
func Once(p Peer) PeerConstructor {
	r := Ok(p)
	return PeerConstructor{once: &r}
}

// OnceErr wraps one failed construction outcome.
func OnceErr(err error) PeerConstructor {
	r := Fail[Peer](err)
	return PeerConstructor{once: &r}
}

// Repeating wraps a peer source for listener-like specifiers.
func Repeating(src PeerSource) PeerConstructor {
	return PeerConstructor{source: src}
}

// Single reports whether the constructor yields at most one peer.
func (c *PeerConstructor) Single() bool {
	return c.source == nil
}

// Next yields the next peer. A single constructor yields its resolved
// outcome exactly once and ErrPeerExhausted afterwards; a repeating
// constructor delegates to its source.
func (c *PeerConstructor) Next(ctx context.Context) (Peer, error) {
	if c.source != nil {
		return c.source.Next(ctx)
	}
	if c.once == nil || c.consumed {
		return Peer{}, ErrPeerExhausted
	}
	c.consumed = true
	if c.once.Err != nil {
		return Peer{}, c.once.Err
	}
	return c.once.Value, nil
}
