// File: endpoint/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PeerQueue: FIFO peer source backing the repeating side of the
// constructor sum type. Listener-like specifiers push accepted peers
// from the reactor side; the relay driver pops them from Next.

package endpoint

import (
	"context"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/streamrelay/api"
)

// PeerQueue is an unbounded FIFO implementing api.PeerSource.
type PeerQueue struct {
	mu sync.Mutex
	q  *queue.Queue

	signal    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewPeerQueue returns an empty open queue.
func NewPeerQueue() *PeerQueue {
	return &PeerQueue{
		q:      queue.New(),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Push enqueues one construction outcome. Returns ErrSourceClosed after
// CloseSource.
func (pq *PeerQueue) Push(res api.Result[api.Peer]) error {
	select {
	case <-pq.done:
		return api.ErrSourceClosed
	default:
	}
	pq.mu.Lock()
	pq.q.Add(res)
	pq.mu.Unlock()
	select {
	case pq.signal <- struct{}{}:
	default:
	}
	return nil
}

// Next implements api.PeerSource. Outcomes pushed before CloseSource
// remain deliverable after it.
func (pq *PeerQueue) Next(ctx context.Context) (api.Peer, error) {
	for {
		if res, ok := pq.pop(); ok {
			return res.Value, res.Err
		}
		select {
		case <-ctx.Done():
			return api.Peer{}, ctx.Err()
		case <-pq.done:
			if res, ok := pq.pop(); ok {
				return res.Value, res.Err
			}
			return api.Peer{}, api.ErrSourceClosed
		case <-pq.signal:
		}
	}
}

func (pq *PeerQueue) pop() (api.Result[api.Peer], bool) {
	pq.mu.Lock()
	defer pq.mu.Unlock()
	if pq.q.Length() == 0 {
		return api.Result[api.Peer]{}, false
	}
	return pq.q.Remove().(api.Result[api.Peer]), true
}

// CloseSource implements api.PeerSource.
func (pq *PeerQueue) CloseSource() error {
	pq.closeOnce.Do(func() { close(pq.done) })
	return nil
}
