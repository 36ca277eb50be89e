//go:build linux
// +build linux

// File: endpoint/loop_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared fixture: a live epoll loop for endpoint construction tests.

package endpoint_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/momentics/streamrelay/api"
	"github.com/momentics/streamrelay/reactor"
)

func newTestParams(t *testing.T) api.ConstructParams {
	t.Helper()
	loop, err := reactor.NewLoop(zerolog.Nop())
	if err != nil {
		t.Fatalf("reactor.NewLoop: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = loop.Close()
	})
	return api.ConstructParams{
		Reactor: loop,
		State:   &api.ConsoleState{},
		Log:     zerolog.Nop(),
	}
}
