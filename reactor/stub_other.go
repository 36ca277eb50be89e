//go:build !linux
// +build !linux

// File: reactor/stub_other.go
// Author: momentics <momentics@gmail.com>
//
// Stub factory for platforms without a poller backend.

package reactor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/momentics/streamrelay/api"
)

// Loop is unavailable on this platform.
type Loop struct{}

// NewLoop returns an error for unsupported platforms.
func NewLoop(log zerolog.Logger) (*Loop, error) {
	return nil, api.ErrNotSupported
}

func (l *Loop) Register(fd uintptr, cb func(api.Readiness)) error { return api.ErrNotSupported }
func (l *Loop) Unregister(fd uintptr) error                       { return api.ErrNotSupported }
func (l *Loop) Poll(timeoutMs int) (int, error)                   { return 0, api.ErrNotSupported }
func (l *Loop) Run(ctx context.Context) error                     { return api.ErrNotSupported }
func (l *Loop) Close() error                                      { return nil }
