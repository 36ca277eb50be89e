// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the streamrelay library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrNotSupported  = fmt.Errorf("platform not supported")
	ErrPeerExhausted = fmt.Errorf("peer constructor is exhausted")
	ErrSourceClosed  = fmt.Errorf("peer source is closed")
	ErrSingleUse     = fmt.Errorf("specifier can be constructed only once")
	ErrHalfClosed    = fmt.Errorf("stream half is closed")
	ErrNoArgument    = fmt.Errorf("specifier takes no argument")
	ErrUnknownClass  = fmt.Errorf("unknown specifier")
)
