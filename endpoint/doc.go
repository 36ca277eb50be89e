// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package endpoint implements the concrete endpoint specifiers of the
// stream relay core — console, file-as-socket and adopted-descriptor —
// together with the prefix registry that selects them from specifier
// text and the queue-backed peer source used by listener-like
// specifiers.
package endpoint
