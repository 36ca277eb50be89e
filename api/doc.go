// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the contracts of the streamrelay endpoint core:
// peers, specifiers, peer constructors, the readiness reactor interface
// and the console lifecycle record. It contains no syscalls.
package api
