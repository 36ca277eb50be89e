// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the single-threaded cooperative readiness
// loop peers suspend against, with an epoll implementation on Linux and
// a stub factory elsewhere.
package reactor
