// File: api/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// ConsoleState is the process-wide record of reversible blocking-mode
// changes made to the shared console streams. A flag is true only when
// the stream was observed blocking before this process switched it to
// non-blocking, meaning this process owes a restore on exit.
//
// Restoration is idempotent and never forces a stream into non-blocking
// mode, so invoking it from both an interrupt watcher and normal
// teardown is harmless: whichever runs first does the work.
type ConsoleState struct {
	RestoreStdin  bool
	RestoreStdout bool
}

// Snapshot returns a by-value copy, self-contained for use by an
// interrupt watcher installed at construction time.
func (s *ConsoleState) Snapshot() ConsoleState {
	return *s
}
