// File: api/specifier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Specifier contract: a parsed, immutable description of one endpoint,
// able to produce peers given a construction context.

package api

import "github.com/rs/zerolog"

// Specifier describes what endpoint to construct. Implementations are
// immutable and cheaply copyable; all work happens in Construct.
type Specifier interface {
	// Construct produces the peer constructor for this endpoint.
	// Bounded OS calls (open, fcntl, descriptor adoption) run inline;
	// the outcome is wrapped as an already-resolved constructor so it
	// composes with specifiers that genuinely need to wait.
	Construct(p ConstructParams) PeerConstructor
}

// ConstructParams is the ambient context handed to every specifier.
type ConstructParams struct {
	// Reactor is the readiness loop produced peers suspend against.
	Reactor Reactor

	// State is the process-wide console lifecycle record. Mutated only
	// during console endpoint construction.
	State *ConsoleState

	// Log receives construction-time diagnostics.
	Log zerolog.Logger
}

// ArgMode declares how a specifier class consumes its textual argument.
type ArgMode int

const (
	// ArgNone: the prefix stands alone.
	ArgNone ArgMode = iota
	// ArgPath: the remainder is a filesystem path.
	ArgPath
	// ArgInt: the remainder is a signed integer.
	ArgInt
)

// Class is the static, declarative metadata of one specifier variant,
// consumed by the prefix registry. It carries no runtime behavior of
// its own; prefix unambiguity across classes is the registry's job.
type Class struct {
	// Name identifies the class, e.g. "stdio".
	Name string

	// Prefixes are the specifier-text prefixes that select this class.
	Prefixes []string

	// Arg declares how the text after the prefix is handled.
	Arg ArgMode

	// SingleUse marks classes whose endpoint may be constructed at most
	// once per process (the console streams).
	SingleUse bool

	// Help is human-readable documentation for the class.
	Help string

	// Parse builds the specifier from the argument text.
	Parse func(arg string) (Specifier, error)
}
