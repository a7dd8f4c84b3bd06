package parse

import "github.com/cfg-tools/lr1/automaton"

// Resolver is an alias for automaton.Resolver: the concrete conflict-
// resolution logic lives in automaton (Build needs it directly, and parse
// importing automaton while automaton imports parse would cycle), re-
// exported here so callers of this package never need to import automaton
// themselves to reach it.
type Resolver = automaton.Resolver

// ResolveShift, ResolveReduce, and ResolveThrow are re-exports of the
// matching automaton package functions; see automaton.Resolver for their
// semantics.
var (
	ResolveShift  = automaton.ResolveShift
	ResolveReduce = automaton.ResolveReduce
	ResolveThrow  = automaton.ResolveThrow
)
