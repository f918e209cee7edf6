// Package query implements the demand-driven evaluation cache the semantic
// checks are built on. Every semantic question is phrased as a Key; the
// Evaluator computes each unique key exactly once per run and replays the
// stored answer afterwards, so any diagnostic a rule emits while computing
// fires at most once per key.
package query

import (
	"dac/internal/decl"
)

// Kind discriminates the semantic question a key asks.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindModuleAvailable asks whether the runtime-support module is
	// loaded, from the viewpoint of one declaration.
	KindModuleAvailable
	// KindIsDistributedActor classifies a class-like declaration.
	KindIsDistributedActor
	// KindIsDistributedFunc classifies a function declaration.
	KindIsDistributedFunc
)

func (k Kind) String() string {
	switch k {
	case KindModuleAvailable:
		return "module-available"
	case KindIsDistributedActor:
		return "is-distributed-actor"
	case KindIsDistributedFunc:
		return "is-distributed-func"
	}
	return "invalid"
}

// Key identifies a semantic question: the question kind plus the stable ID
// of the declaration it is about. Value type, usable as a map key.
type Key struct {
	Kind Kind
	Decl decl.DeclID
}

// Evaluator memoizes query results for one check run. It is owned by a run
// context and accessed from a single goroutine; parallel drivers shard one
// evaluator per worker (keys include declaration identity, so shards never
// need each other's answers for their own diagnostics).
type Evaluator struct {
	results map[Key]bool
	active  map[Key]struct{}
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		results: make(map[Key]bool),
		active:  make(map[Key]struct{}),
	}
}

// Bool answers key, invoking compute on the first request and replaying the
// cached result for every later one. compute may itself call Bool for other
// keys; a query that reaches itself again answers false and is left
// uncached, so a later well-founded evaluation can still run.
func (e *Evaluator) Bool(key Key, compute func() bool) bool {
	if v, ok := e.results[key]; ok {
		return v
	}
	if _, ok := e.active[key]; ok {
		return false
	}
	e.active[key] = struct{}{}
	v := compute()
	delete(e.active, key)
	e.results[key] = v
	return v
}

// Cached reports whether key has already been computed.
func (e *Evaluator) Cached(key Key) bool {
	_, ok := e.results[key]
	return ok
}

// Len returns the number of memoized results.
func (e *Evaluator) Len() int {
	return len(e.results)
}
