// Package sema implements the distributed-actor semantic checks: actor and
// function classification, signature serializability, remote-stub
// provenance, constructor transport arity, reserved property names, and the
// per-actor orchestration that ties them together. Every semantic question
// goes through the run's query.Evaluator, so answers are computed once and
// their diagnostics fire at most once.
package sema

import (
	"fmt"

	"dac/internal/conformance"
	"dac/internal/decl"
	"dac/internal/diag"
	"dac/internal/query"
	"dac/internal/source"
)

// ModuleTable answers whether a module is loaded in this run.
type ModuleTable interface {
	IsModuleLoaded(name string) bool
}

// Synthesizer is the member-synthesis collaborator. Both methods are
// idempotent per declaration.
type Synthesizer interface {
	EnsureDefaultInitializer(actor decl.DeclID) decl.DeclID
	SynthesizeImplicitMembers(actor decl.DeclID)
}

// Context carries the state of one check run: the declaration graph, the
// memoizing evaluator, and the external collaborators. It is used from a
// single goroutine; parallel drivers hand each worker its own Context.
type Context struct {
	Graph    *decl.Graph
	Eval     *query.Evaluator
	Reporter diag.Reporter
	Solver   conformance.Solver
	Modules  ModuleTable
	Synth    Synthesizer
}

// NewContext assembles a run context. A nil reporter suppresses all
// diagnostics; the graph itself serves as the module table.
func NewContext(g *decl.Graph, reporter diag.Reporter, solver conformance.Solver, synth Synthesizer) *Context {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Context{
		Graph:    g,
		Eval:     query.NewEvaluator(),
		Reporter: reporter,
		Solver:   solver,
		Modules:  g,
		Synth:    synth,
	}
}

func (c *Context) report(code diag.Code, sev diag.Severity, span source.Span, format string, args ...any) {
	if c.Reporter == nil {
		return
	}
	c.Reporter.Report(code, sev, span, fmt.Sprintf(format, args...), nil)
}
