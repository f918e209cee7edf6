package sema

import (
	"dac/internal/decl"
	"dac/internal/diag"
)

// CtorViolationKind discriminates constructor transport-arity outcomes.
type CtorViolationKind uint8

const (
	CtorViolationNone CtorViolationKind = iota
	// CtorViolationMissingTransport: no parameter is transport-typed or
	// transport-conforming.
	CtorViolationMissingTransport
	// CtorViolationAmbiguousTransport: two or more parameters qualify.
	CtorViolationAmbiguousTransport
)

// CtorViolation is the structured outcome of the transport-arity rule.
// The offending parameter is deliberately not pinpointed for the ambiguous
// case; only the count is reported.
type CtorViolation struct {
	Kind  CtorViolationKind
	Count int
}

// constructorViolation counts transport parameters of a designated
// initializer. Convenience initializers and constructors whose owner is not
// a distributed actor are exempt.
func (c *Context) constructorViolation(ctor decl.DeclID) (CtorViolation, bool) {
	d := c.Graph.Get(ctor)
	if d == nil || d.Kind != decl.DeclCtor {
		return CtorViolation{}, false
	}
	if !c.IsDistributedActor(d.Parent) {
		return CtorViolation{}, false
	}
	// Convenience initializers delegate to a designated one and are
	// validated there.
	if !d.Is(decl.FlagDesignated) {
		return CtorViolation{}, false
	}

	transport := c.Graph.Known.ActorTransport
	count := 0
	for _, pid := range d.Params {
		p := c.Graph.Param(pid)
		if p == nil {
			continue
		}
		if p.Type == transport ||
			!c.Solver.ConformsTo(p.Type, transport, d.Module).IsInvalid() {
			count++
		}
	}

	switch count {
	case 0:
		return CtorViolation{Kind: CtorViolationMissingTransport}, true
	case 1:
		return CtorViolation{}, false
	default:
		return CtorViolation{Kind: CtorViolationAmbiguousTransport, Count: count}, true
	}
}

// CheckConstructor validates the transport arity of a designated
// initializer of a distributed actor; a no-op for anything else.
func (c *Context) CheckConstructor(ctor decl.DeclID, diagnose bool) bool {
	v, violated := c.constructorViolation(ctor)
	if !violated {
		return false
	}
	if diagnose {
		d := c.Graph.Get(ctor)
		owner := c.Graph.NameOf(d.Parent)
		switch v.Kind {
		case CtorViolationMissingTransport:
			c.report(diag.DistCtorMissingTransportParam, diag.SevError, d.Span,
				"designated initializer '%s' of distributed actor '%s' is missing a parameter conforming to '%s'",
				c.Graph.NameOf(ctor), owner, decl.ProtoActorTransport)
		case CtorViolationAmbiguousTransport:
			c.report(diag.DistCtorAmbiguousTransportParams, diag.SevError, d.Span,
				"designated initializer '%s' of distributed actor '%s' has %d transport parameters; exactly one is required",
				c.Graph.NameOf(ctor), owner, v.Count)
		}
	}
	return true
}
