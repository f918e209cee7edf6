// Package synth creates the compiler-provided members of a distributed
// actor: the default transport initializer, the implicit identity and
// transport properties, and the remote counterpart stub of every
// distributed function. All entry points are idempotent per declaration,
// and everything created here carries decl.FlagSynthesized.
package synth

import (
	"dac/internal/decl"
)

type Service struct {
	graph *decl.Graph
}

func NewService(g *decl.Graph) *Service {
	return &Service{graph: g}
}

// EnsureDefaultInitializer returns the actor's default initializer,
// creating the synthesized designated init(transport:) on first call. An
// actor that declares its own constructors gets none.
func (s *Service) EnsureDefaultInitializer(actor decl.DeclID) decl.DeclID {
	g := s.graph
	a := g.Get(actor)
	if a == nil || a.Kind != decl.DeclClass {
		return decl.NoDeclID
	}
	for _, id := range g.Constructors(actor) {
		if d := g.Get(id); d.Is(decl.FlagDefaultInit) {
			return id
		}
		// User-declared constructors suppress the default one.
		return decl.NoDeclID
	}

	ctor := g.NewDecl(decl.DeclCtor, decl.DefaultInitName, a.Module, a.Span,
		decl.FlagDesignated|decl.FlagSynthesized|decl.FlagDefaultInit)
	g.AddParam(ctor, "transport", g.Known.ActorTransport, a.Span)
	g.AddMember(actor, ctor)
	return ctor
}

// SynthesizeImplicitMembers adds the reserved identity and transport
// properties and the remote stub of every distributed function, skipping
// members that already exist.
func (s *Service) SynthesizeImplicitMembers(actor decl.DeclID) {
	g := s.graph
	a := g.Get(actor)
	if a == nil || a.Kind != decl.DeclClass {
		return
	}

	s.ensureProperty(actor, decl.PropIdentity)
	s.ensureProperty(actor, decl.PropTransport)

	for _, fnID := range g.Funcs(actor) {
		fn := g.Get(fnID)
		if !fn.Is(decl.FlagDistributed) {
			continue
		}
		if g.LookupDirectRemote(fnID).IsValid() {
			continue
		}
		name := g.NameOf(fnID)
		stub := g.NewDecl(decl.DeclFunc, decl.RemoteName(name), fn.Module, fn.Span, decl.FlagSynthesized)
		// The stub mirrors the distributed function's signature.
		for _, pid := range fn.Params {
			p := g.Param(pid)
			g.AddParam(stub, g.LabelOf(pid), p.Type, p.Span)
		}
		g.Get(stub).Result = fn.Result
		g.AddMember(actor, stub)
	}
}

func (s *Service) ensureProperty(actor decl.DeclID, name string) {
	g := s.graph
	if g.LookupDirectMember(actor, name, decl.DeclProperty).IsValid() {
		return
	}
	a := g.Get(actor)
	prop := g.NewDecl(decl.DeclProperty, name, a.Module, a.Span, decl.FlagSynthesized)
	if name == decl.PropTransport {
		g.Get(prop).Type = g.Known.ActorTransport
	}
	g.AddMember(actor, prop)
}
