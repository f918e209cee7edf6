package synth

import (
	"testing"

	"dac/internal/decl"
	"dac/internal/source"
)

func buildActor(t *testing.T) (*decl.Graph, decl.DeclID) {
	t.Helper()
	g := decl.NewGraph()
	dist := g.AddModule(decl.ModuleDistributed)
	g.Known.ActorTransport = g.NewDecl(decl.DeclProtocol, decl.ProtoActorTransport, dist, source.Span{}, 0)
	mod := g.AddModule("app")
	actor := g.NewDecl(decl.DeclClass, "Greeter", mod, source.Span{}, decl.FlagDistributed)
	return g, actor
}

func TestEnsureDefaultInitializer(t *testing.T) {
	g, actor := buildActor(t)
	s := NewService(g)

	ctor := s.EnsureDefaultInitializer(actor)
	if !ctor.IsValid() {
		t.Fatal("expected a synthesized default initializer")
	}
	d := g.Get(ctor)
	if !d.Is(decl.FlagSynthesized) || !d.Is(decl.FlagDesignated) || !d.Is(decl.FlagDefaultInit) {
		t.Fatalf("wrong flags: %b", d.Flags)
	}
	if len(d.Params) != 1 || g.Param(d.Params[0]).Type != g.Known.ActorTransport {
		t.Fatal("default initializer must take exactly one transport parameter")
	}

	if again := s.EnsureDefaultInitializer(actor); again != ctor {
		t.Fatalf("must be idempotent: %d vs %d", again, ctor)
	}
	if len(g.Constructors(actor)) != 1 {
		t.Fatal("idempotent call created a second constructor")
	}
}

func TestDefaultInitializerSuppressedByUserCtor(t *testing.T) {
	g, actor := buildActor(t)
	user := g.NewDecl(decl.DeclCtor, "init", g.Get(actor).Module, source.Span{}, decl.FlagDesignated)
	g.AddMember(actor, user)

	if got := NewService(g).EnsureDefaultInitializer(actor); got.IsValid() {
		t.Fatalf("user constructor must suppress the default one, got %d", got)
	}
}

func TestSynthesizeImplicitMembers(t *testing.T) {
	g, actor := buildActor(t)
	mod := g.Get(actor).Module
	str := g.NewDecl(decl.DeclClass, "String", mod, source.Span{}, 0)
	fn := g.NewDecl(decl.DeclFunc, "greet", mod, source.Span{}, decl.FlagDistributed)
	g.AddParam(fn, "name", str, source.Span{})
	g.Get(fn).Result = str
	g.AddMember(actor, fn)
	local := g.NewDecl(decl.DeclFunc, "helper", mod, source.Span{}, 0)
	g.AddMember(actor, local)

	s := NewService(g)
	s.SynthesizeImplicitMembers(actor)
	s.SynthesizeImplicitMembers(actor)

	if g.LookupDirectMember(actor, decl.PropIdentity, decl.DeclProperty) == decl.NoDeclID {
		t.Fatal("identity property missing")
	}
	if g.LookupDirectMember(actor, decl.PropTransport, decl.DeclProperty) == decl.NoDeclID {
		t.Fatal("transport property missing")
	}

	remote := g.LookupDirectRemote(fn)
	if !remote.IsValid() {
		t.Fatal("remote stub missing")
	}
	rd := g.Get(remote)
	if !rd.Is(decl.FlagSynthesized) {
		t.Fatal("remote stub must be flagged synthesized")
	}
	if len(rd.Params) != 1 || rd.Result != str {
		t.Fatal("remote stub must mirror the function signature")
	}

	if g.LookupDirectRemote(local).IsValid() {
		t.Fatal("non-distributed function must not get a stub")
	}
	if len(g.Funcs(actor)) != 3 {
		t.Fatalf("second pass must not duplicate stubs, funcs=%d", len(g.Funcs(actor)))
	}
}
