package decl

import (
	"testing"

	"dac/internal/source"
)

func TestGraphModules(t *testing.T) {
	g := NewGraph()
	a := g.AddModule("app")
	b := g.AddModule("app")
	if a != b {
		t.Fatalf("same module registered twice: %d vs %d", a, b)
	}
	if !g.IsModuleLoaded("app") {
		t.Fatal("app must be loaded")
	}
	if g.IsModuleLoaded(ModuleDistributed) {
		t.Fatal("Distributed must not be loaded implicitly")
	}
}

func TestGraphMembersAndParams(t *testing.T) {
	g := NewGraph()
	mod := g.AddModule("app")
	actor := g.NewDecl(DeclClass, "Greeter", mod, source.Span{}, FlagDistributed)
	ctor := g.NewDecl(DeclCtor, "init", mod, source.Span{}, FlagDesignated)
	prop := g.NewDecl(DeclProperty, "name", mod, source.Span{}, 0)
	fn := g.NewDecl(DeclFunc, "greet", mod, source.Span{}, FlagDistributed)
	g.AddMember(actor, ctor)
	g.AddMember(actor, prop)
	g.AddMember(actor, fn)

	str := g.NewDecl(DeclClass, "String", mod, source.Span{}, 0)
	g.AddParam(fn, "name", str, source.Span{})

	if got := g.Constructors(actor); len(got) != 1 || got[0] != ctor {
		t.Fatalf("constructors: %v", got)
	}
	if got := g.Properties(actor); len(got) != 1 || got[0] != prop {
		t.Fatalf("properties: %v", got)
	}
	if got := g.Funcs(actor); len(got) != 1 || got[0] != fn {
		t.Fatalf("funcs: %v", got)
	}
	if g.Get(fn).Parent != actor {
		t.Fatal("AddMember must record ownership")
	}
	if g.LabelOf(g.Get(fn).Params[0]) != "name" {
		t.Fatal("param label lost")
	}
}

func TestLookupDirectRemote(t *testing.T) {
	g := NewGraph()
	mod := g.AddModule("app")
	actor := g.NewDecl(DeclClass, "Greeter", mod, source.Span{}, FlagDistributed)
	fn := g.NewDecl(DeclFunc, "greet", mod, source.Span{}, FlagDistributed)
	g.AddMember(actor, fn)

	if got := g.LookupDirectRemote(fn); got != NoDeclID {
		t.Fatalf("no remote counterpart yet, got %d", got)
	}

	remote := g.NewDecl(DeclFunc, RemoteName("greet"), mod, source.Span{}, 0)
	g.AddMember(actor, remote)

	if got := g.LookupDirectRemote(fn); got != remote {
		t.Fatalf("expected %d, got %d", remote, got)
	}
	// Structural lookup only: provenance is irrelevant here.
	g.Get(remote).Flags |= FlagSynthesized
	if got := g.LookupDirectRemote(fn); got != remote {
		t.Fatalf("expected %d after flagging, got %d", remote, got)
	}
}
