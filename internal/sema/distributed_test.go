package sema

import (
	"testing"

	"dac/internal/decl"
	"dac/internal/diag"
	"dac/internal/source"
)

func TestCheckDistributedActorValid(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	str := w.newCodableType("String")
	fn := w.newFunc(actor, "greet", decl.FlagDistributed)
	w.g.AddParam(fn, "name", str, source.Span{})
	w.g.Get(fn).Result = str

	w.ctx.CheckDistributedActor(actor)

	if w.bag.Len() != 0 {
		t.Fatalf("valid actor must check cleanly: %v", diagnosticsSummary(w.bag))
	}
	// Synthesis ran: default initializer, implicit properties, remote stub.
	ctors := w.g.Constructors(actor)
	if len(ctors) != 1 || !w.g.Get(ctors[0]).Is(decl.FlagDefaultInit) {
		t.Fatalf("expected only the synthesized default initializer, got %d ctors", len(ctors))
	}
	if !w.g.LookupDirectMember(actor, decl.PropIdentity, decl.DeclProperty).IsValid() {
		t.Fatal("identity property not synthesized")
	}
	if !w.g.LookupDirectRemote(fn).IsValid() {
		t.Fatal("remote stub not synthesized")
	}
	// The synthesized default initializer itself satisfies the transport
	// arity rule.
	if w.ctx.CheckConstructor(ctors[0], true) {
		t.Fatalf("default initializer must be valid: %v", diagnosticsSummary(w.bag))
	}
}

func TestCheckDistributedActorMissingModule(t *testing.T) {
	w := newWorld(t, false)
	actor := w.newActor("Greeter")
	ctor := w.newCtor(actor, decl.FlagDesignated) // would be missing transport

	w.ctx.CheckDistributedActor(actor)
	w.ctx.CheckDistributedActor(actor)

	// Fail-closed: one module diagnostic, and no further validation or
	// synthesis for this declaration.
	if n := w.bag.CountCode(diag.DistModuleNotLoaded); n != 1 {
		t.Fatalf("expected one module diagnostic, got %v", diagnosticsSummary(w.bag))
	}
	if hasCode(w.bag, diag.DistCtorMissingTransportParam) {
		t.Fatal("constructor checks must be skipped when the module is absent")
	}
	if w.g.LookupDirectMember(actor, decl.PropIdentity, decl.DeclProperty).IsValid() {
		t.Fatal("synthesis must be skipped when the module is absent")
	}
	_ = ctor
}

func TestCheckDistributedActorCtorAndPropertyIndependent(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	str := w.newCodableType("String")
	ctor := w.newCtor(actor, decl.FlagDesignated)
	w.g.AddParam(ctor, "name", str, source.Span{})
	prop := w.g.NewDecl(decl.DeclProperty, decl.PropIdentity, w.app, source.Span{}, 0)
	w.g.AddMember(actor, prop)

	w.ctx.CheckDistributedActor(actor)

	if !hasCode(w.bag, diag.DistCtorMissingTransportParam) {
		t.Fatalf("missing transport must be reported: %v", diagnosticsSummary(w.bag))
	}
	if !hasCode(w.bag, diag.DistUserDefinedSpecialProperty) {
		t.Fatalf("reserved property must be reported: %v", diagnosticsSummary(w.bag))
	}
}
