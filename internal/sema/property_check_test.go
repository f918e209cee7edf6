package sema

import (
	"testing"

	"dac/internal/decl"
	"dac/internal/diag"
	"dac/internal/source"
)

func (w *world) newProperty(actor decl.DeclID, name string, typ decl.DeclID, flags decl.DeclFlags) decl.DeclID {
	prop := w.g.NewDecl(decl.DeclProperty, name, w.app, source.Span{}, flags)
	w.g.Get(prop).Type = typ
	w.g.AddMember(actor, prop)
	return prop
}

func TestPropertyReservedIdentity(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	str := w.newCodableType("String")
	w.newProperty(actor, decl.PropIdentity, str, 0)

	w.ctx.CheckProperties(actor)
	if n := w.bag.CountCode(diag.DistUserDefinedSpecialProperty); n != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diagnosticsSummary(w.bag))
	}
}

func TestPropertyReservedRegardlessOfType(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	// Even a transport-typed property may not use the reserved name.
	tcp := w.newTransportType("TCPTransport")
	w.newProperty(actor, decl.PropTransport, tcp, 0)

	w.ctx.CheckProperties(actor)
	if !hasCode(w.bag, diag.DistUserDefinedSpecialProperty) {
		t.Fatalf("reserved name must be flagged regardless of type: %v", diagnosticsSummary(w.bag))
	}
}

func TestPropertyNonReservedNamesPass(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	str := w.newCodableType("String")
	w.newProperty(actor, "identifier", str, 0)
	w.newProperty(actor, "transport", str, 0)
	w.newProperty(actor, "idx", str, 0)

	w.ctx.CheckProperties(actor)
	if w.bag.Len() != 0 {
		t.Fatalf("only the two reserved names are rejected: %v", diagnosticsSummary(w.bag))
	}
}

func TestPropertySynthesizedSkipped(t *testing.T) {
	w := newWorld(t, true)
	actor := w.newActor("Greeter")
	w.newProperty(actor, decl.PropIdentity, decl.NoDeclID, decl.FlagSynthesized)

	w.ctx.CheckProperties(actor)
	if w.bag.Len() != 0 {
		t.Fatalf("synthesized members are not user collisions: %v", diagnosticsSummary(w.bag))
	}
}
