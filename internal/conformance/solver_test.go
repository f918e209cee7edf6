package conformance

import (
	"testing"

	"dac/internal/decl"
	"dac/internal/source"
)

func TestTableDirect(t *testing.T) {
	g := decl.NewGraph()
	mod := g.AddModule("app")
	str := g.NewDecl(decl.DeclClass, "String", mod, source.Span{}, 0)
	enc := g.NewDecl(decl.DeclProtocol, decl.ProtoEncodable, mod, source.Span{}, 0)
	dec := g.NewDecl(decl.DeclProtocol, decl.ProtoDecodable, mod, source.Span{}, 0)

	table := NewTable(g)
	table.Record(str, enc)

	if table.ConformsTo(str, enc, mod).IsInvalid() {
		t.Fatal("recorded conformance must hold")
	}
	if !table.ConformsTo(str, dec, mod).IsInvalid() {
		t.Fatal("unrecorded conformance must be missing")
	}
}

func TestTableTransitive(t *testing.T) {
	g := decl.NewGraph()
	mod := g.AddModule("app")
	transport := g.NewDecl(decl.DeclProtocol, decl.ProtoActorTransport, mod, source.Span{}, 0)
	special := g.NewDecl(decl.DeclProtocol, "SpecialTransport", mod, source.Span{}, 0)
	g.AddInherits(special, transport)
	impl := g.NewDecl(decl.DeclClass, "TCPTransport", mod, source.Span{}, 0)

	table := NewTable(g)
	table.Record(impl, special)

	if table.ConformsTo(impl, transport, mod).IsInvalid() {
		t.Fatal("conformance must follow protocol inheritance")
	}
}

func TestTableInvalidIDs(t *testing.T) {
	g := decl.NewGraph()
	table := NewTable(g)
	if !table.ConformsTo(decl.NoDeclID, decl.NoDeclID, decl.NoModuleID).IsInvalid() {
		t.Fatal("null IDs can never conform")
	}
}
