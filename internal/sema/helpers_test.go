package sema

import (
	"testing"

	"dac/internal/conformance"
	"dac/internal/decl"
	"dac/internal/diag"
	"dac/internal/source"
	"dac/internal/synth"
)

// world bundles everything a check test needs.
type world struct {
	g     *decl.Graph
	table *conformance.Table
	bag   *diag.Bag
	ctx   *Context
	app   decl.ModuleID
}

// newWorld builds a run context; withRuntime controls whether the
// Distributed module and its capability protocols are present.
func newWorld(t *testing.T, withRuntime bool) *world {
	t.Helper()
	g := decl.NewGraph()
	if withRuntime {
		dist := g.AddModule(decl.ModuleDistributed)
		g.Known.DistributedActor = g.NewDecl(decl.DeclProtocol, decl.ProtoDistributedActor, dist, source.Span{}, 0)
		g.Known.ActorTransport = g.NewDecl(decl.DeclProtocol, decl.ProtoActorTransport, dist, source.Span{}, 0)
		g.Known.Encodable = g.NewDecl(decl.DeclProtocol, decl.ProtoEncodable, dist, source.Span{}, 0)
		g.Known.Decodable = g.NewDecl(decl.DeclProtocol, decl.ProtoDecodable, dist, source.Span{}, 0)
	}
	app := g.AddModule("app")
	table := conformance.NewTable(g)
	bag := diag.NewBag(32)
	ctx := NewContext(g, diag.BagReporter{Bag: bag}, table, synth.NewService(g))
	return &world{g: g, table: table, bag: bag, ctx: ctx, app: app}
}

func (w *world) newActor(name string) decl.DeclID {
	return w.g.NewDecl(decl.DeclClass, name, w.app, source.Span{}, decl.FlagDistributed)
}

// newCodableType registers a class conforming to both serialization
// capabilities.
func (w *world) newCodableType(name string) decl.DeclID {
	id := w.g.NewDecl(decl.DeclClass, name, w.app, source.Span{}, 0)
	w.table.Record(id, w.g.Known.Encodable)
	w.table.Record(id, w.g.Known.Decodable)
	return id
}

// newTransportType registers a class conforming to the transport capability.
func (w *world) newTransportType(name string) decl.DeclID {
	id := w.g.NewDecl(decl.DeclClass, name, w.app, source.Span{}, 0)
	w.table.Record(id, w.g.Known.ActorTransport)
	return id
}

func (w *world) newFunc(actor decl.DeclID, name string, flags decl.DeclFlags) decl.DeclID {
	fn := w.g.NewDecl(decl.DeclFunc, name, w.app, source.Span{}, flags)
	w.g.AddMember(actor, fn)
	return fn
}

func (w *world) newCtor(actor decl.DeclID, flags decl.DeclFlags) decl.DeclID {
	ctor := w.g.NewDecl(decl.DeclCtor, "init", w.app, source.Span{}, flags)
	w.g.AddMember(actor, ctor)
	return ctor
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	return bag.CountCode(code) > 0
}

func diagnosticsSummary(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+": "+d.Message)
	}
	return out
}
