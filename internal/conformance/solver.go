// Package conformance answers whether a type satisfies a capability
// protocol. The checks consume the Solver interface; the Table
// implementation backs it with conformances declared in the fixture.
package conformance

import (
	"dac/internal/decl"
)

// Result is the outcome of a conformance lookup.
type Result uint8

const (
	// Missing means no conformance exists; checks treat it as invalid.
	Missing Result = iota
	// Concrete means the type satisfies the capability.
	Concrete
)

// IsInvalid reports whether the lookup failed to produce a usable
// conformance.
func (r Result) IsInvalid() bool {
	return r == Missing
}

// Solver resolves conformance questions for the checks. The module argument
// scopes the lookup to the module the question is asked from.
type Solver interface {
	ConformsTo(typ, capability decl.DeclID, module decl.ModuleID) Result
}

// Table is a Solver backed by explicitly recorded conformance edges. A type
// also conforms to a capability when one of its recorded protocols
// transitively inherits that capability.
type Table struct {
	graph *decl.Graph
	bases map[decl.DeclID][]decl.DeclID
}

func NewTable(g *decl.Graph) *Table {
	return &Table{
		graph: g,
		bases: make(map[decl.DeclID][]decl.DeclID),
	}
}

// Record adds a direct conformance of typ to capability.
func (t *Table) Record(typ, capability decl.DeclID) {
	if !typ.IsValid() || !capability.IsValid() {
		return
	}
	t.bases[typ] = append(t.bases[typ], capability)
}

func (t *Table) ConformsTo(typ, capability decl.DeclID, _ decl.ModuleID) Result {
	if !typ.IsValid() || !capability.IsValid() {
		return Missing
	}
	for _, base := range t.bases[typ] {
		if base == capability || t.inherits(base, capability) {
			return Concrete
		}
	}
	return Missing
}

// inherits walks the protocol-inheritance closure of proto.
func (t *Table) inherits(proto, capability decl.DeclID) bool {
	seen := map[decl.DeclID]struct{}{}
	work := []decl.DeclID{proto}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		d := t.graph.Get(cur)
		if d == nil {
			continue
		}
		for _, base := range d.Inherits {
			if base == capability {
				return true
			}
			work = append(work, base)
		}
	}
	return false
}
