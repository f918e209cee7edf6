package decl

import (
	"dac/internal/source"
)

// Module is one entry of the run's module table. A module is "loaded" iff it
// has an entry in the graph.
type Module struct {
	Name source.StringID
}

// Graph owns every declaration of one check run. Declarations are stored in
// arenas and addressed by 1-based IDs; strings are interned once.
type Graph struct {
	Decls   *Arena[Decl]
	Pars    *Arena[Param]
	Modules *Arena[Module]
	Names   *source.Interner

	// Known caches the capability declarations of the runtime-support
	// module; zero-valued until the prelude is installed.
	Known WellKnown

	modulesByName map[source.StringID]ModuleID
}

func NewGraph() *Graph {
	return &Graph{
		Decls:         NewArena[Decl](64),
		Pars:          NewArena[Param](64),
		Modules:       NewArena[Module](4),
		Names:         source.NewInterner(),
		modulesByName: make(map[source.StringID]ModuleID, 4),
	}
}

// AddModule registers a loaded module and returns its ID. Adding the same
// name twice returns the existing ID.
func (g *Graph) AddModule(name string) ModuleID {
	nameID := g.Names.Intern(name)
	if id, ok := g.modulesByName[nameID]; ok {
		return id
	}
	id := ModuleID(g.Modules.Allocate(Module{Name: nameID}))
	g.modulesByName[nameID] = id
	return id
}

// IsModuleLoaded reports whether a module with the given name is present.
func (g *Graph) IsModuleLoaded(name string) bool {
	_, ok := g.modulesByName[g.Names.Intern(name)]
	return ok
}

// NewDecl allocates a declaration node.
func (g *Graph) NewDecl(kind DeclKind, name string, module ModuleID, span source.Span, flags DeclFlags) DeclID {
	return DeclID(g.Decls.Allocate(Decl{
		Kind:   kind,
		Name:   g.Names.Intern(name),
		Module: module,
		Span:   span,
		Flags:  flags,
	}))
}

// AddMember appends child to parent's member list and records ownership.
func (g *Graph) AddMember(parent, child DeclID) {
	p := g.Decls.Get(uint32(parent))
	c := g.Decls.Get(uint32(child))
	if p == nil || c == nil {
		return
	}
	p.Members = append(p.Members, child)
	c.Parent = parent
}

// AddInherits records a protocol-inheritance edge.
func (g *Graph) AddInherits(proto, base DeclID) {
	p := g.Decls.Get(uint32(proto))
	if p == nil {
		return
	}
	p.Inherits = append(p.Inherits, base)
}

// AddParam appends a parameter to a function or constructor.
func (g *Graph) AddParam(fn DeclID, label string, typ DeclID, span source.Span) ParamID {
	d := g.Decls.Get(uint32(fn))
	if d == nil {
		return NoParamID
	}
	id := ParamID(g.Pars.Allocate(Param{
		Label: g.Names.Intern(label),
		Type:  typ,
		Span:  span,
	}))
	d.Params = append(d.Params, id)
	return id
}

// Get returns the declaration for id, or nil.
func (g *Graph) Get(id DeclID) *Decl {
	return g.Decls.Get(uint32(id))
}

// Param returns the parameter for id, or nil.
func (g *Graph) Param(id ParamID) *Param {
	return g.Pars.Get(uint32(id))
}

// NameOf resolves a declaration's name.
func (g *Graph) NameOf(id DeclID) string {
	d := g.Get(id)
	if d == nil {
		return ""
	}
	name, _ := g.Names.Lookup(d.Name)
	return name
}

// LabelOf resolves a parameter's argument label.
func (g *Graph) LabelOf(id ParamID) string {
	p := g.Param(id)
	if p == nil {
		return ""
	}
	label, _ := g.Names.Lookup(p.Label)
	return label
}

// LookupDirectMember returns the first direct member of parent with the
// given name and kind, or NoDeclID.
func (g *Graph) LookupDirectMember(parent DeclID, name string, kind DeclKind) DeclID {
	p := g.Get(parent)
	if p == nil {
		return NoDeclID
	}
	nameID := g.Names.Intern(name)
	for _, m := range p.Members {
		d := g.Get(m)
		if d != nil && d.Kind == kind && d.Name == nameID {
			return m
		}
	}
	return NoDeclID
}

// LookupDirectRemote returns the sibling declaration carrying fn's remote
// counterpart name, or NoDeclID. Purely structural: provenance is not
// consulted here.
func (g *Graph) LookupDirectRemote(fn DeclID) DeclID {
	d := g.Get(fn)
	if d == nil || d.Kind != DeclFunc || !d.Parent.IsValid() {
		return NoDeclID
	}
	name, _ := g.Names.Lookup(d.Name)
	return g.LookupDirectMember(d.Parent, RemoteName(name), DeclFunc)
}

// Constructors returns the constructor members of a class-like declaration
// in declaration order.
func (g *Graph) Constructors(id DeclID) []DeclID {
	return g.membersOfKind(id, DeclCtor)
}

// Properties returns the property members in declaration order.
func (g *Graph) Properties(id DeclID) []DeclID {
	return g.membersOfKind(id, DeclProperty)
}

// Funcs returns the function members in declaration order.
func (g *Graph) Funcs(id DeclID) []DeclID {
	return g.membersOfKind(id, DeclFunc)
}

func (g *Graph) membersOfKind(id DeclID, kind DeclKind) []DeclID {
	d := g.Get(id)
	if d == nil {
		return nil
	}
	var out []DeclID
	for _, m := range d.Members {
		if md := g.Get(m); md != nil && md.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
