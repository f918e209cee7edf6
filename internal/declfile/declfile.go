// Package declfile loads TOML declaration fixtures into a decl.Graph. A
// fixture stands in for the host compiler's binder output: nominal types
// with their capability conformances, protocols with inheritance clauses,
// and actor declarations with constructors, functions, and properties.
package declfile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"

	"dac/internal/conformance"
	"dac/internal/decl"
	"dac/internal/source"
)

// Fixture mirrors the TOML layout of a declaration file.
type Fixture struct {
	Module    string         `toml:"module"`
	Loaded    []string       `toml:"loaded"`
	Types     []TypeDecl     `toml:"type"`
	Protocols []ProtocolDecl `toml:"protocol"`
	Actors    []ActorDecl    `toml:"actor"`
}

type TypeDecl struct {
	Name     string   `toml:"name"`
	Conforms []string `toml:"conforms"`
}

type ProtocolDecl struct {
	Name     string   `toml:"name"`
	Inherits []string `toml:"inherits"`
}

type ActorDecl struct {
	Name        string         `toml:"name"`
	Distributed bool           `toml:"distributed"`
	Ctors       []CtorDecl     `toml:"ctor"`
	Funcs       []FuncDecl     `toml:"func"`
	Properties  []PropertyDecl `toml:"property"`
}

// CtorDecl is designated unless marked convenience.
type CtorDecl struct {
	Convenience bool        `toml:"convenience"`
	Params      []ParamDecl `toml:"params"`
}

type FuncDecl struct {
	Name        string      `toml:"name"`
	Distributed bool        `toml:"distributed"`
	Params      []ParamDecl `toml:"params"`
	Result      string      `toml:"result"`
}

type PropertyDecl struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type ParamDecl struct {
	Label string `toml:"label"`
	Type  string `toml:"type"`
}

// World is a fixture bound into checkable form.
type World struct {
	Graph *decl.Graph
	Table *conformance.Table
	Files *source.FileSet
	File  source.FileID
	// Module is the fixture's own module.
	Module decl.ModuleID
	// Actors lists the class-like declarations in fixture order.
	Actors []decl.DeclID
}

var (
	// ErrUnknownType indicates a reference to an undeclared type name.
	ErrUnknownType = errors.New("unknown type")
	// ErrDuplicateName indicates two declarations sharing one name.
	ErrDuplicateName = errors.New("duplicate declaration name")
)

// Load reads a fixture file from disk and binds it. extraModules are
// treated as loaded in addition to the fixture's own list (manifest
// defaults).
func Load(path string, extraModules []string) (*World, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %q: %w", path, err)
	}
	return Bind(fs, fileID, extraModules)
}

// Bind parses and binds a fixture already present in the file set.
func Bind(fs *source.FileSet, fileID source.FileID, extraModules []string) (*World, error) {
	file := fs.Get(fileID)

	var fx Fixture
	if err := toml.Unmarshal(file.Content, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %q: %w", file.Path, err)
	}

	b := &binder{
		graph: decl.NewGraph(),
		names: make(map[string]decl.DeclID),
		spans: newSpanFinder(fileID, file.Content),
	}
	b.table = conformance.NewTable(b.graph)

	moduleName := fx.Module
	if moduleName == "" {
		moduleName = "main"
	}
	module := b.graph.AddModule(moduleName)

	loaded := slices.Concat(fx.Loaded, extraModules)
	for _, name := range loaded {
		b.graph.AddModule(name)
	}
	if b.graph.IsModuleLoaded(decl.ModuleDistributed) {
		b.installPrelude()
	}

	if err := b.declareAll(&fx, module); err != nil {
		return nil, err
	}
	actors, err := b.bindAll(&fx, module)
	if err != nil {
		return nil, err
	}

	return &World{
		Graph:  b.graph,
		Table:  b.table,
		Files:  fs,
		File:   fileID,
		Module: module,
		Actors: actors,
	}, nil
}

type binder struct {
	graph *decl.Graph
	table *conformance.Table
	names map[string]decl.DeclID
	spans *spanFinder
}

// installPrelude creates the runtime-support capability protocols the same
// way the host compiler would import them.
func (b *binder) installPrelude() {
	dist := b.graph.AddModule(decl.ModuleDistributed)
	known := &b.graph.Known
	known.DistributedActor = b.declare(decl.DeclProtocol, decl.ProtoDistributedActor, dist)
	known.ActorTransport = b.declare(decl.DeclProtocol, decl.ProtoActorTransport, dist)
	known.Encodable = b.declare(decl.DeclProtocol, decl.ProtoEncodable, dist)
	known.Decodable = b.declare(decl.DeclProtocol, decl.ProtoDecodable, dist)
}

func (b *binder) declare(kind decl.DeclKind, name string, module decl.ModuleID) decl.DeclID {
	id := b.graph.NewDecl(kind, name, module, b.spans.find(name), 0)
	b.names[name] = id
	return id
}

// declareAll registers every top-level name before any reference is
// resolved, so declaration order in the fixture does not matter.
func (b *binder) declareAll(fx *Fixture, module decl.ModuleID) error {
	register := func(kind decl.DeclKind, name string) error {
		if name == "" {
			return fmt.Errorf("fixture %s declaration without a name", kind)
		}
		if _, exists := b.names[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		b.declare(kind, name, module)
		return nil
	}
	for _, t := range fx.Types {
		if err := register(decl.DeclClass, t.Name); err != nil {
			return err
		}
	}
	for _, p := range fx.Protocols {
		if err := register(decl.DeclProtocol, p.Name); err != nil {
			return err
		}
	}
	for _, a := range fx.Actors {
		if err := register(decl.DeclClass, a.Name); err != nil {
			return err
		}
	}
	return nil
}

func (b *binder) bindAll(fx *Fixture, module decl.ModuleID) ([]decl.DeclID, error) {
	for _, t := range fx.Types {
		id := b.names[t.Name]
		for _, proto := range t.Conforms {
			target, err := b.resolve(proto, t.Name)
			if err != nil {
				return nil, err
			}
			b.table.Record(id, target)
		}
	}
	for _, p := range fx.Protocols {
		id := b.names[p.Name]
		for _, base := range p.Inherits {
			target, err := b.resolve(base, p.Name)
			if err != nil {
				return nil, err
			}
			b.graph.AddInherits(id, target)
		}
	}

	actors := make([]decl.DeclID, 0, len(fx.Actors))
	for _, a := range fx.Actors {
		id := b.names[a.Name]
		if a.Distributed {
			b.graph.Get(id).Flags |= decl.FlagDistributed
		}
		if err := b.bindActor(id, &a, module); err != nil {
			return nil, err
		}
		actors = append(actors, id)
	}
	return actors, nil
}

func (b *binder) bindActor(actor decl.DeclID, a *ActorDecl, module decl.ModuleID) error {
	for _, c := range a.Ctors {
		flags := decl.FlagDesignated
		if c.Convenience {
			flags = decl.FlagConvenience
		}
		ctor := b.graph.NewDecl(decl.DeclCtor, decl.DefaultInitName, module, b.spans.find(a.Name), flags)
		b.graph.AddMember(actor, ctor)
		if err := b.bindParams(ctor, c.Params, a.Name); err != nil {
			return err
		}
	}
	for _, f := range a.Funcs {
		flags := decl.DeclFlags(0)
		if f.Distributed {
			flags |= decl.FlagDistributed
		}
		fn := b.graph.NewDecl(decl.DeclFunc, f.Name, module, b.spans.find(f.Name), flags)
		b.graph.AddMember(actor, fn)
		if err := b.bindParams(fn, f.Params, f.Name); err != nil {
			return err
		}
		if f.Result != "" {
			result, err := b.resolve(f.Result, f.Name)
			if err != nil {
				return err
			}
			b.graph.Get(fn).Result = result
		}
	}
	for _, p := range a.Properties {
		prop := b.graph.NewDecl(decl.DeclProperty, p.Name, module, b.spans.find(p.Name), 0)
		b.graph.AddMember(actor, prop)
		if p.Type != "" {
			typ, err := b.resolve(p.Type, p.Name)
			if err != nil {
				return err
			}
			b.graph.Get(prop).Type = typ
		}
	}
	return nil
}

func (b *binder) bindParams(fn decl.DeclID, params []ParamDecl, owner string) error {
	for _, p := range params {
		typ, err := b.resolve(p.Type, owner)
		if err != nil {
			return err
		}
		b.graph.AddParam(fn, p.Label, typ, b.spans.find(p.Label))
	}
	return nil
}

func (b *binder) resolve(name, owner string) (decl.DeclID, error) {
	if id, ok := b.names[name]; ok {
		return id, nil
	}
	return decl.NoDeclID, fmt.Errorf("%w: %q referenced by %q", ErrUnknownType, name, owner)
}
