package decl

import (
	"dac/internal/source"
)

// DeclKind is the closed set of declaration variants the checker works on.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	// DeclClass is a concrete class-like declaration (actor candidate).
	DeclClass
	// DeclProtocol is a protocol-like declaration (capability or requirement set).
	DeclProtocol
	// DeclFunc is a named member function.
	DeclFunc
	// DeclCtor is a constructor: a function variant without a result type.
	DeclCtor
	// DeclProperty is a stored member property.
	DeclProperty
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclProtocol:
		return "protocol"
	case DeclFunc:
		return "func"
	case DeclCtor:
		return "ctor"
	case DeclProperty:
		return "property"
	}
	return "invalid"
}

// DeclFlags carry explicit markers and provenance bits.
type DeclFlags uint16

const (
	// FlagDistributed marks an explicit 'distributed' actor or function.
	FlagDistributed DeclFlags = 1 << iota
	// FlagSynthesized records compiler provenance. Set only by the
	// synthesizer, never from user input.
	FlagSynthesized
	// FlagDesignated marks a designated constructor.
	FlagDesignated
	// FlagConvenience marks a convenience constructor.
	FlagConvenience
	// FlagDefaultInit marks the synthesized default initializer.
	FlagDefaultInit
)

// Decl is one node of the declaration graph. Which fields are meaningful
// depends on Kind: Members for class/protocol, Params/Result for func/ctor,
// Inherits for protocol requirements.
type Decl struct {
	Kind    DeclKind
	Name    source.StringID
	Module  ModuleID
	Span    source.Span
	Flags   DeclFlags
	Parent  DeclID
	Members []DeclID
	// Inherits lists protocols this declaration transitively requires
	// (protocol inheritance clause).
	Inherits []DeclID
	Params   []ParamID
	// Result is the result type declaration; NoDeclID means void.
	Result DeclID
	// Type is a property's declared type.
	Type DeclID
}

func (d *Decl) Is(flag DeclFlags) bool {
	return d != nil && d.Flags&flag != 0
}

// Param is a single parameter of a function or constructor.
type Param struct {
	// Label is the argument label, possibly empty.
	Label source.StringID
	Type  DeclID
	Span  source.Span
}
