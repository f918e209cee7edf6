package sema

import (
	"dac/internal/decl"
	"dac/internal/diag"
)

// FunctionViolationKind discriminates why a distributed function was
// rejected.
type FunctionViolationKind uint8

const (
	ViolationNone FunctionViolationKind = iota
	// ViolationParamNotCodable: a parameter type misses one of the
	// serialization capabilities.
	ViolationParamNotCodable
	// ViolationResultNotCodable: the non-void result type misses one of
	// the serialization capabilities.
	ViolationResultNotCodable
	// ViolationRemoteHandwritten: the remote counterpart exists but was
	// not synthesized by the compiler.
	ViolationRemoteHandwritten
)

// FunctionViolation is the structured outcome of the distributed-function
// rule, independent of diagnostic emission.
type FunctionViolation struct {
	Kind FunctionViolationKind
	// Param is the first offending parameter for ViolationParamNotCodable.
	Param decl.ParamID
	// Type is the offending parameter or result type.
	Type decl.DeclID
	// Remote is the expected synthesized identifier for
	// ViolationRemoteHandwritten.
	Remote string
}

// functionViolation applies the rule in its fixed order: every parameter
// against both serialization capabilities, then the non-void result, then
// the remote counterpart's provenance. The first violation ends the check.
func (c *Context) functionViolation(fn decl.DeclID) (FunctionViolation, bool) {
	d := c.Graph.Get(fn)
	if d == nil || d.Kind != decl.DeclFunc {
		return FunctionViolation{}, false
	}
	enc := c.Graph.Known.Encodable
	dec := c.Graph.Known.Decodable
	module := d.Module

	for _, pid := range d.Params {
		p := c.Graph.Param(pid)
		if p == nil {
			continue
		}
		if c.Solver.ConformsTo(p.Type, enc, module).IsInvalid() ||
			c.Solver.ConformsTo(p.Type, dec, module).IsInvalid() {
			return FunctionViolation{
				Kind:  ViolationParamNotCodable,
				Param: pid,
				Type:  p.Type,
			}, true
		}
	}

	if d.Result.IsValid() {
		if c.Solver.ConformsTo(d.Result, dec, module).IsInvalid() ||
			c.Solver.ConformsTo(d.Result, enc, module).IsInvalid() {
			return FunctionViolation{
				Kind: ViolationResultNotCodable,
				Type: d.Result,
			}, true
		}
	}

	// Remote counterpart lookup is structural; only provenance decides
	// whether its presence is legal.
	if remote := c.Graph.LookupDirectRemote(fn); remote.IsValid() {
		if !c.Graph.Get(remote).Is(decl.FlagSynthesized) {
			return FunctionViolation{
				Kind:   ViolationRemoteHandwritten,
				Remote: decl.RemoteName(c.Graph.NameOf(fn)),
			}, true
		}
	}

	return FunctionViolation{}, false
}

// CheckDistributedFunction reports whether fn violates the distributed
// function rules. With diagnose=false it is a silent probe for tooling.
func (c *Context) CheckDistributedFunction(fn decl.DeclID, diagnose bool) bool {
	v, violated := c.functionViolation(fn)
	if !violated {
		return false
	}
	if diagnose {
		c.diagnoseFunctionViolation(fn, v)
	}
	return true
}

func (c *Context) diagnoseFunctionViolation(fn decl.DeclID, v FunctionViolation) {
	d := c.Graph.Get(fn)
	name := c.Graph.NameOf(fn)

	switch v.Kind {
	case ViolationParamNotCodable:
		span := d.Span
		if p := c.Graph.Param(v.Param); p != nil {
			span = p.Span
		}
		c.report(diag.DistFuncParamNotCodable, diag.SevError, span,
			"parameter '%s' of distributed function '%s' has non-codable type '%s'; it must conform to '%s' and '%s'",
			c.Graph.LabelOf(v.Param), name, c.Graph.NameOf(v.Type),
			decl.ProtoEncodable, decl.ProtoDecodable)
	case ViolationResultNotCodable:
		c.report(diag.DistFuncResultNotCodable, diag.SevError, d.Span,
			"result type '%s' of distributed function '%s' is not codable; it must conform to '%s' and '%s'",
			c.Graph.NameOf(v.Type), name, decl.ProtoEncodable, decl.ProtoDecodable)
	case ViolationRemoteHandwritten:
		c.report(diag.DistRemoteFuncImplementedManually, diag.SevError, d.Span,
			"remote function '%s' of distributed function '%s' must not be implemented manually; it is synthesized by the compiler",
			v.Remote, name)
	}
}
