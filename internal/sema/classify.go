package sema

import (
	"dac/internal/decl"
	"dac/internal/query"
)

// IsDistributedActor classifies a declaration from explicit markers only:
// the actor capability protocol itself, a protocol transitively requiring
// it, or a class explicitly marked distributed. No contextual inference.
func (c *Context) IsDistributedActor(id decl.DeclID) bool {
	return c.Eval.Bool(query.Key{Kind: query.KindIsDistributedActor, Decl: id}, func() bool {
		d := c.Graph.Get(id)
		if d == nil {
			return false
		}
		switch d.Kind {
		case decl.DeclProtocol:
			actorProto := c.Graph.Known.DistributedActor
			if !actorProto.IsValid() {
				return false
			}
			return id == actorProto || c.protocolInheritsFrom(id, actorProto)
		case decl.DeclClass:
			return d.Is(decl.FlagDistributed)
		}
		return false
	})
}

// IsDistributedFunc is true iff the function carries the explicit
// distributed marker.
func (c *Context) IsDistributedFunc(id decl.DeclID) bool {
	return c.Eval.Bool(query.Key{Kind: query.KindIsDistributedFunc, Decl: id}, func() bool {
		d := c.Graph.Get(id)
		return d != nil && d.Kind == decl.DeclFunc && d.Is(decl.FlagDistributed)
	})
}

// protocolInheritsFrom walks the inheritance clause closure of proto.
func (c *Context) protocolInheritsFrom(proto, target decl.DeclID) bool {
	seen := map[decl.DeclID]struct{}{}
	work := []decl.DeclID{proto}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		d := c.Graph.Get(cur)
		if d == nil {
			continue
		}
		for _, base := range d.Inherits {
			if base == target {
				return true
			}
			work = append(work, base)
		}
	}
	return false
}
