package sema

import (
	"dac/internal/decl"
	"dac/internal/diag"
)

// CheckProperties flags user-declared member properties whose name collides
// with one of the reserved implicit members. Naming is the only criterion;
// the declared type is irrelevant. Non-fatal: the declaration keeps
// compiling.
func (c *Context) CheckProperties(id decl.DeclID) {
	g := c.Graph
	for _, propID := range g.Properties(id) {
		prop := g.Get(propID)
		if prop.Is(decl.FlagSynthesized) {
			continue
		}
		name := g.NameOf(propID)
		if name != decl.PropIdentity && name != decl.PropTransport {
			continue
		}
		c.report(diag.DistUserDefinedSpecialProperty, diag.SevError, prop.Span,
			"property '%s' of distributed actor '%s' is reserved for a synthesized implicit member",
			name, g.NameOf(id))
	}
}
