package sema

import (
	"dac/internal/decl"
	"dac/internal/diag"
	"dac/internal/query"
)

// EnsureModuleLoaded reports whether the distributed runtime-support module
// is available, from the viewpoint of one declaration. The first miss per
// declaration emits exactly one diagnostic asking for an explicit import;
// repeated calls replay the cached answer silently. The key includes the
// declaration identity, so each declaration that needs the module accounts
// for its own diagnostic.
func (c *Context) EnsureModuleLoaded(id decl.DeclID) bool {
	return c.Eval.Bool(query.Key{Kind: query.KindModuleAvailable, Decl: id}, func() bool {
		if c.Modules.IsModuleLoaded(decl.ModuleDistributed) {
			return true
		}
		d := c.Graph.Get(id)
		if d == nil {
			return false
		}
		diag.ReportError(c.Reporter, diag.DistModuleNotLoaded, d.Span,
			"'"+c.Graph.NameOf(id)+"' requires the '"+decl.ModuleDistributed+"' module").
			WithNote(d.Span, "add 'import "+decl.ModuleDistributed+"'").
			Emit()
		return false
	})
}
