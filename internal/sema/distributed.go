package sema

import (
	"dac/internal/decl"
)

// CheckDistributedActor runs the full rule set for one distributed-actor
// declaration:
//
//  1. runtime-support module availability (fail-closed per declaration),
//  2. default initializer synthesis (its transport binding is what the
//     remote stubs synthesized in step 5 attach to),
//  3. transport-arity check of every constructor,
//  4. reserved-name check over the direct properties,
//  5. synthesis of the implicit support members.
//
// A missing module stops this declaration only; the run continues with the
// next one.
func (c *Context) CheckDistributedActor(actor decl.DeclID) {
	if !c.EnsureModuleLoaded(actor) {
		return
	}

	if c.Synth != nil {
		c.Synth.EnsureDefaultInitializer(actor)
	}

	for _, ctor := range c.Graph.Constructors(actor) {
		c.CheckConstructor(ctor, true)
	}

	c.CheckProperties(actor)

	if c.Synth != nil {
		c.Synth.SynthesizeImplicitMembers(actor)
	}
}
