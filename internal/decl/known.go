package decl

// Canonical names the distributed-actor checks are defined against. They
// live in the runtime-support module and are resolved by name when that
// module is loaded.
const (
	// ModuleDistributed is the runtime-support module every distributed
	// actor depends on.
	ModuleDistributed = "Distributed"

	// ProtoDistributedActor is the actor capability protocol.
	ProtoDistributedActor = "DistributedActor"
	// ProtoActorTransport is the transport capability every designated
	// initializer must accept exactly once.
	ProtoActorTransport = "ActorTransport"
	// ProtoEncodable / ProtoDecodable are the serialization capability
	// pair parameters and results must satisfy to cross the boundary.
	ProtoEncodable = "Encodable"
	ProtoDecodable = "Decodable"

	// PropIdentity and PropTransport are the reserved implicit property
	// names users may not redeclare.
	PropIdentity  = "id"
	PropTransport = "actorTransport"

	// RemotePrefix prefixes the synthesized remote counterpart of a
	// distributed function.
	RemotePrefix = "_remote_"

	// DefaultInitName is the name of the synthesized default initializer.
	DefaultInitName = "init"
)

// RemoteName returns the canonical remote-counterpart identifier for a
// distributed function name.
func RemoteName(fn string) string {
	return RemotePrefix + fn
}

// WellKnown holds the capability declarations resolved from the
// runtime-support module. All IDs are NoDeclID when the module is absent.
type WellKnown struct {
	DistributedActor DeclID
	ActorTransport   DeclID
	Encodable        DeclID
	Decodable        DeclID
}
