package decl

type (
	// DeclID identifies a declaration in a Graph.
	DeclID uint32
	// ParamID identifies a parameter of a function or constructor.
	ParamID uint32
	// ModuleID identifies a loaded module.
	ModuleID uint32
)

const (
	NoDeclID   DeclID   = 0
	NoParamID  ParamID  = 0
	NoModuleID ModuleID = 0
)

func (id DeclID) IsValid() bool   { return id != NoDeclID }
func (id ParamID) IsValid() bool  { return id != NoParamID }
func (id ModuleID) IsValid() bool { return id != NoModuleID }
