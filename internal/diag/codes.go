package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Distributed-actor semantic checks.
	DistInfo                          Code = 3000
	DistModuleNotLoaded               Code = 3001
	DistFuncParamNotCodable           Code = 3002
	DistFuncResultNotCodable          Code = 3003
	DistRemoteFuncImplementedManually Code = 3004
	DistCtorMissingTransportParam     Code = 3005
	DistCtorAmbiguousTransportParams  Code = 3006
	DistUserDefinedSpecialProperty    Code = 3007
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	DistInfo:                          "Distributed-actor information",
	DistModuleNotLoaded:               "Distributed runtime-support module is not imported",
	DistFuncParamNotCodable:           "Distributed function parameter is not codable",
	DistFuncResultNotCodable:          "Distributed function result is not codable",
	DistRemoteFuncImplementedManually: "Remote counterpart implemented manually",
	DistCtorMissingTransportParam:     "Designated initializer is missing a transport parameter",
	DistCtorAmbiguousTransportParams:  "Designated initializer has ambiguous transport parameters",
	DistUserDefinedSpecialProperty:    "User-defined special property",
}

func (c Code) ID() string {
	if ic := int(c); ic >= 3000 && ic < 4000 {
		return fmt.Sprintf("DIST%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
