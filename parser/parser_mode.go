package parser

// Mode value is a set of flags for parser.
type Mode int

func (b *Mode) Set(flag Mode) *Mode { *b = *b | flag; return b }
func (b Mode) Has(flag Mode) bool   { return b&flag != 0 }

const (
	// ResolutionPass re-runs the grammar over units of a previous pass
	// without registering entries or reporting duplicates.
	ResolutionPass Mode = 1 << iota
	// ProcedureOnly parses the input as the body of a procedure division.
	ProcedureOnly
)
