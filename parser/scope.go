package parser

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/gad-lang/cobol/entries"
	"github.com/gad-lang/cobol/token"
)

// Scope is the division or section a grammar rule is applied in.
type Scope int

const (
	NoScope Scope = iota
	IdentificationDivision
	EnvironmentDivision
	ConfigurationSection
	InputOutputSection
	DataDivision
	FileSection
	WorkingStorageSection
	LocalStorageSection
	LinkageSection
	ProcedureDivision
	DeclarativesSection
)

var scopes = [...]string{
	NoScope:                "",
	IdentificationDivision: "IDENTIFICATION DIVISION",
	EnvironmentDivision:    "ENVIRONMENT DIVISION",
	ConfigurationSection:   "CONFIGURATION SECTION",
	InputOutputSection:     "INPUT-OUTPUT SECTION",
	DataDivision:           "DATA DIVISION",
	FileSection:            "FILE SECTION",
	WorkingStorageSection:  "WORKING-STORAGE SECTION",
	LocalStorageSection:    "LOCAL-STORAGE SECTION",
	LinkageSection:         "LINKAGE SECTION",
	ProcedureDivision:      "PROCEDURE DIVISION",
	DeclarativesSection:    "DECLARATIVES",
}

func (s Scope) String() string {
	if 0 <= s && int(s) < len(scopes) {
		return scopes[s]
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

// SourceUnit is the kind of a compilation unit.
type SourceUnit int

const (
	Program SourceUnit = iota
	ProgramPrototype
	Function
	FunctionPrototype
	Interface
	MethodPrototype
	Class
	Factory
	Object
	Method
	MethodGetter
	MethodSetter
)

var sourceUnits = [...]string{
	Program:           "program",
	ProgramPrototype:  "program prototype",
	Function:          "function",
	FunctionPrototype: "function prototype",
	Interface:         "interface",
	MethodPrototype:   "method prototype",
	Class:             "class",
	Factory:           "factory",
	Object:            "object",
	Method:            "method",
	MethodGetter:      "method getter",
	MethodSetter:      "method setter",
}

func (u SourceUnit) String() string {
	if 0 <= u && int(u) < len(sourceUnits) {
		return sourceUnits[u]
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Unit is one source unit with the entities declared in it.
type Unit struct {
	Kind   SourceUnit
	Name   string
	Token  token.Token
	Parent *Unit
	Nested []*Unit

	// ExternalName is the AS literal of the unit header.
	ExternalName string
	Common       bool
	Initial      bool
	Recursive    bool
	// AllIntrinsic is set by FUNCTION ALL INTRINSIC.
	AllIntrinsic bool

	Files      *entries.Entries[*FileEntry]
	Data       *entries.Entries[*DataEntry]
	Repository *entries.Entries[*RepositoryEntry]
	Procedures *entries.Entries[*ProcedureEntry]
	// Names holds SPECIAL-NAMES mnemonics, alphabets, classes and symbolic
	// characters.
	Names *entries.Entries[*NameEntry]
}

func newUnit(kind SourceUnit, tok token.Token) *Unit {
	return &Unit{
		Kind:       kind,
		Token:      tok,
		Name:       tok.Value,
		Files:      entries.New[*FileEntry](),
		Data:       entries.New[*DataEntry](),
		Repository: entries.New[*RepositoryEntry](),
		Procedures: entries.New[*ProcedureEntry](),
		Names:      entries.New[*NameEntry](),
	}
}

// IsPrototype reports whether the unit is a program or function prototype.
func (u *Unit) IsPrototype() bool {
	return u.Kind == ProgramPrototype || u.Kind == FunctionPrototype
}

func (u *Unit) String() string {
	return u.Kind.String() + " " + u.Name
}

// Tree renders the unit registries and nested units.
func (u *Unit) Tree() string {
	tree := treeprint.NewWithRoot(u.String())
	u.addTo(tree)
	return tree.String()
}

func (u *Unit) addTo(tree treeprint.Tree) {
	var flags []string
	if u.Common {
		flags = append(flags, "COMMON")
	}
	if u.Initial {
		flags = append(flags, "INITIAL")
	}
	if u.Recursive {
		flags = append(flags, "RECURSIVE")
	}
	if u.AllIntrinsic {
		flags = append(flags, "ALL INTRINSIC")
	}
	if len(flags) != 0 {
		tree.AddMetaNode("flags", strings.Join(flags, " "))
	}
	if u.ExternalName != "" {
		tree.AddMetaNode("as", u.ExternalName)
	}
	if u.Repository.Len() != 0 {
		u.Repository.AddTo(tree, "repository")
	}
	if u.Names.Len() != 0 {
		u.Names.AddTo(tree, "special names")
	}
	if u.Files.Len() != 0 {
		u.Files.AddTo(tree, "files")
	}
	if u.Data.Len() != 0 {
		u.Data.AddTo(tree, "data")
	}
	if u.Procedures.Len() != 0 {
		u.Procedures.AddTo(tree, "procedures")
	}
	for _, n := range u.Nested {
		u.addNested(tree, n)
	}
}

func (u *Unit) addNested(tree treeprint.Tree, n *Unit) {
	n.addTo(tree.AddBranch(n.String()))
}

// beginUnit opens a unit nested in the current one. On a resolution pass
// the unit of the previous pass at the same position is reopened.
func (p *Parser) beginUnit(kind SourceUnit, tok token.Token) *Unit {
	var u *Unit
	if p.mode.Has(ResolutionPass) && p.unitIndex < len(p.seed) {
		u = p.seed[p.unitIndex]
	} else {
		u = newUnit(kind, tok)
		u.Parent = p.unit
		if p.unit != nil {
			p.unit.Nested = append(p.unit.Nested, u)
		}
	}
	p.unitIndex++
	p.units = append(p.units, u)
	p.unit = u
	return u
}

func (p *Parser) endUnit() {
	if p.unit != nil {
		p.unit = p.unit.Parent
	}
}
