package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gad-lang/cobol/picture"
	"github.com/gad-lang/cobol/token"
)

// Organization is the file organization of a file-control entry.
type Organization int

const (
	Sequential Organization = iota
	LineSequential
	RecordSequential
	Relative
	Indexed
)

var organizations = [...]string{
	Sequential:       "SEQUENTIAL",
	LineSequential:   "LINE SEQUENTIAL",
	RecordSequential: "RECORD SEQUENTIAL",
	Relative:         "RELATIVE",
	Indexed:          "INDEXED",
}

func (o Organization) String() string {
	return organizations[o]
}

// FileEntry is a file declared by a SELECT clause and described by an FD or
// SD entry.
type FileEntry struct {
	Token        token.Token
	Optional     bool
	Assign       []string
	Organization Organization
	Access       string
	RecordKey    string
	RelativeKey  string
	AlternateKey []string
	Status       string
	Reserve      decimal.Decimal
	Sort         bool
	Described    bool
	External     bool
	Global       bool
}

func (f *FileEntry) String() string {
	var b strings.Builder
	b.WriteString(f.Organization.String())
	if f.Access != "" {
		b.WriteString(" ACCESS " + f.Access)
	}
	if len(f.Assign) != 0 {
		b.WriteString(" ASSIGN " + strings.Join(f.Assign, " "))
	}
	if f.RecordKey != "" {
		b.WriteString(" KEY " + f.RecordKey)
	}
	return b.String()
}

// DataEntry is a data description entry.
type DataEntry struct {
	Token     token.Token
	Level     int
	Section   Scope
	Parent    *DataEntry
	Picture   string
	Category  picture.Category
	Size      int
	Usage     string
	Value     []token.Token
	Occurs    decimal.Decimal
	OccursMax decimal.Decimal
	Redefines string
	External  bool
	Global    bool
	Constant  bool
	File      string
}

// NumericValue returns the first VALUE literal as a decimal.
func (d *DataEntry) NumericValue() (decimal.Decimal, error) {
	if len(d.Value) == 0 {
		return decimal.Zero, fmt.Errorf("%s has no VALUE clause", d.Token.Value)
	}
	return d.Value[0].Decimal()
}

// IsIndex reports whether the item is an index data item.
func (d *DataEntry) IsIndex() bool { return d.Usage == "INDEX" }

// IsPointer reports whether the item is a data, function or program pointer.
func (d *DataEntry) IsPointer() bool {
	switch d.Usage {
	case "POINTER", "FUNCTION-POINTER", "PROGRAM-POINTER":
		return true
	}
	return false
}

// IsMessageTag reports whether the item holds a message tag.
func (d *DataEntry) IsMessageTag() bool { return d.Usage == "MESSAGE-TAG" }

// IsDynamicLength reports whether the item is a dynamic-length elementary
// item.
func (d *DataEntry) IsDynamicLength() bool { return d.Picture == "" && d.Usage == "DYNAMIC" }

func (d *DataEntry) String() string {
	s := fmt.Sprintf("%02d %s", d.Level, d.Section)
	if d.Picture != "" {
		s += fmt.Sprintf(" PIC %s (%s, %d)", d.Picture, d.Category, d.Size)
	}
	if d.Usage != "" {
		s += " " + d.Usage
	}
	if !d.Occurs.IsZero() {
		s += " OCCURS " + d.Occurs.String()
		if !d.OccursMax.IsZero() {
			s += " TO " + d.OccursMax.String()
		}
	}
	if d.Redefines != "" {
		s += " REDEFINES " + d.Redefines
	}
	if len(d.Value) != 0 {
		s += " VALUE " + d.Value[0].Value
	}
	return s
}

// RepositoryEntry is a class, interface, function, program or property
// named in the REPOSITORY paragraph.
type RepositoryEntry struct {
	Token        token.Token
	Kind         string
	ExternalName string
	Intrinsic    bool
}

func (r *RepositoryEntry) String() string {
	s := r.Kind
	if r.Intrinsic {
		s += " INTRINSIC"
	}
	if r.ExternalName != "" {
		s += " AS " + r.ExternalName
	}
	return s
}

// ProcedureEntry is a section or a paragraph.
type ProcedureEntry struct {
	Token   token.Token
	Section bool
	// Owner is the section a paragraph belongs to.
	Owner       string
	Declarative bool
}

func (e *ProcedureEntry) String() string {
	s := "paragraph"
	if e.Section {
		s = "section"
	}
	if e.Owner != "" {
		s += " of " + e.Owner
	}
	if e.Declarative {
		s += " (declarative)"
	}
	return s
}

// NameEntry is a SPECIAL-NAMES definition.
type NameEntry struct {
	Token token.Token
	// Kind is ALPHABET, CLASS, SYMBOLIC, LOCALE or the device a mnemonic
	// name is given to.
	Kind string
}

func (e *NameEntry) String() string {
	return e.Kind
}
