package token

import "strconv"

// Kind represents the lexical class of a token.
type Kind int

// List of token kinds
const (
	Illegal Kind = iota
	EOF
	LiteralBegin_
	Numeric
	String
	HexString
	Boolean
	HexBoolean
	National
	HexNational
	Figurative
	LiteralEnd_
	Identifier
	Reserved
	Intrinsic
	Device
	Symbol
	Picture
)

var kinds = [...]string{
	Illegal:     "ILLEGAL",
	EOF:         "EOF",
	Numeric:     "NUMERIC",
	String:      "STRING",
	HexString:   "HEXSTRING",
	Boolean:     "BOOLEAN",
	HexBoolean:  "HEXBOOLEAN",
	National:    "NATIONAL",
	HexNational: "HEXNATIONAL",
	Figurative:  "FIGURATIVE",
	Identifier:  "IDENT",
	Reserved:    "RESERVED",
	Intrinsic:   "INTRINSIC",
	Device:      "DEVICE",
	Symbol:      "SYMBOL",
	Picture:     "PICTURE",
}

var display = [...]string{
	Illegal:     "illegal token",
	EOF:         "end of file",
	Numeric:     "numeric literal",
	String:      "alphanumeric literal",
	HexString:   "hexadecimal alphanumeric literal",
	Boolean:     "boolean literal",
	HexBoolean:  "hexadecimal boolean literal",
	National:    "national literal",
	HexNational: "hexadecimal national literal",
	Figurative:  "figurative constant",
	Identifier:  "user-defined word",
	Reserved:    "reserved word",
	Intrinsic:   "intrinsic function name",
	Device:      "device name",
	Symbol:      "symbol",
	Picture:     "picture character string",
}

func (k Kind) String() string {
	s := ""

	if 0 <= k && k < Kind(len(kinds)) {
		s = kinds[k]
	}

	if s == "" {
		s = "kind(" + strconv.Itoa(int(k)) + ")"
	}

	return s
}

// Display returns the human readable name used in diagnostics.
func (k Kind) Display() string {
	if 0 <= k && k < Kind(len(display)) && display[k] != "" {
		return display[k]
	}
	return k.String()
}

// IsLiteral returns true if the kind is a literal.
func (k Kind) IsLiteral() bool {
	return LiteralBegin_ < k && k < LiteralEnd_
}

// IsStringLiteral reports whether kind is one of the alphanumeric,
// boolean or national literal kinds.
func (k Kind) IsStringLiteral() bool {
	return String <= k && k <= HexNational
}

// Is returns true if the kind equals one of args.
func (k Kind) Is(other ...Kind) bool {
	for _, o := range other {
		if o == k {
			return true
		}
	}
	return false
}

// Context is a set-membership tag attached to a token by the classifier.
type Context int

const (
	NoContext Context = iota
	IsStatement
	IsClause
	IsScopeTerminator
	IsEOF
	IsParagraph
	IsSection
	IsDeclarative
)

var contexts = [...]string{
	NoContext:         "",
	IsStatement:       "statement",
	IsClause:          "clause",
	IsScopeTerminator: "scope-terminator",
	IsEOF:             "eof",
	IsParagraph:       "paragraph",
	IsSection:         "section",
	IsDeclarative:     "declarative",
}

func (c Context) String() string {
	if 0 <= c && c < Context(len(contexts)) {
		return contexts[c]
	}
	return "context(" + strconv.Itoa(int(c)) + ")"
}
