package token

import (
	"fmt"
	"strings"

	"github.com/gad-lang/cobol/parser/source"
	"github.com/shopspring/decimal"
)

// Token is a classified lexical unit. Tokens are values and are never
// mutated once produced by the classifier.
type Token struct {
	Value   string
	Kind    Kind
	Context Context
	Pos     source.SourceFilePos
}

// NewEOF returns the end of file sentinel positioned at pos.
func NewEOF(pos source.SourceFilePos) Token {
	return Token{Value: "EOF", Kind: EOF, Context: IsEOF, Pos: pos}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}

// Is reports whether the token value equals one of values, ignoring case.
func (t Token) Is(values ...string) bool {
	for _, v := range values {
		if strings.EqualFold(t.Value, v) {
			return true
		}
	}
	return false
}

// IsEOF reports whether t is the end of file sentinel.
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

// Decimal returns the value of a numeric literal.
func (t Token) Decimal() (decimal.Decimal, error) {
	if t.Kind != Numeric {
		return decimal.Zero, fmt.Errorf("token %s is not a numeric literal", t)
	}
	v := strings.Replace(t.Value, ",", ".", 1)
	return decimal.NewFromString(v)
}

// Int returns the integer value of a numeric literal, or -1 when the
// literal is not an integer.
func (t Token) Int() int {
	d, err := t.Decimal()
	if err != nil || !d.IsInteger() {
		return -1
	}
	return int(d.IntPart())
}
