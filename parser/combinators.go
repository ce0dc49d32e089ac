package parser

import (
	"strings"

	"github.com/gad-lang/cobol/token"
)

func (p *Parser) unexpectedEOF(expected string) {
	p.Build(SeverityError, 0, "Unexpected end of file.").
		WithSourceLine(p.Lookbehind(1), "Expected "+expected+" after this token.").
		Close()
}

// Expected consumes value. On a mismatch it reports a diagnostic and then
// either skips to one of anchors or, without anchors, moves past the
// offending token.
func (p *Parser) Expected(value string, anchors ...string) {
	if p.atEOF() {
		p.unexpectedEOF(value)
		return
	}

	if !p.CurrentEquals(value) {
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected "+value+", instead of "+p.Current().Value).
			Close()

		if len(anchors) != 0 {
			p.AnchorPoint(anchors...)
		} else {
			p.Continue()
		}
		return
	}
	p.Continue()
}

// Expect is the non reporting variant of Expected. It returns false on a
// mismatch and leaves the cursor in place so the caller can report. At the
// end of file it reports and returns true.
func (p *Parser) Expect(value string) bool {
	if p.atEOF() {
		p.unexpectedEOF(value)
		return true
	}
	if !p.CurrentEquals(value) {
		return false
	}
	p.Continue()
	return true
}

// Optional consumes value when it is the current token.
func (p *Parser) Optional(value string) bool {
	if p.CurrentEquals(value) {
		p.Continue()
		return true
	}
	return false
}

// OptionalChoice consumes the current token when it is one of values and
// returns the consumed value.
func (p *Parser) OptionalChoice(values ...string) string {
	for _, v := range values {
		if p.CurrentEquals(v) {
			p.Continue()
			return v
		}
	}
	return ""
}

// Choice consumes one of values and returns it. On a mismatch every
// alternative is listed in the diagnostic and the offending token is
// skipped.
func (p *Parser) Choice(values ...string) string {
	if v := p.OptionalChoice(values...); v != "" {
		return v
	}
	if p.atEOF() {
		p.unexpectedEOF("one of the following: " + strings.Join(values, ", "))
		return ""
	}

	p.Build(SeverityError, 5, "Unexpected token.").
		WithSourceLine(p.Current(), "Expected one of the following: "+strings.Join(values, ", ")).
		Close()
	p.Continue()
	return ""
}

// IdentifierName consumes the user-defined word name. With report false a
// mismatching name is left for the caller and false is returned.
func (p *Parser) IdentifierName(name string, report bool) bool {
	if p.atEOF() {
		p.unexpectedEOF("an identifier")
		return true
	}

	if !p.CurrentIs(token.Identifier) {
		p.Build(SeverityError, 1, "Unexpected token type.").
			WithSourceLine(p.Current(), "Expected a user-defined word (an identifier).").
			Close()
		p.Continue()
		return true
	}

	if !p.CurrentEquals(name) {
		if !report {
			return false
		}
		p.Build(SeverityError, 2, "Unexpected user-defined name.").
			WithSourceLine(p.Current(), "Expected the following identifier: "+name+".").
			Close()
		p.Continue()
		return true
	}
	p.Continue()
	return true
}

// Name consumes a plain user-defined word and returns it.
func (p *Parser) Name() token.Token {
	tok := p.Current()
	if p.atEOF() {
		p.unexpectedEOF("an identifier")
		return tok
	}
	if !p.CurrentIs(token.Identifier) {
		p.Build(SeverityError, 1, "Unexpected token.").
			WithSourceLine(tok, "Expected a user-defined word (an identifier).").
			Close()
	}
	p.Continue()
	return tok
}

func (p *Parser) literal(expected string, kinds ...token.Kind) token.Token {
	tok := p.Current()
	if !p.CurrentIs(kinds...) {
		p.Build(SeverityError, 1, "Unexpected token type.").
			WithSourceLine(tok, "Expected "+expected+".").
			Close()
	}
	p.Continue()
	return tok
}

// Number consumes a numeric literal.
func (p *Parser) Number() token.Token {
	return p.literal("a numeric literal", token.Numeric)
}

// StringLiteral consumes an alphanumeric, boolean or national literal.
func (p *Parser) StringLiteral() token.Token {
	return p.literal("a string type literal",
		token.String, token.HexString, token.Boolean, token.HexBoolean,
		token.National, token.HexNational)
}

// BooleanLiteral consumes a boolean literal.
func (p *Parser) BooleanLiteral() token.Token {
	return p.literal("a boolean literal", token.Boolean, token.HexBoolean)
}

// NationalLiteral consumes a national literal.
func (p *Parser) NationalLiteral() token.Token {
	return p.literal("a national literal", token.National, token.HexNational)
}

// FigurativeLiteral consumes a figurative constant.
func (p *Parser) FigurativeLiteral() token.Token {
	return p.literal("a figurative literal", token.Figurative)
}

// Literal consumes any literal, including figurative constants and the
// ALL literal form.
func (p *Parser) Literal() token.Token {
	if p.CurrentEquals("ALL") && p.Lookahead(1).Kind.IsLiteral() {
		p.Continue()
	}
	if p.CurrentEquals("NULL", "NULLS") {
		tok := p.Current()
		p.Continue()
		return tok
	}
	return p.literal("a literal",
		token.Numeric, token.String, token.HexString, token.Boolean,
		token.HexBoolean, token.National, token.HexNational, token.Figurative)
}

// isOperand reports whether the current token may start an identifier or
// literal operand.
func (p *Parser) isOperand() bool {
	tok := p.Current()
	return tok.Kind == token.Identifier || tok.Kind.IsLiteral() ||
		tok.Is("FUNCTION", "ADDRESS", "SELF", "NULL", "EXCEPTION-OBJECT",
			"LINAGE-COUNTER", "PAGE-COUNTER", "LINE-COUNTER") ||
		tok.Is("ALL") && p.Lookahead(1).Kind.IsLiteral() ||
		tok.Is("LENGTH") && p.LookaheadEquals(1, "OF")
}

// Operand consumes an identifier or a literal in a sending position.
func (p *Parser) Operand() {
	switch {
	case p.CurrentEquals("ALL") && p.Lookahead(1).Kind.IsLiteral(), p.Current().Kind.IsLiteral():
		p.Literal()
	case p.CurrentEquals("LENGTH") && p.LookaheadEquals(1, "OF"):
		p.Continue()
		p.Continue()
		p.Operand()
	default:
		p.Identifier(Sending)
	}
}
