package parser

import (
	"github.com/gad-lang/cobol/token"
)

// identification paragraphs whose comment entries are skipped
var identificationParagraphs = []string{
	"AUTHOR", "INSTALLATION", "DATE-WRITTEN", "DATE-COMPILED", "SECURITY",
	"REMARKS", "OPTIONS",
}

func (p *Parser) atUnitHeader() bool {
	return p.CurrentEquals("IDENTIFICATION", "PROGRAM-ID", "FUNCTION-ID")
}

func (p *Parser) atDivisionHeader() bool {
	return p.CurrentEquals("ENVIRONMENT", "DATA", "PROCEDURE") && p.LookaheadEquals(1, "DIVISION")
}

// SourceUnits parses top level source units until the end of file. Tokens
// that cannot start a unit are reported once and skipped up to the next
// unit header.
func (p *Parser) SourceUnits() {
	if p.Trace {
		defer untracep(tracep(p, "SourceUnits"))
	}

	for !p.atEOF() {
		if !p.atUnitHeader() {
			p.unexpected("Expected IDENTIFICATION DIVISION, PROGRAM-ID or FUNCTION-ID.")
			p.skipToUnitHeader()
			continue
		}
		p.SourceUnit()
	}
}

func (p *Parser) skipToUnitHeader() {
	for !p.atEOF() && !p.atUnitHeader() {
		p.Continue()
	}
}

// SourceUnit parses one program or function definition with its nested
// units and end marker.
func (p *Parser) SourceUnit() {
	if p.Trace {
		defer untracep(tracep(p, "SourceUnit"))
	}

	if p.Optional("IDENTIFICATION") {
		p.Expected("DIVISION")
		p.scope = IdentificationDivision
		p.separatorPeriod("Division header", "division header")
	}

	var kind SourceUnit
	switch {
	case p.Optional("PROGRAM-ID"):
		kind = Program
	case p.Optional("FUNCTION-ID"):
		kind = Function
	default:
		p.unexpected("Expected PROGRAM-ID or FUNCTION-ID.")
		if !p.atEOF() {
			p.Continue()
		}
		p.skipToUnitHeader()
		return
	}
	p.separatorPeriod("Paragraph header", "paragraph header")

	u := p.unitHeader(kind)

	p.identificationParagraphs()
	p.divisionBoundary()

	if p.CurrentEquals("ENVIRONMENT") {
		p.EnvironmentDivision()
		p.divisionBoundary()
	}
	if p.CurrentEquals("DATA") {
		p.DataDivision()
		p.divisionBoundary()
	}
	if p.CurrentEquals("PROCEDURE") {
		p.ProcedureDivision()
	}

	for p.atUnitHeader() {
		p.SourceUnit()
	}

	p.EndMarker(u)
	p.endUnit()
	p.scope = NoScope
}

// divisionBoundary reports and skips tokens left over by the previous
// division up to the next division header or the end of the unit.
func (p *Parser) divisionBoundary() {
	if p.atDivisionHeader() || p.atUnitEnd() {
		return
	}
	p.unexpected("Expected a division header or the end of the source unit.")
	for !p.atDivisionHeader() && !p.atUnitEnd() {
		p.Continue()
	}
}

// unitHeader parses the name and attributes following PROGRAM-ID or
// FUNCTION-ID and opens the unit.
func (p *Parser) unitHeader(kind SourceUnit) *Unit {
	var tok token.Token
	if p.Current().Kind.IsStringLiteral() {
		tok = p.StringLiteral()
	} else {
		tok = p.Name()
	}

	var (
		external                   string
		common, initial, recursive bool
		prototype                  bool
	)
	if p.Optional("AS") {
		external = p.StringLiteral().Value
	}

	for {
		p.Optional("IS")
		attr := p.OptionalChoice("COMMON", "INITIAL", "RECURSIVE", "PROTOTYPE")
		if attr == "" {
			break
		}
		if kind == Function && attr != "PROTOTYPE" {
			p.Build(SeverityError, 5, "Unexpected token.").
				WithSourceLine(p.Lookbehind(1), attr+" is not allowed in a function definition.").
				WithNote("A function definition can only be a PROTOTYPE.").
				Close()
		}
		switch attr {
		case "COMMON":
			common = true
		case "INITIAL":
			initial = true
		case "RECURSIVE":
			recursive = true
		case "PROTOTYPE":
			prototype = true
		}
		p.Optional("PROGRAM")
	}

	if initial && recursive {
		p.Build(SeverityError, 5, "Conflicting program attributes.").
			WithSourceLine(tok, "A program cannot be both INITIAL and RECURSIVE.").
			Close()
	}
	p.separatorPeriod("Source unit header", "source unit header")

	switch {
	case kind == Program && prototype:
		kind = ProgramPrototype
	case kind == Function && prototype:
		kind = FunctionPrototype
	}

	u := p.beginUnit(kind, tok)
	if p.registering() {
		u.ExternalName = external
		u.Common = common
		u.Initial = initial
		u.Recursive = recursive
	}
	return u
}

// identificationParagraphs skips the comment entries of the optional
// identification paragraphs.
func (p *Parser) identificationParagraphs() {
	for p.CurrentEquals(identificationParagraphs...) {
		if !p.CurrentEquals("OPTIONS") {
			p.Build(SeverityWarning, 6, "Obsolete identification paragraph.").
				WithSourceLine(p.Current(), "The "+p.Current().Value+" paragraph is treated as a comment.").
				WithNote("Use a comment line instead of this paragraph.").
				Close()
		}
		p.Continue()
		p.Optional(".")

		for !p.atEOF() && !p.CurrentEquals(identificationParagraphs...) &&
			!p.atDivisionHeader() && !p.atUnitHeader() &&
			!(p.CurrentEquals("END") && p.LookaheadEquals(1, "PROGRAM", "FUNCTION")) {
			p.Continue()
		}
	}
}

// ProcedureDivision parses the procedure division header and body.
func (p *Parser) ProcedureDivision() {
	if p.Trace {
		defer untracep(tracep(p, "ProcedureDivision"))
	}

	p.Expected("PROCEDURE")
	p.Expected("DIVISION")
	p.scope = ProcedureDivision

	if p.Optional("USING") {
		p.procedureUsing()
	}

	if p.Optional("RETURNING") {
		p.Identifier(Receiving)
	}

	if p.Optional("RAISING") {
		if !p.CurrentIs(token.Identifier) && !p.CurrentEquals("EXCEPTION") {
			p.unexpected("Expected an exception name or class name.")
		}
		for p.CurrentIs(token.Identifier) || p.CurrentEquals("EXCEPTION") {
			p.Optional("EXCEPTION")
			p.Name()
		}
	}

	p.separatorPeriod("Division header", "division header")

	if p.unit != nil && p.unit.IsPrototype() {
		return
	}
	p.ProcedureBody()
}

// procedureUsing parses the formal parameters of a procedure division
// header.
func (p *Parser) procedureUsing() {
	if !p.CurrentIs(token.Identifier) && !p.CurrentEquals("BY", "REFERENCE", "VALUE", "OPTIONAL") {
		p.Build(SeverityError, 128, "Using phrase, missing identifier.").
			WithSourceLine(p.Lookbehind(1), "The USING phrase must contain at least one data item name.").
			Close()
		return
	}

	for p.CurrentIs(token.Identifier) || p.CurrentEquals("BY", "REFERENCE", "VALUE", "OPTIONAL") {
		start := p.index
		reference := true

		if p.CurrentEquals("BY", "REFERENCE", "VALUE") {
			p.Optional("BY")
			reference = p.Choice("REFERENCE", "VALUE") != "VALUE"

			if !p.CurrentIs(token.Identifier) && !(reference && p.CurrentEquals("OPTIONAL")) {
				p.Build(SeverityError, 128, "Using phrase, missing identifier.").
					WithSourceLine(p.Lookbehind(1), "This phrase must contain at least one data item name.").
					Close()
				return
			}
		}
		p.usingItems(reference)

		if p.index == start {
			return
		}
	}
}

// EndMarker parses END PROGRAM or END FUNCTION followed by the unit name.
// The marker is required for nested units and for units that contain
// nested units.
func (p *Parser) EndMarker(u *Unit) {
	if p.Trace {
		defer untracep(tracep(p, "EndMarker"))
	}

	marker := "PROGRAM"
	if u.Kind == Function || u.Kind == FunctionPrototype {
		marker = "FUNCTION"
	}

	if !p.CurrentEquals("END") || !p.LookaheadEquals(1, "PROGRAM", "FUNCTION") {
		if u.Parent != nil || len(u.Nested) != 0 {
			p.Build(SeverityError, 25, "Missing end marker.").
				WithSourceLine(p.Lookbehind(1), "Expected END "+marker+" "+u.Name+" after this token.").
				WithNote("A nested unit, and a unit containing nested units, must end with an end marker.").
				Close()
		}
		return
	}

	p.Continue()
	p.Expected(marker)
	if p.Current().Kind.IsStringLiteral() {
		p.StringLiteral()
	} else {
		p.IdentifierName(u.Name, true)
	}
	p.separatorPeriod("End marker", "end marker")
}
