package parser

import (
	"github.com/gad-lang/cobol/picture"
	"github.com/gad-lang/cobol/token"
)

// operands consumes one or more identifiers and literals. label is reported
// when no operand is present.
func (p *Parser) operands(label string) {
	if !p.isOperand() {
		p.unexpected(label)
		return
	}
	for p.isOperand() {
		p.Operand()
	}
}

// listEnd reports a statement that is followed by something other than the
// end of the statement.
func (p *Parser) listEnd(label string) {
	if !p.atStatementEnd() {
		p.unexpected(label)
	}
}

// dataItem returns the uniquely named data item of the current unit or
// nil.
func (p *Parser) dataItem(name string) *DataEntry {
	if p.unit == nil {
		return nil
	}
	if exists, unique := p.unit.Data.ExistsAndUnique(name); !exists || !unique {
		return nil
	}
	d, err := p.unit.Data.GetUnique(name)
	if err != nil {
		return nil
	}
	return d
}

// DisplayStatement parses DISPLAY … [UPON device] [WITH NO ADVANCING] and
// the screen form DISPLAY identifier AT/LINE/COLUMN.
func (p *Parser) DisplayStatement() {
	if p.Trace {
		defer untracep(tracep(p, "DisplayStatement"))
	}

	p.Expected("DISPLAY")

	if p.CurrentIs(token.Identifier) && p.LookaheadEquals(1, "AT", "LINE", "COLUMN", "COL") {
		var conditional bool
		p.Identifier(Sending)
		p.Optional("AT")
		p.LineColumn()
		p.OnException(&conditional)
		p.terminator(conditional, "END-DISPLAY")
		return
	}

	if !p.isOperand() {
		p.unexpected("Expected an identifier or a literal.")
		p.AnchorPoint("UPON", "WITH", "NO")
	}
	for p.isOperand() {
		p.Operand()
	}

	if p.Optional("UPON") {
		if p.CurrentIs(token.Device, token.Identifier) {
			p.Continue()
		} else {
			p.Choice("STANDARD-OUTPUT", "STANDARD-ERROR")
		}
	}

	if p.CurrentEquals("NO") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "NO") {
		p.Optional("WITH")
		p.Expected("NO")
		p.Expected("ADVANCING")
	}

	p.Optional("END-DISPLAY")
}

// AcceptStatement parses ACCEPT identifier [FROM source] and the screen
// form ACCEPT identifier AT/LINE/COLUMN.
func (p *Parser) AcceptStatement() {
	if p.Trace {
		defer untracep(tracep(p, "AcceptStatement"))
	}

	var conditional bool
	p.Expected("ACCEPT")
	p.Identifier(Receiving)

	switch {
	case p.Optional("FROM"):
		switch {
		case p.CurrentEquals("DATE"):
			p.Continue()
			p.Optional("YYYYMMDD")
		case p.CurrentEquals("DAY"):
			p.Continue()
			p.Optional("YYYYDDD")
		case p.CurrentEquals("DAY-OF-WEEK", "TIME"):
			p.Continue()
		case p.CurrentIs(token.Device, token.Identifier):
			p.Continue()
		default:
			p.unexpected("Expected STANDARD-INPUT, COMMAND-LINE, DATE, DAY, DAY-OF-WEEK or TIME.")
		}
	case p.CurrentEquals("AT", "LINE", "COLUMN", "COL"):
		if p.Optional("AT") && !p.CurrentEquals("LINE", "COLUMN", "COL") {
			p.Build(SeverityError, 5, "Unexpected "+p.Lookbehind(1).Kind.Display()+".").
				WithSourceLine(p.Lookbehind(1), "When specifying the AT keyword, it must be followed by a LINE NUMBER, COLUMN/COL NUMBER or both.").
				Close()
		}
		p.LineColumn()
		p.OnException(&conditional)
	}

	p.terminator(conditional, "END-ACCEPT")
}

// AllocateStatement parses ALLOCATE [identifier] [n CHARACTERS]
// [INITIALIZED] [RETURNING pointer].
func (p *Parser) AllocateStatement() {
	if p.Trace {
		defer untracep(tracep(p, "AllocateStatement"))
	}

	p.Expected("ALLOCATE")
	if p.CurrentIs(token.Identifier) && !p.LookaheadEquals(1, "CHARACTERS") && !p.LookaheadIs(1, token.Symbol) {
		p.Identifier(Receiving)
	}

	if p.CurrentIs(token.Identifier, token.Numeric) || p.CurrentEquals("(") {
		p.Arithmetic("CHARACTERS")
		p.Expected("CHARACTERS")
	}

	p.Optional("INITIALIZED")

	if p.Optional("RETURNING") {
		p.Identifier(Receiving)
	}
}

// FreeStatement parses FREE followed by BASED data items.
func (p *Parser) FreeStatement() {
	p.Expected("FREE")
	p.identifiers(Receiving)
	p.listEnd("Expected a data item defined with the BASED clause.")
}

// MoveStatement parses MOVE [CORRESPONDING] sending TO receivers.
func (p *Parser) MoveStatement() {
	if p.Trace {
		defer untracep(tracep(p, "MoveStatement"))
	}

	p.Expected("MOVE")

	if p.CurrentEquals("CORRESPONDING", "CORR") {
		p.Continue()
		p.Identifier(Sending)
		p.Expected("TO")
		p.Identifier(Receiving)
		return
	}

	if !p.isOperand() {
		p.unexpected("Expected a single data item identifier, literal or a function.")
	} else {
		p.Operand()
	}

	p.Expected("TO")
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected only data item identifiers.")
		return
	}
	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
	}
}

var categoryNames = []string{
	"ALPHABETIC", "ALPHANUMERIC", "ALPHANUMERIC-EDITED", "BOOLEAN",
	"DATA-POINTER", "FUNCTION-POINTER", "MESSAGE-TAG", "NATIONAL",
	"NATIONAL-EDITED", "NUMERIC", "NUMERIC-EDITED", "OBJECT-REFERENCE",
	"PROGRAM-POINTER",
}

// InitializeStatement parses INITIALIZE with its VALUE, REPLACING and
// DEFAULT phrases.
func (p *Parser) InitializeStatement() {
	if p.Trace {
		defer untracep(tracep(p, "InitializeStatement"))
	}

	p.Expected("INITIALIZE")
	p.identifiers(Receiving)

	if p.CurrentEquals("FILLER") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "FILLER") {
		p.Optional("WITH")
		p.Expected("FILLER")
	}

	if p.CurrentEquals(categoryNames...) || p.CurrentEquals("ALL") {
		p.Continue()
		p.Optional("TO")
		p.Expected("VALUE")
	}

	if p.CurrentEquals("REPLACING") || p.CurrentEquals("THEN") && p.LookaheadEquals(1, "REPLACING") {
		p.Optional("THEN")
		p.Expected("REPLACING")

		if !p.CurrentEquals(categoryNames...) {
			p.unexpected("Expected a category name.")
		}
		for p.CurrentEquals(categoryNames...) {
			p.Continue()
			p.Optional("DATA")
			p.Expected("BY")

			if !p.isOperand() {
				p.unexpected("Expected an identifier or literal.")
				p.AnchorContext(token.IsStatement)
				return
			}
			p.Operand()
		}
	}

	if p.CurrentEquals("DEFAULT") || p.CurrentEquals("THEN", "TO") && p.LookaheadEquals(1, "DEFAULT", "TO") {
		p.Optional("THEN")
		p.Optional("TO")
		p.Expected("DEFAULT")
	}
}

// InspectStatement parses INSPECT with its TALLYING, REPLACING and
// CONVERTING phrases.
func (p *Parser) InspectStatement() {
	if p.Trace {
		defer untracep(tracep(p, "InspectStatement"))
	}

	p.Expected("INSPECT")
	p.Optional("BACKWARD")
	p.Identifier(Receiving)

	switch {
	case p.Optional("CONVERTING"):
		p.inspectOperand()
		p.Expected("TO")
		p.inspectOperand()
		p.AfterBeforePhrase()
	case p.Optional("REPLACING"):
		p.ReplacingPhrase()
	case p.Optional("TALLYING"):
		p.TallyingPhrase()
		if p.Optional("REPLACING") {
			p.ReplacingPhrase()
		}
	default:
		p.unexpected("Expected TALLYING, REPLACING or CONVERTING.")
	}
}

// StringStatement parses STRING … DELIMITED BY … INTO identifier.
func (p *Parser) StringStatement() {
	if p.Trace {
		defer untracep(tracep(p, "StringStatement"))
	}

	var conditional bool
	p.Expected("STRING")

	for {
		p.operands("Expected an identifier or a literal.")

		p.Expected("DELIMITED")
		p.Optional("BY")
		if !p.Optional("SIZE") {
			p.inspectOperand()
		}

		if !p.isOperand() {
			break
		}
	}

	p.Expected("INTO")
	p.Identifier(Receiving)

	if p.CurrentEquals("POINTER") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "POINTER") {
		p.Optional("WITH")
		p.Expected("POINTER")
		p.Identifier(Receiving)
	}

	p.OnOverflow(&conditional)
	p.terminator(conditional, "END-STRING")
}

// UnstringStatement parses UNSTRING identifier [DELIMITED BY …] INTO ….
func (p *Parser) UnstringStatement() {
	if p.Trace {
		defer untracep(tracep(p, "UnstringStatement"))
	}

	var conditional bool
	p.Expected("UNSTRING")
	p.Identifier(Sending)

	if p.Optional("DELIMITED") {
		p.Optional("BY")
		p.Optional("ALL")
		p.inspectOperand()

		for p.Optional("OR") {
			p.Optional("ALL")
			p.inspectOperand()
		}
	}

	p.Expected("INTO")
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected an identifier.")
	}
	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
		if p.Optional("DELIMITER") {
			p.Optional("IN")
			p.Identifier(Receiving)
		}
		if p.Optional("COUNT") {
			p.Optional("IN")
			p.Identifier(Receiving)
		}
	}

	if p.CurrentEquals("POINTER") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "POINTER") {
		p.Optional("WITH")
		p.Expected("POINTER")
		p.Identifier(Receiving)
	}

	if p.Optional("TALLYING") {
		p.Optional("IN")
		p.Identifier(Receiving)
	}

	p.OnOverflow(&conditional)
	p.terminator(conditional, "END-UNSTRING")
}

// SetStatement parses the forms of SET. The form is chosen by the usage of
// the first target when it names a registered data item.
func (p *Parser) SetStatement() {
	if p.Trace {
		defer untracep(tracep(p, "SetStatement"))
	}

	p.Expected("SET")

	switch {
	case p.CurrentEquals("LAST"):
		p.Continue()
		p.Expected("EXCEPTION")
		p.Expected("TO")
		p.Expected("OFF")

	case p.CurrentEquals("LOCALE"):
		p.Continue()
		if !p.Optional("USER-DEFAULT") {
			p.SetLocale()
		}
		p.Expected("TO")
		if p.CurrentIs(token.Identifier) {
			p.Identifier(Sending)
		} else {
			p.Choice("USER-DEFAULT", "SYSTEM-DEFAULT")
		}

	case p.CurrentEquals("SIZE"):
		p.Continue()
		p.Optional("OF")
		p.Identifier(Receiving)
		p.Expected("TO")
		p.Arithmetic()

	case p.CurrentIs(token.Identifier) && p.LookaheadEquals(1, "TO") && p.LookaheadEquals(2, "LOCALE"):
		p.Identifier(Receiving)
		p.Expected("TO")
		p.Expected("LOCALE")
		p.Choice("LC_ALL", "LOCALE")

	case p.CurrentIs(token.Identifier) || p.CurrentEquals("ADDRESS"):
		item := p.dataItem(p.Current().Value)

		switch {
		case item != nil && item.IsMessageTag() && p.LookaheadEquals(1, "TO"):
			p.Identifier(Receiving)
			p.Expected("TO")
			if !p.Optional("NULL") {
				p.Identifier(Sending)
			}
		case item != nil && item.IsDynamicLength() && p.LookaheadEquals(1, "TO"):
			p.Identifier(Receiving)
			p.Expected("TO")
			p.Arithmetic()
		default:
			p.setTargets(item)
		}

	default:
		p.unexpected("Expected an identifier, ADDRESS, SIZE, LOCALE or LAST EXCEPTION.")
	}
}

// setTargets parses target … TO value and target … UP/DOWN BY n.
func (p *Parser) setTargets(first *DataEntry) {
	address := false
	for p.CurrentIs(token.Identifier) || p.CurrentEquals("ADDRESS") {
		if p.CurrentEquals("ADDRESS") {
			address = true
			p.Identifier(DataAddress | FunctionAddress | ProgramAddress)
			continue
		}
		p.Identifier(Receiving)
	}

	switch {
	case p.Optional("TO"):
		if p.CurrentEquals("TRUE", "FALSE", "ON", "OFF") {
			p.Continue()
			return
		}
		p.Arithmetic()
	case p.CurrentEquals("UP", "DOWN"):
		if address || first != nil && first.Picture != "" && first.Category != picture.Numeric {
			p.Build(SeverityError, 5, "Unexpected "+p.Current().Value+".").
				WithSourceLine(p.Current(), "UP BY and DOWN BY require an index, a pointer or a numeric data item.").
				Close()
		}
		p.Continue()
		p.Expected("BY")
		p.Arithmetic()
	default:
		p.unexpected("Expected TO, UP BY or DOWN BY.")
	}
}
