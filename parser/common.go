package parser

import (
	"github.com/gad-lang/cobol/token"
)

// conditionalAt reports whether a conditional phrase "[noise] first…"
// starts k tokens away.
func (p *Parser) conditionalAt(k int, noise string, first []string) bool {
	return p.LookaheadEquals(k, first...) ||
		noise != "" && p.LookaheadEquals(k, noise) && p.LookaheadEquals(k+1, first...)
}

// conditionalPhrase parses the positive and the NOT form of a conditional
// phrase with its imperative body. conditional is set when either form is
// present.
func (p *Parser) conditionalPhrase(conditional *bool, noise string, first []string, rest func()) {
	if p.conditionalAt(0, noise, first) {
		p.Optional(noise)
		p.Continue()
		if rest != nil {
			rest()
		}
		*conditional = true
		p.WithoutSections(true)
	}

	if p.CurrentEquals("NOT") && p.conditionalAt(1, noise, first) {
		p.Continue()
		p.Optional(noise)
		p.Continue()
		if rest != nil {
			rest()
		}
		*conditional = true
		p.WithoutSections(true)
	}
}

// SizeError parses ON SIZE ERROR and NOT ON SIZE ERROR.
func (p *Parser) SizeError(conditional *bool) {
	p.conditionalPhrase(conditional, "ON", []string{"SIZE"}, func() {
		p.Expected("ERROR")
	})
}

// OnException parses ON EXCEPTION and NOT ON EXCEPTION.
func (p *Parser) OnException(conditional *bool) {
	p.conditionalPhrase(conditional, "ON", []string{"EXCEPTION"}, nil)
}

// InvalidKey parses INVALID KEY and NOT INVALID KEY.
func (p *Parser) InvalidKey(conditional *bool) {
	p.conditionalPhrase(conditional, "", []string{"INVALID"}, func() {
		p.Optional("KEY")
	})
}

// AtEnd parses AT END and NOT AT END.
func (p *Parser) AtEnd(conditional *bool) {
	p.conditionalPhrase(conditional, "AT", []string{"END"}, nil)
}

// AtEndOfPage parses AT END-OF-PAGE and NOT AT END-OF-PAGE.
func (p *Parser) AtEndOfPage(conditional *bool) {
	p.conditionalPhrase(conditional, "AT", []string{"END-OF-PAGE", "EOP"}, nil)
}

// OnOverflow parses ON OVERFLOW and NOT ON OVERFLOW.
func (p *Parser) OnOverflow(conditional *bool) {
	p.conditionalPhrase(conditional, "ON", []string{"OVERFLOW"}, nil)
}

// RetryPhrase parses RETRY n TIMES, RETRY FOR n SECONDS and RETRY FOREVER.
func (p *Parser) RetryPhrase() {
	if !p.Optional("RETRY") {
		return
	}
	if p.Optional("FOREVER") {
		return
	}
	if p.Optional("FOR") {
		p.Arithmetic("SECONDS")
		p.Expected("SECONDS")
		return
	}
	p.Arithmetic("TIMES", "SECONDS")
	p.Choice("TIMES", "SECONDS")
}

// TimesPhrase parses the count of a PERFORM … TIMES.
func (p *Parser) TimesPhrase() {
	if p.CurrentIs(token.Numeric) {
		p.Number()
	} else {
		p.Identifier(Receiving)
	}
	p.Expected("TIMES")
}

// WithTest parses WITH TEST BEFORE/AFTER.
func (p *Parser) WithTest() {
	if p.CurrentEquals("TEST") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "TEST") {
		p.Optional("WITH")
		p.Expected("TEST")
		p.Choice("BEFORE", "AFTER")
	}
}

// UntilPhrase parses UNTIL condition and UNTIL EXIT.
func (p *Parser) UntilPhrase() {
	p.Expected("UNTIL")
	if p.Optional("EXIT") {
		return
	}
	p.Condition()
}

// VaryingPhrase parses the VARYING phrase of PERFORM with its AFTER
// phrases.
func (p *Parser) VaryingPhrase() {
	p.Expected("VARYING")
	p.varying()
	for p.Optional("AFTER") {
		p.varying()
	}
}

func (p *Parser) varying() {
	p.Identifier(Receiving)
	p.Expected("FROM")
	p.Arithmetic("BY", "UNTIL")
	if p.Optional("BY") {
		p.Arithmetic("UNTIL")
	}
	p.UntilPhrase()
}

// LineColumn parses the LINE and COLUMN phrases of screen DISPLAY and
// ACCEPT.
func (p *Parser) LineColumn() {
	if p.Optional("LINE") {
		p.Optional("NUMBER")
		p.Optional("IS")
		p.Optional("PLUS")
		p.Arithmetic("COLUMN", "COL")
	}
	if p.OptionalChoice("COLUMN", "COL") != "" {
		p.Optional("NUMBER")
		p.Optional("IS")
		p.Optional("PLUS")
		p.Arithmetic()
	}
}

// RaisingStatus parses the RAISING and WITH NORMAL/ERROR STATUS phrases of
// GOBACK and EXIT PROGRAM.
func (p *Parser) RaisingStatus() {
	if p.Optional("RAISING") {
		switch {
		case p.Optional("EXCEPTION"):
			p.Identifier(Receiving)
		case p.Optional("LAST"):
			p.Optional("EXCEPTION")
		default:
			p.Identifier(Sending)
		}
		return
	}
	p.statusPhrase()
}

// statusPhrase parses [WITH] NORMAL|ERROR [STATUS] [operand].
func (p *Parser) statusPhrase() {
	if p.CurrentEquals("NORMAL", "ERROR") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "NORMAL", "ERROR") {
		p.Optional("WITH")
		p.Choice("NORMAL", "ERROR")
		p.Optional("STATUS")
		p.Optional("IS")
		if p.isOperand() {
			p.Operand()
		}
	}
}

// ForAlphanumericForNational parses FOR ALPHANUMERIC and FOR NATIONAL
// phrases followed by item. Each may be given once.
func (p *Parser) ForAlphanumericForNational(item func()) {
	var alphanumeric, national bool

	for {
		switch {
		case p.CurrentEquals("FOR") && p.LookaheadEquals(1, "ALPHANUMERIC") || p.CurrentEquals("ALPHANUMERIC"):
			if alphanumeric {
				p.Build(SeverityError, 132, "For alphanumeric phrase, duplicate definition.").
					WithSourceLine(p.Current(), "FOR ALPHANUMERIC can only be specified once in this statement.").
					WithNote("The same applies to FOR NATIONAL.").
					Close()
			}
			alphanumeric = true
			p.Optional("FOR")
			p.Expected("ALPHANUMERIC")
		case p.CurrentEquals("FOR") && p.LookaheadEquals(1, "NATIONAL") || p.CurrentEquals("NATIONAL"):
			if national {
				p.Build(SeverityError, 132, "For national phrase, duplicate definition.").
					WithSourceLine(p.Current(), "FOR NATIONAL can only be specified once in this statement.").
					WithNote("The same applies to FOR ALPHANUMERIC.").
					Close()
			}
			national = true
			p.Optional("FOR")
			p.Expected("NATIONAL")
		default:
			return
		}
		p.Optional("IS")
		item()
	}
}

// LocalePhrase parses a locale name or one of LOCALE, SYSTEM-DEFAULT and
// USER-DEFAULT.
func (p *Parser) LocalePhrase() {
	if p.OptionalChoice("LOCALE", "SYSTEM-DEFAULT", "USER-DEFAULT") != "" {
		return
	}
	p.Name()
}

// SetLocale parses the locale categories of SET LOCALE.
func (p *Parser) SetLocale() {
	categories := []string{"LC_ALL", "LC_COLLATE", "LC_CTYPE", "LC_MESSAGES", "LC_MONETARY", "LC_NUMERIC", "LC_TIME"}
	p.Choice(categories...)
	for p.CurrentEquals(categories...) {
		p.Continue()
	}
}

// AfterBeforePhrase parses the AFTER/BEFORE INITIAL phrases of INSPECT.
func (p *Parser) AfterBeforePhrase() {
	for p.CurrentEquals("AFTER", "BEFORE") {
		p.Continue()
		p.Optional("INITIAL")
		p.inspectOperand()
	}
}

func (p *Parser) inspectOperand() {
	if p.CurrentIs(token.Identifier) || p.CurrentEquals("FUNCTION") {
		p.Identifier(Sending)
		return
	}
	if p.Current().Kind == token.Figurative {
		p.FigurativeLiteral()
		return
	}
	p.StringLiteral()
}

// TallyingPhrase parses the TALLYING phrase of INSPECT.
func (p *Parser) TallyingPhrase() {
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected a tallying data item.")
		return
	}

	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
		p.Expected("FOR")

		for p.CurrentEquals("CHARACTERS", "ALL", "LEADING", "TRAILING") {
			if p.Optional("CHARACTERS") {
				p.AfterBeforePhrase()
				continue
			}
			p.Continue()
			p.inspectOperand()
			p.AfterBeforePhrase()
			for p.isOperand() && !p.LookaheadEquals(1, "FOR") {
				p.inspectOperand()
				p.AfterBeforePhrase()
			}
		}
	}
}

// ReplacingPhrase parses the REPLACING phrase of INSPECT.
func (p *Parser) ReplacingPhrase() {
	if !p.CurrentEquals("CHARACTERS", "ALL", "LEADING", "FIRST", "TRAILING") {
		p.unexpected("Expected CHARACTERS, ALL, LEADING, FIRST or TRAILING.")
		return
	}

	for p.CurrentEquals("CHARACTERS", "ALL", "LEADING", "FIRST", "TRAILING") {
		if p.Optional("CHARACTERS") {
			p.Expected("BY")
			p.inspectOperand()
			p.AfterBeforePhrase()
			continue
		}
		p.Continue()
		p.inspectOperand()
		p.Expected("BY")
		p.inspectOperand()
		p.AfterBeforePhrase()
		for p.isOperand() {
			p.inspectOperand()
			p.Expected("BY")
			p.inspectOperand()
			p.AfterBeforePhrase()
		}
	}
}

// collatingSequence parses the COLLATING SEQUENCE phrase of SORT and MERGE.
func (p *Parser) collatingSequence() {
	p.Optional("COLLATING")
	p.Expected("SEQUENCE")

	if p.CurrentEquals("IS") && p.LookaheadIs(1, token.Identifier) || p.CurrentIs(token.Identifier) {
		p.Optional("IS")
		p.Name()
		if p.CurrentIs(token.Identifier) {
			p.Name()
		}
		return
	}

	if !p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.unexpected("Expected an alphabet name or at least one FOR ALPHANUMERIC and FOR NATIONAL phrases.")
		p.AnchorContext(token.IsStatement, "USING", "INPUT")
		return
	}
	p.ForAlphanumericForNational(func() { p.Name() })
}

// keyPhrase parses ON ASCENDING/DESCENDING KEY phrases of SORT and MERGE.
func (p *Parser) keyPhrase() {
	for {
		p.Optional("ON")
		p.Choice("ASCENDING", "DESCENDING")
		p.Optional("KEY")

		if !p.CurrentIs(token.Identifier) {
			p.unexpected("The ON ASCENDING / DESCENDING KEY phrase must only contain key names.")
		}
		p.identifiers(Receiving)

		if !p.CurrentEquals("ON", "ASCENDING", "DESCENDING") {
			return
		}
	}
}

// procedureRange parses procedure-name [THRU procedure-name].
func (p *Parser) procedureRange() {
	p.procedureName()
	if p.OptionalChoice("THROUGH", "THRU") != "" {
		p.procedureName()
	}
}

// Rounded parses the ROUNDED phrase with its optional MODE.
func (p *Parser) Rounded() {
	if !p.Optional("ROUNDED") {
		return
	}
	if p.Optional("MODE") {
		p.Optional("IS")
		p.Choice("AWAY-FROM-ZERO", "NEAREST-AWAY-FROM-ZERO", "NEAREST-EVEN",
			"NEAREST-TOWARD-ZERO", "PROHIBITED", "TOWARD-GREATER",
			"TOWARD-LESSER", "TRUNCATION")
	}
}

// receiving parses a list of receiving data items. With rounded set each
// item may be followed by a ROUNDED phrase.
func (p *Parser) receiving(rounded bool) {
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected an identifier.")
		return
	}
	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
		if rounded {
			p.Rounded()
		}
	}
}

// numericOperand parses an identifier or a numeric literal.
func (p *Parser) numericOperand() {
	switch {
	case p.CurrentIs(token.Numeric):
		p.Number()
	case p.CurrentIs(token.Identifier) || p.CurrentEquals("FUNCTION", "LENGTH"):
		p.Operand()
	default:
		p.unexpected("Expected an identifier or numeric literal.")
	}
}
