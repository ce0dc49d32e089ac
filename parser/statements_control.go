package parser

import (
	"github.com/gad-lang/cobol/token"
)

// procedureName consumes a paragraph or section name with an optional
// IN/OF section qualifier. On a resolution pass names that the unit does
// not define are reported.
func (p *Parser) procedureName() {
	tok := p.Name()
	if p.CurrentEquals("IN", "OF") && p.LookaheadIs(1, token.Identifier) {
		p.Continue()
		p.Name()
	}

	if tok.Kind != token.Identifier || !p.mode.Has(ResolutionPass) || p.unit == nil {
		return
	}
	if !p.unit.Procedures.Exists(tok.Value) {
		p.Build(SeverityError, 31, "Undefined procedure name.").
			WithSourceLine(tok, "No paragraph or section of "+p.unit.Name+" is named "+tok.Value+".").
			Close()
	}
}

// nextSentence reports the archaic NEXT SENTENCE phrase and skips it.
func (p *Parser) nextSentence() bool {
	if !p.CurrentEquals("NEXT") || !p.LookaheadEquals(1, "SENTENCE") {
		return false
	}
	p.Build(SeverityError, 5, "Unsupported phrase: NEXT SENTENCE is an archaic feature.").
		WithSourceLine(p.Current(), "The CONTINUE statement can be used to accomplish the same functionality.").
		Close()
	p.Continue()
	p.Continue()
	return true
}

// IfStatement parses IF condition [THEN] statements [ELSE statements]
// END-IF.
func (p *Parser) IfStatement() {
	if p.Trace {
		defer untracep(tracep(p, "IfStatement"))
	}

	p.Expected("IF")
	p.Condition("THEN")
	p.Optional("THEN")

	if !p.nextSentence() || p.CurrentContext(token.IsStatement) {
		p.WithoutSections(true)
	}

	if p.Optional("ELSE") {
		if !p.nextSentence() || p.CurrentContext(token.IsStatement) {
			p.WithoutSections(true)
		}
	}

	p.terminator(true, "END-IF")
}

// EvaluateStatement parses EVALUATE subjects, WHEN phrases with objects
// paired to the subjects, WHEN OTHER and END-EVALUATE.
func (p *Parser) EvaluateStatement() {
	if p.Trace {
		defer untracep(tracep(p, "EvaluateStatement"))
	}

	p.Expected("EVALUATE")

	subjects := []Selection{p.SelectionSubject()}
	for p.Optional("ALSO") {
		subjects = append(subjects, p.SelectionSubject())
	}

	if !p.CurrentEquals("WHEN") {
		p.unexpected("Expected at least one WHEN phrase.")
	}

	for p.CurrentEquals("WHEN") && !p.LookaheadEquals(1, "OTHER") {
		paired := true
		for paired && p.CurrentEquals("WHEN") && !p.LookaheadEquals(1, "OTHER") {
			p.Continue()
			paired = p.selectionObjects(subjects)
		}
		if paired {
			p.WithoutSections(true)
		}
	}

	if p.CurrentEquals("WHEN") && p.LookaheadEquals(1, "OTHER") {
		p.Continue()
		p.Continue()
		p.WithoutSections(true)
	}

	p.terminator(true, "END-EVALUATE")
}

// PerformStatement parses out-of-line, inline and exception checking
// PERFORM statements.
func (p *Parser) PerformStatement() {
	if p.Trace {
		defer untracep(tracep(p, "PerformStatement"))
	}

	p.Expected("PERFORM")

	if p.CurrentIs(token.Identifier) && !p.LookaheadEquals(1, "TIMES") {
		p.procedureRange()
		switch {
		case p.CurrentIs(token.Identifier, token.Numeric):
			p.TimesPhrase()
		case p.CurrentEquals("TEST", "VARYING", "UNTIL") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "TEST"):
			p.loopPhrase()
		}
		return
	}

	var inline, checking bool
	switch {
	case p.CurrentEquals("LOCATION") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "LOCATION"):
		checking = true
		p.Optional("WITH")
		p.Expected("LOCATION")
	case p.CurrentIs(token.Identifier, token.Numeric):
		inline = true
		p.TimesPhrase()
	case p.CurrentEquals("TEST", "VARYING", "UNTIL") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "TEST"):
		inline = true
		p.loopPhrase()
	}

	p.WithoutSections(true)

	if inline && p.CurrentEquals("WHEN") {
		p.unexpected("An inline PERFORM cannot contain an exception checking WHEN phrase.")
		p.AnchorPoint("END-PERFORM")
	}

	if checking || !inline && p.CurrentEquals("WHEN") {
		for p.CurrentEquals("WHEN") && !p.LookaheadEquals(1, "OTHER", "COMMON") {
			p.Continue()
			switch {
			case p.CurrentEquals("EXCEPTION") && p.LookaheadIs(1, token.Identifier):
				p.Continue()
				p.exceptionNames()
			case p.Optional("EXCEPTION"):
				p.Choice("INPUT", "OUTPUT", "I-O", "EXTEND")
			default:
				p.exceptionNames()
			}
			p.WithoutSections(true)
		}

		if p.CurrentEquals("WHEN") && p.LookaheadEquals(1, "OTHER") {
			p.Continue()
			p.Continue()
			p.Optional("EXCEPTION")
			p.WithoutSections(true)
		}

		if p.CurrentEquals("COMMON") || p.CurrentEquals("WHEN") && p.LookaheadEquals(1, "COMMON") {
			p.Optional("WHEN")
			p.Expected("COMMON")
			p.Optional("EXCEPTION")
			p.WithoutSections(true)
		}

		if p.Optional("FINALLY") {
			p.WithoutSections(true)
		}
	}

	p.terminator(true, "END-PERFORM")
}

// loopPhrase parses [WITH TEST BEFORE|AFTER] VARYING … or UNTIL ….
func (p *Parser) loopPhrase() {
	p.WithTest()
	if p.CurrentEquals("VARYING") {
		p.VaryingPhrase()
		return
	}
	p.UntilPhrase()
}

// SearchStatement parses serial SEARCH and SEARCH ALL.
func (p *Parser) SearchStatement() {
	if p.Trace {
		defer untracep(tracep(p, "SearchStatement"))
	}

	p.Expected("SEARCH")

	if !p.Optional("ALL") {
		p.Identifier(Receiving)
		if p.Optional("VARYING") {
			p.Identifier(Receiving)
		}
		p.searchAtEnd()

		if !p.CurrentEquals("WHEN") {
			p.unexpected("Expected at least one WHEN condition phrase.")
		}
		for p.Optional("WHEN") {
			p.Condition()
			if p.nextSentence() {
				continue
			}
			p.WithoutSections(true)
		}

		p.terminator(true, "END-SEARCH")
		return
	}

	p.Identifier(Receiving)
	p.searchAtEnd()

	p.Expected("WHEN")
	p.searchAllCondition()
	for p.Optional("AND") {
		p.searchAllCondition()
	}

	if !p.nextSentence() {
		p.WithoutSections(true)
	}
	p.terminator(true, "END-SEARCH")
}

func (p *Parser) searchAtEnd() {
	if p.CurrentEquals("END") || p.CurrentEquals("AT") && p.LookaheadEquals(1, "END") {
		p.Optional("AT")
		p.Expected("END")
		p.WithoutSections(true)
	}
}

// searchAllCondition parses key IS EQUAL TO operand or a condition-name.
func (p *Parser) searchAllCondition() {
	p.Identifier(Sending)
	if !p.CurrentEquals("IS", "EQUAL", "EQUALS", "=") {
		return
	}
	p.Optional("IS")
	if p.OptionalChoice("EQUAL", "EQUALS") != "" {
		p.Optional("TO")
	} else {
		p.Expected("=")
	}
	p.Arithmetic("AND")
}

// GoStatement parses GO [TO] procedure [procedures DEPENDING [ON] id].
func (p *Parser) GoStatement() {
	p.Expected("GO")
	p.Optional("TO")
	p.procedureName()

	if p.CurrentEquals("DEPENDING") || p.CurrentIs(token.Identifier) {
		for p.CurrentIs(token.Identifier) {
			p.procedureName()
		}
		p.Expected("DEPENDING")
		p.Optional("ON")
		p.Identifier(Sending)
	}
}

// GobackStatement parses GOBACK [RAISING …].
func (p *Parser) GobackStatement() {
	p.Expected("GOBACK")
	p.RaisingStatus()
}

// ExitStatement parses the EXIT forms.
func (p *Parser) ExitStatement() {
	p.Expected("EXIT")

	switch {
	case p.Optional("PERFORM"):
		p.Optional("CYCLE")
	case p.Optional("PARAGRAPH"), p.Optional("SECTION"):
	case p.OptionalChoice("PROGRAM", "METHOD", "FUNCTION") != "":
		p.RaisingStatus()
	}
}

// StopStatement parses STOP RUN [WITH NORMAL|ERROR STATUS].
func (p *Parser) StopStatement() {
	p.Expected("STOP")
	p.Expected("RUN")
	p.statusPhrase()
}

// CallStatement parses CALL program [AS prototype] [USING …]
// [RETURNING id].
func (p *Parser) CallStatement() {
	if p.Trace {
		defer untracep(tracep(p, "CallStatement"))
	}

	var conditional, prototype bool
	p.Expected("CALL")

	if p.CurrentIs(token.Identifier) || p.Current().Kind.IsStringLiteral() {
		if p.CurrentIs(token.Identifier) {
			p.Identifier(Sending)
		} else {
			p.StringLiteral()
		}
		prototype = p.Optional("AS")
	} else {
		prototype = true
	}

	if prototype && !p.Optional("NESTED") {
		p.Identifier(Sending)
	}

	if p.Optional("USING") {
		p.StatementUsing(prototype, true)
	}

	if p.Optional("RETURNING") {
		p.Identifier(Receiving)
	}

	p.OnException(&conditional)
	p.OnOverflow(&conditional)
	p.terminator(conditional, "END-CALL")
}

// CancelStatement parses CANCEL followed by program names or literals.
func (p *Parser) CancelStatement() {
	const label = "Expected an alphanumeric or national literal, or a REPOSITORY paragraph program name."

	p.Expected("CANCEL")
	if !p.CurrentIs(token.Identifier) && !p.Current().Kind.IsStringLiteral() {
		p.unexpected(label)
		p.Continue()
	}

	for p.CurrentIs(token.Identifier) || p.Current().Kind.IsStringLiteral() {
		if p.CurrentIs(token.Identifier) {
			p.Identifier(Sending)
		} else {
			p.StringLiteral()
		}
	}

	p.listEnd(label)
}

// InvokeStatement parses INVOKE object method [USING …] [RETURNING id].
func (p *Parser) InvokeStatement() {
	if p.Trace {
		defer untracep(tracep(p, "InvokeStatement"))
	}

	p.Expected("INVOKE")
	p.Identifier(Sending)

	if p.CurrentIs(token.Identifier) {
		p.Identifier(Sending)
	} else {
		p.StringLiteral()
	}

	if p.Optional("USING") {
		p.StatementUsing(true, true)
	}
	if p.Optional("RETURNING") {
		p.Identifier(Receiving)
	}
	p.Optional("END-INVOKE")
}

// RaiseStatement parses RAISE [EXCEPTION] name.
func (p *Parser) RaiseStatement() {
	p.Expected("RAISE")
	p.Optional("EXCEPTION")
	p.Identifier(Sending)
}

// ResumeStatement parses RESUME [AT] NEXT STATEMENT and RESUME procedure.
func (p *Parser) ResumeStatement() {
	p.Expected("RESUME")
	p.Optional("AT")
	if p.Optional("NEXT") {
		p.Expected("STATEMENT")
		return
	}
	p.procedureName()
}

// ContinueStatement parses CONTINUE [AFTER n SECONDS].
func (p *Parser) ContinueStatement() {
	p.Expected("CONTINUE")
	if p.Optional("AFTER") {
		p.Arithmetic("SECONDS")
		p.Expected("SECONDS")
	}
}

// GenerateStatement parses GENERATE report.
func (p *Parser) GenerateStatement() {
	p.Expected("GENERATE")
	p.Identifier(Receiving)
}

func (p *Parser) reportNames(verb string) {
	const label = "Expected a report entry identifier defined in the report section."

	p.Expected(verb)
	if !p.CurrentIs(token.Identifier) {
		p.unexpected(label)
	}
	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
	}
	p.listEnd(label)
}

// InitiateStatement parses INITIATE reports.
func (p *Parser) InitiateStatement() { p.reportNames("INITIATE") }

// TerminateStatement parses TERMINATE reports.
func (p *Parser) TerminateStatement() { p.reportNames("TERMINATE") }

// SuppressStatement parses SUPPRESS [PRINTING].
func (p *Parser) SuppressStatement() {
	p.Expected("SUPPRESS")
	p.Optional("PRINTING")
}

// ValidateStatement parses VALIDATE identifiers.
func (p *Parser) ValidateStatement() {
	p.Expected("VALIDATE")
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected an identifier.")
	}
	for p.CurrentIs(token.Identifier) {
		p.Identifier(Receiving)
	}
	p.listEnd("Expected an identifier.")
}
