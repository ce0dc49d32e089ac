package parser

import (
	"github.com/gad-lang/cobol/token"
)

// sharingPhrase parses SHARING [WITH] ALL [OTHER] | NO [OTHER] | READ ONLY.
func (p *Parser) sharingPhrase() {
	p.Expected("SHARING")
	p.Optional("WITH")

	switch {
	case p.Optional("ALL"):
		p.Optional("OTHER")
	case p.Optional("NO"):
		p.Optional("OTHER")
	case p.Optional("READ"):
		p.Expected("ONLY")
	default:
		p.Build(SeverityError, 5, "Unexpected "+p.Current().Kind.Display()+".").
			WithSourceLine(p.Current(), "Expected ALL OTHER, NO OTHER or READ ONLY.").
			WithNote("One of them must be specified in the SHARING phrase.").
			Close()
	}
}

// lockPhrase parses [WITH] LOCK and [WITH] NO LOCK.
func (p *Parser) lockPhrase() {
	switch {
	case p.CurrentEquals("LOCK") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "LOCK"):
		p.Optional("WITH")
		p.Expected("LOCK")
	case p.CurrentEquals("NO") && p.LookaheadEquals(1, "LOCK") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "NO"):
		p.Optional("WITH")
		p.Expected("NO")
		p.Expected("LOCK")
	}
}

// noRewind parses [WITH] NO REWIND.
func (p *Parser) noRewind() {
	if p.CurrentEquals("NO") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "NO") {
		p.Optional("WITH")
		p.Expected("NO")
		p.Expected("REWIND")
	}
}

// fileName consumes a file connector name. On a resolution pass names
// that no SELECT entry of the unit or its parents declares are reported.
func (p *Parser) fileName() {
	tok := p.Current()
	p.Identifier(Receiving)

	if tok.Kind != token.Identifier || !p.mode.Has(ResolutionPass) {
		return
	}
	for u := p.unit; u != nil; u = u.Parent {
		if u.Files.Exists(tok.Value) {
			return
		}
	}
	p.Build(SeverityError, 31, "Undefined file connector.").
		WithSourceLine(tok, "No file control entry defines "+tok.Value+".").
		Close()
}

// OpenStatement parses OPEN mode [SHARING] [RETRY] files, repeated per
// open mode.
func (p *Parser) OpenStatement() {
	if p.Trace {
		defer untracep(tracep(p, "OpenStatement"))
	}

	p.Expected("OPEN")

	for {
		p.Choice("INPUT", "OUTPUT", "I-O", "EXTEND")

		if p.CurrentEquals("SHARING") {
			p.sharingPhrase()
		}
		p.RetryPhrase()

		p.fileName()
		p.noRewind()
		for p.CurrentIs(token.Identifier) {
			p.fileName()
			p.noRewind()
		}

		if !p.CurrentEquals("INPUT", "OUTPUT", "I-O", "EXTEND") {
			return
		}
	}
}

// CloseStatement parses CLOSE files with REEL/UNIT and NO REWIND phrases.
func (p *Parser) CloseStatement() {
	if p.Trace {
		defer untracep(tracep(p, "CloseStatement"))
	}

	p.Expected("CLOSE")
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected a file connector name.")
	}

	for p.CurrentIs(token.Identifier) {
		p.fileName()
		switch {
		case p.CurrentEquals("REEL", "UNIT"):
			p.Continue()
			if p.CurrentEquals("FOR", "REMOVAL") {
				p.Optional("FOR")
				p.Expected("REMOVAL")
			}
		default:
			p.noRewind()
		}
	}

	p.listEnd("Expected a file connector name.")
}

// ReadStatement parses READ file [NEXT|PREVIOUS] RECORD [INTO identifier]
// with its lock, KEY, INVALID KEY and AT END phrases.
func (p *Parser) ReadStatement() {
	if p.Trace {
		defer untracep(tracep(p, "ReadStatement"))
	}

	var conditional, sequential bool
	p.Expected("READ")
	p.fileName()

	if p.OptionalChoice("NEXT", "PREVIOUS") != "" {
		sequential = true
	}
	p.Optional("RECORD")

	if p.Optional("INTO") {
		p.Identifier(Receiving)
	}

	switch {
	case p.Optional("ADVANCING"):
		p.Optional("ON")
		p.Expected("LOCK")
		sequential = true
	case p.Optional("IGNORING"):
		p.Expected("LOCK")
	default:
		p.RetryPhrase()
	}

	p.lockPhrase()

	if !sequential && p.Optional("KEY") {
		p.Optional("IS")
		p.Identifier(Receiving)
	}

	if p.CurrentEquals("AT", "END") || p.CurrentEquals("NOT") && p.LookaheadEquals(1, "AT", "END") {
		p.AtEnd(&conditional)
	} else if !sequential {
		p.InvalidKey(&conditional)
	}

	p.terminator(conditional, "END-READ")
}

// WriteStatement parses WRITE record [FROM operand] with its ADVANCING,
// lock, END-OF-PAGE and INVALID KEY phrases.
func (p *Parser) WriteStatement() {
	if p.Trace {
		defer untracep(tracep(p, "WriteStatement"))
	}

	var conditional, sequential bool
	p.Expected("WRITE")

	if p.Optional("FILE") {
		p.fileName()
	} else {
		p.Identifier(Receiving)
	}

	if p.Optional("FROM") {
		p.Operand()
	}

	if p.CurrentEquals("BEFORE", "AFTER") {
		sequential = true
		p.Continue()
		p.Optional("ADVANCING")

		switch {
		case p.Optional("PAGE"):
		case p.CurrentIs(token.Identifier, token.Numeric):
			if p.CurrentIs(token.Numeric) {
				p.Number()
			} else {
				p.Identifier(Sending)
			}
			p.OptionalChoice("LINE", "LINES")
		default:
			p.unexpected("Expected PAGE, an identifier or a numeric literal.")
		}
	}

	p.RetryPhrase()
	p.lockPhrase()

	if sequential || p.CurrentEquals("END-OF-PAGE", "EOP") || p.CurrentEquals("AT") && p.LookaheadEquals(1, "END-OF-PAGE", "EOP") {
		p.AtEndOfPage(&conditional)
	}
	p.InvalidKey(&conditional)

	p.terminator(conditional, "END-WRITE")
}

// RewriteStatement parses REWRITE [FILE] record [FROM operand].
func (p *Parser) RewriteStatement() {
	if p.Trace {
		defer untracep(tracep(p, "RewriteStatement"))
	}

	var conditional bool
	p.Expected("REWRITE")

	file := p.Optional("FILE")
	if file {
		p.fileName()
	} else {
		p.Identifier(Receiving)
	}
	p.Optional("RECORD")

	if file {
		p.Expected("FROM")
		p.Operand()
	} else if p.Optional("FROM") {
		p.Operand()
	}

	p.RetryPhrase()
	p.lockPhrase()
	p.InvalidKey(&conditional)

	p.terminator(conditional, "END-REWRITE")
}

// DeleteStatement parses DELETE FILE files and DELETE file RECORD.
func (p *Parser) DeleteStatement() {
	if p.Trace {
		defer untracep(tracep(p, "DeleteStatement"))
	}

	var conditional bool
	p.Expected("DELETE")

	if p.Optional("FILE") {
		p.Optional("OVERRIDE")
		p.fileName()
		for p.CurrentIs(token.Identifier) {
			p.fileName()
		}
		p.OnException(&conditional)
		p.terminator(conditional, "END-DELETE")
		return
	}

	p.fileName()
	p.Optional("RECORD")
	p.RetryPhrase()
	p.InvalidKey(&conditional)
	p.terminator(conditional, "END-DELETE")
}

// StartStatement parses START file [FIRST|LAST|KEY relop key].
func (p *Parser) StartStatement() {
	if p.Trace {
		defer untracep(tracep(p, "StartStatement"))
	}

	var conditional bool
	p.Expected("START")
	p.fileName()

	switch {
	case p.Optional("FIRST"), p.Optional("LAST"):
	case p.Optional("KEY"):
		p.StartRelationalOperator()
		p.Identifier(Sending)

		if p.CurrentEquals("LENGTH") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "LENGTH") {
			p.Optional("WITH")
			p.Expected("LENGTH")
			p.Arithmetic("INVALID", "NOT", "END-START")
		}
	}

	p.InvalidKey(&conditional)
	p.terminator(conditional, "END-START")
}

// UnlockStatement parses UNLOCK file RECORD|RECORDS.
func (p *Parser) UnlockStatement() {
	p.Expected("UNLOCK")
	p.fileName()
	p.OptionalChoice("RECORD", "RECORDS")
}

// ReleaseStatement parses RELEASE record [FROM operand].
func (p *Parser) ReleaseStatement() {
	p.Expected("RELEASE")
	p.Identifier(Receiving)
	if p.Optional("FROM") {
		p.Operand()
	}
}

// ReturnStatement parses RETURN file RECORD [INTO identifier] AT END.
func (p *Parser) ReturnStatement() {
	if p.Trace {
		defer untracep(tracep(p, "ReturnStatement"))
	}

	var conditional bool
	p.Expected("RETURN")
	p.fileName()
	p.Optional("RECORD")
	if p.Optional("INTO") {
		p.Identifier(Receiving)
	}
	p.AtEnd(&conditional)
	p.terminator(conditional, "END-RETURN")
}

// SortStatement parses SORT file keys … with its INPUT/OUTPUT PROCEDURE,
// USING and GIVING phrases.
func (p *Parser) SortStatement() {
	if p.Trace {
		defer untracep(tracep(p, "SortStatement"))
	}

	p.Expected("SORT")
	p.Identifier(Receiving)

	if p.CurrentEquals("ON", "ASCENDING", "DESCENDING") {
		p.keyPhrase()
	}

	if p.CurrentEquals("DUPLICATES") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "DUPLICATES") {
		p.Optional("WITH")
		p.Expected("DUPLICATES")
		p.Optional("IN")
		p.Optional("ORDER")
	}

	if p.CurrentEquals("COLLATING", "SEQUENCE") {
		p.collatingSequence()
	}

	switch {
	case p.CurrentEquals("INPUT"):
		p.Continue()
		p.Expected("PROCEDURE")
		p.Optional("IS")
		p.procedureRange()
	case p.Optional("USING"):
		p.fileName()
		for p.CurrentIs(token.Identifier) {
			p.fileName()
		}
	}

	switch {
	case p.CurrentEquals("OUTPUT"):
		p.Continue()
		p.Expected("PROCEDURE")
		p.Optional("IS")
		p.procedureRange()
	case p.Optional("GIVING"):
		p.fileName()
		for p.CurrentIs(token.Identifier) {
			p.fileName()
		}
	}
}

// MergeStatement parses MERGE file keys … USING files and an OUTPUT
// PROCEDURE or GIVING phrase.
func (p *Parser) MergeStatement() {
	if p.Trace {
		defer untracep(tracep(p, "MergeStatement"))
	}

	p.Expected("MERGE")
	p.fileName()
	p.keyPhrase()

	if p.CurrentEquals("COLLATING", "SEQUENCE") {
		p.collatingSequence()
	}

	p.Expected("USING")
	p.fileName()
	p.fileName()
	for p.CurrentIs(token.Identifier) {
		p.fileName()
	}

	if p.Optional("OUTPUT") {
		p.Expected("PROCEDURE")
		p.Optional("IS")
		p.procedureRange()
		return
	}

	p.Expected("GIVING")
	p.fileName()
	for p.CurrentIs(token.Identifier) {
		p.fileName()
	}
}

// CommitStatement parses COMMIT.
func (p *Parser) CommitStatement() {
	p.Expected("COMMIT")
}

// RollbackStatement parses ROLLBACK.
func (p *Parser) RollbackStatement() {
	p.Expected("ROLLBACK")
}

// ReceiveStatement parses RECEIVE [FROM] identifier GIVING message tag and
// data item.
func (p *Parser) ReceiveStatement() {
	if p.Trace {
		defer untracep(tracep(p, "ReceiveStatement"))
	}

	var conditional bool
	p.Expected("RECEIVE")
	p.Optional("FROM")
	p.Identifier(Sending)
	p.Expected("GIVING")
	p.Identifier(Receiving)
	p.Identifier(Receiving)

	if p.Optional("CONTINUE") {
		p.Optional("AFTER")
		if p.Optional("MESSAGE") {
			p.Expected("RECEIVED")
		} else {
			p.Arithmetic("SECONDS")
			p.Optional("SECONDS")
		}
	}

	p.OnException(&conditional)
	p.terminator(conditional, "END-RECEIVE")
}

// SendStatement parses SEND [TO] target FROM message with its RETURNING or
// RAISING phrase.
func (p *Parser) SendStatement() {
	if p.Trace {
		defer untracep(tracep(p, "SendStatement"))
	}

	var conditional bool
	p.Expected("SEND")
	p.Optional("TO")

	if p.LookaheadEquals(3, "RETURNING") {
		if p.CurrentIs(token.String) {
			p.StringLiteral()
		} else {
			p.Identifier(Sending)
		}
		p.Expected("FROM")
		p.Identifier(Sending)
		p.Expected("RETURNING")
		p.Identifier(Receiving)
	} else {
		p.Identifier(Sending)
		p.Expected("FROM")
		p.Identifier(Sending)

		if p.Optional("RAISING") {
			if p.Optional("LAST") {
				p.Optional("EXCEPTION")
			} else {
				p.Expected("EXCEPTION")
				p.Identifier(Sending)
			}
		}
	}

	p.OnException(&conditional)
	p.terminator(conditional, "END-SEND")
}
