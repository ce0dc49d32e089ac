package parser

import (
	"strings"

	"github.com/gad-lang/cobol/token"
)

type statementFunc func(p *Parser)

// statementTable maps a statement verb to its rule. It is filled in init
// because the rules reach the table again through nested bodies.
var statementTable map[string]statementFunc

func init() {
	statementTable = map[string]statementFunc{
		"ACCEPT":     (*Parser).AcceptStatement,
		"ADD":        (*Parser).AddStatement,
		"ALLOCATE":   (*Parser).AllocateStatement,
		"CALL":       (*Parser).CallStatement,
		"CANCEL":     (*Parser).CancelStatement,
		"CLOSE":      (*Parser).CloseStatement,
		"COMMIT":     (*Parser).CommitStatement,
		"COMPUTE":    (*Parser).ComputeStatement,
		"CONTINUE":   (*Parser).ContinueStatement,
		"DELETE":     (*Parser).DeleteStatement,
		"DISPLAY":    (*Parser).DisplayStatement,
		"DIVIDE":     (*Parser).DivideStatement,
		"EVALUATE":   (*Parser).EvaluateStatement,
		"EXIT":       (*Parser).ExitStatement,
		"FREE":       (*Parser).FreeStatement,
		"GENERATE":   (*Parser).GenerateStatement,
		"GO":         (*Parser).GoStatement,
		"GOBACK":     (*Parser).GobackStatement,
		"IF":         (*Parser).IfStatement,
		"INITIALIZE": (*Parser).InitializeStatement,
		"INITIATE":   (*Parser).InitiateStatement,
		"INSPECT":    (*Parser).InspectStatement,
		"INVOKE":     (*Parser).InvokeStatement,
		"MERGE":      (*Parser).MergeStatement,
		"MOVE":       (*Parser).MoveStatement,
		"MULTIPLY":   (*Parser).MultiplyStatement,
		"OPEN":       (*Parser).OpenStatement,
		"PERFORM":    (*Parser).PerformStatement,
		"RAISE":      (*Parser).RaiseStatement,
		"READ":       (*Parser).ReadStatement,
		"RECEIVE":    (*Parser).ReceiveStatement,
		"RELEASE":    (*Parser).ReleaseStatement,
		"RESUME":     (*Parser).ResumeStatement,
		"RETURN":     (*Parser).ReturnStatement,
		"REWRITE":    (*Parser).RewriteStatement,
		"ROLLBACK":   (*Parser).RollbackStatement,
		"SEARCH":     (*Parser).SearchStatement,
		"SEND":       (*Parser).SendStatement,
		"SET":        (*Parser).SetStatement,
		"SORT":       (*Parser).SortStatement,
		"START":      (*Parser).StartStatement,
		"STOP":       (*Parser).StopStatement,
		"STRING":     (*Parser).StringStatement,
		"SUBTRACT":   (*Parser).SubtractStatement,
		"SUPPRESS":   (*Parser).SuppressStatement,
		"TERMINATE":  (*Parser).TerminateStatement,
		"UNLOCK":     (*Parser).UnlockStatement,
		"UNSTRING":   (*Parser).UnstringStatement,
		"VALIDATE":   (*Parser).ValidateStatement,
		"WRITE":      (*Parser).WriteStatement,
	}
}

// Statements returns the verbs known to the statement dispatcher.
func Statements() []string {
	verbs := make([]string, 0, len(statementTable))
	for v := range statementTable {
		verbs = append(verbs, v)
	}
	return verbs
}

// unexpected reports the current token with code 5.
func (p *Parser) unexpected(label string) {
	p.Build(SeverityError, 5, "Unexpected "+p.Current().Kind.Display()+".").
		WithSourceLine(p.Current(), label).
		Close()
}

// atUnitEnd reports whether the cursor is at the end of a procedure
// division: the end of file, an end marker or the header of a nested unit.
func (p *Parser) atUnitEnd() bool {
	return p.atEOF() || p.CurrentEquals("END") ||
		p.CurrentEquals("IDENTIFICATION", "PROGRAM-ID", "FUNCTION-ID", "CLASS-ID", "INTERFACE-ID")
}

func (p *Parser) atSectionHeader() bool {
	return p.CurrentIs(token.Identifier) && p.LookaheadEquals(1, "SECTION")
}

func (p *Parser) atParagraphHeader() bool {
	return p.CurrentIs(token.Identifier) && p.LookaheadEquals(1, ".")
}

// atStatementEnd reports whether the current token can follow a complete
// statement.
func (p *Parser) atStatementEnd() bool {
	return p.CurrentEquals(".", "ELSE", "WHEN") ||
		p.CurrentContext(token.IsStatement, token.IsScopeTerminator, token.IsEOF)
}

// terminator handles the explicit END-xxx scope terminator of a statement.
// It is required when a conditional phrase was present and optional
// otherwise. A missing terminator is reported without consuming the
// current token.
func (p *Parser) terminator(conditional bool, end string) {
	if p.Optional(end) || !conditional {
		return
	}
	if p.atEOF() {
		p.unexpectedEOF(end)
		return
	}
	p.Build(SeverityError, 5, "Unexpected token.").
		WithSourceLine(p.Current(), "Expected "+end+", instead of "+p.Current().Value).
		WithNote("A statement with a conditional phrase must be terminated by "+end).
		Close()
}

// separatorPeriod consumes the period ending a header or an entry.
func (p *Parser) separatorPeriod(what, item string) {
	if p.Expect(".") {
		return
	}
	p.Build(SeverityError, 25, what+", missing separator period.").
		WithSourceLine(p.Lookbehind(1), "Expected a separator period '. ' after this token.").
		WithNote("Every "+item+" must end with a separator period.").
		Close()
}

// ProcedureBody parses the statements, paragraphs and sections of a
// procedure division.
func (p *Parser) ProcedureBody() {
	if p.Trace {
		defer untracep(tracep(p, "ProcedureBody"))
	}

	p.scope = ProcedureDivision
	p.section = ""
	if !p.CurrentEquals("DECLARATIVES") && !p.atSectionHeader() {
		p.WithoutSections(false)
	}
	if p.CurrentEquals("DECLARATIVES") || p.atSectionHeader() {
		p.WithSections()
	}
}

// bodyEnds are the phrase keywords that close a nested statement body.
var bodyEnds = []string{"ELSE", "WHEN", "FINALLY", "COMMON", "NOT", "AT", "ON", "INVALID"}

// WithoutSections parses a statement sequence. Nested sequences are the
// bodies of conditional phrases and end at the first token that does not
// start a statement. Top level sequences end at a section header or at the
// end of the procedure division.
func (p *Parser) WithoutSections(nested bool) {
	if p.Trace {
		defer untracep(tracep(p, "WithoutSections"))
	}

	startsStatement := p.CurrentContext(token.IsStatement) ||
		!nested && (p.atParagraphHeader() || p.atSectionHeader())

	if !startsStatement && !(!nested && p.atUnitEnd()) {
		p.Build(SeverityError, 5, "Unexpected "+p.Current().Kind.Display()+".").
			WithSourceLine(p.Current(), "Expected start of a statement. Instead found "+p.Current().Value+".").
			Close()

		if nested {
			p.anchor([]token.Context{token.IsStatement, token.IsScopeTerminator}, bodyEnds)
		} else {
			p.AnchorContext(token.IsStatement)
		}
	}

	for {
		if nested {
			if !p.CurrentContext(token.IsStatement) {
				return
			}
		} else if p.atUnitEnd() || p.atSectionHeader() {
			return
		}

		p.Statement(nested)
		p.ScopeTerminator(nested)

		if nested && !p.CurrentContext(token.IsStatement) {
			return
		}
		if p.atSectionHeader() {
			return
		}
	}
}

// WithSections parses the declaratives and the sections of a procedure
// division.
func (p *Parser) WithSections() {
	if p.Trace {
		defer untracep(tracep(p, "WithSections"))
	}

	if p.CurrentEquals("DECLARATIVES") {
		p.Continue()
		p.separatorPeriod("Section header", "section header")
		p.declaratives = true
		p.scope = DeclarativesSection

		p.SectionHeader()
		p.UseStatement()
		p.WithoutSections(false)

		for p.atSectionHeader() {
			p.SectionHeader()
			p.UseStatement()
			p.WithoutSections(false)
		}

		p.declaratives = false
		p.scope = ProcedureDivision
		p.Expected("END")
		p.Expected("DECLARATIVES")
		p.Expected(".")
	}

	for p.atSectionHeader() {
		p.SectionHeader()
		p.WithoutSections(false)
	}
}

// SectionHeader parses a section name, registers it and annotates its token.
func (p *Parser) SectionHeader() {
	tok := p.Current()
	if p.CurrentIs(token.Identifier) {
		p.Annotate(token.IsSection)
		p.section = tok.Value
		if p.registering() && p.unit != nil {
			p.unit.Procedures.Add(tok.Value, &ProcedureEntry{
				Token:       tok,
				Section:     true,
				Declarative: p.declaratives,
			})
		}
	}
	p.Name()
	p.Expected("SECTION")
	p.separatorPeriod("Section header", "section header")
}

// ParseParagraph registers a paragraph name. The separator period is left
// for the scope terminator.
func (p *Parser) ParseParagraph() {
	tok := p.Current()
	p.Annotate(token.IsParagraph)
	if p.registering() && p.unit != nil {
		p.unit.Procedures.Add(tok.Value, &ProcedureEntry{
			Token:       tok,
			Owner:       p.section,
			Declarative: p.declaratives,
		})
	}
	p.Continue()
}

// Statement dispatches on the statement verb under the cursor. Outside of a
// nested body a user-defined word followed by a period is a paragraph.
func (p *Parser) Statement(nested bool) {
	if p.Trace {
		defer untracep(tracep(p, "Statement"))
	}

	if p.CurrentContext(token.IsStatement) {
		if fn, ok := statementTable[strings.ToUpper(p.Current().Value)]; ok {
			fn(p)
			return
		}
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "There is no statement rule for "+p.Current().Value+".").
			Close()
		p.Continue()
		p.skipOperands(nested)
		return
	}
	if !nested && p.atParagraphHeader() {
		p.ParseParagraph()
	}
}

// skipOperands moves past the operands of an unknown statement. The
// separator period and the start of the next statement are left in place.
func (p *Parser) skipOperands(nested bool) {
	for !p.atUnitEnd() && !p.CurrentEquals(".") &&
		!p.CurrentContext(token.IsStatement, token.IsScopeTerminator) &&
		!(nested && p.CurrentEquals(bodyEnds...)) {
		p.Continue()
	}
}

// ScopeTerminator applies the separator period rule: a top level statement
// ends with a separator period or with the start of the next statement. A
// nested statement never consumes the period.
func (p *Parser) ScopeTerminator(nested bool) {
	if nested {
		return
	}
	if p.CurrentEquals(".") {
		p.Continue()
		return
	}
	if p.CurrentContext(token.IsStatement) {
		return
	}
	if !p.atEOF() && (p.atUnitEnd() || p.atSectionHeader() || p.atParagraphHeader()) {
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected ., instead of "+p.Current().Value).
			Close()
		return
	}
	p.Expected(".")
}

// UseStatement parses the USE statement heading a declarative section.
func (p *Parser) UseStatement() {
	if p.Trace {
		defer untracep(tracep(p, "UseStatement"))
	}

	if p.CurrentEquals("USE") {
		p.Annotate(token.IsDeclarative)
	}
	p.Expected("USE")

	exceptionObject := p.CurrentEquals("AFTER") && p.LookaheadEquals(1, "EXCEPTION") && p.LookaheadEquals(2, "OBJECT") ||
		p.CurrentEquals("AFTER") && p.LookaheadEquals(1, "EO") ||
		p.CurrentEquals("EXCEPTION") && p.LookaheadEquals(1, "OBJECT") ||
		p.CurrentEquals("EO")

	exceptionCondition := p.CurrentEquals("AFTER") && p.LookaheadEquals(1, "EXCEPTION") && p.LookaheadEquals(2, "CONDITION") ||
		p.CurrentEquals("AFTER") && p.LookaheadEquals(1, "EC") ||
		p.CurrentEquals("EXCEPTION") && p.LookaheadEquals(1, "CONDITION") ||
		p.CurrentEquals("EC")

	reporting := p.CurrentEquals("GLOBAL") && p.LookaheadEquals(1, "BEFORE") || p.CurrentEquals("BEFORE")

	fileException := p.CurrentEquals("GLOBAL") && p.LookaheadEquals(1, "AFTER", "STANDARD", "EXCEPTION", "ERROR") ||
		p.CurrentEquals("AFTER", "STANDARD", "EXCEPTION", "ERROR")

	switch {
	case exceptionObject:
		p.Optional("AFTER")
		if !p.Optional("EO") {
			p.Expected("EXCEPTION")
			p.Expected("OBJECT")
		}
		p.Identifier(Receiving)
	case exceptionCondition:
		p.Optional("AFTER")
		if !p.Optional("EC") {
			p.Expected("EXCEPTION")
			p.Expected("CONDITION")
		}
		p.exceptionNames()
	case reporting:
		p.Optional("GLOBAL")
		p.Expected("BEFORE")
		p.Expected("REPORTING")
		p.Identifier(Receiving)
	case fileException:
		p.Optional("GLOBAL")
		p.Optional("AFTER")
		p.Optional("STANDARD")
		p.Choice("EXCEPTION", "ERROR")
		p.Optional("PROCEDURE")
		p.Optional("ON")

		if p.CurrentEquals("INPUT", "OUTPUT", "I-O", "EXTEND") {
			p.Continue()
		} else {
			p.identifiers(Receiving)
		}
	default:
		p.unexpected("Expected AFTER EXCEPTION OBJECT, AFTER EXCEPTION CONDITION, BEFORE REPORTING or AFTER EXCEPTION/ERROR.")
		p.AnchorContext(token.IsStatement)
	}

	p.ScopeTerminator(false)
}

// exceptionNames parses a list of exception names with optional FILE
// qualifiers.
func (p *Parser) exceptionNames() {
	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected an exception name.")
		return
	}
	for p.CurrentIs(token.Identifier) {
		p.Continue()
		if p.Optional("FILE") {
			p.identifiers(Receiving)
		}
	}
}

// identifiers consumes one identifier and every identifier that directly
// follows it.
func (p *Parser) identifiers(allowed IdentifierType) (n int) {
	p.Identifier(allowed)
	n++
	for p.CurrentIs(token.Identifier) {
		p.Identifier(allowed)
		n++
	}
	return
}

// StatementUsing parses the USING phrase of CALL and INVOKE.
func (p *Parser) StatementUsing(byValue, byContent bool) {
	if p.Trace {
		defer untracep(tracep(p, "StatementUsing"))
	}

	for p.CurrentEquals("BY", "REFERENCE", "VALUE", "CONTENT") || p.CurrentIs(token.Identifier) {
		start := p.index

		if p.CurrentIs(token.Identifier) {
			p.usingItems(true)
		}

		if p.CurrentEquals("BY") && !p.LookaheadEquals(1, "VALUE", "REFERENCE", "CONTENT") {
			p.Build(SeverityError, 128, "Using phrase, missing keyword.").
				WithSourceLine(p.Current(), "Expected REFERENCE, VALUE or CONTENT after this token").
				Close()

			p.AnchorContext(token.IsStatement, "RETURNING", ".")
		}

		if p.CurrentEquals("REFERENCE") || p.CurrentEquals("BY") && p.LookaheadEquals(1, "REFERENCE") {
			p.usingPhrase("REFERENCE", false)
		}
		if byValue && p.CurrentEquals("VALUE") || p.CurrentEquals("BY") && p.LookaheadEquals(1, "VALUE") {
			p.usingPhrase("VALUE", true)
		}
		if byContent && p.CurrentEquals("CONTENT") || p.CurrentEquals("BY") && p.LookaheadEquals(1, "CONTENT") {
			p.usingPhrase("CONTENT", true)
		}

		if p.index == start {
			return
		}
	}
}

func (p *Parser) usingPhrase(kind string, literals bool) {
	p.Optional("BY")
	p.Expected(kind)

	reference := kind == "REFERENCE"
	if reference {
		p.Optional("OPTIONAL")
	}

	if !p.CurrentIs(token.Identifier) && !(literals && p.isOperand()) && !(reference && p.CurrentEquals("OMITTED")) {
		p.Build(SeverityError, 128, "Using phrase, missing identifier.").
			WithSourceLine(p.Current(), "BY "+kind+" phrase must contain at least one data item name.").
			Close()
		return
	}

	if literals {
		for p.isOperand() {
			p.Operand()
		}
		return
	}
	p.usingItems(reference)
}

func (p *Parser) usingItems(optional bool) {
	for p.CurrentIs(token.Identifier) || optional && p.CurrentEquals("OPTIONAL", "OMITTED") {
		if p.Optional("OMITTED") {
			continue
		}
		if optional {
			p.Optional("OPTIONAL")
		}
		p.Identifier(Receiving)
	}
}
