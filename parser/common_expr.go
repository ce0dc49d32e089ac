package parser

import (
	"fmt"

	"github.com/gad-lang/cobol/token"
)

var classConditions = []string{
	"NUMERIC", "ALPHABETIC", "ALPHABETIC-LOWER", "ALPHABETIC-UPPER",
	"BOOLEAN", "POSITIVE", "NEGATIVE", "ZERO", "ZEROS", "ZEROES", "OMITTED",
}

// Arithmetic parses an arithmetic expression. The expression ends at the
// first token that cannot continue it or at one of stop.
func (p *Parser) Arithmetic(stop ...string) {
	if p.Trace {
		defer untracep(tracep(p, "Arithmetic"))
	}
	p.expression(false, stop)
}

// Condition parses a conditional expression: relation, class, sign and
// condition-name conditions combined with AND, OR and NOT, including
// abbreviated combined relations.
func (p *Parser) Condition(stop ...string) {
	if p.Trace {
		defer untracep(tracep(p, "Condition"))
	}
	p.expression(true, stop)
}

// expression parses operands separated by operators and reports whether a
// conditional operator was seen.
func (p *Parser) expression(conditions bool, stop []string) (conditional bool) {
	var (
		start       = p.Current()
		depth       = 0
		wantOperand = true
	)

loop:
	for !p.atEOF() {
		if len(stop) != 0 && depth == 0 && p.CurrentEquals(stop...) {
			break
		}

		if wantOperand {
			switch {
			case p.CurrentEquals("("):
				depth++
				p.Continue()
			case p.CurrentEquals("+", "-"):
				p.Continue()
			case conditions && p.CurrentEquals("NOT"):
				p.Continue()
			case conditions && p.relationalAt(0):
				p.relationalOperator()
				conditional = true
			case p.isOperand():
				p.Operand()
				wantOperand = false
			default:
				if conditions {
					p.unexpected("Expected a valid conditional expression.")
				} else {
					p.unexpected("Expected a valid arithmetic expression.")
				}
				return
			}
			continue
		}

		switch {
		case p.CurrentEquals(")") && depth > 0:
			depth--
			p.Continue()
		case p.CurrentEquals("+", "-", "*", "/", "**"):
			p.Continue()
			wantOperand = true
		case conditions && p.relationalAt(0):
			p.relationalOperator()
			wantOperand = true
			conditional = true
		case conditions && p.classConditionAt():
			p.classCondition()
			conditional = true
		case conditions && p.CurrentEquals("AND", "OR"):
			p.Continue()
			wantOperand = true
			conditional = true
		default:
			break loop
		}
	}

	if wantOperand {
		if p.atEOF() {
			p.unexpectedEOF("an identifier or a literal")
		} else {
			p.unexpected("Expected an identifier or a literal.")
		}
	}
	if depth > 0 {
		p.Build(SeverityError, 5, "Unbalanced parenthesis.").
			WithSourceLine(start, fmt.Sprintf("Expression is missing %d closing parenthesis.", depth)).
			Close()
	}
	return
}

// relationalAt reports whether a relational operator starts k tokens
// away.
func (p *Parser) relationalAt(k int) bool {
	if p.LookaheadEquals(k, "IS") {
		k++
	}
	if p.LookaheadEquals(k, "NOT") {
		k++
	}
	return p.LookaheadEquals(k, "=", "<", ">", "<=", ">=", "<>", "GREATER", "LESS", "EQUAL", "EQUALS")
}

// relationalOperator consumes a relational operator.
func (p *Parser) relationalOperator() {
	p.Optional("IS")
	p.Optional("NOT")

	switch {
	case p.CurrentEquals("GREATER", "LESS"):
		p.Continue()
		p.Optional("THAN")
		if p.CurrentEquals("OR") && p.LookaheadEquals(1, "EQUAL") {
			p.Continue()
			p.Continue()
			p.Optional("TO")
		}
	case p.CurrentEquals("EQUAL", "EQUALS"):
		p.Continue()
		p.Optional("TO")
	default:
		p.Choice("=", "<", ">", "<=", ">=", "<>")
	}
}

func (p *Parser) classConditionAt() bool {
	k := 0
	if p.LookaheadEquals(k, "IS") {
		k++
	}
	if p.LookaheadEquals(k, "NOT") {
		k++
	}
	return p.LookaheadEquals(k, classConditions...) || k > 0 && p.LookaheadIs(k, token.Identifier)
}

func (p *Parser) classCondition() {
	p.Optional("IS")
	p.Optional("NOT")
	p.Continue()
}

// StartRelationalOperator parses the relational operator of a START KEY
// phrase.
func (p *Parser) StartRelationalOperator() {
	if !p.relationalAt(0) {
		p.unexpected("Expected a relational operator.")
		return
	}
	p.relationalOperator()
}

// Selection is the kind of an EVALUATE selection subject.
type Selection int

const (
	SelectValue Selection = iota
	SelectCondition
	SelectTrueFalse
)

// SelectionSubject parses one EVALUATE selection subject.
func (p *Parser) SelectionSubject() Selection {
	if p.Optional("TRUE") || p.Optional("FALSE") {
		return SelectTrueFalse
	}
	if p.expression(true, []string{"ALSO", "WHEN"}) {
		return SelectCondition
	}
	return SelectValue
}

// SelectionObject parses the selection object paired with subject.
func (p *Parser) SelectionObject(subject Selection) {
	switch {
	case p.Optional("ANY"):
		return
	case p.CurrentEquals("TRUE", "FALSE"):
		p.Continue()
		return
	}

	p.expression(true, []string{"ALSO", "THRU", "THROUGH"})

	if p.CurrentEquals("THRU", "THROUGH") {
		if subject != SelectValue {
			p.Build(SeverityError, 5, "Unexpected "+p.Current().Value+".").
				WithSourceLine(p.Current(), "A range cannot be compared with a conditional selection subject.").
				Close()
		}
		p.Continue()
		p.Arithmetic("ALSO")
	}
}

// selectionObjects parses the objects of one WHEN phrase and pairs the Nth
// object with the Nth subject. More objects than subjects is reported and
// the rest of the phrase is skipped; false is returned in that case.
func (p *Parser) selectionObjects(subjects []Selection) bool {
	n := 0
	for {
		if n >= len(subjects) {
			p.Build(SeverityError, 5, "Too many selection objects.").
				WithSourceLine(p.Current(), "This selection object has no matching selection subject.").
				WithNote(fmt.Sprintf("The number of selection objects must be equal to the number of selection subjects (%d).", len(subjects))).
				Close()

			p.AnchorPoint("WHEN", "END-EVALUATE")
			return false
		}

		p.SelectionObject(subjects[n])
		n++

		if !p.Optional("ALSO") {
			break
		}
	}

	if n < len(subjects) {
		p.Build(SeverityError, 5, "Too few selection objects.").
			WithSourceLine(p.Lookbehind(1), "Expected ALSO and a selection object after this token.").
			WithNote(fmt.Sprintf("The number of selection objects must be equal to the number of selection subjects (%d).", len(subjects))).
			Close()
	}
	return true
}
