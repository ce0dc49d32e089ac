package parser

import (
	"github.com/gad-lang/cobol/token"
)

// numericOperands consumes a list of identifiers and numeric literals.
func (p *Parser) numericOperands() {
	if !p.CurrentIs(token.Identifier, token.Numeric) && !p.CurrentEquals("FUNCTION") {
		p.unexpected("Expected an identifier or numeric literal.")
		return
	}
	for p.CurrentIs(token.Identifier, token.Numeric) || p.CurrentEquals("FUNCTION") {
		p.numericOperand()
	}
}

// corresponding parses the CORRESPONDING form shared by ADD and SUBTRACT.
func (p *Parser) corresponding(conditional *bool, preposition string) {
	p.Continue()
	p.Identifier(Sending)
	p.Expected(preposition)
	p.Identifier(Receiving)
	p.Rounded()
	p.SizeError(conditional)
}

// AddStatement parses ADD [CORRESPONDING] … TO … [GIVING …].
func (p *Parser) AddStatement() {
	if p.Trace {
		defer untracep(tracep(p, "AddStatement"))
	}

	var conditional bool
	p.Expected("ADD")

	if p.CurrentEquals("CORRESPONDING", "CORR") {
		p.corresponding(&conditional, "TO")
		p.terminator(conditional, "END-ADD")
		return
	}

	p.numericOperands()

	switch {
	case p.CurrentEquals("TO") && p.LookaheadEquals(2, "GIVING"):
		p.Continue()
		p.numericOperand()
		p.Expected("GIVING")
		p.receiving(true)
	case p.CurrentEquals("GIVING"):
		p.Continue()
		p.receiving(true)
	case p.CurrentEquals("TO"):
		p.Continue()
		p.receiving(true)
	default:
		p.unexpected("Expected TO or GIVING reserved words.")
	}

	p.SizeError(&conditional)
	p.terminator(conditional, "END-ADD")
}

// SubtractStatement parses SUBTRACT [CORRESPONDING] … FROM … [GIVING …].
func (p *Parser) SubtractStatement() {
	if p.Trace {
		defer untracep(tracep(p, "SubtractStatement"))
	}

	var conditional bool
	p.Expected("SUBTRACT")

	if p.CurrentEquals("CORRESPONDING", "CORR") {
		p.corresponding(&conditional, "FROM")
		p.terminator(conditional, "END-SUBTRACT")
		return
	}

	p.numericOperands()

	switch {
	case p.CurrentEquals("FROM") && p.LookaheadEquals(2, "GIVING"):
		p.Continue()
		p.numericOperand()
		p.Expected("GIVING")
		p.receiving(true)
	case p.CurrentEquals("FROM"):
		p.Continue()
		p.receiving(true)
	default:
		p.unexpected("Expected FROM reserved word.")
	}

	p.SizeError(&conditional)
	p.terminator(conditional, "END-SUBTRACT")
}

// MultiplyStatement parses MULTIPLY … BY … [GIVING …].
func (p *Parser) MultiplyStatement() {
	if p.Trace {
		defer untracep(tracep(p, "MultiplyStatement"))
	}

	var conditional bool
	p.Expected("MULTIPLY")
	p.numericOperand()

	switch {
	case p.CurrentEquals("BY") && p.LookaheadEquals(2, "GIVING"):
		p.Continue()
		p.numericOperand()
		p.Expected("GIVING")
		p.receiving(true)
	case p.CurrentEquals("BY"):
		p.Continue()
		p.receiving(true)
	default:
		p.unexpected("Expected BY reserved word.")
	}

	p.SizeError(&conditional)
	p.terminator(conditional, "END-MULTIPLY")
}

// DivideStatement parses DIVIDE … INTO/BY … [GIVING …] [REMAINDER …].
func (p *Parser) DivideStatement() {
	if p.Trace {
		defer untracep(tracep(p, "DivideStatement"))
	}

	var conditional bool
	p.Expected("DIVIDE")
	p.numericOperand()

	switch {
	case p.CurrentEquals("INTO", "BY") && p.LookaheadEquals(2, "GIVING"):
		remainder := p.LookaheadEquals(4, "REMAINDER") || p.LookaheadEquals(5, "REMAINDER") && p.LookaheadEquals(4, "ROUNDED")
		p.Continue()
		p.numericOperand()
		p.Expected("GIVING")
		if remainder {
			p.Identifier(Receiving)
			p.Rounded()
			p.Expected("REMAINDER")
			p.Identifier(Receiving)
		} else {
			p.receiving(true)
		}
	case p.CurrentEquals("INTO"):
		p.Continue()
		p.receiving(true)
	default:
		p.unexpected("Expected BY or INTO reserved words.")
	}

	p.SizeError(&conditional)
	p.terminator(conditional, "END-DIVIDE")
}

// ComputeStatement parses COMPUTE receivers = arithmetic expression.
func (p *Parser) ComputeStatement() {
	if p.Trace {
		defer untracep(tracep(p, "ComputeStatement"))
	}

	var conditional bool
	p.Expected("COMPUTE")
	p.receiving(true)
	p.Choice("=", "EQUAL")

	if !p.isOperand() && !p.CurrentEquals("(", "+", "-") {
		p.unexpected("Expected a valid arithmetic expression.")
	} else {
		p.Arithmetic(".")
	}

	p.SizeError(&conditional)
	p.terminator(conditional, "END-COMPUTE")
}
