package parser

import (
	"github.com/gad-lang/cobol/token"
)

// IdentifierType is the set of special identifier forms a caller accepts.
type IdentifierType int

const (
	IntrinsicFunction IdentifierType = 1 << iota
	ExceptionObject
	Self
	NullAddress
	NullObject
	DataAddress
	FunctionAddress
	ProgramAddress
	LinageCounter
	ReportCounter
	ObjectView
	MethodInvocation

	// Receiving accepts plain data references only.
	Receiving IdentifierType = 0
	// Sending accepts every special form.
	Sending = IntrinsicFunction | ExceptionObject | Self | NullAddress | NullObject |
		DataAddress | FunctionAddress | ProgramAddress | LinageCounter |
		ReportCounter | ObjectView | MethodInvocation
)

func (t IdentifierType) Has(flag IdentifierType) bool {
	return t&flag != 0
}

// IdentifierKind is the form an identifier was resolved to.
type IdentifierKind int

const (
	NotIdentifier IdentifierKind = iota
	DataReference
	FunctionCall
	ExceptionObjectReference
	SelfReference
	NullReference
	DataAddressReference
	FunctionAddressReference
	ProgramAddressReference
	LinageCounterReference
	ReportCounterReference
	ObjectViewReference
	MethodInvocationReference
)

var identifierKinds = [...]string{
	NotIdentifier:             "not an identifier",
	DataReference:             "data reference",
	FunctionCall:              "function call",
	ExceptionObjectReference:  "EXCEPTION-OBJECT",
	SelfReference:             "SELF",
	NullReference:             "NULL",
	DataAddressReference:      "ADDRESS OF",
	FunctionAddressReference:  "ADDRESS OF FUNCTION",
	ProgramAddressReference:   "ADDRESS OF PROGRAM",
	LinageCounterReference:    "LINAGE-COUNTER",
	ReportCounterReference:    "report counter",
	ObjectViewReference:       "object view",
	MethodInvocationReference: "inline method call",
}

func (k IdentifierKind) String() string {
	if 0 <= k && int(k) < len(identifierKinds) {
		return identifierKinds[k]
	}
	return identifierKinds[NotIdentifier]
}

// IdentifierResult describes a consumed identifier.
type IdentifierResult struct {
	Kind IdentifierKind
	// Token is the name of the referenced item, function or program.
	Token token.Token
	// Qualifiers are the IN/OF qualifier names, innermost first.
	Qualifiers []token.Token
	// Subscripted is set when a parenthesized subscript, reference
	// modification or argument list followed the name.
	Subscripted bool
	// Allowed is false when the form was not in the accepted set.
	Allowed bool
}

// Name returns the referenced name.
func (r IdentifierResult) Name() string {
	return r.Token.Value
}

func (p *Parser) disallowed(what, label, note string) {
	p.Build(SeverityError, 15, "Unexpected "+what+" identifier.").
		WithSourceLine(p.Current(), label).
		WithNote(note).
		Close()
}

func (p *Parser) checkForm(allowed IdentifierType, flag IdentifierType, res *IdentifierResult, name, what string) {
	res.Allowed = allowed.Has(flag)
	if !res.Allowed {
		p.disallowed(name, "This "+what+" should not be here.", name+" must not be used as receiving operand")
	}
}

// Identifier consumes an identifier. Special forms (function calls, SELF,
// NULL, ADDRESS OF and the others) are accepted only when present in
// allowed; a disallowed form is reported and consumed anyway.
func (p *Parser) Identifier(allowed IdentifierType) (res IdentifierResult) {
	if p.Trace {
		defer untracep(tracep(p, "Identifier"))
	}

	res.Allowed = true
	if p.atEOF() {
		p.unexpectedEOF("an identifier")
		return
	}

	switch {
	case p.CurrentEquals("FUNCTION"):
		p.Continue()
		res.Kind = FunctionCall
		p.checkForm(allowed, IntrinsicFunction, &res, "function", "function call")
		res.Token = p.Current()
		if p.CurrentIs(token.Intrinsic, token.Identifier) {
			p.Continue()
		} else {
			p.Build(SeverityError, 1, "Unexpected token.").
				WithSourceLine(p.Current(), "Expected a function name.").
				Close()
			p.Continue()
		}
		res.Subscripted = p.parenthesized()
		return
	case p.CurrentEquals("EXCEPTION-OBJECT"):
		res.Kind, res.Token = ExceptionObjectReference, p.Current()
		p.Continue()
		p.checkForm(allowed, ExceptionObject, &res, "EXCEPTION-OBJECT", "EXCEPTION-OBJECT")
		return
	case p.CurrentEquals("SELF"):
		res.Kind, res.Token = SelfReference, p.Current()
		p.Continue()
		p.checkForm(allowed, Self, &res, "SELF", "SELF")
		return
	case p.CurrentEquals("NULL"):
		res.Kind, res.Token = NullReference, p.Current()
		p.Continue()
		p.checkForm(allowed, NullAddress|NullObject, &res, "NULL", "NULL reference")
		return
	case p.CurrentEquals("ADDRESS"):
		p.Continue()
		p.Optional("OF")
		switch {
		case p.CurrentEquals("FUNCTION"):
			p.Continue()
			res.Kind = FunctionAddressReference
			p.checkForm(allowed, FunctionAddress, &res, "ADDRESS OF FUNCTION", "ADDRESS OF FUNCTION")
			res.Token = p.nameOrLiteral()
		case p.CurrentEquals("PROGRAM"):
			p.Continue()
			res.Kind = ProgramAddressReference
			p.checkForm(allowed, ProgramAddress, &res, "ADDRESS OF PROGRAM", "ADDRESS OF PROGRAM")
			res.Token = p.nameOrLiteral()
		default:
			res.Kind = DataAddressReference
			p.checkForm(allowed, DataAddress, &res, "ADDRESS OF", "ADDRESS OF reference")
			inner := p.Identifier(Receiving)
			res.Token, res.Qualifiers, res.Subscripted = inner.Token, inner.Qualifiers, inner.Subscripted
		}
		return
	case p.CurrentEquals("LINAGE-COUNTER"):
		res.Kind, res.Token = LinageCounterReference, p.Current()
		p.Continue()
		if p.CurrentEquals("IN", "OF") {
			p.Continue()
			res.Qualifiers = append(res.Qualifiers, p.Name())
		}
		p.checkForm(allowed, LinageCounter, &res, "LINAGE-COUNTER", "LINAGE-COUNTER")
		return
	case p.CurrentEquals("PAGE-COUNTER", "LINE-COUNTER"):
		res.Kind, res.Token = ReportCounterReference, p.Current()
		p.Continue()
		if p.CurrentEquals("IN", "OF") {
			p.Continue()
			res.Qualifiers = append(res.Qualifiers, p.Name())
		}
		p.checkForm(allowed, ReportCounter, &res, res.Token.Value, res.Token.Value)
		return
	}

	if !p.CurrentIs(token.Identifier) {
		p.Build(SeverityError, 1, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected a user-defined word (an identifier).").
			Close()
		res.Token = p.Current()
		p.Continue()
		return
	}

	res.Token = p.Current()
	switch {
	case p.LookaheadEquals(1, "AS"):
		p.Continue()
		p.Continue()
		res.Kind = ObjectViewReference
		p.checkForm(allowed, ObjectView, &res, "Object View", "Object View")
		if p.Optional("UNIVERSAL") {
			return
		}
		if p.Optional("FACTORY") {
			p.Optional("OF")
		}
		p.Name()
		p.Optional("ONLY")
		return
	case p.LookaheadEquals(1, "::"):
		res.Kind = MethodInvocationReference
		res.Allowed = allowed.Has(MethodInvocation)
		if !res.Allowed {
			p.Build(SeverityError, 15, "Unexpected inline method call.").
				WithSourceLine(p.Current(), "This method call should not be here.").
				WithNote("Inline method calls must not be used as receiving operand").
				Close()
		}
		p.Continue()
		p.Continue()
		p.StringLiteral()
		res.Subscripted = p.parenthesized()
		return
	}

	res.Kind = DataReference
	p.Continue()
	for p.CurrentEquals("IN", "OF") && p.LookaheadIs(1, token.Identifier) {
		p.Continue()
		res.Qualifiers = append(res.Qualifiers, p.Current())
		p.Continue()
	}
	res.Subscripted = p.parenthesized()
	return
}

// parenthesized skips balanced parenthesized groups following a name.
func (p *Parser) parenthesized() (found bool) {
	for p.CurrentEquals("(") {
		found = true
		start := p.Current()
		depth := 0
		for {
			if p.atEOF() {
				p.Build(SeverityError, 5, "Unexpected end of file.").
					WithSourceLine(start, "Unbalanced parenthesis, expected ')' before the end of file.").
					Close()
				return
			}
			if p.CurrentEquals("(") {
				depth++
			} else if p.CurrentEquals(")") {
				depth--
			}
			p.Continue()
			if depth == 0 {
				break
			}
		}
	}
	return
}

func (p *Parser) nameOrLiteral() token.Token {
	if p.CurrentIs(token.Identifier) {
		tok := p.Current()
		p.Continue()
		return tok
	}
	return p.StringLiteral()
}
