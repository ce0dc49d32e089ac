package parser

import (
	"github.com/gad-lang/cobol/token"
)

// EnvironmentDivision parses the CONFIGURATION and INPUT-OUTPUT sections.
func (p *Parser) EnvironmentDivision() {
	if p.Trace {
		defer untracep(tracep(p, "EnvironmentDivision"))
	}

	p.Expected("ENVIRONMENT")
	p.Expected("DIVISION")
	p.scope = EnvironmentDivision
	p.separatorPeriod("Division header", "division header")

	if p.Optional("CONFIGURATION") {
		p.Expected("SECTION")
		p.scope = ConfigurationSection
		p.separatorPeriod("Section header", "section header")

		if p.CurrentEquals("SOURCE-COMPUTER") {
			p.SourceComputer()
		}
		if p.CurrentEquals("OBJECT-COMPUTER") {
			p.ObjectComputer()
		}
		if p.CurrentEquals("SPECIAL-NAMES") {
			p.SpecialNames()
		}
		if p.CurrentEquals("REPOSITORY") {
			p.Repository()
		}
	}

	if p.Optional("INPUT-OUTPUT") {
		p.Expected("SECTION")
		p.scope = InputOutputSection
		p.separatorPeriod("Section header", "section header")

		if p.CurrentEquals("FILE-CONTROL") {
			p.FileControl()
		}
		if p.CurrentEquals("I-O-CONTROL") {
			p.IOControl()
		}
	}
}

func (p *Parser) paragraphHeader(name string) {
	p.Expected(name)
	p.separatorPeriod("Paragraph header", "paragraph header")
}

// SourceComputer parses SOURCE-COMPUTER. [computer-name.]
func (p *Parser) SourceComputer() {
	p.paragraphHeader("SOURCE-COMPUTER")

	if p.CurrentIs(token.Identifier) {
		p.Name()
		p.Expected(".")
	}
}

// ObjectComputer parses OBJECT-COMPUTER with its CHARACTER CLASSIFICATION
// and PROGRAM COLLATING SEQUENCE clauses.
func (p *Parser) ObjectComputer() {
	p.paragraphHeader("OBJECT-COMPUTER")

	period := false
	if p.CurrentIs(token.Identifier) {
		p.Name()
		period = true
	}
	if p.CurrentEquals("CHARACTER", "CLASSIFICATION") {
		p.CharacterClassification()
		period = true
	}
	if p.CurrentEquals("PROGRAM", "COLLATING", "SEQUENCE") {
		p.ProgramCollatingSequence()
		period = true
	}
	if period {
		p.Expected(".")
	}
}

// SpecialNames parses the SPECIAL-NAMES paragraph and registers the
// names it defines. Clauses must follow the standard order; a clause out
// of place is reported where the closing period was expected.
func (p *Parser) SpecialNames() {
	if p.Trace {
		defer untracep(tracep(p, "SpecialNames"))
	}

	p.paragraphHeader("SPECIAL-NAMES")
	start := p.index

	for p.CurrentEquals("ALPHABET") {
		p.AlphabetName()
	}
	for p.CurrentEquals("CLASS") {
		p.ClassName()
	}
	if p.Optional("CRT") {
		p.Expected("STATUS")
		p.Optional("IS")
		p.Identifier(Receiving)
	}
	for p.Optional("CURRENCY") {
		p.Optional("SIGN")
		p.Optional("IS")
		p.StringLiteral()

		if p.CurrentEquals("PICTURE") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "PICTURE") {
			p.Optional("WITH")
			p.Expected("PICTURE")
			p.Expected("SYMBOL")
			p.StringLiteral()
		}
	}
	if p.Optional("CURSOR") {
		p.Optional("IS")
		p.Identifier(Receiving)
	}
	if p.Optional("DECIMAL-POINT") {
		p.Optional("IS")
		p.Expected("COMMA")
	}
	for p.CurrentEquals("DYNAMIC") {
		p.DynamicLengthStructure()
	}
	for p.Optional("LOCALE") {
		if p.CurrentIs(token.Identifier) {
			p.defineName(p.Name(), "LOCALE")
		}
		p.Optional("IS")
		p.StringLiteral()
	}
	for p.CurrentIs(token.Identifier, token.Device) && !p.LookaheadEquals(1, ".") {
		device := p.Current()
		p.Continue()
		p.Optional("IS")
		p.defineName(p.Name(), device.Value)
	}
	for p.CurrentEquals("SYMBOLIC") {
		p.SymbolicCharacters()
	}
	if p.Optional("ORDER") {
		p.Expected("TABLE")
		p.Name()
		p.Optional("IS")
		p.StringLiteral()
	}

	if p.index == start {
		return
	}
	if !p.Expect(".") {
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected ., instead of "+p.Current().Value).
			WithNote("SPECIAL-NAMES clauses must be written in their standard order, most of them at most once.").
			Close()
		p.AnchorPoint("REPOSITORY", "INPUT-OUTPUT", "DATA", "PROCEDURE", "END")
	}
}

// defineName registers a SPECIAL-NAMES definition of the current unit.
func (p *Parser) defineName(tok token.Token, kind string) {
	if !p.registering() || p.unit == nil || tok.Kind != token.Identifier {
		return
	}
	p.unit.Names.Add(tok.Value, &NameEntry{Token: tok, Kind: kind})
}

// Repository parses the REPOSITORY paragraph and registers its entries.
func (p *Parser) Repository() {
	if p.Trace {
		defer untracep(tracep(p, "Repository"))
	}

	p.paragraphHeader("REPOSITORY")

	for p.CurrentEquals("CLASS", "INTERFACE", "FUNCTION", "PROGRAM", "PROPERTY") {
		kind := p.Current().Value
		p.Continue()

		if kind == "FUNCTION" {
			p.repositoryFunction()
			continue
		}

		tok := p.Name()
		entry := &RepositoryEntry{Token: tok, Kind: kind}
		if p.Optional("AS") {
			entry.ExternalName = p.StringLiteral().Value
		}

		if (kind == "CLASS" || kind == "INTERFACE") && p.Optional("EXPANDS") {
			p.Name()
			p.Expected("USING")

			if !p.CurrentIs(token.Identifier) {
				p.Build(SeverityError, 105, "Missing USING phrase class or interface name.").
					WithSourceLine(p.Lookbehind(1), "The USING phrase must define at least one class or interface name.").
					Close()
			} else {
				for p.CurrentIs(token.Identifier) {
					p.Name()
				}
			}
		}

		p.addRepository(entry)
	}

	p.separatorPeriod("Paragraph body", "paragraph body")
}

func (p *Parser) repositoryFunction() {
	switch {
	case p.Optional("ALL"):
		p.Expected("INTRINSIC")
		if p.registering() && p.unit != nil {
			p.unit.AllIntrinsic = true
		}
	case p.CurrentIs(token.Intrinsic):
		var names []token.Token
		for p.CurrentIs(token.Intrinsic) {
			names = append(names, p.Current())
			p.Continue()
		}
		p.Expected("INTRINSIC")
		for _, tok := range names {
			p.addRepository(&RepositoryEntry{Token: tok, Kind: "FUNCTION", Intrinsic: true})
		}
	default:
		entry := &RepositoryEntry{Token: p.Name(), Kind: "FUNCTION"}
		if p.Optional("AS") {
			entry.ExternalName = p.StringLiteral().Value
		}
		p.addRepository(entry)
	}
}

func (p *Parser) addRepository(entry *RepositoryEntry) {
	if !p.registering() || p.unit == nil {
		return
	}
	p.unit.Repository.Add(entry.Token.Value, entry)
}

// IOControl parses the I-O-CONTROL paragraph.
func (p *Parser) IOControl() {
	p.paragraphHeader("I-O-CONTROL")

	if p.Optional("APPLY") {
		p.Expected("COMMIT")
		p.Optional("ON")
		p.identifiers(Receiving)
		p.Expected(".")
	}

	if p.CurrentEquals("SAME") {
		for p.CurrentEquals("SAME") {
			p.SameArea()
		}
		p.Expected(".")
	}
}

// FileControl parses the FILE-CONTROL paragraph.
func (p *Parser) FileControl() {
	if p.Trace {
		defer untracep(tracep(p, "FileControl"))
	}

	p.paragraphHeader("FILE-CONTROL")
	for p.CurrentEquals("SELECT") {
		p.FileControlEntry()
	}
}

// FileControlEntry parses one SELECT entry and registers its file.
func (p *Parser) FileControlEntry() {
	if p.Trace {
		defer untracep(tracep(p, "FileControlEntry"))
	}

	p.Expected("SELECT")
	optional := p.Optional("OPTIONAL")

	tok := p.Current()
	p.Name()

	file := p.Assign(tok)
	file.Optional = optional

	if !p.CurrentContext(token.IsClause) && !p.CurrentEquals(".") {
		p.Build(SeverityError, 2, "Unexpected token.").
			WithSourceLine(p.Lookbehind(1), "Expected file control clauses or a separator period after this token.").
			Close()
	}

	for p.CurrentContext(token.IsClause) {
		p.FileControlClause(file)
	}

	if !p.Expect(".") {
		p.Build(SeverityError, 25, "File control, missing separator period.").
			WithSourceLine(p.Lookbehind(1), "Expected a separator period '. ' after this token.").
			WithNote("Every file control item must end with a separator period.").
			Close()
	}

	if !p.registering() || p.unit == nil {
		return
	}
	if p.unit.Files.Exists(tok.Value) {
		p.duplicateRoot(tok)
	}
	p.unit.Files.Add(tok.Value, file)
}

// duplicateRoot reports a second root level definition of a name.
func (p *Parser) duplicateRoot(tok token.Token) {
	p.Build(SeverityError, 30, "Duplicate root level definition.").
		WithSourceLine(tok, "A root level variable already exists with this name.").
		WithNote("Every root level item must have a unique name.").
		Close()
}
