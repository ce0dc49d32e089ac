package parser

import (
	"github.com/gad-lang/cobol/token"
)

// AlphabetName parses an ALPHABET clause of SPECIAL-NAMES.
func (p *Parser) AlphabetName() {
	p.Expected("ALPHABET")
	p.defineName(p.Name(), "ALPHABET")

	if p.CurrentEquals("NATIONAL") || p.CurrentEquals("FOR") && p.LookaheadEquals(1, "NATIONAL") {
		p.Optional("FOR")
		p.Expected("NATIONAL")
		p.Optional("IS")

		switch {
		case p.Optional("LOCALE"):
			if p.CurrentIs(token.Identifier) {
				p.Name()
			}
		case p.OptionalChoice("NATIVE", "UCS-4", "UTF-8", "UTF-16", "UTF-32") != "":
		default:
			for p.CurrentIs(token.National, token.HexNational) {
				p.literalPhrase(p.NationalLiteral)
			}
		}
		return
	}

	if p.CurrentEquals("ALPHANUMERIC") || p.CurrentEquals("FOR") && p.LookaheadEquals(1, "ALPHANUMERIC") {
		p.Optional("FOR")
		p.Expected("ALPHANUMERIC")
	}

	p.Optional("IS")
	switch {
	case p.Optional("LOCALE"):
		if p.CurrentIs(token.Identifier) {
			p.Name()
		}
	case p.OptionalChoice("NATIVE", "STANDARD-1", "STANDARD-2", "UTF-8") != "":
	default:
		for p.CurrentIs(token.String, token.HexString, token.Numeric) {
			p.literalPhrase(p.alphabetLiteral)
		}
	}
}

func (p *Parser) alphabetLiteral() token.Token {
	if p.CurrentIs(token.Numeric) {
		return p.Number()
	}
	return p.StringLiteral()
}

// literalPhrase parses literal [THRU literal | ALSO literal …].
func (p *Parser) literalPhrase(literal func() token.Token) {
	literal()
	if p.OptionalChoice("THROUGH", "THRU") != "" {
		literal()
		return
	}
	for p.Optional("ALSO") {
		literal()
	}
}

// ClassName parses a CLASS clause of SPECIAL-NAMES.
func (p *Parser) ClassName() {
	p.Expected("CLASS")
	p.defineName(p.Name(), "CLASS")

	national := false
	if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.Optional("FOR")
		national = p.Choice("ALPHANUMERIC", "NATIONAL") == "NATIONAL"
	}
	p.Optional("IS")

	literal := p.StringLiteral
	if national {
		literal = p.NationalLiteral
	}
	for p.Current().Kind.IsStringLiteral() || p.CurrentIs(token.Numeric) {
		if p.CurrentIs(token.Numeric) {
			p.Number()
		} else {
			literal()
		}
		if p.OptionalChoice("THROUGH", "THRU") != "" {
			literal()
		}
	}

	if p.Optional("IN") {
		p.Name()
	}
}

// DynamicLengthStructure parses a DYNAMIC LENGTH STRUCTURE clause.
func (p *Parser) DynamicLengthStructure() {
	p.Expected("DYNAMIC")
	p.Expected("LENGTH")
	p.Optional("STRUCTURE")
	p.defineName(p.Name(), "DYNAMIC LENGTH")
	p.Optional("IS")

	if p.CurrentIs(token.Identifier) {
		p.Name()
		return
	}

	if p.CurrentEquals("SIGNED", "SHORT", "PREFIXED") {
		p.Optional("SIGNED")
		p.Optional("SHORT")
		p.Expected("PREFIXED")
	}
	p.Optional("DELIMITED")

	if !p.Lookbehind(1).Is("PREFIXED", "DELIMITED") {
		p.Build(SeverityError, 25, "Missing clause.").
			WithSourceLine(p.Lookbehind(1), "Expected PREFIXED and/or DELIMITED.").
			WithNote("At least of the two must be present.").
			Close()
	}
}

// SymbolicCharacters parses a SYMBOLIC CHARACTERS clause.
func (p *Parser) SymbolicCharacters() {
	p.Expected("SYMBOLIC")
	p.Optional("CHARACTERS")

	if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.Optional("FOR")
		p.Choice("ALPHANUMERIC", "NATIONAL")
	}

	if !p.CurrentIs(token.Identifier) {
		p.unexpected("Expected a symbolic character name.")
		return
	}

	for p.CurrentIs(token.Identifier) {
		for p.CurrentIs(token.Identifier) {
			p.defineName(p.Name(), "SYMBOLIC")
		}
		p.OptionalChoice("IS", "ARE")
		for p.CurrentIs(token.Numeric) {
			p.Number()
		}
	}

	if p.Optional("IN") {
		p.Name()
	}
}

// CharacterClassification parses the CHARACTER CLASSIFICATION clause of
// OBJECT-COMPUTER.
func (p *Parser) CharacterClassification() {
	p.Optional("CHARACTER")
	p.Expected("CLASSIFICATION")

	if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.ForAlphanumericForNational(p.LocalePhrase)
		return
	}

	p.Optional("IS")
	p.LocalePhrase()
	if p.CurrentIs(token.Identifier) || p.CurrentEquals("LOCALE", "SYSTEM-DEFAULT", "USER-DEFAULT") {
		p.LocalePhrase()
	}
}

// ProgramCollatingSequence parses the PROGRAM COLLATING SEQUENCE clause
// of OBJECT-COMPUTER.
func (p *Parser) ProgramCollatingSequence() {
	p.Optional("PROGRAM")
	p.Optional("COLLATING")
	p.Expected("SEQUENCE")

	if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.ForAlphanumericForNational(func() { p.Name() })
		return
	}

	p.Optional("IS")
	p.Name()
	if p.CurrentIs(token.Identifier) {
		p.Name()
	}
}

// SameArea parses a SAME AREA clause of I-O-CONTROL.
func (p *Parser) SameArea() {
	p.Expected("SAME")
	p.OptionalChoice("RECORD", "SORT", "SORT-MERGE")
	p.Optional("AREA")
	p.Optional("FOR")

	p.Name()
	p.Name()
	for p.CurrentIs(token.Identifier) {
		p.Name()
	}
}

// Assign parses the ASSIGN clause of a SELECT entry and returns the new
// file entry.
func (p *Parser) Assign(tok token.Token) *FileEntry {
	file := &FileEntry{Token: tok}
	p.Expected("ASSIGN")

	if p.Optional("USING") {
		file.Assign = append(file.Assign, p.Name().Value)
		return file
	}

	p.Optional("TO")
	if !p.CurrentIs(token.Identifier, token.Device) && !p.Current().Kind.IsStringLiteral() {
		p.unexpected("Expected a device name, an identifier or a literal.")
		return file
	}
	for p.CurrentIs(token.Identifier, token.Device) || p.Current().Kind.IsStringLiteral() {
		file.Assign = append(file.Assign, p.Current().Value)
		p.Continue()
	}
	return file
}

// FileControlClause parses one file control clause into file.
func (p *Parser) FileControlClause(file *FileEntry) {
	switch {
	case p.CurrentEquals("ACCESS"):
		p.Continue()
		p.Optional("MODE")
		p.Optional("IS")
		file.Access = p.Choice("DYNAMIC", "RANDOM", "SEQUENTIAL")

	case p.CurrentEquals("RECORD") && p.LookaheadEquals(1, "DELIMITER"):
		p.Continue()
		p.Continue()
		p.Optional("IS")
		if !p.Optional("STANDARD-1") {
			p.Name()
		}

	case p.CurrentEquals("RECORD") && !p.LookaheadEquals(1, "SEQUENTIAL"):
		p.Continue()
		p.Optional("KEY")
		p.Optional("IS")
		file.RecordKey = p.keyName()

	case p.CurrentEquals("ALTERNATE"):
		p.Continue()
		p.Optional("RECORD")
		p.Optional("KEY")
		p.Optional("IS")
		file.AlternateKey = append(file.AlternateKey, p.keyName())

		if p.CurrentEquals("DUPLICATES") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "DUPLICATES") {
			p.Optional("WITH")
			p.Expected("DUPLICATES")
		}
		if p.CurrentEquals("SUPPRESS") {
			p.Continue()
			p.Optional("WHEN")
			p.Literal()
		}

	case p.CurrentEquals("COLLATING"):
		p.Continue()
		p.Expected("SEQUENCE")
		p.fileCollatingSequence()

	case p.CurrentEquals("RELATIVE") && (p.LookaheadEquals(1, "KEY", "IS") || p.LookaheadIs(1, token.Identifier)):
		p.Continue()
		p.Optional("KEY")
		p.Optional("IS")
		file.RelativeKey = p.Name().Value

	case p.CurrentEquals("FILE", "STATUS"):
		p.Optional("FILE")
		p.Expected("STATUS")
		p.Optional("IS")
		file.Status = p.Name().Value

	case p.CurrentEquals("LOCK"):
		p.Continue()
		p.Optional("MODE")
		p.Optional("IS")
		p.Choice("MANUAL", "AUTOMATIC")

		if p.CurrentEquals("LOCK") || p.CurrentEquals("WITH") && p.LookaheadEquals(1, "LOCK") {
			p.Optional("WITH")
			p.Expected("LOCK")
			p.Expected("ON")
			p.Optional("MULTIPLE")
			p.Choice("RECORD", "RECORDS")
		}

	case p.CurrentEquals("ORGANIZATION", "INDEXED", "RELATIVE", "LINE", "RECORD", "SEQUENTIAL"):
		file.Organization = p.organization()

	case p.CurrentEquals("RESERVE"):
		p.Continue()
		if d, err := p.Number().Decimal(); err == nil {
			file.Reserve = d
		}
		p.OptionalChoice("AREA", "AREAS")

	case p.CurrentEquals("SHARING"):
		p.sharingPhrase()

	default:
		p.unexpected("Expected a file control clause.")
		p.Continue()
	}
}

// keyName parses a record key name with an optional SOURCE phrase.
func (p *Parser) keyName() string {
	name := p.Name().Value
	if p.Optional("SOURCE") {
		p.Optional("IS")
		p.Name()
		for p.CurrentIs(token.Identifier) {
			p.Name()
		}
	}
	return name
}

func (p *Parser) fileCollatingSequence() {
	if p.Optional("OF") {
		p.Name()
		for p.CurrentIs(token.Identifier) {
			p.Name()
		}
		p.Optional("IS")
		p.Name()
		return
	}

	if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
		p.ForAlphanumericForNational(func() { p.Name() })
		return
	}

	p.Optional("IS")
	p.Name()
	if p.CurrentIs(token.Identifier) {
		p.Name()
	}
}

func (p *Parser) organization() Organization {
	if p.Optional("ORGANIZATION") {
		p.Optional("IS")
	}

	switch {
	case p.Optional("LINE"):
		p.Expected("SEQUENTIAL")
		return LineSequential
	case p.Optional("RECORD"):
		p.Expected("SEQUENTIAL")
		return RecordSequential
	case p.Optional("SEQUENTIAL"):
		return Sequential
	case p.Optional("RELATIVE"):
		return Relative
	default:
		p.Expected("INDEXED")
		return Indexed
	}
}
