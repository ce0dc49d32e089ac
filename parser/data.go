package parser

import (
	"strings"

	"github.com/gad-lang/cobol/picture"
	"github.com/gad-lang/cobol/token"
)

// DataDivision parses the FILE, WORKING-STORAGE, LOCAL-STORAGE and LINKAGE
// sections and registers their data description entries.
func (p *Parser) DataDivision() {
	if p.Trace {
		defer untracep(tracep(p, "DataDivision"))
	}

	p.Expected("DATA")
	p.Expected("DIVISION")
	p.scope = DataDivision
	p.separatorPeriod("Division header", "division header")

	for {
		switch {
		case p.CurrentEquals("FILE") && p.LookaheadEquals(1, "SECTION"):
			p.dataSectionHeader(FileSection)
			p.FileSection()
		case p.CurrentEquals("WORKING-STORAGE"):
			p.dataSectionHeader(WorkingStorageSection)
			p.DataEntries("")
		case p.CurrentEquals("LOCAL-STORAGE"):
			p.dataSectionHeader(LocalStorageSection)
			p.DataEntries("")
		case p.CurrentEquals("LINKAGE"):
			p.dataSectionHeader(LinkageSection)
			p.DataEntries("")
		default:
			return
		}
	}
}

func (p *Parser) dataSectionHeader(scope Scope) {
	p.Continue()
	p.Expected("SECTION")
	p.scope = scope
	p.separatorPeriod("Section header", "section header")
}

// FileSection parses FD and SD entries with their record descriptions.
func (p *Parser) FileSection() {
	for p.CurrentEquals("FD", "SD") || p.CurrentIs(token.Numeric) {
		file := ""
		if p.CurrentEquals("FD", "SD") {
			file = p.FileDescription()
		}
		p.DataEntries(file)
	}
}

// FileDescription parses an FD or SD entry and returns the file name.
func (p *Parser) FileDescription() string {
	if p.Trace {
		defer untracep(tracep(p, "FileDescription"))
	}

	sort := p.Choice("FD", "SD") == "SD"
	tok := p.Current()
	p.Name()

	file := &FileEntry{Token: tok}
	if p.registering() && p.unit != nil && tok.Kind == token.Identifier {
		if !p.unit.Files.Exists(tok.Value) {
			p.Build(SeverityError, 31, "Undefined file connector.").
				WithSourceLine(tok, "No file control entry defines "+tok.Value+".").
				WithNote("Every FD and SD entry must describe a file named in a SELECT clause.").
				Close()
		} else if f, err := p.unit.Files.GetUnique(tok.Value); err == nil {
			// a repeated SELECT is already reported as a duplicate
			file = f
		}
		if file.Described {
			p.Build(SeverityError, 30, "Duplicate file description.").
				WithSourceLine(tok, "The file "+tok.Value+" is already described.").
				Close()
		}
		file.Described = true
		file.Sort = sort
	}

	for !p.CurrentEquals(".") && !p.atEntryStart() {
		if !p.fileDescriptionClause(file) {
			p.unexpected("Expected a file description clause.")
			p.skipEntry()
			return tok.Value
		}
	}
	p.separatorPeriod("File description", "file description entry")
	return tok.Value
}

// fileDescriptionClause parses one clause of an FD or SD entry. It returns
// false without consuming anything when the current token starts no clause.
func (p *Parser) fileDescriptionClause(file *FileEntry) bool {
	if p.CurrentEquals("IS") && p.LookaheadEquals(1, "EXTERNAL", "GLOBAL") {
		p.Continue()
	}

	switch {
	case p.Optional("EXTERNAL"):
		file.External = true
	case p.Optional("GLOBAL"):
		file.Global = true

	case p.Optional("BLOCK"):
		p.Optional("CONTAINS")
		p.Number()
		if p.Optional("TO") {
			p.Number()
		}
		p.OptionalChoice("CHARACTERS", "RECORDS")

	case p.Optional("RECORD"):
		p.recordSize()

	case p.Optional("LINAGE"):
		p.Optional("IS")
		p.lineCount()
		p.Optional("LINES")
		for p.CurrentEquals("WITH", "FOOTING", "LINES", "AT", "TOP", "BOTTOM") {
			p.Optional("WITH")
			p.Optional("LINES")
			p.Optional("AT")
			p.Choice("FOOTING", "TOP", "BOTTOM")
			p.lineCount()
		}

	case p.Optional("CODE-SET"):
		if p.CurrentEquals("FOR", "ALPHANUMERIC", "NATIONAL") {
			p.ForAlphanumericForNational(func() { p.Name() })
			break
		}
		p.Optional("IS")
		p.Name()

	case p.OptionalChoice("REPORT", "REPORTS") != "":
		p.OptionalChoice("IS", "ARE")
		p.Name()
		for p.CurrentIs(token.Identifier) {
			p.Name()
		}

	case p.Optional("DATA"):
		p.OptionalChoice("RECORD", "RECORDS")
		p.OptionalChoice("IS", "ARE")
		p.Name()
		for p.CurrentIs(token.Identifier) {
			p.Name()
		}

	default:
		return false
	}
	return true
}

// recordSize parses the body of a RECORD clause: CONTAINS n [TO n]
// CHARACTERS or IS VARYING IN SIZE.
func (p *Parser) recordSize() {
	if p.CurrentEquals("IS", "VARYING") {
		p.Optional("IS")
		p.Expected("VARYING")
		p.Optional("IN")
		p.Optional("SIZE")
		if p.Optional("FROM") {
			p.Number()
		}
		if p.Optional("TO") {
			p.Number()
		}
		p.Optional("CHARACTERS")
		if p.Optional("DEPENDING") {
			p.Optional("ON")
			p.Identifier(Receiving)
		}
		return
	}

	p.Optional("CONTAINS")
	p.Number()
	if p.Optional("TO") {
		p.Number()
	}
	p.Optional("CHARACTERS")
}

func (p *Parser) lineCount() {
	if p.CurrentIs(token.Numeric) {
		p.Number()
		return
	}
	p.Identifier(Sending)
}

// DataEntries parses consecutive data description entries and links each
// entry to its parent by level number.
func (p *Parser) DataEntries(file string) {
	if p.Trace {
		defer untracep(tracep(p, "DataEntries"))
	}

	var stack []*DataEntry
	for p.CurrentIs(token.Numeric) {
		entry := p.DataDescription(file)

		switch {
		case entry.Level == 1 || entry.Level == 66 || entry.Level == 77 || entry.Level == 78:
			stack = stack[:0]
		case entry.Level == 88:
			if len(stack) != 0 {
				entry.Parent = stack[len(stack)-1]
			}
		default:
			for len(stack) != 0 && stack[len(stack)-1].Level >= entry.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) != 0 {
				entry.Parent = stack[len(stack)-1]
			}
		}
		if entry.Level != 88 && entry.Level != 66 && entry.Level != 77 && entry.Level != 78 {
			stack = append(stack, entry)
		}

		p.registerData(entry)
	}
}

// atEntryStart reports whether the current token starts a new entry, a
// section or a division, which ends an entry missing its period.
func (p *Parser) atEntryStart() bool {
	return p.atEOF() || p.atDivisionHeader() || p.atUnitHeader() ||
		p.CurrentEquals("FD", "SD", "WORKING-STORAGE", "LOCAL-STORAGE", "LINKAGE") ||
		p.CurrentEquals("FILE") && p.LookaheadEquals(1, "SECTION") ||
		p.CurrentIs(token.Numeric) && validLevel(p.Current().Int()) &&
			(p.LookaheadIs(1, token.Identifier) || p.LookaheadEquals(1, "FILLER"))
}

// skipEntry skips the rest of a malformed entry including its period.
func (p *Parser) skipEntry() {
	for !p.CurrentEquals(".") && !p.atEntryStart() {
		p.Continue()
	}
	p.Optional(".")
}

func validLevel(level int) bool {
	return 1 <= level && level <= 49 || level == 66 || level == 77 || level == 78 || level == 88
}

// DataDescription parses one data description entry up to and including
// its separator period.
func (p *Parser) DataDescription(file string) *DataEntry {
	if p.Trace {
		defer untracep(tracep(p, "DataDescription"))
	}

	levelTok := p.Current()
	p.Number()
	level := levelTok.Int()
	if !validLevel(level) {
		p.Build(SeverityError, 5, "Invalid level number.").
			WithSourceLine(levelTok, "Expected a level number from 01 to 49, or 66, 77, 78 or 88.").
			Close()
	}

	entry := &DataEntry{Token: levelTok, Level: level, Section: p.scope, File: file}
	switch {
	case p.CurrentEquals("FILLER"):
		entry.Token = p.Current()
		p.Continue()
	case p.CurrentIs(token.Identifier):
		entry.Token = p.Current()
		p.Continue()
	}

	if level == 88 && !p.CurrentEquals("VALUE", "VALUES") {
		p.Build(SeverityError, 25, "Missing clause.").
			WithSourceLine(p.Lookbehind(1), "Expected a VALUE clause after this token.").
			WithNote("A condition name entry must have a VALUE clause.").
			Close()
	}

	for !p.CurrentEquals(".") && !p.atEntryStart() {
		if !p.dataClause(entry) {
			p.unexpected("Expected a data description clause.")
			p.skipEntry()
			return entry
		}
	}
	p.separatorPeriod("Data description", "data description entry")
	return entry
}

var usages = []string{
	"BINARY", "BINARY-CHAR", "BINARY-SHORT", "BINARY-LONG", "BINARY-DOUBLE",
	"BIT", "COMP", "COMP-1", "COMP-2", "COMP-3", "COMP-4", "COMP-5",
	"COMPUTATIONAL", "COMPUTATIONAL-1", "COMPUTATIONAL-2", "COMPUTATIONAL-3",
	"COMPUTATIONAL-4", "COMPUTATIONAL-5", "DISPLAY", "FLOAT-LONG",
	"FLOAT-SHORT", "INDEX", "MESSAGE-TAG", "NATIONAL", "OBJECT",
	"PACKED-DECIMAL", "POINTER", "DATA-POINTER", "FUNCTION-POINTER",
	"PROGRAM-POINTER", "PROCEDURE-POINTER",
}

// dataClause parses one clause of a data description entry. It returns
// false without consuming anything when the current token starts no clause.
func (p *Parser) dataClause(entry *DataEntry) bool {
	if p.CurrentEquals("IS") && p.LookaheadEquals(1, "EXTERNAL", "GLOBAL", "TYPEDEF") {
		p.Continue()
	}

	switch {
	case p.Optional("EXTERNAL"):
		entry.External = true
		if p.Optional("AS") {
			p.StringLiteral()
		}

	case p.Optional("GLOBAL"):
		entry.Global = true

	case p.Optional("TYPEDEF"):
		p.Optional("STRONG")

	case p.OptionalChoice("PIC", "PICTURE") != "":
		p.Optional("IS")
		p.pictureClause(entry)

	case p.Optional("USAGE"):
		p.Optional("IS")
		p.usage(entry)

	case p.CurrentEquals(usages...):
		p.usage(entry)

	case p.CurrentEquals("VALUE", "VALUES"):
		p.valueClause(entry)

	case p.Optional("OCCURS"):
		p.occursClause(entry)

	case p.Optional("REDEFINES"):
		entry.Redefines = p.Name().Value

	case p.Optional("RENAMES"):
		entry.Redefines = p.Name().Value
		if p.OptionalChoice("THROUGH", "THRU") != "" {
			p.Name()
		}

	case p.OptionalChoice("JUSTIFIED", "JUST") != "":
		p.Optional("RIGHT")

	case p.OptionalChoice("SYNCHRONIZED", "SYNC") != "":
		p.OptionalChoice("LEFT", "RIGHT")

	case p.Optional("BLANK"):
		p.Optional("WHEN")
		p.Choice("ZERO", "ZEROS", "ZEROES")

	case p.CurrentEquals("SIGN", "LEADING", "TRAILING"):
		if p.Optional("SIGN") {
			p.Optional("IS")
		}
		p.Choice("LEADING", "TRAILING")
		if p.Optional("SEPARATE") {
			p.Optional("CHARACTER")
		}

	case p.Optional("BASED"):

	case p.Optional("CONSTANT"):
		entry.Constant = true
		if p.CurrentEquals("IS") || p.CurrentEquals("GLOBAL") {
			p.Optional("IS")
			p.Expected("GLOBAL")
			entry.Global = true
		}
		p.Optional("AS")
		p.constantValue(entry)

	case p.Optional("ANY"):
		p.Expected("LENGTH")

	case p.Optional("DYNAMIC"):
		entry.Usage = "DYNAMIC"
		p.Optional("LENGTH")
		if p.CurrentIs(token.Identifier) {
			p.Name()
		}
		if p.Optional("LIMIT") {
			p.Optional("IS")
			p.Number()
		}

	case p.Optional("SAME"):
		p.Expected("AS")
		p.Name()

	case p.Optional("TYPE"):
		p.Optional("TO")
		p.Name()

	default:
		return false
	}
	return true
}

// pictureClause validates the picture character string and stores its
// category and size on entry.
func (p *Parser) pictureClause(entry *DataEntry) {
	tok := p.Current()
	if !p.CurrentIs(token.Picture) {
		p.Build(SeverityError, 1, "Unexpected token type.").
			WithSourceLine(tok, "Expected a picture character string.").
			Close()
		return
	}
	p.Continue()

	valid, size, violations := picture.Validate(tok.Value)
	entry.Picture = tok.Value
	entry.Size = size
	entry.Category = picture.Classify(tok.Value)
	if valid {
		return
	}

	for _, v := range violations {
		p.Build(SeverityError, 20, "Invalid picture clause character string.").
			WithSourceLine(tok, "Invalid picture string: "+tok.Value).
			WithNote(v.Note).
			Close()
	}
}

func (p *Parser) usage(entry *DataEntry) {
	value := strings.ToUpper(p.Current().Value)
	if !p.CurrentEquals(usages...) {
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected a USAGE type, instead of "+p.Current().Value).
			Close()
		p.Continue()
		return
	}
	p.Continue()

	switch {
	case strings.HasPrefix(value, "COMP-"):
		value = "COMPUTATIONAL-" + strings.TrimPrefix(value, "COMP-")
	case value == "COMP":
		value = "COMPUTATIONAL"
	case value == "DATA-POINTER":
		value = "POINTER"
	case value == "PROCEDURE-POINTER":
		value = "PROGRAM-POINTER"
	}
	entry.Usage = value

	switch value {
	case "BINARY-CHAR", "BINARY-SHORT", "BINARY-LONG", "BINARY-DOUBLE":
		p.OptionalChoice("SIGNED", "UNSIGNED")
	case "POINTER", "FUNCTION-POINTER", "PROGRAM-POINTER":
		if p.Optional("TO") {
			p.Name()
		}
	case "OBJECT":
		p.Expected("REFERENCE")
		entry.Usage = "OBJECT REFERENCE"
		if p.Optional("FACTORY") {
			p.Optional("OF")
		}
		if p.CurrentIs(token.Identifier) {
			p.Name()
			p.Optional("ONLY")
		}
	}
}

// valueClause parses VALUE literal or, for condition names, VALUES
// literal [THRU literal] …
func (p *Parser) valueClause(entry *DataEntry) {
	p.Choice("VALUE", "VALUES")
	p.OptionalChoice("IS", "ARE")

	if !p.Current().Kind.IsLiteral() && !p.CurrentEquals("ALL", "NULL", "NULLS") {
		p.Build(SeverityError, 1, "Unexpected token type.").
			WithSourceLine(p.Current(), "Expected a literal.").
			Close()
		return
	}

	entry.Value = append(entry.Value, p.Literal())
	if entry.Level != 88 {
		return
	}
	if p.OptionalChoice("THROUGH", "THRU") != "" {
		entry.Value = append(entry.Value, p.Literal())
	}
	for p.Current().Kind.IsLiteral() || p.CurrentEquals("ALL") {
		entry.Value = append(entry.Value, p.Literal())
		if p.OptionalChoice("THROUGH", "THRU") != "" {
			entry.Value = append(entry.Value, p.Literal())
		}
	}
}

func (p *Parser) constantValue(entry *DataEntry) {
	switch {
	case p.OptionalChoice("LENGTH", "BYTE-LENGTH") != "":
		p.Optional("OF")
		p.Identifier(Sending)
	case p.Current().Kind.IsLiteral():
		entry.Value = append(entry.Value, p.Literal())
	default:
		p.Build(SeverityError, 1, "Unexpected token type.").
			WithSourceLine(p.Current(), "Expected a literal, LENGTH OF or BYTE-LENGTH OF.").
			Close()
	}
}

// occursClause parses OCCURS [n TO] m TIMES with its DEPENDING, KEY and
// INDEXED BY phrases. Index names are registered as index data items.
func (p *Parser) occursClause(entry *DataEntry) {
	if p.Optional("DYNAMIC") {
		if p.Optional("CAPACITY") {
			p.Optional("IN")
			p.Name()
		}
		if p.Optional("FROM") {
			p.Number()
		}
		if p.Optional("TO") {
			p.Number()
		}
	} else {
		if d, err := p.Number().Decimal(); err == nil {
			entry.Occurs = d
		}
		if p.Optional("TO") {
			if d, err := p.Number().Decimal(); err == nil {
				entry.OccursMax = d
			}
		}
	}
	p.Optional("TIMES")

	if p.Optional("DEPENDING") {
		p.Optional("ON")
		p.Identifier(Sending)
	}

	for p.CurrentEquals("ASCENDING", "DESCENDING") {
		p.Continue()
		p.Optional("KEY")
		p.Optional("IS")
		p.Name()
		for p.CurrentIs(token.Identifier) {
			p.Name()
		}
	}

	if p.Optional("INDEXED") {
		p.Optional("BY")
		if !p.CurrentIs(token.Identifier) {
			p.unexpected("Expected an index name.")
			return
		}
		for p.CurrentIs(token.Identifier) {
			tok := p.Name()
			p.registerData(&DataEntry{Token: tok, Section: entry.Section, Parent: entry, Usage: "INDEX"})
		}
	}
}

// registerData adds a named entry to the unit registry. A second root
// level item with the same name is reported.
func (p *Parser) registerData(entry *DataEntry) {
	if !p.registering() || p.unit == nil || entry.Token.Kind != token.Identifier {
		return
	}

	if entry.Level == 1 || entry.Level == 77 {
		roots, _ := p.unit.Data.GetAll(entry.Token.Value)
		for _, r := range roots {
			if r.Parent == nil && (r.Level == 1 || r.Level == 77) {
				p.duplicateRoot(entry.Token)
				break
			}
		}
	}
	p.unit.Data.Add(entry.Token.Value, entry)
}
