// Package scanner implements a tokenizer for free and fixed format COBOL
// source. It produces the classified token sequence consumed by the parser.
package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/runehelper"
	"github.com/gad-lang/cobol/token"
)

// ScanMode represents a scanner mode.
type ScanMode uint8

func (b *ScanMode) Set(flag ScanMode) *ScanMode { *b = *b | flag; return b }
func (b ScanMode) Has(flag ScanMode) bool       { return b&flag != 0 }

// List of scanner modes.
const (
	// FixedFormat ignores the sequence area (columns 1-6), treats column 7
	// as the indicator area and ignores everything after column 72.
	FixedFormat ScanMode = 1 << iota
	// UpperCase normalizes identifiers to upper case.
	UpperCase
)

const (
	fixedIndicator = 6
	fixedEnd       = 72
)

// ErrorHandler is called for every lexical error.
type ErrorHandler func(pos source.SourceFilePos, msg string)

type Options struct {
	Mode         ScanMode
	ErrorHandler ErrorHandler
}

// Scanner reads COBOL source text.
type Scanner struct {
	file         *source.File
	src          []byte
	mode         ScanMode
	errorHandler ErrorHandler
	ErrorCount   int

	ch         rune
	offset     int
	readOffset int

	prev     token.Token
	function bool // inside a FUNCTION name list
	picture  int  // 1 after PIC, 2 after PIC IS
}

// New creates a Scanner.
func New(file *source.File, opts *Options) *Scanner {
	if opts == nil {
		opts = &Options{}
	}
	s := &Scanner{
		file:         file,
		src:          file.Data,
		mode:         opts.Mode,
		errorHandler: opts.ErrorHandler,
		ch:           ' ',
	}
	if s.mode.Has(FixedFormat) {
		s.src = blankFixedAreas(file.Data)
	}
	s.next()
	return s
}

// blankFixedAreas replaces the sequence area, comment lines and the
// identification area with blanks so offsets stay aligned with the file.
func blankFixedAreas(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	lineStart := 0
	for i := 0; i <= len(out); i++ {
		if i < len(out) && out[i] != '\n' {
			continue
		}
		line := out[lineStart:i]
		for j := range line {
			switch {
			case j < fixedIndicator, j >= fixedEnd:
				if line[j] != '\r' {
					line[j] = ' '
				}
			case j == fixedIndicator:
				switch line[j] {
				case '*', '/':
					for k := j; k < len(line) && k < fixedEnd; k++ {
						line[k] = ' '
					}
				}
				line[j] = ' '
			}
		}
		lineStart = i + 1
	}
	return out
}

func (s *Scanner) next() {
	if s.readOffset >= len(s.src) {
		s.offset = len(s.src)
		s.ch = -1
		return
	}
	s.offset = s.readOffset
	r, w := rune(s.src[s.readOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.readOffset:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.offset, "illegal UTF-8 encoding")
		}
	}
	s.readOffset += w
	s.ch = r
}

func (s *Scanner) peek() byte {
	if s.readOffset < len(s.src) {
		return s.src[s.readOffset]
	}
	return 0
}

func (s *Scanner) peekAt(n int) byte {
	if i := s.readOffset + n; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *Scanner) error(offs int, msg string) {
	if s.errorHandler != nil {
		s.errorHandler(s.file.Position(offs), msg)
	}
	s.ErrorCount++
}

func (s *Scanner) skipWhitespace() {
	for {
		switch {
		case runehelper.IsSpace(s.ch):
			s.next()
		case (s.ch == ',' || s.ch == ';') && s.isSeparatorEnd(s.peek()):
			s.next()
		case s.ch == '*' && s.peek() == '>':
			for s.ch != '\n' && s.ch >= 0 {
				s.next()
			}
		default:
			return
		}
	}
}

func (s *Scanner) isSeparatorEnd(b byte) bool {
	return b == 0 || b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Scan returns the next token. Once the input is exhausted it returns the
// EOF token forever.
func (s *Scanner) Scan() (t token.Token) {
	s.skipWhitespace()
	t = s.scan()
	s.classify(&t)
	s.prev = t
	return
}

// ScanAll scans the whole input. The returned sequence always ends with
// exactly one EOF token.
func (s *Scanner) ScanAll() (tokens []token.Token) {
	for {
		t := s.Scan()
		tokens = append(tokens, t)
		if t.Kind == token.EOF {
			return
		}
	}
}

func (s *Scanner) scan() token.Token {
	offs := s.offset
	pos := s.file.Position(offs)

	if s.ch == -1 {
		return token.NewEOF(pos)
	}

	if s.picture > 0 && !s.atPictureKeyword() {
		s.picture = 0
		return token.Token{Value: s.scanPicture(), Kind: token.Picture, Pos: pos}
	}

	ch := s.ch
	switch {
	case runehelper.IsWordStart(ch):
		word := s.scanWord()
		if q := s.ch; (q == '"' || q == '\'') && literalPrefix(word) != token.Illegal {
			kind := literalPrefix(word)
			return token.Token{Value: s.scanString(offs, kind), Kind: kind, Pos: pos}
		}
		if isNumber(word) {
			return token.Token{Value: s.scanFraction(word), Kind: token.Numeric, Pos: pos}
		}
		if !runehelper.IsWordRunes([]rune(word)) {
			s.error(offs, fmt.Sprintf("malformed word %q", word))
		}
		return token.Token{Value: word, Kind: token.Identifier, Pos: pos}
	case ch == '"' || ch == '\'':
		return token.Token{Value: s.scanString(offs, token.String), Kind: token.String, Pos: pos}
	case (ch == '+' || ch == '-') && s.signedLiteral():
		s.next()
		digits := s.offset
		for runehelper.IsDigit(s.ch) {
			s.next()
		}
		word := string(s.src[digits:s.offset])
		return token.Token{Value: string(ch) + s.scanFraction(word), Kind: token.Numeric, Pos: pos}
	}

	s.next()
	value := string(ch)
	switch ch {
	case '.', '(', ')', '+', '-', '/', '=', '&', ',', ';':
	case '*':
		if s.ch == '*' {
			s.next()
			value = "**"
		}
	case '<':
		if s.ch == '=' || s.ch == '>' {
			value += string(s.ch)
			s.next()
		}
	case '>':
		if s.ch == '=' {
			s.next()
			value = ">="
		}
	case ':':
		if s.ch == ':' {
			s.next()
			value = "::"
		}
	default:
		s.error(offs, fmt.Sprintf("illegal character %#U", ch))
		return token.Token{Value: value, Kind: token.Illegal, Pos: pos}
	}
	return token.Token{Value: value, Kind: token.Symbol, Pos: pos}
}

func (s *Scanner) atPictureKeyword() bool {
	if s.picture != 1 {
		return false
	}
	return (s.ch == 'I' || s.ch == 'i') &&
		(s.peek() == 'S' || s.peek() == 's') &&
		s.isSeparatorEnd(s.peekAt(1))
}

// signedLiteral reports whether a sign at the current position starts a
// numeric literal rather than an arithmetic operator.
func (s *Scanner) signedLiteral() bool {
	if b := s.peek(); b < '0' || b > '9' {
		return false
	}
	switch s.prev.Kind {
	case token.Identifier, token.Numeric, token.Figurative, token.Intrinsic:
		return false
	case token.Symbol:
		return s.prev.Value != ")"
	}
	return !s.prev.Kind.IsStringLiteral()
}

func (s *Scanner) scanWord() string {
	offs := s.offset
	for runehelper.IsWord(s.ch) {
		s.next()
	}
	// a trailing hyphen belongs to the following operator
	end := s.offset
	for end > offs && s.src[end-1] == '-' {
		end--
	}
	if end != s.offset {
		s.readOffset = end
		s.next()
	}
	return string(s.src[offs:end])
}

func isNumber(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return true
}

// scanFraction completes a numeric literal whose integer part is digits.
// The decimal point is part of the literal only when a digit follows it.
func (s *Scanner) scanFraction(digits string) string {
	if s.ch == '.' && runehelper.IsDigit(rune(s.peek())) {
		s.next()
		offs := s.offset
		for runehelper.IsDigit(s.ch) {
			s.next()
		}
		return digits + "." + string(s.src[offs:s.offset])
	}
	return digits
}

func literalPrefix(word string) token.Kind {
	switch strings.ToUpper(word) {
	case "X":
		return token.HexString
	case "Z", "U":
		return token.String
	case "N":
		return token.National
	case "NX":
		return token.HexNational
	case "B":
		return token.Boolean
	case "BX":
		return token.HexBoolean
	}
	return token.Illegal
}

func (s *Scanner) scanString(offs int, kind token.Kind) string {
	quote := s.ch
	s.next()
	var b strings.Builder
	for {
		ch := s.ch
		if ch == '\n' || ch < 0 {
			s.error(offs, "literal not terminated")
			break
		}
		s.next()
		if ch == quote {
			if s.ch != quote {
				break
			}
			s.next()
		}
		b.WriteRune(ch)
	}
	value := b.String()
	switch kind {
	case token.HexString, token.HexNational, token.HexBoolean:
		for _, r := range value {
			if !runehelper.IsHexDigit(r) {
				s.error(offs, fmt.Sprintf("invalid hexadecimal digit %q in literal", r))
				break
			}
		}
	case token.Boolean:
		for _, r := range value {
			if r != '0' && r != '1' {
				s.error(offs, fmt.Sprintf("invalid boolean digit %q in literal", r))
				break
			}
		}
	}
	return value
}

// scanPicture reads a picture character string. A trailing period followed
// by a separator is the separator period and is left for the next scan.
func (s *Scanner) scanPicture() string {
	offs := s.offset
	for s.ch >= 0 && !runehelper.IsSpace(s.ch) {
		if (s.ch == '.' || s.ch == ',' || s.ch == ';') && s.isSeparatorEnd(s.peek()) {
			break
		}
		s.next()
	}
	if s.offset == offs {
		s.error(offs, "missing picture character string")
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) classify(t *token.Token) {
	if t.Kind != token.Identifier {
		if t.Kind != token.Intrinsic {
			s.function = false
		}
		if t.Kind == token.EOF {
			s.picture = 0
		}
		return
	}

	if s.function && token.IsIntrinsic(t.Value) {
		t.Kind = token.Intrinsic
		t.Value = strings.ToUpper(t.Value)
		return
	}

	t.Kind, t.Context = token.Lookup(t.Value)
	s.function = false
	switch t.Kind {
	case token.Identifier:
		if s.mode.Has(UpperCase) {
			t.Value = strings.ToUpper(t.Value)
		}
		return
	case token.Reserved:
		t.Value = strings.ToUpper(t.Value)
		switch t.Value {
		case "FUNCTION":
			s.function = true
		case "PIC", "PICTURE":
			s.picture = 1
		case "IS":
			if s.picture == 1 {
				s.picture = 2
			}
		}
	default:
		t.Value = strings.ToUpper(t.Value)
	}
}

// Tokenize scans file with opts and returns the token sequence together
// with the lexical errors found.
func Tokenize(file *source.File, opts *Options) ([]token.Token, ErrorList) {
	var (
		errs ErrorList
		o    Options
	)
	if opts != nil {
		o = *opts
	}
	prev := o.ErrorHandler
	o.ErrorHandler = func(pos source.SourceFilePos, msg string) {
		errs.Add(pos, msg)
		if prev != nil {
			prev(pos, msg)
		}
	}
	tokens := New(file, &o).ScanAll()
	return tokens, errs
}
