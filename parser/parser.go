package parser

import (
	"fmt"
	"io"

	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/scanner"
	"github.com/gad-lang/cobol/token"
)

// Parser walks a classified token sequence, reports diagnostics and
// registers the declared entities of every source unit.
type Parser struct {
	File   *source.File
	Tokens []token.Token
	Reporter

	Trace    bool
	TraceOut io.Writer
	indent   int
	mode     Mode

	index       int
	annotations map[int]token.Context

	// units of a previous pass, reused on a resolution pass
	seed      []*Unit
	unitIndex int
	units     []*Unit
	unit      *Unit

	scope        Scope
	section      string
	declaratives bool
}

type Options struct {
	Trace     io.Writer
	Mode      Mode
	Suppress  []int
	MaxErrors int
	// Units are the units produced by a previous pass over the same tokens.
	Units []*Unit
	// OnError is called for every recorded diagnostic.
	OnError func(e *Error)
}

// Result is the outcome of a parser run.
type Result struct {
	Units       []*Unit
	Errors      ErrorList
	HadErrors   bool
	Index       int
	Annotations map[int]token.Context
	// Dropped counts the diagnostics past the error limit.
	Dropped int
}

// Main returns the first top level unit.
func (r *Result) Main() *Unit {
	for _, u := range r.Units {
		if u.Parent == nil {
			return u
		}
	}
	return nil
}

// Unit returns the unit named name.
func (r *Result) Unit(name string) *Unit {
	for _, u := range r.Units {
		if equalFold(u.Name, name) {
			return u
		}
	}
	return nil
}

// NewParser creates a Parser over tokens. A missing EOF sentinel is
// appended so the sequence always ends with exactly one EOF token.
func NewParser(file *source.File, tokens []token.Token, opts *Options) *Parser {
	if opts == nil {
		opts = &Options{}
	}
	if file == nil {
		file = source.NewFile("", nil)
	}
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		tokens = append(tokens[:n:n], token.NewEOF(file.Position(file.Size())))
	}
	p := &Parser{
		File:        file,
		Tokens:      tokens,
		Trace:       opts.Trace != nil,
		TraceOut:    opts.Trace,
		mode:        opts.Mode,
		annotations: map[int]token.Context{},
		seed:        opts.Units,
	}
	p.MaxErrors = opts.MaxErrors
	p.onReport = opts.OnError
	p.Suppress(opts.Suppress...)
	return p
}

// ParseFile reads, tokenizes and analyzes the named file.
func ParseFile(pth string, opts *Options, scanOpts *scanner.Options) (*Result, error) {
	file, err := source.ReadFile(pth)
	if err != nil {
		return nil, err
	}
	return ParseSource(file, opts, scanOpts)
}

// ParseSource tokenizes and analyzes file.
func ParseSource(file *source.File, opts *Options, scanOpts *scanner.Options) (*Result, error) {
	return NewSourceParser(file, opts, scanOpts).ParseFile()
}

// NewSourceParser tokenizes file and creates a Parser over its tokens.
// Lexical errors are reported as diagnostics with code 1.
func NewSourceParser(file *source.File, opts *Options, scanOpts *scanner.Options) *Parser {
	tokens, lexErrors := scanner.Tokenize(file, scanOpts)
	p := NewParser(file, tokens, opts)
	for _, e := range lexErrors {
		p.Build(SeverityError, 1, "Invalid token.").
			WithSourceLine(token.Token{Pos: e.Pos}, e.Msg).
			Close()
	}
	return p
}

// ParseFile analyzes the whole token sequence.
func (p *Parser) ParseFile() (result *Result, err error) {
	defer func() {
		p.Errors.Sort()
		result = &Result{
			Units:       p.units,
			Errors:      p.Errors,
			HadErrors:   p.HasOccurred(),
			Index:       p.index,
			Annotations: p.annotations,
			Dropped:     p.Dropped,
		}
		if result.HadErrors {
			err = p.Errors.Err()
		}
	}()

	if p.Trace {
		defer untracep(tracep(p, "File"))
	}

	if p.mode.Has(ProcedureOnly) {
		p.beginUnit(Program, p.Current())
		p.ProcedureBody()
		p.endUnit()
	} else {
		p.SourceUnits()
	}

	if !p.CurrentIs(token.EOF) {
		p.Build(SeverityError, 5, "Unexpected token.").
			WithSourceLine(p.Current(), "Expected end of file, found "+p.Current().Value).
			Close()
	}
	// the EOF token itself is consumed
	p.index = len(p.Tokens)
	return
}

// ResolutionPass re-runs the grammar over the tokens of a finished run.
// Entries are looked up in the units of the previous result and are not
// registered again.
func (p *Parser) ResolutionPass(prev *Result) (*Result, error) {
	rp := NewParser(p.File, p.Tokens, &Options{
		Trace:     p.TraceOut,
		Mode:      p.mode | ResolutionPass,
		MaxErrors: p.MaxErrors,
		Units:     prev.Units,
		OnError:   p.onReport,
	})
	rp.suppressed = p.suppressed
	return rp.ParseFile()
}

func (p *Parser) PrintTrace(a ...any) {
	const (
		dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
		n    = len(dots)
	)

	pos := p.Current().Pos
	_, _ = fmt.Fprintf(p.TraceOut, "%5d: %5d:%3d: ", p.index, pos.Line, pos.Column)
	i := 2 * p.indent
	for i > n {
		_, _ = fmt.Fprint(p.TraceOut, dots)
		i -= n
	}
	_, _ = fmt.Fprint(p.TraceOut, dots[0:i])
	_, _ = fmt.Fprintln(p.TraceOut, a...)
}

func tracep(p *Parser, msg string) *Parser {
	p.PrintTrace(msg, "(")
	p.indent++
	return p
}

func untracep(p *Parser) {
	p.indent--
	p.PrintTrace(")")
}

func (p *Parser) registering() bool {
	return !p.mode.Has(ResolutionPass)
}
