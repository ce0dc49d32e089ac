package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/scanner"
	"github.com/gad-lang/cobol/token"
)

func newParser(t *testing.T, input string, opts *parser.Options) *parser.Parser {
	t.Helper()
	file := source.NewFile("test", []byte(input))
	tokens, errs := scanner.Tokenize(file, nil)
	require.Empty(t, errs)
	return parser.NewParser(file, tokens, opts)
}

func TestCursor_Lookahead(t *testing.T) {
	p := newParser(t, "MOVE A TO B .", nil)
	require.Len(t, p.Tokens, 6)

	require.Equal(t, token.EOF, p.Lookahead(100).Kind)
	require.Equal(t, "MOVE", p.Lookahead(-5).Value)
	require.Equal(t, "TO", p.Lookahead(2).Value)
	require.Equal(t, "MOVE", p.Lookbehind(1).Value)
	require.Equal(t, 0, p.Index())

	require.True(t, p.CurrentEquals("move"))
	require.True(t, p.CurrentIs(token.Reserved))
	require.True(t, p.CurrentContext(token.IsStatement))
	require.True(t, p.LookaheadEquals(1, "X", "A"))
	require.True(t, p.LookaheadIs(1, token.Identifier))
	require.Equal(t, 0, p.Index())
}

func TestCursor_ContinueStopsAtEOF(t *testing.T) {
	p := newParser(t, "MOVE A TO B .", nil)
	for i := 0; i < 10; i++ {
		p.Continue()
	}
	require.Equal(t, len(p.Tokens)-1, p.Index())
	require.Equal(t, token.EOF, p.Current().Kind)
	require.Equal(t, ".", p.Lookbehind(1).Value)
}

func TestCursor_EOFSentinel(t *testing.T) {
	file := source.NewFile("test", []byte("A"))
	p := parser.NewParser(file, []token.Token{{Value: "A", Kind: token.Identifier}}, nil)
	require.Len(t, p.Tokens, 2)
	require.Equal(t, token.EOF, p.Tokens[1].Kind)

	p = parser.NewParser(nil, nil, nil)
	require.Len(t, p.Tokens, 1)
	require.Equal(t, token.EOF, p.Current().Kind)
}

func TestCursor_Annotate(t *testing.T) {
	p := newParser(t, "MAIN-PARA .", nil)
	_, ok := p.Annotation(0)
	require.False(t, ok)
	require.False(t, p.CurrentContext(token.IsParagraph))

	p.Annotate(token.IsParagraph)
	c, ok := p.Annotation(0)
	require.True(t, ok)
	require.Equal(t, token.IsParagraph, c)
	require.True(t, p.CurrentContext(token.IsParagraph))
	require.Equal(t, token.NoContext, p.Current().Context)
}

func TestCombinators_ExpectedAlwaysAdvances(t *testing.T) {
	p := newParser(t, "A B C D", nil)
	for i := 0; i < 4; i++ {
		before := p.Index()
		p.Expected("MOVE")
		require.Equal(t, before+1, p.Index())
	}
	p.Expected("MOVE")
	require.Equal(t, 4, p.Index())
	require.Equal(t, []int{5, 5, 5, 5, 0}, p.Errors.Codes())
	require.True(t, p.HasOccurred())
}

func TestCombinators_ExpectedWithAnchors(t *testing.T) {
	p := newParser(t, "A B C MOVE D", nil)
	p.Expected("TO", "MOVE")
	require.Equal(t, 3, p.Index())
	require.True(t, p.CurrentEquals("MOVE"))
	require.Equal(t, []int{5}, p.Errors.Codes())
}

func TestCombinators_Expect(t *testing.T) {
	p := newParser(t, "A", nil)
	require.False(t, p.Expect("B"))
	require.Equal(t, 0, p.Index())
	require.Empty(t, p.Errors)

	require.True(t, p.Expect("a"))
	require.Equal(t, 1, p.Index())

	// at the end of file the failure is reported and the caller continues
	require.True(t, p.Expect("B"))
	require.Equal(t, []int{0}, p.Errors.Codes())
}

func TestCombinators_Choice(t *testing.T) {
	p := newParser(t, "SEQUENTIAL RANDOM", nil)
	require.Equal(t, "", p.OptionalChoice("DYNAMIC", "RANDOM"))
	require.Equal(t, 0, p.Index())
	require.Equal(t, "SEQUENTIAL", p.Choice("DYNAMIC", "SEQUENTIAL"))
	require.Equal(t, "", p.Choice("DYNAMIC", "SEQUENTIAL"))
	require.Equal(t, 2, p.Index())
	require.Equal(t, []int{5}, p.Errors.Codes())
	require.Contains(t, p.Errors[0].Label, "DYNAMIC, SEQUENTIAL")
}

func TestCombinators_IdentifierName(t *testing.T) {
	p := newParser(t, "PROG1 PROG1 12", nil)
	require.False(t, p.IdentifierName("DEMO", false))
	require.Equal(t, 0, p.Index())
	require.Empty(t, p.Errors)

	require.True(t, p.IdentifierName("DEMO", true))
	require.Equal(t, 1, p.Index())
	require.True(t, p.IdentifierName("prog1", true))
	require.True(t, p.IdentifierName("DEMO", true))
	require.Equal(t, 3, p.Index())
	require.Equal(t, []int{2, 1}, p.Errors.Codes())
}

func TestCombinators_Literals(t *testing.T) {
	p := newParser(t, `12.5 "abc" B"101" N"xyz" ZEROS WS-A`, nil)
	require.Equal(t, "12.5", p.Number().Value)
	require.Equal(t, "abc", p.StringLiteral().Value)
	require.Equal(t, "101", p.BooleanLiteral().Value)
	require.Equal(t, "xyz", p.NationalLiteral().Value)
	require.Equal(t, "ZEROS", p.FigurativeLiteral().Value)
	require.Empty(t, p.Errors)

	require.Equal(t, "WS-A", p.Literal().Value)
	require.Equal(t, []int{1}, p.Errors.Codes())
}

func TestAnchor_AnchorPoint(t *testing.T) {
	p := newParser(t, "A B . C D", nil)
	p.AnchorPoint()
	require.Equal(t, 3, p.Index())
	require.True(t, p.CurrentEquals("C"))

	p = newParser(t, "A B C D .", nil)
	p.AnchorPoint("D")
	require.Equal(t, 3, p.Index())

	p = newParser(t, "A B C", nil)
	p.AnchorPoint("X")
	require.Equal(t, token.EOF, p.Current().Kind)
	require.Empty(t, p.Errors)
}

func TestAnchor_AnchorContext(t *testing.T) {
	p := newParser(t, "A B DISPLAY C", nil)
	p.AnchorContext(token.IsStatement)
	require.Equal(t, 2, p.Index())

	p = newParser(t, "A END-IF B", nil)
	p.AnchorContext(token.IsScopeTerminator, "B")
	require.Equal(t, 1, p.Index())
}

func TestReporter_MaxErrors(t *testing.T) {
	p := newParser(t, "A B C D", &parser.Options{MaxErrors: 2})
	for i := 0; i < 4; i++ {
		p.Expected("MOVE")
	}
	require.Len(t, p.Errors, 2)
	require.Equal(t, 2, p.Dropped)
	require.True(t, p.HasOccurred())
}

func TestReporter_Suppress(t *testing.T) {
	var reported []int
	p := newParser(t, "A B C", &parser.Options{
		Suppress: []int{5},
		OnError:  func(e *parser.Error) { reported = append(reported, e.Code) },
	})
	p.Expected("MOVE")
	p.Expected("MOVE")
	p.Name()
	require.Empty(t, p.Errors)
	require.False(t, p.HasOccurred())
	require.Empty(t, reported)

	p = newParser(t, "1", &parser.Options{
		OnError: func(e *parser.Error) { reported = append(reported, e.Code) },
	})
	p.Name()
	require.Equal(t, []int{1}, reported)
}

func TestParser_Terminates(t *testing.T) {
	for _, input := range []string{
		"",
		"))) ((( 1 2 3 'x' .",
		"PROGRAM-ID",
		"IDENTIFICATION DIVISION. PROGRAM-ID.",
		"PROGRAM-ID. A. DATA DIVISION. WORKING-STORAGE SECTION. 01 X PIC",
		"PROGRAM-ID. A. PROCEDURE DIVISION. IF X = ( 1 + MOVE",
		"PROGRAM-ID. A. PROCEDURE DIVISION. EVALUATE WHEN WHEN ALSO",
		"PROGRAM-ID. A. PROCEDURE DIVISION. PERFORM UNTIL X PERFORM VARYING",
		"PROGRAM-ID. A. ENVIRONMENT DIVISION. INPUT-OUTPUT SECTION. FILE-CONTROL. SELECT",
		"END PROGRAM A. END FUNCTION B.",
	} {
		p := newParser(t, input, nil)
		res, _ := p.ParseFile()
		require.NotNil(t, res, input)
		require.Equal(t, len(p.Tokens), res.Index, input)
	}
}

func TestParser_UnknownStatementVerb(t *testing.T) {
	tokens := []token.Token{
		{Value: "ENTRY", Kind: token.Reserved, Context: token.IsStatement},
		{Value: "X", Kind: token.Identifier},
		{Value: ".", Kind: token.Symbol},
	}
	p := parser.NewParser(nil, tokens, &parser.Options{Mode: parser.ProcedureOnly})
	res, err := p.ParseFile()
	require.Error(t, err)
	require.Equal(t, []int{5}, res.Errors.Codes())
	require.Contains(t, res.Errors[0].Label, "ENTRY")
	require.Equal(t, len(p.Tokens), res.Index)

	for _, input := range []string{
		`IF X = 1 ENTRY Y END-IF.`,
		`ENTRY Y DISPLAY "A".`,
		`ADD 1 TO X ON SIZE ERROR ENTRY Y END-ADD.`,
		`PERFORM UNTIL X > 1 ENTRY END-PERFORM.`,
	} {
		file := source.NewFile("test", []byte(input))
		tokens, errs := scanner.Tokenize(file, nil)
		require.Empty(t, errs)
		for i := range tokens {
			if tokens[i].Value == "ENTRY" {
				tokens[i].Kind, tokens[i].Context = token.Reserved, token.IsStatement
			}
		}

		p := parser.NewParser(file, tokens, &parser.Options{Mode: parser.ProcedureOnly})
		res, _ := p.ParseFile()
		require.Contains(t, res.Errors.Codes(), 5, input)
		require.Equal(t, len(p.Tokens), res.Index, input)
	}
}
