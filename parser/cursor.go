package parser

import (
	"strings"

	"github.com/gad-lang/cobol/token"
)

// Index returns the cursor position.
func (p *Parser) Index() int {
	return p.index
}

// Current returns the token under the cursor. Past the end it keeps
// returning the EOF token.
func (p *Parser) Current() token.Token {
	return p.Lookahead(0)
}

// Lookahead returns the token k positions away from the cursor. Negative k
// looks behind. The position is clamped to the sequence bounds.
func (p *Parser) Lookahead(k int) token.Token {
	i := p.index + k
	if i >= len(p.Tokens) {
		return p.Tokens[len(p.Tokens)-1]
	}
	if i < 0 {
		return p.Tokens[0]
	}
	return p.Tokens[i]
}

// Lookbehind returns the token k positions before the cursor.
func (p *Parser) Lookbehind(k int) token.Token {
	return p.Lookahead(-k)
}

// CurrentEquals reports whether the current token value equals one of
// values, ignoring case.
func (p *Parser) CurrentEquals(values ...string) bool {
	return p.Current().Is(values...)
}

// CurrentIs reports whether the current token is of one of kinds.
func (p *Parser) CurrentIs(kinds ...token.Kind) bool {
	return p.Current().Kind.Is(kinds...)
}

// CurrentContext reports whether the current token carries one of ctx,
// either from the classifier or from the annotation table.
func (p *Parser) CurrentContext(ctx ...token.Context) bool {
	return p.contextAt(p.index, ctx...)
}

func (p *Parser) contextAt(i int, ctx ...token.Context) bool {
	if i >= len(p.Tokens) {
		i = len(p.Tokens) - 1
	}
	tc := p.Tokens[i].Context
	ac, annotated := p.annotations[i]
	for _, c := range ctx {
		if tc == c || annotated && ac == c {
			return true
		}
	}
	return false
}

// LookaheadEquals reports whether the token k positions away has one of
// values.
func (p *Parser) LookaheadEquals(k int, values ...string) bool {
	return p.Lookahead(k).Is(values...)
}

// LookaheadIs reports whether the token k positions away is of one of
// kinds.
func (p *Parser) LookaheadIs(k int, kinds ...token.Kind) bool {
	return p.Lookahead(k).Kind.Is(kinds...)
}

// Continue moves the cursor to the next token. It never moves past the EOF
// token.
func (p *Parser) Continue() {
	if p.index >= len(p.Tokens)-1 {
		return
	}
	if p.Trace {
		tok := p.Current()
		p.PrintTrace(tok.Kind, tok.Value)
	}
	p.index++
}

// Annotate records ctx for the token under the cursor in the side table.
func (p *Parser) Annotate(ctx token.Context) {
	p.annotations[p.index] = ctx
}

// Annotation returns the annotation of the token at index i.
func (p *Parser) Annotation(i int) (token.Context, bool) {
	c, ok := p.annotations[i]
	return c, ok
}

// atEOF reports whether the cursor is on the EOF token.
func (p *Parser) atEOF() bool {
	return p.Current().Kind == token.EOF
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
