package parser

import (
	"github.com/gad-lang/cobol/token"
)

// AnchorPoint skips tokens until a separator period, which is consumed, or
// one of anchors, which is left as the current token. It stops at the end
// of file.
func (p *Parser) AnchorPoint(anchors ...string) {
	p.anchor(nil, anchors)
}

// AnchorContext is AnchorPoint that also stops on a token carrying ctx.
func (p *Parser) AnchorContext(ctx token.Context, anchors ...string) {
	p.anchor([]token.Context{ctx}, anchors)
}

func (p *Parser) anchor(ctx []token.Context, anchors []string) {
	if p.Trace {
		defer untracep(tracep(p, "Anchor"))
	}

	for !p.atEOF() {
		if p.CurrentEquals(".") {
			p.Continue()
			return
		}
		if len(anchors) != 0 && p.CurrentEquals(anchors...) {
			return
		}
		if len(ctx) != 0 && p.CurrentContext(ctx...) {
			return
		}
		p.Continue()
	}
}
