package parser

import (
	"github.com/gad-lang/cobol/token"
)

// Reporter collects diagnostics. It never interrupts the analysis.
type Reporter struct {
	Errors     ErrorList
	MaxErrors  int
	Dropped    int
	suppressed map[int]bool
	occurred   bool
	onReport   func(e *Error)
}

// Suppress drops every future diagnostic with one of codes.
func (r *Reporter) Suppress(codes ...int) {
	if r.suppressed == nil {
		r.suppressed = map[int]bool{}
	}
	for _, c := range codes {
		r.suppressed[c] = true
	}
}

// HasOccurred reports whether an error severity diagnostic was recorded.
func (r *Reporter) HasOccurred() bool {
	return r.occurred
}

// Build starts a new diagnostic. Nothing is recorded until Close.
func (r *Reporter) Build(severity Severity, code int, msg string) *DiagnosticBuilder {
	return &DiagnosticBuilder{r: r, err: Error{Code: code, Severity: severity, Msg: msg}}
}

func (r *Reporter) record(e *Error) {
	if r.suppressed[e.Code] {
		return
	}
	if e.Severity == SeverityError {
		r.occurred = true
	}
	if r.MaxErrors > 0 && len(r.Errors) >= r.MaxErrors {
		r.Dropped++
		return
	}
	r.Errors = append(r.Errors, e)
	if r.onReport != nil {
		r.onReport(e)
	}
}

// DiagnosticBuilder assembles one diagnostic.
type DiagnosticBuilder struct {
	r   *Reporter
	err Error
}

// WithSourceLine attaches the diagnostic to tok with a label printed next to
// the source excerpt.
func (b *DiagnosticBuilder) WithSourceLine(tok token.Token, label string) *DiagnosticBuilder {
	b.err.Pos = tok.Pos
	b.err.Label = label
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Note = note
	return b
}

// Close records the diagnostic.
func (b *DiagnosticBuilder) Close() {
	e := b.err
	b.r.record(&e)
}
