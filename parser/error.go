package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gad-lang/cobol/parser/source"
)

// Severity is the class of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Error represents a diagnostic produced by the analyzer.
type Error struct {
	Pos      source.SourceFilePos
	Code     int
	Severity Severity
	Msg      string
	// Label is printed next to the caret under the offending token.
	Label string
	// Note is an optional remediation hint.
	Note string
}

func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') && e.Pos.File != nil {
			var (
				up, _   = f.Width()
				down, _ = f.Precision()
			)

			upl, downl, l := e.Pos.File.LineSliceDataUpDown(e.Pos.Line, up, down)

			fmt.Fprintln(f, e.Error())
			f.Write([]byte{'\n'})

			var (
				linef = "\t%-d| "
				lines []string
				add   = func(s ...*source.LineData) {
					for _, l := range s {
						lines = append(lines, fmt.Sprintf(linef+"%s", l.Line, string(l.Data)))
					}
				}
			)

			add(upl...)
			add(&source.LineData{Line: e.Pos.Line, Data: l})

			caret := source.Caret(fmt.Sprintf(linef, e.Pos.Line), l, e.Pos.Column)
			if e.Label != "" {
				caret += " " + e.Label
			}
			lines = append(lines, caret)
			add(downl...)
			f.Write([]byte(strings.Join(lines, "\n")))
			if e.Note != "" {
				fmt.Fprintf(f, "\n\tnote: %s", e.Note)
			}
		} else {
			f.Write([]byte(e.Error()))
		}
	case 's':
		f.Write([]byte(e.Error()))
	}
}

// CodeString returns the diagnostic code in its printed form.
func (e *Error) CodeString() string {
	return fmt.Sprintf("COB%04d", e.Code)
}

func (e *Error) Error() string {
	head := fmt.Sprintf("%s[%s]: %s", e.Severity, e.CodeString(), e.Msg)
	if e.Label != "" {
		head += " " + e.Label
	}
	if e.Pos.FileName() != "" || e.Pos.IsValid() {
		return fmt.Sprintf("%s\n\tat %s", head, e.Pos)
	}
	return head
}

// ErrorList is a collection of diagnostics.
type ErrorList []*Error

// Len returns the number of elements in the collection.
func (p ErrorList) Len() int {
	return len(p)
}

func (p ErrorList) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

func (p ErrorList) Less(i, j int) bool {
	e := &p[i].Pos
	f := &p[j].Pos

	if e.FileName() != f.FileName() {
		return e.FileName() < f.FileName()
	}
	if e.Line != f.Line {
		return e.Line < f.Line
	}
	if e.Column != f.Column {
		return e.Column < f.Column
	}
	return p[i].Msg < p[j].Msg
}

// Sort sorts the collection keeping diagnostics at the same position in
// the order they were reported.
func (p ErrorList) Sort() {
	sort.Stable(p)
}

// Codes returns the codes of the collection in order.
func (p ErrorList) Codes() []int {
	codes := make([]int, len(p))
	for i, e := range p {
		codes[i] = e.Code
	}
	return codes
}

// Count returns the number of diagnostics with severity s.
func (p ErrorList) Count(s Severity) (n int) {
	for _, e := range p {
		if e.Severity == s {
			n++
		}
	}
	return
}

func (p ErrorList) Format(f fmt.State, verb rune) {
	l := len(p)
	switch l {
	case 0:
		f.Write([]byte("no errors"))
	case 1:
		p[0].Format(f, verb)
	default:
		p[0].Format(f, verb)
		fmt.Fprintf(f, " (and %d more errors)", l-1)
	}
}

func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}
