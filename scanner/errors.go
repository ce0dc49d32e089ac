package scanner

import (
	"fmt"

	"github.com/gad-lang/cobol/parser/source"
)

// Error represents a lexical error.
type Error struct {
	Pos source.SourceFilePos
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.FileName() != "" || e.Pos.IsValid() {
		return fmt.Sprintf("Scan Error: %s\n\tat %s", e.Msg, e.Pos)
	}
	return fmt.Sprintf("Scan Error: %s", e.Msg)
}

// ErrorList is a collection of lexical errors.
type ErrorList []*Error

// Add adds a new error to the collection.
func (p *ErrorList) Add(pos source.SourceFilePos, msg string) {
	*p = append(*p, &Error{pos, msg})
}

// Len returns the number of elements in the collection.
func (p ErrorList) Len() int {
	return len(p)
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
