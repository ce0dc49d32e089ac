// Package picture validates picture character strings of data description
// entries and computes the storage size they describe.
package picture

import (
	"strconv"
	"strings"
	"unicode"
)

// Violation is a broken picture string rule.
type Violation struct {
	// Index is the rune offset of the offending symbol.
	Index int
	Note  string
}

func (v Violation) Error() string {
	return v.Note
}

const (
	NoteSignFirst      = "Symbol 'S' must be the first symbol of the picture string."
	NoteNationalOnly   = "Symbol 'N' must not follow any symbols other than 'N'."
	NoteBooleanOnly    = "Symbol '1' must not follow any symbols other than '1'."
	NoteAlphanumeric   = "Symbols 'A' and 'X' may only follow the symbols '9', 'A' or 'X'."
	NoteDecimalOnce    = "Symbol 'V' may only appear once in the same picture string."
	NoteDecimalScaling = "Symbols 'V' and 'P' must not follow the symbols 'A', 'X', '1', 'N' or 'E'."
	NoteScalingOnce    = "Symbol 'P' or a string of 'P' may only appear once in a picture clause."
	NoteUnbalanced     = "A repeat count must be enclosed in parentheses: missing ')'."
	NoteUnopened       = "Unexpected ')' without a matching '('."
	NoteRepeatCount    = "A repeat count must be an unsigned integer greater than zero."
	NoteEmpty          = "A picture character string must contain at least one symbol."
)

type symbols map[rune]bool

func (s symbols) any(chars ...rune) bool {
	for _, c := range chars {
		if s[c] {
			return true
		}
	}
	return false
}

// Validate checks picture left to right. Every violated rule is reported
// and the scan continues; size is computed on a best effort basis even when
// the string is invalid.
func Validate(picture string) (valid bool, size int, violations []Violation) {
	var (
		runes     = []rune(picture)
		set       = symbols{}
		afterV    bool
		prevSized bool
	)

	violate := func(i int, note string) {
		violations = append(violations, Violation{Index: i, Note: note})
	}

	if len(runes) == 0 {
		violate(0, NoteEmpty)
	}

	for i := 0; i < len(runes); i++ {
		ch := unicode.ToUpper(runes[i])

		switch ch {
		case '(':
			end := i + 1
			for end < len(runes) && runes[end] != ')' {
				end++
			}
			if end >= len(runes) {
				violate(i, NoteUnbalanced)
				i = len(runes)
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(string(runes[i+1 : end])))
			if err != nil || n < 1 {
				violate(i, NoteRepeatCount)
			} else if prevSized {
				size += n - 1
			}
			i = end
			continue
		case ')':
			violate(i, NoteUnopened)
			continue
		}

		if ch == 'S' && len(set) > 0 {
			violate(i, NoteSignFirst)
		}
		if ch == 'N' && set.any('9', 'A', 'X', 'S', 'V', 'P', '1', 'E') {
			violate(i, NoteNationalOnly)
		}
		if ch == '1' && set.any('9', 'A', 'X', 'S', 'V', 'P', 'N', 'E') {
			violate(i, NoteBooleanOnly)
		}
		if (ch == 'A' || ch == 'X') && set.any('S', 'V', 'P', '1', 'N', 'E') {
			violate(i, NoteAlphanumeric)
		}
		if ch == 'V' && set['V'] {
			violate(i, NoteDecimalOnce)
		}
		if (ch == 'V' || ch == 'P') && set.any('A', 'X', '1', 'N', 'E') {
			violate(i, NoteDecimalScaling)
		}
		if ch == 'V' && !set['V'] {
			afterV = true
		}

		if ch == 'P' {
			if set.any('9', 'P') && afterV {
				violate(i, NoteScalingOnce)
			}
			j := i
			for j < len(runes) && unicode.ToUpper(runes[j]) == 'P' {
				j++
			}
			size += j - i
			if !set['9'] || afterV {
				afterV = true
			}
			set['P'] = true
			prevSized = true
			i = j - 1
			continue
		}

		set[ch] = true
		switch ch {
		case 'S', 'V':
			prevSized = false
		default:
			size++
			prevSized = true
		}
	}

	return len(violations) == 0, size, violations
}
