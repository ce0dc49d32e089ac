package picture

import (
	"strings"
)

// Category is the data category described by a picture string.
type Category int

const (
	Unknown Category = iota
	Alphabetic
	Alphanumeric
	AlphanumericEdited
	Boolean
	National
	NationalEdited
	Numeric
	NumericEdited
)

var categories = [...]string{
	Unknown:            "unknown",
	Alphabetic:         "alphabetic",
	Alphanumeric:       "alphanumeric",
	AlphanumericEdited: "alphanumeric-edited",
	Boolean:            "boolean",
	National:           "national",
	NationalEdited:     "national-edited",
	Numeric:            "numeric",
	NumericEdited:      "numeric-edited",
}

func (c Category) String() string {
	if 0 <= c && int(c) < len(categories) {
		return categories[c]
	}
	return categories[Unknown]
}

// Classify returns the category of a picture string. Repeat counts are
// ignored; invalid strings are classified by the symbols they contain.
func Classify(picture string) Category {
	var (
		upper = strings.ToUpper(stripRepeats(picture))
		has   = func(chars string) bool { return strings.ContainsAny(upper, chars) }
		only  = func(chars string) bool {
			return upper != "" && strings.Trim(upper, chars) == ""
		}
	)

	switch {
	case upper == "":
		return Unknown
	case only("A"):
		return Alphabetic
	case only("1"):
		return Boolean
	case only("N"):
		return National
	case only("9SVP"):
		return Numeric
	case has("N"):
		return NationalEdited
	case has("XA"):
		if has("B0/") {
			return AlphanumericEdited
		}
		return Alphanumeric
	}
	return NumericEdited
}

func stripRepeats(picture string) string {
	var b strings.Builder
	depth := 0
	for _, r := range picture {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
