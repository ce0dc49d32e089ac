package runehelper

import (
	"unicode"
	"unicode/utf8"
)

func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

// IsWord reports whether ch may appear inside a COBOL word.
func IsWord(ch rune) bool {
	return IsWordStart(ch) || ch == '-'
}

// IsWordStart reports whether ch may start a COBOL word. Words may start
// with a digit as long as they contain a letter somewhere.
func IsWordStart(ch rune) bool {
	return IsDigit(ch) || IsLetter(ch) || ch == '_'
}

// IsWordRunes reports whether s is a valid COBOL word: word characters
// only, at least one letter, and no leading or trailing hyphen.
func IsWordRunes(s []rune) bool {
	if len(s) == 0 || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	letter := false
	for _, r := range s {
		if !IsWord(r) {
			return false
		}
		if IsLetter(r) {
			letter = true
		}
	}
	return letter
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' ||
		ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

func IsHexDigit(ch rune) bool {
	return DigitVal(ch) < 16
}

func IsSpace(ch rune) bool {
	return ch == '\n' || ch == '\r' || IsSingleSpace(ch)
}

func IsSingleSpace(ch rune) bool {
	return ch == ' ' || ch == '\t'
}

func DigitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16 // larger than any legal digit val
}
