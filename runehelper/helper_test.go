package runehelper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gad-lang/cobol/runehelper"
)

func TestIsWordRunes(t *testing.T) {
	assert.True(t, runehelper.IsWordRunes([]rune("WS-TOTAL")))
	assert.True(t, runehelper.IsWordRunes([]rune("1ST-PASS")))
	assert.True(t, runehelper.IsWordRunes([]rune("a_b")))
	assert.False(t, runehelper.IsWordRunes([]rune("123")))
	assert.False(t, runehelper.IsWordRunes([]rune("-X")))
	assert.False(t, runehelper.IsWordRunes([]rune("X-")))
	assert.False(t, runehelper.IsWordRunes(nil))
}

func TestDigits(t *testing.T) {
	assert.True(t, runehelper.IsHexDigit('f'))
	assert.False(t, runehelper.IsHexDigit('g'))
	assert.Equal(t, 11, runehelper.DigitVal('B'))
	assert.True(t, runehelper.IsSpace('\r'))
}
