package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/token"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		word    string
		kind    token.Kind
		context token.Context
	}{
		{"display", token.Reserved, token.IsStatement},
		{"END-ADD", token.Reserved, token.IsScopeTerminator},
		{"Organization", token.Reserved, token.IsClause},
		{"zeroes", token.Figurative, token.NoContext},
		{"STANDARD-OUTPUT", token.Device, token.NoContext},
		{"DIVISION", token.Reserved, token.NoContext},
		{"PAYROLL", token.Identifier, token.NoContext},
		{"SQRT", token.Identifier, token.NoContext},
	} {
		t.Run(tt.word, func(t *testing.T) {
			k, c := token.Lookup(tt.word)
			require.Equal(t, tt.kind, k)
			require.Equal(t, tt.context, c)
		})
	}
	require.True(t, token.IsIntrinsic("sqrt"))
	require.False(t, token.IsIntrinsic("PAYROLL"))
}

func TestKind(t *testing.T) {
	require.True(t, token.Numeric.IsLiteral())
	require.True(t, token.Figurative.IsLiteral())
	require.False(t, token.Identifier.IsLiteral())
	require.True(t, token.HexNational.IsStringLiteral())
	require.False(t, token.Numeric.IsStringLiteral())
	require.Equal(t, "IDENT", token.Identifier.String())
	require.Equal(t, "user-defined word", token.Identifier.Display())
	require.Equal(t, "kind(99)", token.Kind(99).String())
}

func TestTokenValue(t *testing.T) {
	tok := token.Token{Value: "end-if", Kind: token.Reserved}
	require.True(t, tok.Is("IF", "END-IF"))
	require.False(t, tok.Is("IF"))

	num := token.Token{Value: "12.50", Kind: token.Numeric}
	d, err := num.Decimal()
	require.NoError(t, err)
	require.Equal(t, "12.5", d.String())
	require.Equal(t, -1, num.Int())
	require.Equal(t, 3, token.Token{Value: "3", Kind: token.Numeric}.Int())

	_, err = tok.Decimal()
	require.Error(t, err)

	eof := token.NewEOF(tok.Pos)
	require.True(t, eof.IsEOF())
	require.Equal(t, token.IsEOF, eof.Context)
}
