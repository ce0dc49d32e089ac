package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/parser"
)

func TestIdentifier(t *testing.T) {
	for _, tt := range []struct {
		input      string
		allowed    parser.IdentifierType
		kind       parser.IdentifierKind
		name       string
		qualifiers []string
		subscript  bool
		codes      []int
	}{
		{"WS-A", parser.Receiving, parser.DataReference, "WS-A", nil, false, nil},
		{"WS-A OF WS-B IN WS-C", parser.Receiving, parser.DataReference, "WS-A", []string{"WS-B", "WS-C"}, false, nil},
		{"WS-A (1, 2)", parser.Receiving, parser.DataReference, "WS-A", nil, true, nil},
		{"WS-A (WS-I (1)) (2:3)", parser.Sending, parser.DataReference, "WS-A", nil, true, nil},
		{"FUNCTION LENGTH(WS-A)", parser.Sending, parser.FunctionCall, "LENGTH", nil, true, nil},
		{"FUNCTION CURRENT-DATE", parser.Sending, parser.FunctionCall, "CURRENT-DATE", nil, false, nil},
		{"FUNCTION LENGTH(WS-A)", parser.Receiving, parser.FunctionCall, "LENGTH", nil, true, []int{15}},
		{"ADDRESS OF WS-A", parser.DataAddress, parser.DataAddressReference, "WS-A", nil, false, nil},
		{"ADDRESS OF WS-A", parser.Receiving, parser.DataAddressReference, "WS-A", nil, false, []int{15}},
		{`ADDRESS OF PROGRAM "SUB"`, parser.Sending, parser.ProgramAddressReference, "SUB", nil, false, nil},
		{"ADDRESS OF FUNCTION TWICE", parser.FunctionAddress, parser.FunctionAddressReference, "TWICE", nil, false, nil},
		{"NULL", parser.NullAddress, parser.NullReference, "NULL", nil, false, nil},
		{"NULL", parser.Receiving, parser.NullReference, "NULL", nil, false, []int{15}},
		{"SELF", parser.Sending, parser.SelfReference, "SELF", nil, false, nil},
		{"EXCEPTION-OBJECT", parser.Receiving, parser.ExceptionObjectReference, "EXCEPTION-OBJECT", nil, false, []int{15}},
		{"LINAGE-COUNTER OF PRINT-FILE", parser.Sending, parser.LinageCounterReference, "LINAGE-COUNTER", []string{"PRINT-FILE"}, false, nil},
		{`WS-OBJ :: "getName"`, parser.Sending, parser.MethodInvocationReference, "WS-OBJ", nil, false, nil},
		{`WS-OBJ :: "getName"`, parser.Receiving, parser.MethodInvocationReference, "WS-OBJ", nil, false, []int{15}},
		{"WS-OBJ AS UNIVERSAL", parser.ObjectView, parser.ObjectViewReference, "WS-OBJ", nil, false, nil},
		{"12", parser.Sending, parser.NotIdentifier, "12", nil, false, []int{1}},
	} {
		t.Run(tt.input, func(t *testing.T) {
			p := newParser(t, tt.input, nil)
			res := p.Identifier(tt.allowed)

			require.Equal(t, tt.kind, res.Kind)
			require.Equal(t, tt.name, res.Name())
			require.Equal(t, tt.subscript, res.Subscripted)
			if tt.kind != parser.NotIdentifier {
				require.Equal(t, tt.codes == nil, res.Allowed)
			}

			var qualifiers []string
			for _, q := range res.Qualifiers {
				qualifiers = append(qualifiers, q.Value)
			}
			require.Equal(t, tt.qualifiers, qualifiers)

			if tt.codes == nil {
				require.Empty(t, p.Errors)
			} else {
				require.Equal(t, tt.codes, p.Errors.Codes())
			}
			// the identifier is consumed even when it is reported
			require.True(t, p.Current().IsEOF(), "stopped at %s", p.Current())
		})
	}
}

func TestIdentifierKind_String(t *testing.T) {
	require.Equal(t, "ADDRESS OF", parser.DataAddressReference.String())
	require.Equal(t, "not an identifier", parser.IdentifierKind(99).String())
}
