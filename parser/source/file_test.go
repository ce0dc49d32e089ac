package source

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile_LineData(t *testing.T) {
	for _, tt := range []struct {
		data  string
		line  int
		want  string
		valid bool
	}{
		{"", 1, "", true},
		{"", 2, "", false},
		{"a b\nc  d\r\ne f", 1, "a b", true},
		{"a b\nc  d\r\ne f", 2, "c  d", true},
		{"a b\nc  d\r\ne f", 3, "e f", true},
		{"a b\nc  d\r\ne f", 4, "", false},
		{"x\n", 1, "x", true},
		{"x\n", 2, "", false},
		{"\n\ny", 3, "y", true},
	} {
		f := NewFile("mem", []byte(tt.data))
		got, valid := f.LineData(tt.line)
		require.Equal(t, tt.valid, valid, "%q line %d", tt.data, tt.line)
		require.Equal(t, tt.want, string(got), "%q line %d", tt.data, tt.line)
	}
}

func TestFile_Position(t *testing.T) {
	f := NewFile("prog.cob", []byte("IDENTIFICATION DIVISION.\nPROGRAM-ID. A.\n"))
	pos := f.Position(26)
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 2, pos.Column)
	require.Equal(t, "prog.cob:2:2", pos.String())

	require.Equal(t, 1, f.Position(-5).Line)
	require.Equal(t, "-", SourceFilePos{}.String())
	require.Equal(t, "3:4", SourceFilePos{Line: 3, Column: 4}.String())
}

func TestFile_TraceLines(t *testing.T) {
	f := NewFile("mem", []byte("A.\n\tMOVE X TO Y.\nC."))
	var buf bytes.Buffer
	f.TraceLines(&buf, 2, 3, 1, 1)
	require.Equal(t, "\n\t    1| A.\n\t    2| \tMOVE X TO Y.\n\t       \t ^\n\t    3| C.", buf.String())
}

func TestFileSet(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddFileData("a", []byte("abc"))
	b := fs.AddFileData("b", []byte("de"))
	require.Equal(t, 0, a.Index)
	require.Equal(t, 1, b.Index)
	require.Equal(t, 5, fs.Size())
}
