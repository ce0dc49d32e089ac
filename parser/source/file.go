package source

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// File represents a source file.
type File struct {
	// File name as provided to NewFile
	Name string
	// Lines contains the offset of the first character for each line
	// (the first entry is always 0)
	Lines []int
	// Index is the index of the file in its FileSet
	Index int
	// Data is the file content
	Data []byte
}

// NewFile creates a file from data and computes its line table.
func NewFile(name string, data []byte) *File {
	f := &File{Name: name, Data: data, Lines: []int{0}}
	for i, c := range data {
		if c == '\n' {
			f.AddLine(i + 1)
		}
	}
	return f
}

// ReadFile reads the named file from disk.
func ReadFile(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return NewFile(name, data), nil
}

// Size returns the file size in bytes.
func (f *File) Size() int {
	return len(f.Data)
}

// LineCount returns the current number of lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// AddLine adds a new line start offset. Offsets must be added in
// increasing order; offsets past the end of the file are ignored.
func (f *File) AddLine(offset int) {
	if offset >= len(f.Data) {
		return
	}
	if lc := len(f.Lines); lc > 0 && f.Lines[lc-1] >= offset {
		return
	}
	f.Lines = append(f.Lines, offset)
}

// Position converts a byte offset into a file position.
func (f *File) Position(offset int) (pos SourceFilePos) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Data) {
		offset = len(f.Data)
	}
	i := searchInts(f.Lines, offset)
	return SourceFilePos{
		File:   f,
		Offset: offset,
		Line:   i + 1,
		Column: offset - f.Lines[i] + 1,
	}
}

// LineData return line data without the line terminator.
func (f *File) LineData(line int) (d []byte, valid bool) {
	if line < 1 || line > len(f.Lines) {
		return nil, false
	}
	start := f.Lines[line-1]
	end := len(f.Data)
	if line < len(f.Lines) {
		end = f.Lines[line] - 1
	}
	d = f.Data[start:end]
	if n := len(d); n > 0 && d[n-1] == '\r' {
		d = d[:n-1]
	}
	return d, true
}

// LineSliceData return slice data of lines
func (f *File) LineSliceData(lineStart, count int) (s []*LineData) {
	for i := 0; i < count; i++ {
		if d, ok := f.LineData(lineStart + i); ok {
			s = append(s, &LineData{
				Line: lineStart + i,
				Data: d,
			})
		}
	}
	return
}

// LineSliceDataUpDown returns data of line and slices of up and down lines
func (f *File) LineSliceDataUpDown(line, upCount, downCount int) (up, down []*LineData, s []byte) {
	var ok bool
	if s, ok = f.LineData(line); !ok {
		return
	}

	if line > 1 {
		firstLine := line - upCount
		if firstLine < 1 {
			firstLine = 1
		}

		up = f.LineSliceData(firstLine, line-firstLine)
	}

	if lastLine := len(f.Lines); line < lastLine {
		endLine := line + downCount
		if endLine > lastLine {
			endLine = lastLine
		}
		down = f.LineSliceData(line+1, endLine-line)
	}

	return
}

// TraceLines writes the requested line, up to up lines before and down
// lines after it, and a caret line pointing at column.
func (f *File) TraceLines(s io.Writer, line, column, up, down int) {
	upl, downl, l := f.LineSliceDataUpDown(line, up, down)
	s.Write([]byte{'\n'})

	var (
		linef = "\t%5d| "
		lines []string
		add   = func(s ...*LineData) {
			for _, l := range s {
				lines = append(lines, fmt.Sprintf(linef+"%s", l.Line, string(l.Data)))
			}
		}
	)

	add(upl...)
	add(&LineData{Line: line, Data: l})
	lines = append(lines, Caret(fmt.Sprintf(linef, line), l, column))
	add(downl...)
	s.Write([]byte(strings.Join(lines, "\n")))
}

// Caret returns a line made of prefix-width blanks that keeps the tabs of
// data and ends with a caret under column.
func Caret(prefix string, data []byte, column int) string {
	if column < 1 {
		column = 1
	}
	var b strings.Builder
	b.WriteByte('\t')
	for i := 1; i < len(prefix); i++ {
		b.WriteByte(' ')
	}
	for i := 0; i < column-1; i++ {
		if i < len(data) && data[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

type LineData struct {
	Line int
	Data []byte
}

func searchInts(a []int, x int) int {
	// This function body is a manually inlined version of:
	//   return sort.Search(len(a), func(i int) bool { return a[i] > x }) - 1
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2 // avoid overflow when computing h
		// i ≤ h < j
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}
