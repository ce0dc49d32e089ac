package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/scanner"
)

type parseTracer struct {
	out []string
}

func (o *parseTracer) Write(p []byte) (n int, err error) {
	o.out = append(o.out, string(p))
	return len(p), nil
}

type Option func(po *parser.Options, so *scanner.Options)

// WithMode sets the parser mode.
func WithMode(mode parser.Mode) Option {
	return func(po *parser.Options, _ *scanner.Options) {
		po.Mode = mode
	}
}

// ProcedureOnly parses the input as a procedure division body.
func ProcedureOnly() Option {
	return WithMode(parser.ProcedureOnly)
}

// Parse analyzes input and hands the result to do. The parser trace is
// logged when do fails the test.
func Parse(t *testing.T, input string, do func(f *source.File, actual *parser.Result, err error), opt ...Option) {
	testFile := source.NewFile("test", []byte(input))

	var (
		ok      bool
		options = func() (po *parser.Options, so *scanner.Options) {
			po = &parser.Options{}
			so = &scanner.Options{}
			for _, o := range opt {
				o(po, so)
			}
			return
		}
	)
	defer func() {
		if !ok {
			tr := &parseTracer{}
			po, so := options()
			po.Trace = tr
			actual, _ := parser.ParseSource(testFile, po, so)
			if actual != nil {
				t.Logf("Diagnostics:\n%s", Diagnostics(actual))
			}
			t.Logf("Trace:\n%s", strings.Join(tr.out, ""))
		}
	}()

	po, so := options()
	actual, err := parser.ParseSource(testFile, po, so)
	do(testFile, actual, err)
	ok = true
}

// ExpectNoErrors parses input and requires a clean result.
func ExpectNoErrors(t *testing.T, input string, opt ...Option) (result *parser.Result) {
	Parse(t, input, func(f *source.File, actual *parser.Result, err error) {
		require.NoError(t, err)
		require.Empty(t, actual.Errors)
		result = actual
	}, opt...)
	return
}

// ExpectCodes parses input and requires the diagnostic codes, in source
// order.
func ExpectCodes(t *testing.T, input string, codes []int, opt ...Option) (result *parser.Result) {
	Parse(t, input, func(f *source.File, actual *parser.Result, err error) {
		require.Error(t, err)
		require.Equal(t, codes, actual.Errors.Codes())
		result = actual
	}, opt...)
	return
}

// ExpectError parses input and requires at least one diagnostic.
func ExpectError(t *testing.T, input string, opt ...Option) (result *parser.Result) {
	Parse(t, input, func(f *source.File, actual *parser.Result, err error) {
		require.Error(t, err)
		require.True(t, actual.HadErrors)
		result = actual
	}, opt...)
	return
}

// Diagnostics renders the diagnostics of r one per line.
func Diagnostics(r *parser.Result) string {
	var b strings.Builder
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "%d:%d %s %s", e.Pos.Line, e.Pos.Column, e.CodeString(), e.Msg)
		if e.Label != "" {
			b.WriteString(" " + e.Label)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Golden compares actual with the named file under testdata. With update
// set the file is rewritten instead.
func Golden(t *testing.T, name, actual string, update bool) {
	goldenFile := filepath.Join("testdata", name)
	if update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenFile), 0o755))
		require.NoError(t, os.WriteFile(goldenFile, []byte(actual), 0o644))
	}

	golden, err := os.ReadFile(goldenFile)
	require.NoError(t, err)

	expected := strings.ReplaceAll(string(golden), "\r\n", "\n")
	actual = strings.ReplaceAll(actual, "\r\n", "\n")
	if expected == actual {
		return
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: goldenFile,
		ToFile:   "actual",
		Context:  3,
	})
	require.Fail(t, "golden mismatch", "%s", diff)
}
