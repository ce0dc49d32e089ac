package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/config"
	"github.com/gad-lang/cobol/internal/cli"
)

const nestedProgram = `IDENTIFICATION DIVISION.
PROGRAM-ID. OUTER.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-NAME PIC X(10).
PROCEDURE DIVISION.
    CALL "INNER".
    STOP RUN.
IDENTIFICATION DIVISION.
PROGRAM-ID. INNER IS COMMON.
PROCEDURE DIVISION.
    GOBACK.
END PROGRAM INNER.
END PROGRAM OUTER.
`

const unresolvedProgram = `PROGRAM-ID. DEMO.
PROCEDURE DIVISION.
MAIN-PARA.
    PERFORM WORK-PARA.
    GO TO MISSING-PARA.
WORK-PARA.
    EXIT.
`

const brokenProgram = `PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-A PIC 9V9V9.
`

const authorProgram = `IDENTIFICATION DIVISION.
PROGRAM-ID. DEMO.
AUTHOR. Somebody.
PROCEDURE DIVISION.
    STOP RUN.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	pth := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pth, []byte(content), 0o644))
	return pth
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_Clean(t *testing.T) {
	pth := writeFile(t, "outer.cbl", nestedProgram)
	out, _, err := run(t, "check", pth)
	require.NoError(t, err)
	require.Contains(t, out, "0 errors, 0 warnings")
	require.NotContains(t, out, "files checked")

	other := writeFile(t, "other.cbl", nestedProgram)
	out, _, err = run(t, "check", pth, other)
	require.NoError(t, err)
	require.Contains(t, out, "2 files checked")
}

func TestCheck_ResolutionPass(t *testing.T) {
	pth := writeFile(t, "demo.cbl", unresolvedProgram)
	out, _, err := run(t, "check", pth)
	require.ErrorIs(t, err, cli.ErrDiagnostics)
	require.Contains(t, out, "COB0031")
	require.Contains(t, out, "MISSING-PARA")
	require.Contains(t, out, "1 error,")

	cfg := writeFile(t, "cobolck.yaml", "resolution_pass: false\n")
	_, _, err = run(t, "check", "--config", cfg, pth)
	require.NoError(t, err)
}

func TestCheck_Warnings(t *testing.T) {
	pth := writeFile(t, "author.cbl", authorProgram)
	out, _, err := run(t, "check", pth)
	require.NoError(t, err)
	require.Contains(t, out, "COB0006")
	require.Contains(t, out, "0 errors, 1 warning")
}

func TestCheck_JSON(t *testing.T) {
	pth := writeFile(t, "broken.cbl", brokenProgram)
	out, _, err := run(t, "check", "--format", "json", pth)
	require.ErrorIs(t, err, cli.ErrDiagnostics)

	var diags []struct {
		File     string `json:"file"`
		Line     int    `json:"line"`
		Code     string `json:"code"`
		Severity string `json:"severity"`
		Note     string `json:"note"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &diags))
	require.Len(t, diags, 1)
	require.Equal(t, pth, diags[0].File)
	require.Equal(t, 4, diags[0].Line)
	require.Equal(t, "COB0020", diags[0].Code)
	require.Equal(t, "error", diags[0].Severity)
	require.NotEmpty(t, diags[0].Note)
}

func TestCheck_Suppress(t *testing.T) {
	pth := writeFile(t, "broken.cbl", brokenProgram)
	cfg := writeFile(t, "cobolck.toml", "suppress = [20]\n")
	out, _, err := run(t, "check", "-c", cfg, pth)
	require.NoError(t, err)
	require.NotContains(t, out, "COB0020")
}

func TestCheck_Errors(t *testing.T) {
	_, _, err := run(t, "check", filepath.Join(t.TempDir(), "missing.cbl"))
	require.Error(t, err)
	require.NotErrorIs(t, err, cli.ErrDiagnostics)

	pth := writeFile(t, "outer.cbl", nestedProgram)
	_, _, err = run(t, "check", "--format", "xml", pth)
	require.ErrorIs(t, err, config.ErrUnknownOutput)

	_, _, err = run(t, "check")
	require.Error(t, err)
}

func TestTokens(t *testing.T) {
	pth := writeFile(t, "move.cbl", "move ws-a to ws-b.")
	out, _, err := run(t, "tokens", pth)
	require.NoError(t, err)
	require.Contains(t, out, "MOVE")
	require.Contains(t, out, "WS-A")
	require.Contains(t, out, "6 tokens, 1 lines")

	pth = writeFile(t, "bad.cbl", "MOVE @ TO B.")
	_, errOut, err := run(t, "tokens", pth)
	require.ErrorIs(t, err, cli.ErrDiagnostics)
	require.Contains(t, errOut, "illegal character")
}

func TestPicture(t *testing.T) {
	out, _, err := run(t, "picture", "S9(5)V99", "X(10)")
	require.NoError(t, err)
	require.Contains(t, out, "S9(5)V99: valid, size 7")
	require.Contains(t, out, "X(10): valid, size 10")

	out, _, err = run(t, "picture", "9V9V9")
	require.ErrorIs(t, err, cli.ErrDiagnostics)
	require.Contains(t, out, "9V9V9: invalid")
	require.Contains(t, out, "^")
}

func TestEntries(t *testing.T) {
	pth := writeFile(t, "outer.cbl", nestedProgram)
	out, _, err := run(t, "entries", pth)
	require.NoError(t, err)
	require.Contains(t, out, "program OUTER")
	require.Contains(t, out, "program INNER")
	require.Contains(t, out, "WS-NAME")

	out, _, err = run(t, "entries", "--unit", "inner", pth)
	require.NoError(t, err)
	require.Contains(t, out, "program INNER")
	require.NotContains(t, out, "WS-NAME")

	_, _, err = run(t, "entries", "--unit", "NOPE", pth)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	cli.SetVersionInfo("1.2.3", "abc123", "2026-10-19")
	defer cli.SetVersionInfo("dev", "unknown", "unknown")

	out, _, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "cobolck 1.2.3")
	require.Contains(t, out, "Commit:  abc123")
}

func TestSession_Feed(t *testing.T) {
	cfg := config.Default()
	cfg.Color = false
	s := cli.NewSession(cfg)

	var out bytes.Buffer
	done, res := s.Feed(&out, "IF X = 1")
	require.False(t, done)
	require.Nil(t, res)
	require.True(t, s.Pending())

	done, res = s.Feed(&out, `  DISPLAY "A" END-IF.`)
	require.True(t, done)
	require.Empty(t, res.Errors)
	require.False(t, s.Pending())
	require.Contains(t, out.String(), "ok")

	out.Reset()
	done, res = s.Feed(&out, "ADD 1 TO X END-IF.")
	require.True(t, done)
	require.NotEmpty(t, res.Errors)
	require.Contains(t, out.String(), "COB00")
}

func TestRenderer(t *testing.T) {
	r := cli.NewRenderer(false)
	require.Equal(t, "text", r.Muted("text"))
}
