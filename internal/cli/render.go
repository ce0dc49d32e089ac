package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/gad-lang/cobol/parser"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
)

// Renderer prints diagnostics in the human readable format.
type Renderer struct {
	Color bool
	// Context is the number of source lines printed above and below the
	// offending line.
	Context int

	styles map[parser.Severity]lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
}

func NewRenderer(color bool) *Renderer {
	return &Renderer{
		Color:   color,
		Context: 1,
		styles: map[parser.Severity]lipgloss.Style{
			parser.SeverityError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
			parser.SeverityWarning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		},
		muted: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		ok:    lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	}
}

// Diagnostic renders e with its source excerpt. The first line is
// colored by severity.
func (r *Renderer) Diagnostic(e *parser.Error) string {
	full := fmt.Sprintf("%+*.*v", r.Context, r.Context, e)
	if !r.Color {
		return full
	}
	head, rest, found := strings.Cut(full, "\n")
	head = r.styles[e.Severity].Render(head)
	if !found {
		return head
	}
	return head + "\n" + rest
}

// Diagnostics writes every diagnostic of errs followed by a blank line.
func (r *Renderer) Diagnostics(w io.Writer, errs parser.ErrorList) {
	for _, e := range errs {
		fmt.Fprintln(w, r.Diagnostic(e))
		fmt.Fprintln(w)
	}
}

// Summary returns the one line outcome of analyzing a file.
func (r *Renderer) Summary(name string, size int, res *parser.Result, dropped int) string {
	var (
		errs  = res.Errors.Count(parser.SeverityError)
		warns = res.Errors.Count(parser.SeverityWarning)
	)
	line := fmt.Sprintf("%s (%s): %s %s, %s %s",
		name, humanize.Bytes(uint64(size)),
		humanize.Comma(int64(errs)), plural(errs, "error"),
		humanize.Comma(int64(warns)), plural(warns, "warning"))
	if dropped > 0 {
		line += fmt.Sprintf(", %s not shown", humanize.Comma(int64(dropped)))
	}
	if !r.Color {
		return line
	}
	if errs == 0 && !res.HadErrors {
		return r.ok.Render(line)
	}
	return r.styles[parser.SeverityError].Render(line)
}

// Muted renders secondary text.
func (r *Renderer) Muted(s string) string {
	if !r.Color {
		return s
	}
	return r.muted.Render(s)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
