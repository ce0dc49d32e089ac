package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/config"
	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/parser/source"
)

const (
	replPrompt     = "cobol> "
	replContinue   = "  ...> "
	replQuit       = ":quit"
	replHelp       = ":help"
	replHelpText   = "Enter procedure division statements. A sentence ends with a separator period.\n:quit leaves the session."
	replSourceName = "(repl)"
)

// Session checks procedure division sentences typed one at a time.
type Session struct {
	cfg *config.Config
	r   *Renderer
	buf strings.Builder
	n   int
}

func NewSession(cfg *config.Config) *Session {
	return &Session{cfg: cfg, r: NewRenderer(cfg.Color)}
}

// Pending reports whether an incomplete sentence is buffered.
func (s *Session) Pending() bool {
	return s.buf.Len() > 0
}

// Feed adds a line to the buffered sentence. Once the sentence ends with
// a separator period it is analyzed and the diagnostics are written to w.
func (s *Session) Feed(w io.Writer, line string) (done bool, result *parser.Result) {
	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)

	text := strings.TrimRight(s.buf.String(), " \t")
	if !strings.HasSuffix(text, ".") {
		return false, nil
	}
	s.buf.Reset()
	s.n++

	file := source.NewFile(fmt.Sprintf("%s:%d", replSourceName, s.n), []byte(text))
	opts := s.cfg.ParserOptions(nil)
	opts.Mode.Set(parser.ProcedureOnly)
	result, _ = parser.ParseSource(file, opts, s.cfg.ScannerOptions())

	if len(result.Errors) == 0 {
		fmt.Fprintln(w, s.r.Muted("ok"))
	} else {
		s.r.Diagnostics(w, result.Errors)
	}
	return true, result
}

func newReplCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Check procedure division statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			session := NewSession(cfg)
			out := cmd.OutOrStdout()

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)
			line.SetMultiLineMode(true)

			fmt.Fprintln(out, replHelpText)
			for {
				prompt := replPrompt
				if session.Pending() {
					prompt = replContinue
				}

				input, err := line.Prompt(prompt)
				if err != nil {
					if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
						return nil
					}
					return err
				}

				switch strings.TrimSpace(input) {
				case replQuit:
					return nil
				case replHelp:
					fmt.Fprintln(out, replHelpText)
					continue
				case "":
					continue
				}

				line.AppendHistory(input)
				session.Feed(out, input)
			}
		},
	}
}
