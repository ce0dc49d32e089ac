package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/scanner"
)

func newTokensCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the classified token sequence of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			file, err := source.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}

			tokens, errs := scanner.Tokenize(file, cfg.ScannerOptions())
			out := cmd.OutOrStdout()
			for i, t := range tokens {
				fmt.Fprintf(out, "%5d %5d:%-3d %-12s %-24s %s\n",
					i, t.Pos.Line, t.Pos.Column, t.Kind, t.Value, t.Context)
			}

			r := NewRenderer(cfg.Color)
			fmt.Fprintln(out, r.Muted(fmt.Sprintf("%s tokens, %s lines",
				humanize.Comma(int64(len(tokens))), humanize.Comma(int64(file.LineCount())))))

			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return ErrDiagnostics
			}
			return nil
		},
	}
}
