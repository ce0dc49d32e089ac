package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/parser/source"
	"github.com/gad-lang/cobol/picture"
)

func newPictureCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "picture [strings...]",
		Short: "Validate picture character strings and print their size",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			var (
				out     = cmd.OutOrStdout()
				r       = NewRenderer(cfg.Color)
				invalid bool
			)
			for _, pic := range args {
				valid, size, violations := picture.Validate(pic)
				if valid {
					fmt.Fprintf(out, "%s: valid, size %d\n", pic, size)
					continue
				}

				invalid = true
				fmt.Fprintf(out, "%s: invalid\n", pic)
				for _, v := range violations {
					prefix := "\t| "
					fmt.Fprintln(out, prefix+pic)
					fmt.Fprintln(out, source.Caret(prefix, []byte(pic), columnOf(pic, v.Index))+" "+r.Muted(v.Note))
				}
			}
			if invalid {
				return ErrDiagnostics
			}
			return nil
		},
	}
}

// columnOf converts the rune index i of s to a 1-based byte column.
func columnOf(s string, i int) int {
	n := 0
	for off := range s {
		if n == i {
			return off + 1
		}
		n++
	}
	return len(strings.TrimRight(s, " ")) + 1
}
