package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/parser/source"
)

func newEntriesCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries [file]",
		Short: "Print the entities declared in every source unit of a file",
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

			a := analyze(file, cfg, cfg.ParserOptions(traceWriter(cmd, cfg)))
			out := cmd.OutOrStdout()

			if name, _ := cmd.Flags().GetString("unit"); name != "" {
				u := a.Result.Unit(name)
				if u == nil {
					return fmt.Errorf("no source unit named %s in %s", name, args[0])
				}
				fmt.Fprint(out, u.Tree())
			} else {
				for _, u := range a.Result.Units {
					if u.Parent == nil {
						fmt.Fprint(out, u.Tree())
					}
				}
			}

			if a.Result.HadErrors {
				r := NewRenderer(cfg.Color)
				r.Diagnostics(cmd.ErrOrStderr(), a.Result.Errors)
				return ErrDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().StringP("unit", "u", "", "Only print the named source unit")
	return cmd
}
