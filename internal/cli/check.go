package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/config"
	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/parser/source"
)

// analysis is the outcome of analyzing one file.
type analysis struct {
	File   *source.File
	Result *parser.Result
}

// analyze runs the first pass over file and, when it is clean and the
// configuration asks for it, the resolution pass.
func analyze(file *source.File, cfg *config.Config, opts *parser.Options) *analysis {
	p := parser.NewSourceParser(file, opts, cfg.ScannerOptions())
	res, _ := p.ParseFile()
	if cfg.ResolutionPass && !res.HadErrors {
		res, _ = p.ResolutionPass(res)
	}
	return &analysis{File: file, Result: res}
}

type jsonDiagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Label    string `json:"label,omitempty"`
	Note     string `json:"note,omitempty"`
}

func newCheckCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Analyze COBOL source files and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			if format, _ := cmd.Flags().GetString("format"); format != "" {
				cfg.Format = format
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			var (
				out    = cmd.OutOrStdout()
				r      = NewRenderer(cfg.Color)
				failed bool
				diags  = []jsonDiagnostic{}
				fs     = source.NewFileSet()
			)
			for _, name := range args {
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", name, err)
				}
				file := fs.AddFileData(name, data)

				a := analyze(file, cfg, cfg.ParserOptions(traceWriter(cmd, cfg)))
				failed = failed || a.Result.HadErrors

				if cfg.Format == config.OutputJSON {
					for _, e := range a.Result.Errors {
						diags = append(diags, jsonDiagnostic{
							File:     name,
							Line:     e.Pos.Line,
							Column:   e.Pos.Column,
							Code:     e.CodeString(),
							Severity: e.Severity.String(),
							Message:  e.Msg,
							Label:    e.Label,
							Note:     e.Note,
						})
					}
					continue
				}

				r.Diagnostics(out, a.Result.Errors)
				fmt.Fprintln(out, r.Summary(name, file.Size(), a.Result, a.Result.Dropped))
			}

			if cfg.Format == config.OutputHuman && len(fs.Files) > 1 {
				fmt.Fprintln(out, r.Muted(fmt.Sprintf("%s files checked, %s",
					humanize.Comma(int64(len(fs.Files))), humanize.Bytes(uint64(fs.Size())))))
			}
			if cfg.Format == config.OutputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(diags); err != nil {
					return err
				}
			}
			if failed {
				return ErrDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "Output format (human, json)")
	return cmd
}
