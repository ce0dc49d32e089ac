// Package cli implements the cobolck command line front end.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gad-lang/cobol/config"
)

// ErrDiagnostics is returned when an analyzed input had errors. The
// diagnostics themselves are already printed.
var ErrDiagnostics = errors.New("errors found")

// Version information, set by the main package.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

func versionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

type globalFlags struct {
	config  string
	trace   bool
	noColor bool
	fixed   bool
}

// NewRootCommand builds the cobolck command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "cobolck",
		Short: "Syntax checker for COBOL source units",
		Long: `cobolck analyzes COBOL source files, reports diagnostics with source
excerpts and shows the entities declared in every source unit.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.config, "config", "c", "", "Configuration file (TOML or YAML)")
	flags.BoolVar(&g.trace, "trace", false, "Print the parser trace to stderr")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&g.fixed, "fixed", false, "Read sources in fixed reference format")

	root.AddCommand(
		newCheckCommand(g),
		newTokensCommand(g),
		newPictureCommand(g),
		newEntriesCommand(g),
		newReplCommand(g),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// load returns the configuration file settings overridden by the flags
// set on cmd.
func (g *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if g.config != "" {
		var err error
		if cfg, err = config.Load(g.config); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("trace") {
		cfg.Trace = g.trace
	}
	if flags.Changed("no-color") {
		cfg.Color = !g.noColor
	}
	if flags.Changed("fixed") {
		cfg.FixedFormat = g.fixed
	}
	return cfg, nil
}

func traceWriter(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if !cfg.Trace {
		return nil
	}
	return cmd.ErrOrStderr()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cobolck %s\n", versionString())
			fmt.Fprintf(out, "  Version: %s\n", version)
			fmt.Fprintf(out, "  Commit:  %s\n", commit)
			fmt.Fprintf(out, "  Date:    %s\n", date)
		},
	}
}
