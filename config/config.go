// Package config loads analyzer settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/scanner"
)

// Format is a configuration file format.
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// Output formats of the check command.
const (
	OutputHuman = "human"
	OutputJSON  = "json"
)

var ErrUnknownOutput = errors.New("unknown output format")

// Config holds the analyzer settings.
type Config struct {
	// Suppress lists diagnostic codes that are never reported.
	Suppress []int `toml:"suppress" yaml:"suppress"`
	// MaxErrors caps the recorded diagnostics; zero means no limit.
	MaxErrors      int    `toml:"max_errors" yaml:"max_errors"`
	Color          bool   `toml:"color" yaml:"color"`
	Trace          bool   `toml:"trace" yaml:"trace"`
	ResolutionPass bool   `toml:"resolution_pass" yaml:"resolution_pass"`
	FixedFormat    bool   `toml:"fixed_format" yaml:"fixed_format"`
	Format         string `toml:"format" yaml:"format"`
}

// Default returns the settings used without a configuration file.
func Default() *Config {
	return &Config{
		Color:          true,
		ResolutionPass: true,
		Format:         OutputHuman,
	}
}

// Load reads the file at path, detecting its format from the extension.
// Missing keys keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data over the default settings.
func Parse(data []byte, format Format) (*Config, error) {
	c := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.Decode(string(data), c); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DetectFormat returns the format implied by the file extension. Unknown
// extensions are read as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Validate checks the setting values.
func (c *Config) Validate() error {
	switch c.Format {
	case "":
		c.Format = OutputHuman
	case OutputHuman, OutputJSON:
	default:
		return fmt.Errorf("%w %q", ErrUnknownOutput, c.Format)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	return nil
}

// ParserOptions returns the parser options of c. Trace output goes to w
// when tracing is enabled.
func (c *Config) ParserOptions(w io.Writer) *parser.Options {
	opts := &parser.Options{
		Suppress:  append([]int(nil), c.Suppress...),
		MaxErrors: c.MaxErrors,
	}
	if c.Trace && w != nil {
		opts.Trace = w
	}
	return opts
}

// ScannerOptions returns the tokenizer options of c.
func (c *Config) ScannerOptions() *scanner.Options {
	opts := &scanner.Options{Mode: scanner.UpperCase}
	if c.FixedFormat {
		opts.Mode.Set(scanner.FixedFormat)
	}
	return opts
}
