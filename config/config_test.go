package config_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/config"
	"github.com/gad-lang/cobol/scanner"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.True(t, c.Color)
	require.True(t, c.ResolutionPass)
	require.Equal(t, config.OutputHuman, c.Format)
	require.NoError(t, c.Validate())
}

func TestDetectFormat(t *testing.T) {
	require.Equal(t, config.FormatYAML, config.DetectFormat("a/b.YML"))
	require.Equal(t, config.FormatYAML, config.DetectFormat("b.yaml"))
	require.Equal(t, config.FormatTOML, config.DetectFormat("b.toml"))
	require.Equal(t, config.FormatTOML, config.DetectFormat("cobolck"))
	require.Equal(t, "yaml", config.FormatYAML.String())
}

func TestLoad_TOML(t *testing.T) {
	c, err := config.Load(filepath.Join("testdata", "cobolck.toml"))
	require.NoError(t, err)
	require.Equal(t, []int{25, 132}, c.Suppress)
	require.Equal(t, 50, c.MaxErrors)
	require.False(t, c.Color)
	require.True(t, c.FixedFormat)
	require.True(t, c.ResolutionPass)
	require.Equal(t, config.OutputJSON, c.Format)

	opts := c.ScannerOptions()
	require.True(t, opts.Mode.Has(scanner.FixedFormat))
	require.True(t, opts.Mode.Has(scanner.UpperCase))
}

func TestLoad_YAML(t *testing.T) {
	c, err := config.Load(filepath.Join("testdata", "cobolck.yaml"))
	require.NoError(t, err)
	require.Equal(t, []int{5}, c.Suppress)
	require.True(t, c.Trace)
	require.False(t, c.ResolutionPass)
	require.True(t, c.Color)
	require.Equal(t, config.OutputHuman, c.Format)

	var buf bytes.Buffer
	opts := c.ParserOptions(&buf)
	require.Equal(t, []int{5}, opts.Suppress)
	require.NotNil(t, opts.Trace)

	c.Trace = false
	require.Nil(t, c.ParserOptions(&buf).Trace)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join("testdata", "missing.toml"))
	require.Error(t, err)

	_, err = config.Parse([]byte(`format = "xml"`), config.FormatTOML)
	require.ErrorIs(t, err, config.ErrUnknownOutput)

	_, err = config.Parse([]byte("max_errors = -1"), config.FormatTOML)
	require.Error(t, err)

	_, err = config.Parse([]byte("suppress: [1"), config.FormatYAML)
	require.Error(t, err)
}
