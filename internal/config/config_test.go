// If you are AI: This file contains unit tests for configuration loading and validation.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amfscope/internal/core/protocol/amf"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.Decode.Command)
	assert.Equal(t, int64(16<<20), cfg.Decode.MaxInput)
	assert.Equal(t, FormatHex, cfg.Output.Format)
	assert.Equal(t, 16, cfg.Output.Columns)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, 4, cfg.Capture.Workers)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amfscope.yaml")
	data := []byte(`
decode:
  command: true
output:
  format: tree
  columns: 8
  color: never
palette:
  string: "#f9e2af"
  error: "196"
capture:
  workers: 2
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Decode.Command)
	assert.Equal(t, int64(16<<20), cfg.Decode.MaxInput, "unset fields keep defaults")
	assert.Equal(t, FormatTree, cfg.Output.Format)
	assert.Equal(t, 8, cfg.Output.Columns)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, "196", cfg.Palette["error"])
	assert.Equal(t, 2, cfg.Capture.Workers)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("output:\n  colour: never\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"format", func(c *Config) { c.Output.Format = "json" }},
		{"columns", func(c *Config) { c.Output.Columns = 65 }},
		{"color", func(c *Config) { c.Output.Color = "sometimes" }},
		{"depth", func(c *Config) { c.Output.MaxDepth = -1 }},
		{"max input", func(c *Config) { c.Decode.MaxInput = -1 }},
		{"workers", func(c *Config) { c.Capture.Workers = 0 }},
		{"palette colour", func(c *Config) { c.Palette = map[string]string{"string": "yellow"} }},
		{"palette index", func(c *Config) { c.Palette = map[string]string{"string": "300"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateUnknownTag(t *testing.T) {
	cfg := Default()
	cfg.Palette = map[string]string{"bogus": "#000000"}

	err := cfg.Validate()
	assert.True(t, errors.Is(err, amf.ErrUnknownTag))
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "amfscope.example.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default().Decode, cfg.Decode)
	assert.Equal(t, Default().Output, cfg.Output)
	assert.Len(t, cfg.Palette, 3)
}
