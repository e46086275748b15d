// If you are AI: This file defines the configuration structure for amfscope.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatHex  = "hex"
	FormatTree = "tree"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the complete tool configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Decode  DecodeConfig      `yaml:"decode"`
	Output  OutputConfig      `yaml:"output"`
	Palette map[string]string `yaml:"palette,omitempty"` // Tag name to colour overrides
	Capture CaptureConfig     `yaml:"capture"`
}

// DecodeConfig defines how input buffers are decoded.
type DecodeConfig struct {
	Command  bool  `yaml:"command"`   // Treat the first byte as a format selector
	MaxInput int64 `yaml:"max_input"` // Maximum decompressed input size in bytes
}

// OutputConfig defines how results are rendered.
type OutputConfig struct {
	Format   string `yaml:"format"`    // hex, tree, yaml or cbor
	Columns  int    `yaml:"columns"`   // Bytes per hex dump row
	Color    string `yaml:"color"`     // auto, always or never
	MaxDepth int    `yaml:"max_depth"` // Tree and export nesting limit, 0 for unlimited
}

// CaptureConfig defines how RTMP and FLV captures are processed.
type CaptureConfig struct {
	Workers int `yaml:"workers"` // Concurrent message decoders
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML file.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	// An empty document leaves every field at its default.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Decode.MaxInput == 0 {
		c.Decode.MaxInput = 16 << 20
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatHex
	}
	if c.Output.Columns == 0 {
		c.Output.Columns = 16
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Capture.Workers == 0 {
		c.Capture.Workers = 4
	}
}
