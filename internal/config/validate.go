// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
	"regexp"
	"strconv"

	"amfscope/internal/core/protocol/amf"
)

// hexColor matches #RRGGBB colours.
var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Decode.Validate(); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := validatePalette(c.Palette); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if c.Capture.Workers < 1 || c.Capture.Workers > 256 {
		return fmt.Errorf("capture config: workers must be between 1 and 256, got %d", c.Capture.Workers)
	}
	return nil
}

// Validate checks decode configuration values.
func (d *DecodeConfig) Validate() error {
	if d.MaxInput < 0 {
		return fmt.Errorf("max_input must not be negative, got %d", d.MaxInput)
	}
	return nil
}

// Validate checks output configuration values.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case FormatHex, FormatTree, FormatYAML, FormatCBOR:
	default:
		return fmt.Errorf("format must be one of hex, tree, yaml, cbor, got %q", o.Format)
	}
	if o.Columns < 1 || o.Columns > 64 {
		return fmt.Errorf("columns must be between 1 and 64, got %d", o.Columns)
	}
	switch o.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", o.Color)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", o.MaxDepth)
	}
	return nil
}

// validatePalette checks tag names and colour values.
// Colours are #RRGGBB or an ANSI 256 index.
func validatePalette(p map[string]string) error {
	for name, colour := range p {
		if _, err := amf.ParseTag(name); err != nil {
			return err
		}
		if hexColor.MatchString(colour) {
			continue
		}
		n, err := strconv.Atoi(colour)
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("%s: colour must be #RRGGBB or 0-255, got %q", name, colour)
		}
	}
	return nil
}
