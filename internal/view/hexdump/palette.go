// If you are AI: This file defines the tag palette used to colour hex dumps.

package hexdump

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"amfscope/internal/core/protocol/amf"
)

// Base colours (Catppuccin Mocha).
var (
	colorBlue      = lipgloss.Color("#89B4FA")
	colorGreen     = lipgloss.Color("#A6E3A1")
	colorRed       = lipgloss.Color("#F38BA8")
	colorYellow    = lipgloss.Color("#F9E2AF")
	colorTeal      = lipgloss.Color("#94E2D5")
	colorRosewater = lipgloss.Color("#F5E0DC")
	colorMauve     = lipgloss.Color("#CBA6F7")
	colorPink      = lipgloss.Color("#F5C2E7")
	colorSky       = lipgloss.Color("#89DCEB")
	colorLavender  = lipgloss.Color("#B4BEFE")
	colorMaroon    = lipgloss.Color("#EBA0AC")
	colorPeach     = lipgloss.Color("#FAB387")
	colorSubtext   = lipgloss.Color("#A6ADC8")
)

// depthShades are background colours for nested object bytes.
var depthShades = []lipgloss.Color{
	lipgloss.Color("#313244"),
	lipgloss.Color("#45475A"),
	lipgloss.Color("#585B70"),
}

// Palette maps each tag to its foreground colour.
type Palette map[amf.Tag]lipgloss.Color

// DefaultPalette returns the built-in colours.
// Markers share the colour of their payload.
func DefaultPalette() Palette {
	return Palette{
		amf.TagError:             colorRed,
		amf.TagFormatSelector:    colorPeach,
		amf.TagNumberMarker:      colorBlue,
		amf.TagNumber:            colorBlue,
		amf.TagBoolMarker:        colorGreen,
		amf.TagBoolTrue:          colorGreen,
		amf.TagBoolFalse:         colorRed,
		amf.TagStringMarker:      colorYellow,
		amf.TagStringLength:      colorYellow,
		amf.TagString:            colorYellow,
		amf.TagObjectMarker:      colorTeal,
		amf.TagObjectKey:         colorTeal,
		amf.TagObjectEnd:         colorTeal,
		amf.TagTypedObjectMarker: colorMauve,
		amf.TagTypedObjectClass:  colorYellow,
		amf.TagSwitchMarker:      colorPink,
		amf.TagNull:              colorRosewater,
		amf.TagUndefined:         colorPink,
		amf.TagFalse:             colorRed,
		amf.TagTrue:              colorGreen,
		amf.TagInteger:           colorSky,
		amf.TagDouble:            colorBlue,
		amf.TagArrayMarker:       colorLavender,
		amf.TagArrayCount:        colorLavender,
		amf.TagTraitHeader:       colorMauve,
		amf.TagUnknownAMF0:       colorMaroon,
		amf.TagUnknownAMF3:       colorMaroon,
	}
}

// Override replaces colours by tag name, as read from configuration.
func (p Palette) Override(colours map[string]string) error {
	for name, c := range colours {
		tag, err := amf.ParseTag(name)
		if err != nil {
			return fmt.Errorf("palette override: %w", err)
		}
		p[tag] = lipgloss.Color(c)
	}
	return nil
}

// ColorEnabled resolves an auto/always/never mode against f.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}
