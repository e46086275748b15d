// If you are AI: This file renders the syntax annotation stream as a coloured hex dump.
// Each byte is styled by its tag; bytes of a selected owner are highlighted.

package hexdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"amfscope/internal/core/protocol/amf"
)

// Options controls the dump layout.
type Options struct {
	Columns   int         // Bytes per row, defaults to 16
	Palette   Palette     // Tag colours, defaults to DefaultPalette
	Color     bool        // Emit ANSI styling
	Highlight bool        // Highlight the bytes owned by Owner
	Owner     amf.ValueID // Owner to highlight
}

// Dumper writes hex dumps to an output.
type Dumper struct {
	w        io.Writer
	opts     Options
	renderer *lipgloss.Renderer
	styles   map[amf.Tag]lipgloss.Style
	gutter   lipgloss.Style
}

// New creates a dumper writing to w.
func New(w io.Writer, opts Options) *Dumper {
	if opts.Columns <= 0 {
		opts.Columns = 16
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	d := &Dumper{
		w:        w,
		opts:     opts,
		renderer: r,
		styles:   make(map[amf.Tag]lipgloss.Style, len(opts.Palette)),
		gutter:   r.NewStyle().Foreground(colorSubtext),
	}
	for tag, c := range opts.Palette {
		d.styles[tag] = r.NewStyle().Foreground(c)
	}
	return d
}

// Write renders every annotation, one row per Columns bytes, under a
// column header.
func (d *Dumper) Write(syntax []amf.SyntaxByte) error {
	if err := d.header(); err != nil {
		return err
	}
	for start := 0; start < len(syntax); start += d.opts.Columns {
		end := min(start+d.opts.Columns, len(syntax))
		if err := d.row(start, syntax[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// header writes the column offsets.
func (d *Dumper) header() error {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 10))
	for i := 0; i < d.opts.Columns; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", i)
	}
	_, err := fmt.Fprintln(d.w, d.gutter.Render(b.String()))
	return err
}

// row writes one line: offset gutter, styled hex cells and an ASCII column.
func (d *Dumper) row(offset int, bytes []amf.SyntaxByte) error {
	var b strings.Builder
	b.WriteString(d.gutter.Render(fmt.Sprintf("%08X", offset)))
	b.WriteString("  ")
	for i, sb := range bytes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.style(sb).Render(fmt.Sprintf("%02X", sb.Value)))
	}
	if pad := d.opts.Columns - len(bytes); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad*3))
	}
	b.WriteString("  ")
	for _, sb := range bytes {
		c := sb.Value
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		b.WriteString(d.style(sb).Render(string(rune(c))))
	}
	_, err := fmt.Fprintln(d.w, b.String())
	return err
}

// style returns the style for one annotated byte.
func (d *Dumper) style(sb amf.SyntaxByte) lipgloss.Style {
	s, ok := d.styles[sb.Tag]
	if !ok {
		s = d.renderer.NewStyle()
	}
	if sb.Depth > 0 {
		s = s.Background(depthShades[int(sb.Depth-1)%len(depthShades)])
	}
	if d.opts.Highlight && sb.Owner == d.opts.Owner {
		s = s.Reverse(true).Bold(true)
	}
	return s
}

// WriteLegend lists every tag in its colour.
func (d *Dumper) WriteLegend() error {
	for _, tag := range amf.Tags() {
		s, ok := d.styles[tag]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(d.w, s.Render(tag.String())); err != nil {
			return err
		}
	}
	return nil
}
