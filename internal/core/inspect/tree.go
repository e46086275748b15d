// If you are AI: This file renders the value graph as an indented text tree.

package inspect

import (
	"fmt"
	"io"
	"strings"

	"amfscope/internal/core/protocol/amf"
)

// WriteTree prints every root of g followed by its descendants.
// Each line shows the id, kind and payload; object members are prefixed
// with their key. Nesting deeper than maxDepth is elided when maxDepth > 0.
func WriteTree(w io.Writer, g *amf.Graph, maxDepth int) error {
	t := treeWriter{w: w, graph: g, maxDepth: maxDepth}
	for _, id := range g.Roots() {
		if err := t.node(id, "", 0); err != nil {
			return err
		}
	}
	if d, ok := g.Get(amf.SentinelID); ok {
		return t.line(d, "", 0)
	}
	return nil
}

// treeWriter carries output state through the recursion.
type treeWriter struct {
	w        io.Writer
	graph    *amf.Graph
	maxDepth int
}

// node prints id and recurses into its members.
func (t treeWriter) node(id amf.ValueID, label string, depth int) error {
	d, ok := t.graph.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := t.line(d, label, depth); err != nil {
		return err
	}
	if t.maxDepth > 0 && depth+1 > t.maxDepth && d.Kind().IsComposite() {
		_, err := fmt.Fprintf(t.w, "%s...\n", indent(depth+1))
		return err
	}

	switch v := d.Value.(type) {
	case amf.AMF0ObjectValue:
		return t.properties(v, depth)
	case amf.AMF0TypedObjectValue:
		return t.properties(v.Properties, depth)
	case amf.AMF3ArrayValue:
		for i, child := range v {
			if err := t.node(child, fmt.Sprintf("[%d]", i), depth+1); err != nil {
				return err
			}
		}
	case amf.AMF3ObjectValue:
		for _, m := range v {
			if !m.HasValue {
				if _, err := fmt.Fprintf(t.w, "%s%s: <missing>\n", indent(depth+1), m.Name); err != nil {
					return err
				}
				continue
			}
			if err := t.node(m.ValueID, m.Name, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// properties prints AMF0 key/value pairs one level below depth.
func (t treeWriter) properties(props []amf.Property, depth int) error {
	for _, p := range props {
		if err := t.node(p.ValueID, p.Key, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// line prints a single entry.
func (t treeWriter) line(d amf.Descriptor, label string, depth int) error {
	var b strings.Builder
	b.WriteString(indent(depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "#%d %s", d.ID, d.Kind())
	if p, ok := d.Props.(amf.TraitProps); ok && p.ClassName != "" {
		fmt.Fprintf(&b, " <%s>", p.ClassName)
	}
	if v, ok := d.Value.(amf.AMF0TypedObjectValue); ok {
		fmt.Fprintf(&b, " <%s>", v.ClassName)
	}
	if s, ok := Summary(d); ok {
		b.WriteString(" ")
		b.WriteString(s)
	}
	if d.Partial {
		b.WriteString(" (partial)")
	}
	b.WriteString("\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

// indent returns the prefix for depth.
func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
