// If you are AI: This file assembles the export report for one decoded buffer.
// A report bundles the source description, a summary, every descriptor,
// the collapsed syntax runs and the materialized top-level values.

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"amfscope/internal/core/inspect"
	"amfscope/internal/core/protocol/amf"
	"amfscope/internal/source"
)

// Report is the serializable description of a decode pass.
type Report struct {
	Source      SourceInfo      `yaml:"source" cbor:"source"`
	Summary     Summary         `yaml:"summary" cbor:"summary"`
	Values      []inspect.Value `yaml:"values" cbor:"values"`
	Descriptors []Entry         `yaml:"descriptors" cbor:"descriptors"`
	Runs        []Run           `yaml:"runs" cbor:"runs"`
}

// SourceInfo describes where the decoded bytes came from.
type SourceInfo struct {
	Name        string `yaml:"name" cbor:"name"`
	Size        string `yaml:"size" cbor:"size"`
	Bytes       int    `yaml:"bytes" cbor:"bytes"`
	RawBytes    int    `yaml:"raw_bytes" cbor:"raw_bytes"`
	Compression string `yaml:"compression" cbor:"compression"`
	Digest      string `yaml:"blake3" cbor:"blake3"`
}

// Summary counts what the pass produced.
type Summary struct {
	Mode        string         `yaml:"mode" cbor:"mode"`
	Errored     bool           `yaml:"errored" cbor:"errored"`
	ErrorOffset int            `yaml:"error_offset" cbor:"error_offset"`
	Values      int            `yaml:"values" cbor:"values"`
	Strings     int            `yaml:"strings" cbor:"strings"`
	Kinds       map[string]int `yaml:"kinds" cbor:"kinds"`
}

// Entry is one descriptor flattened for export.
type Entry struct {
	ID       int               `yaml:"id" cbor:"id"`
	Kind     string            `yaml:"kind" cbor:"kind"`
	Value    string            `yaml:"value,omitempty" cbor:"value,omitempty"`
	Partial  bool              `yaml:"partial,omitempty" cbor:"partial,omitempty"`
	Children []int             `yaml:"children,omitempty" cbor:"children,omitempty"`
	Props    map[string]string `yaml:"props,omitempty" cbor:"props,omitempty"`
}

// Run is a contiguous span of bytes sharing owner, tag and depth.
type Run struct {
	Offset int    `yaml:"offset" cbor:"offset"`
	Length int    `yaml:"length" cbor:"length"`
	Owner  int    `yaml:"owner" cbor:"owner"`
	Tag    string `yaml:"tag" cbor:"tag"`
	Depth  uint8  `yaml:"depth,omitempty" cbor:"depth,omitempty"`
}

// Build assembles a report. maxDepth bounds materialized values, 0 for unlimited.
func Build(in *source.Input, res *amf.Result, maxDepth int) (*Report, error) {
	r := &Report{
		Source: SourceInfo{
			Name:        in.Name,
			Size:        humanize.Bytes(uint64(len(in.Data))),
			Bytes:       len(in.Data),
			RawBytes:    in.RawSize,
			Compression: in.Compression.String(),
			Digest:      in.Digest.String(),
		},
		Summary: Summary{
			Mode:        res.Mode.String(),
			Errored:     res.Errored,
			ErrorOffset: res.ErrorOffset,
			Values:      res.Graph.Len(),
			Strings:     len(res.Strings),
			Kinds:       make(map[string]int),
		},
		Runs: Runs(res.Syntax),
	}

	for _, d := range res.Graph.Descriptors() {
		r.Summary.Kinds[d.Kind().String()]++
		e, err := entry(res.Graph, d)
		if err != nil {
			return nil, err
		}
		r.Descriptors = append(r.Descriptors, e)
	}

	for _, id := range res.Graph.Roots() {
		v, err := inspect.Materialize(res.Graph, id, maxDepth)
		if err != nil {
			return nil, fmt.Errorf("materialize %d: %w", id, err)
		}
		r.Values = append(r.Values, v)
	}
	return r, nil
}

// entry flattens one descriptor, keeping the inspector rows as props.
func entry(g *amf.Graph, d amf.Descriptor) (Entry, error) {
	e := Entry{ID: int(d.ID), Kind: d.Kind().String(), Partial: d.Partial}
	e.Value, _ = inspect.Summary(d)
	for _, c := range d.Children() {
		e.Children = append(e.Children, int(c))
	}
	rows, err := inspect.Rows(g, d.ID)
	if err != nil {
		return Entry{}, err
	}
	for _, row := range rows {
		switch row.Label {
		case "Object ID", "Object Type", "Value", "Partial":
			continue
		}
		if e.Props == nil {
			e.Props = make(map[string]string)
		}
		e.Props[row.Label] = row.Value
	}
	return e, nil
}

// Runs collapses the annotation stream into spans.
func Runs(syntax []amf.SyntaxByte) []Run {
	var runs []Run
	for i, sb := range syntax {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Owner == int(sb.Owner) && last.Tag == sb.Tag.String() && last.Depth == sb.Depth {
				last.Length++
				continue
			}
		}
		runs = append(runs, Run{Offset: i, Length: 1, Owner: int(sb.Owner), Tag: sb.Tag.String(), Depth: sb.Depth})
	}
	return runs
}

// Headline returns a one-line human summary of the report.
func (r *Report) Headline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.Source.Name, r.Source.Size)
	if r.Source.Compression != source.CompressionNone.String() {
		fmt.Fprintf(&b, " (%s, %s raw)", r.Source.Compression, humanize.Bytes(uint64(r.Source.RawBytes)))
	}
	fmt.Fprintf(&b, ", %s values, %s strings, mode %s",
		humanize.Comma(int64(r.Summary.Values)), humanize.Comma(int64(r.Summary.Strings)), r.Summary.Mode)
	if r.Summary.Errored {
		fmt.Fprintf(&b, ", error at offset %d", r.Summary.ErrorOffset)
	}
	return b.String()
}

// KindCounts returns "kind: n" lines sorted by kind name.
func (r *Report) KindCounts() []string {
	kinds := make([]string, 0, len(r.Summary.Kinds))
	for k := range r.Summary.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, fmt.Sprintf("%s: %d", k, r.Summary.Kinds[k]))
	}
	return out
}
