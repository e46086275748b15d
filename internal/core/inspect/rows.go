// If you are AI: This file builds the labelled rows shown for one selected value.

package inspect

import (
	"fmt"
	"strconv"

	"amfscope/internal/core/protocol/amf"
)

// Row is one labelled line of the inspector panel.
type Row struct {
	Label string `yaml:"label" cbor:"label"`
	Value string `yaml:"value" cbor:"value"`
}

// Rows describes the entry at id: its id, kind display name, payload and
// the inspection-only properties recorded while decoding.
func Rows(g *amf.Graph, id amf.ValueID) ([]Row, error) {
	d, ok := g.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	rows := []Row{
		{"Object ID", strconv.Itoa(int(d.ID))},
		{"Object Type", d.Kind().String()},
	}
	if v, ok := Summary(d); ok {
		rows = append(rows, Row{"Value", v})
	}
	rows = append(rows, propRows(d)...)
	if d.Partial {
		rows = append(rows, Row{"Partial", "true"})
	}
	return rows, nil
}

// propRows renders the Props attached to a descriptor.
func propRows(d amf.Descriptor) []Row {
	switch p := d.Props.(type) {
	case amf.StringProps:
		label := "String Length"
		if p.IsReference {
			label = "Identifier"
		}
		rows := []Row{
			{"Is Reference?", strconv.FormatBool(p.IsReference)},
			{label, strconv.Itoa(p.Identifier)},
		}
		if p.IsReference && !p.Resolved {
			rows = append(rows, Row{"Resolved", "false"})
		}
		if !p.ValidUTF8 {
			rows = append(rows, Row{"Valid UTF-8", "false"})
		}
		return rows
	case amf.ArrayProps:
		return []Row{{"Count", strconv.Itoa(p.Count)}}
	case amf.TypedObjectProps:
		if v, ok := d.Value.(amf.AMF0TypedObjectValue); ok {
			return []Row{{"Class Name", v.ClassName}, {"Class Name ID", strconv.Itoa(int(p.ClassNameID))}}
		}
	case amf.TraitProps:
		if p.IsReference {
			return []Row{{"Is Reference?", "true"}}
		}
		return []Row{
			{"Is Reference?", "false"},
			{"Class Name", p.ClassName},
			{"Externalizable", strconv.FormatBool(p.Externalizable)},
			{"Dynamic", strconv.FormatBool(p.Dynamic)},
			{"Property Count", strconv.Itoa(p.PropertyCount)},
			{"Encoding", strconv.Itoa(p.Encoding)},
		}
	case amf.MarkerProps:
		return []Row{{"Marker", fmt.Sprintf("0x%02X", p.Marker)}}
	}
	return nil
}

// Summary renders the payload of a descriptor on one line.
// Kinds without a payload report false.
func Summary(d amf.Descriptor) (string, bool) {
	switch v := d.Value.(type) {
	case amf.AMF0NumberValue:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case amf.AMF0BoolValue:
		return strconv.FormatBool(bool(v)), true
	case amf.AMF0StringValue:
		return strconv.Quote(string(v)), true
	case amf.AMF3IntegerValue:
		return strconv.FormatInt(int64(v), 10), true
	case amf.AMF3DoubleValue:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), true
	case amf.AMF3StringValue:
		return strconv.Quote(string(v)), true
	case amf.AMF3ArrayValue:
		return fmt.Sprint([]amf.ValueID(v)), true
	case amf.FormatSelectorValue:
		return fmt.Sprintf("0x%02X", byte(v)), true
	}
	return "", false
}
