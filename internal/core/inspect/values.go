// If you are AI: This file materializes graph entries into plain Go values.
// The shapes are what the YAML and CBOR exporters serialize.

package inspect

import (
	"errors"
	"fmt"

	"amfscope/internal/core/protocol/amf"
)

// ErrNotFound is returned when an id does not resolve in the graph.
var ErrNotFound = errors.New("value id not found")

// Value is a materialized value: nil, bool, float64, int64, string,
// Object, Array, TypedObject or Ref.
type Value interface{}

// Object represents an anonymous object (key-value pairs).
type Object map[string]Value

// Array represents a dense array.
type Array []Value

// TypedObject represents an object carrying a class name.
type TypedObject struct {
	ClassName string `yaml:"class" cbor:"class"`
	Fields    Object `yaml:"fields" cbor:"fields"`
}

// Ref stands in for a value that lies beyond the depth limit.
type Ref amf.ValueID

// String renders the reference as its id.
func (r Ref) String() string {
	return fmt.Sprintf("#%d", int(r))
}

// MarshalText lets exporters write references as "#id" text.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Materialize converts the entry at id, and everything it references,
// into plain values. maxDepth bounds composite nesting; 0 means unlimited.
func Materialize(g *amf.Graph, id amf.ValueID, maxDepth int) (Value, error) {
	m := materializer{graph: g, maxDepth: maxDepth}
	return m.value(id, 0)
}

// materializer carries the graph and limit through the recursion.
type materializer struct {
	graph    *amf.Graph
	maxDepth int
}

// value materializes one entry at the given nesting depth.
func (m materializer) value(id amf.ValueID, depth int) (Value, error) {
	d, ok := m.graph.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if d.Kind().IsComposite() && m.maxDepth > 0 && depth >= m.maxDepth {
		return Ref(id), nil
	}

	switch v := d.Value.(type) {
	case amf.AMF0NumberValue:
		return float64(v), nil
	case amf.AMF0BoolValue:
		return bool(v), nil
	case amf.AMF0StringValue:
		return string(v), nil
	case amf.AMF0ObjectValue:
		return m.properties(v, depth)
	case amf.AMF0TypedObjectValue:
		fields, err := m.properties(v.Properties, depth)
		if err != nil {
			return nil, err
		}
		return TypedObject{ClassName: v.ClassName, Fields: fields}, nil
	case amf.AMF3FalseValue:
		return false, nil
	case amf.AMF3TrueValue:
		return true, nil
	case amf.AMF3IntegerValue:
		return int64(v), nil
	case amf.AMF3DoubleValue:
		return float64(v), nil
	case amf.AMF3StringValue:
		return string(v), nil
	case amf.AMF3ArrayValue:
		arr := make(Array, 0, len(v))
		for _, child := range v {
			cv, err := m.value(child, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, cv)
		}
		return arr, nil
	case amf.AMF3ObjectValue:
		return m.members(d, v, depth)
	default:
		// Null, undefined, switch and selector entries carry no payload.
		return nil, nil
	}
}

// properties materializes AMF0 key/value pairs. Later duplicates win.
func (m materializer) properties(props []amf.Property, depth int) (Object, error) {
	obj := make(Object, len(props))
	for _, p := range props {
		v, err := m.value(p.ValueID, depth+1)
		if err != nil {
			return nil, err
		}
		obj[p.Key] = v
	}
	return obj, nil
}

// members materializes an AMF3 object, typed when its traits name a class.
func (m materializer) members(d amf.Descriptor, members amf.AMF3ObjectValue, depth int) (Value, error) {
	obj := make(Object, len(members))
	for _, mem := range members {
		if !mem.HasValue {
			obj[mem.Name] = nil
			continue
		}
		v, err := m.value(mem.ValueID, depth+1)
		if err != nil {
			return nil, err
		}
		obj[mem.Name] = v
	}
	if traits, ok := d.Props.(amf.TraitProps); ok && traits.ClassName != "" {
		return TypedObject{ClassName: traits.ClassName, Fields: obj}, nil
	}
	return obj, nil
}
