// If you are AI: This file defines the value graph data model produced by the decoder.
// Composite values reference their children by ValueID and never embed them.

package amf

// ValueID identifies a decoded value inside a Graph.
// Ids are assigned in pre-order and are never reused within one pass.
type ValueID int

// SentinelID owns the bytes drained after the decoder enters error mode.
const SentinelID ValueID = -1

// Value is the closed set of decoded value variants.
type Value interface {
	Kind() Kind
}

// AMF0 variants.
type (
	// AMF0NumberValue is an IEEE-754 double.
	AMF0NumberValue float64
	// AMF0BoolValue is an AMF0 boolean.
	AMF0BoolValue bool
	// AMF0StringValue is a UTF-8 string with a 16-bit length.
	AMF0StringValue string
	// AMF0ObjectValue holds the object's properties in wire order.
	AMF0ObjectValue []Property
	// AMF0NullValue is the null marker.
	AMF0NullValue struct{}
	// AMF0UndefinedValue is the undefined marker or an unrecognized marker.
	AMF0UndefinedValue struct{}
	// AMF0SwitchValue marks the hand-off to AMF3.
	AMF0SwitchValue struct{}
)

// AMF0TypedObjectValue is an object preceded by a class name.
type AMF0TypedObjectValue struct {
	ClassName  string
	Properties []Property
}

// AMF3 variants.
type (
	// AMF3UndefinedValue is an unrecognized AMF3 marker.
	AMF3UndefinedValue struct{}
	// AMF3NullValue is the null marker.
	AMF3NullValue struct{}
	// AMF3FalseValue is the false marker.
	AMF3FalseValue struct{}
	// AMF3TrueValue is the true marker.
	AMF3TrueValue struct{}
	// AMF3IntegerValue is a 29-bit signed integer.
	AMF3IntegerValue int32
	// AMF3DoubleValue is an IEEE-754 double.
	AMF3DoubleValue float64
	// AMF3StringValue is an inline or referenced string.
	AMF3StringValue string
	// AMF3ArrayValue holds the dense element ids in order.
	AMF3ArrayValue []ValueID
	// AMF3ObjectValue holds declared then dynamic members in wire order.
	AMF3ObjectValue []Member
)

// FormatSelectorValue is the leading byte of a command stream.
type FormatSelectorValue byte

// Kind reports KindAMF0Number.
func (AMF0NumberValue) Kind() Kind { return KindAMF0Number }

// Kind reports KindAMF0Bool.
func (AMF0BoolValue) Kind() Kind { return KindAMF0Bool }

// Kind reports KindAMF0String.
func (AMF0StringValue) Kind() Kind { return KindAMF0String }

// Kind reports KindAMF0Object.
func (AMF0ObjectValue) Kind() Kind { return KindAMF0Object }

// Kind reports KindAMF0Null.
func (AMF0NullValue) Kind() Kind { return KindAMF0Null }

// Kind reports KindAMF0Undefined.
func (AMF0UndefinedValue) Kind() Kind { return KindAMF0Undefined }

// Kind reports KindAMF0Switch.
func (AMF0SwitchValue) Kind() Kind { return KindAMF0Switch }

// Kind reports KindAMF0TypedObject.
func (AMF0TypedObjectValue) Kind() Kind { return KindAMF0TypedObject }

// Kind reports KindAMF3Undefined.
func (AMF3UndefinedValue) Kind() Kind { return KindAMF3Undefined }

// Kind reports KindAMF3Null.
func (AMF3NullValue) Kind() Kind { return KindAMF3Null }

// Kind reports KindAMF3False.
func (AMF3FalseValue) Kind() Kind { return KindAMF3False }

// Kind reports KindAMF3True.
func (AMF3TrueValue) Kind() Kind { return KindAMF3True }

// Kind reports KindAMF3Integer.
func (AMF3IntegerValue) Kind() Kind { return KindAMF3Integer }

// Kind reports KindAMF3Double.
func (AMF3DoubleValue) Kind() Kind { return KindAMF3Double }

// Kind reports KindAMF3String.
func (AMF3StringValue) Kind() Kind { return KindAMF3String }

// Kind reports KindAMF3Array.
func (AMF3ArrayValue) Kind() Kind { return KindAMF3Array }

// Kind reports KindAMF3Object.
func (AMF3ObjectValue) Kind() Kind { return KindAMF3Object }

// Kind reports KindFormatSelector.
func (FormatSelectorValue) Kind() Kind { return KindFormatSelector }

// Property is one key/value pair of an AMF0 object.
// The key is decoded as its own string value.
type Property struct {
	Key     string
	KeyID   ValueID
	ValueID ValueID
}

// Member is one named slot of an AMF3 object.
// Externalizable objects leave declared members without a value.
type Member struct {
	Name     string
	NameID   ValueID
	ValueID  ValueID
	HasValue bool
	Dynamic  bool
}

// Props is inspection metadata that is not part of the value itself.
type Props interface {
	props()
}

// StringProps describes how a string was encoded.
// Identifier is the table index for references and the byte length otherwise.
type StringProps struct {
	IsReference bool
	Identifier  int
	Resolved    bool
	ValidUTF8   bool
}

// ArrayProps records the dense count announced by an AMF3 array.
type ArrayProps struct {
	Count int
}

// TypedObjectProps records the class name value of an AMF0 typed object.
type TypedObjectProps struct {
	ClassNameID ValueID
}

// TraitProps describes the traits of an AMF3 object.
type TraitProps struct {
	ClassName      string
	ClassNameID    ValueID
	Externalizable bool
	Dynamic        bool
	PropertyCount  int
	IsReference    bool
	Encoding       int
}

// MarkerProps records the raw byte of an unrecognized marker.
type MarkerProps struct {
	Marker byte
}

// props marks StringProps as inspection metadata.
func (StringProps) props() {}

// props marks ArrayProps as inspection metadata.
func (ArrayProps) props() {}

// props marks TypedObjectProps as inspection metadata.
func (TypedObjectProps) props() {}

// props marks TraitProps as inspection metadata.
func (TraitProps) props() {}

// props marks MarkerProps as inspection metadata.
func (MarkerProps) props() {}

// Descriptor is one entry of the value graph.
// Partial is set when the body read ran out of input.
type Descriptor struct {
	ID      ValueID
	Value   Value
	Props   Props
	Partial bool
}

// Kind returns the kind of the described value.
func (d Descriptor) Kind() Kind {
	if d.Value == nil {
		return KindInvalid
	}
	return d.Value.Kind()
}

// Children returns the ids a composite value references, in wire order.
// Key, class name and member name strings are included.
func (d Descriptor) Children() []ValueID {
	var ids []ValueID
	switch v := d.Value.(type) {
	case AMF0ObjectValue:
		ids = appendProperties(ids, v)
	case AMF0TypedObjectValue:
		if p, ok := d.Props.(TypedObjectProps); ok {
			ids = append(ids, p.ClassNameID)
		}
		ids = appendProperties(ids, v.Properties)
	case AMF3ArrayValue:
		ids = append(ids, v...)
	case AMF3ObjectValue:
		if p, ok := d.Props.(TraitProps); ok && !p.IsReference {
			ids = append(ids, p.ClassNameID)
		}
		for _, m := range v {
			if !m.Dynamic {
				ids = append(ids, m.NameID)
			}
		}
		for _, m := range v {
			if m.Dynamic {
				ids = append(ids, m.NameID)
			}
			if m.HasValue {
				ids = append(ids, m.ValueID)
			}
		}
	}
	return ids
}

// appendProperties appends key and value ids of AMF0 properties.
func appendProperties(ids []ValueID, props []Property) []ValueID {
	for _, p := range props {
		ids = append(ids, p.KeyID, p.ValueID)
	}
	return ids
}

// SyntaxByte annotates one consumed input byte.
// Depth is the AMF0 object nesting depth and only affects shading.
type SyntaxByte struct {
	Value byte
	Owner ValueID
	Tag   Tag
	Depth uint8
}
