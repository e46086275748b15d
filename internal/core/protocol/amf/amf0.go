// If you are AI: This file implements the AMF0 recursive-descent decoder.
// Every decoded unit reserves its id before its body is read.

package amf

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// objectEnd is the empty key followed by the object end marker.
var objectEnd = []byte{0x00, 0x00, AMF0ObjectEnd}

// float64frombytes interprets 8 big-endian bytes as a double.
func float64frombytes(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// readAMF0 decodes one AMF0 value and returns its id.
// SentinelID is returned when not even the marker could be read.
func (d *Decoder) readAMF0() (ValueID, error) {
	marker, err := d.cur.ReadByte()
	if err != nil {
		return SentinelID, err
	}
	id := d.graph.Reserve()

	switch marker {
	case AMF0Number:
		d.emit(marker, id, TagNumberMarker)
		v, err := d.readDouble(id, TagNumber)
		if err != nil {
			return id, err
		}
		d.record(Descriptor{ID: id, Value: AMF0NumberValue(v)})

	case AMF0Boolean:
		d.emit(marker, id, TagBoolMarker)
		b, err := d.cur.ReadByte()
		if err != nil {
			return id, err
		}
		tag := TagBoolTrue
		if b == 0 {
			tag = TagBoolFalse
		}
		d.emit(b, id, tag)
		d.record(Descriptor{ID: id, Value: AMF0BoolValue(b != 0)})

	case AMF0String:
		d.emit(marker, id, TagStringMarker)
		s, props, err := d.readAMF0UTF8(id, TagString)
		if err != nil {
			return id, err
		}
		d.record(Descriptor{ID: id, Value: AMF0StringValue(s), Props: props})

	case AMF0Object:
		d.emit(marker, id, TagObjectMarker)
		props, err := d.readAMF0ObjectBody(id)
		if err != nil {
			d.record(Descriptor{ID: id, Value: AMF0ObjectValue(props), Partial: true})
			return id, err
		}
		d.record(Descriptor{ID: id, Value: AMF0ObjectValue(props)})

	case AMF0Null:
		d.emit(marker, id, TagNull)
		d.record(Descriptor{ID: id, Value: AMF0NullValue{}})

	case AMF0Undefined:
		d.emit(marker, id, TagUndefined)
		d.record(Descriptor{ID: id, Value: AMF0UndefinedValue{}})

	case AMF0TypedObject:
		d.emit(marker, id, TagTypedObjectMarker)
		return id, d.readAMF0TypedObject(id)

	case AMF0AVMPlus:
		d.emit(marker, id, TagSwitchMarker)
		d.mode = ModeAMF3
		d.record(Descriptor{ID: id, Value: AMF0SwitchValue{}})
		d.logger.Debug("switching to AMF3", "id", id, "offset", d.cur.Offset())

	default:
		d.emit(marker, id, TagUnknownAMF0)
		d.record(Descriptor{ID: id, Value: AMF0UndefinedValue{}, Props: MarkerProps{Marker: marker}})
	}
	return id, nil
}

// readAMF0UTF8 reads a 16-bit length followed by that many bytes.
// Length bytes are tagged TagStringLength, payload bytes with payloadTag.
func (d *Decoder) readAMF0UTF8(owner ValueID, payloadTag Tag) (string, StringProps, error) {
	lb, err := d.readBytes(2, owner, TagStringLength)
	if err != nil {
		return "", StringProps{}, err
	}
	n := int(binary.BigEndian.Uint16(lb))
	b, err := d.readBytes(n, owner, payloadTag)
	if err != nil {
		return "", StringProps{}, err
	}
	return string(b), StringProps{Identifier: n, ValidUTF8: utf8.Valid(b)}, nil
}

// readAMF0Key decodes an object key as its own string value.
func (d *Decoder) readAMF0Key(tag Tag) (string, ValueID, error) {
	id := d.graph.Reserve()
	s, props, err := d.readAMF0UTF8(id, tag)
	if err != nil {
		return "", id, err
	}
	d.record(Descriptor{ID: id, Value: AMF0StringValue(s), Props: props})
	return s, id, nil
}

// readAMF0ObjectBody reads key/value pairs until the empty key and end marker.
// The properties read so far are returned even when an error occurs.
func (d *Decoder) readAMF0ObjectBody(owner ValueID) ([]Property, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.depth++
	defer func() { d.depth-- }()

	var props []Property
	for {
		if next, err := d.cur.PeekN(len(objectEnd)); err == nil && bytes.Equal(next, objectEnd) {
			if _, err := d.readBytes(len(objectEnd), owner, TagObjectEnd); err != nil {
				return props, err
			}
			return props, nil
		}

		key, keyID, err := d.readAMF0Key(TagObjectKey)
		if err != nil {
			return props, err
		}
		d.logger.Debug("object key", "owner", owner, "key", key, "depth", d.depth)

		valueID, err := d.readAMF0()
		if valueID != SentinelID {
			props = append(props, Property{Key: key, KeyID: keyID, ValueID: valueID})
		}
		if err != nil {
			return props, err
		}
	}
}

// readAMF0TypedObject reads the class name and the object body of a typed object.
func (d *Decoder) readAMF0TypedObject(id ValueID) error {
	className, classID, err := d.readAMF0Key(TagTypedObjectClass)
	if err != nil {
		d.record(Descriptor{ID: id, Value: AMF0TypedObjectValue{}, Props: TypedObjectProps{ClassNameID: classID}, Partial: true})
		return err
	}
	props, err := d.readAMF0ObjectBody(id)
	d.record(Descriptor{
		ID:      id,
		Value:   AMF0TypedObjectValue{ClassName: className, Properties: props},
		Props:   TypedObjectProps{ClassNameID: classID},
		Partial: err != nil,
	})
	return err
}
