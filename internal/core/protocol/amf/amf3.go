// If you are AI: This file implements the AMF3 recursive-descent decoder.
// Trait references are recognised but not resolved, and arrays only carry
// their dense portion.

package amf

import "unicode/utf8"

// readAMF3 decodes one AMF3 value and returns its id.
// SentinelID is returned when not even the marker could be read.
func (d *Decoder) readAMF3() (ValueID, error) {
	marker, err := d.cur.ReadByte()
	if err != nil {
		return SentinelID, err
	}
	id := d.graph.Reserve()

	switch marker {
	case AMF3Null:
		d.emit(marker, id, TagNull)
		d.record(Descriptor{ID: id, Value: AMF3NullValue{}})

	case AMF3False:
		d.emit(marker, id, TagFalse)
		d.record(Descriptor{ID: id, Value: AMF3FalseValue{}})

	case AMF3True:
		d.emit(marker, id, TagTrue)
		d.record(Descriptor{ID: id, Value: AMF3TrueValue{}})

	case AMF3Integer:
		d.emit(marker, id, TagInteger)
		v, err := d.readU29(id, TagInteger)
		if err != nil {
			return id, err
		}
		d.record(Descriptor{ID: id, Value: AMF3IntegerValue(SignExtend29(v))})

	case AMF3Double:
		d.emit(marker, id, TagDouble)
		v, err := d.readDouble(id, TagDouble)
		if err != nil {
			return id, err
		}
		d.record(Descriptor{ID: id, Value: AMF3DoubleValue(v)})

	case AMF3String:
		d.emit(marker, id, TagStringMarker)
		if err := d.readAMF3StringBody(id, TagString); err != nil {
			return id, err
		}

	case AMF3Array:
		d.emit(marker, id, TagArrayMarker)
		return id, d.readAMF3Array(id)

	case AMF3Object:
		d.emit(marker, id, TagObjectMarker)
		return id, d.readAMF3Object(id)

	default:
		d.emit(marker, id, TagUnknownAMF3)
		d.record(Descriptor{ID: id, Value: AMF3UndefinedValue{}, Props: MarkerProps{Marker: marker}})
	}
	return id, nil
}

// readAMF3StringBody reads a U29S-ref string and records it under id.
func (d *Decoder) readAMF3StringBody(id ValueID, payloadTag Tag) error {
	s, props, err := d.readAMF3UTF8(id, payloadTag)
	if err != nil {
		return err
	}
	d.record(Descriptor{ID: id, Value: AMF3StringValue(s), Props: props})
	return nil
}

// readAMF3UTF8 reads a U29S-ref string.
// The low bit of the header selects inline (1) or table reference (0).
func (d *Decoder) readAMF3UTF8(owner ValueID, payloadTag Tag) (string, StringProps, error) {
	h, err := d.readU29(owner, TagStringLength)
	if err != nil {
		return "", StringProps{}, err
	}
	n := int(h >> 1)
	if h&1 == 0 {
		s, ok := d.strings.Lookup(n)
		if !ok {
			s = MissingString
		}
		return s, StringProps{IsReference: true, Identifier: n, Resolved: ok, ValidUTF8: true}, nil
	}
	if n == 0 {
		return "", StringProps{Resolved: true, ValidUTF8: true}, nil
	}
	b, err := d.readBytes(n, owner, payloadTag)
	if err != nil {
		return "", StringProps{}, err
	}
	s := string(b)
	d.strings.Add(s)
	return s, StringProps{Identifier: n, Resolved: true, ValidUTF8: utf8.Valid(b)}, nil
}

// readAMF3Name decodes a class or member name as its own string value.
func (d *Decoder) readAMF3Name(tag Tag) (string, ValueID, error) {
	id := d.graph.Reserve()
	s, props, err := d.readAMF3UTF8(id, tag)
	if err != nil {
		return "", id, err
	}
	d.record(Descriptor{ID: id, Value: AMF3StringValue(s), Props: props})
	return s, id, nil
}

// readAMF3Array reads the dense count and that many values.
func (d *Decoder) readAMF3Array(id ValueID) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	h, err := d.readU29(id, TagArrayCount)
	if err != nil {
		return err
	}
	count := int(h >> 1)
	elems := make(AMF3ArrayValue, 0, min(count, d.cur.Remaining()))
	for i := 0; i < count; i++ {
		child, err := d.readAMF3()
		if child != SentinelID {
			elems = append(elems, child)
		}
		if err != nil {
			d.record(Descriptor{ID: id, Value: elems, Props: ArrayProps{Count: count}, Partial: true})
			return err
		}
	}
	d.record(Descriptor{ID: id, Value: elems, Props: ArrayProps{Count: count}})
	return nil
}

// readAMF3Object reads the trait header, the declared members and any
// dynamic members of an object.
func (d *Decoder) readAMF3Object(id ValueID) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	h, err := d.readU29(id, TagTraitHeader)
	if err != nil {
		return err
	}
	h >>= 1

	var members AMF3ObjectValue
	traits := TraitProps{ClassNameID: SentinelID}
	finish := func(err error) error {
		d.record(Descriptor{ID: id, Value: members, Props: traits, Partial: err != nil})
		return err
	}

	if h&1 == 0 {
		traits.IsReference = true
		return finish(nil)
	}
	h >>= 1
	traits.Encoding = int(h & 0x03)
	traits.Externalizable = h&0x01 != 0
	traits.Dynamic = (h>>1)&0x01 != 0
	declared := int(h >> 2)

	className, classID, err := d.readAMF3Name(TagTypedObjectClass)
	traits.ClassName, traits.ClassNameID = className, classID
	if err != nil {
		return finish(err)
	}

	for i := 0; i < declared; i++ {
		name, nameID, err := d.readAMF3Name(TagObjectKey)
		if err != nil {
			return finish(err)
		}
		members = append(members, Member{Name: name, NameID: nameID, ValueID: SentinelID})
		traits.PropertyCount++
	}

	if traits.Externalizable {
		return finish(nil)
	}

	for i := range members {
		child, err := d.readAMF3()
		if child != SentinelID {
			members[i].ValueID, members[i].HasValue = child, true
		}
		if err != nil {
			return finish(err)
		}
	}

	if traits.Dynamic {
		return finish(d.readAMF3DynamicMembers(id, &members))
	}
	return finish(nil)
}

// readAMF3DynamicMembers reads name/value pairs until the raw end byte.
// The end byte is detected before any string decoding takes place.
// Running out of input between members also ends the object cleanly.
func (d *Decoder) readAMF3DynamicMembers(owner ValueID, members *AMF3ObjectValue) error {
	for {
		next, err := d.cur.Peek()
		if err != nil {
			return nil
		}
		if next == amf3DynamicEnd {
			_, err := d.readByte(owner, TagObjectEnd)
			return err
		}

		name, nameID, err := d.readAMF3Name(TagObjectKey)
		if err != nil {
			return err
		}
		child, err := d.readAMF3()
		m := Member{Name: name, NameID: nameID, ValueID: SentinelID, Dynamic: true}
		if child != SentinelID {
			m.ValueID, m.HasValue = child, true
		}
		*members = append(*members, m)
		if err != nil {
			return err
		}
	}
}
