// If you are AI: This file builds AMF0 and AMF3 byte fixtures for tests.
// It writes only what the decoder's tests need and is not an encoder for production use.

package amftest

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Field is one ordered object property.
type Field struct {
	Key   string
	Value interface{}
}

// Object is an ordered AMF0 object.
type Object []Field

// Typed is an AMF0 typed object.
type Typed struct {
	Class  string
	Fields Object
}

// Switch writes the AMF0 to AMF3 switch marker.
type Switch struct{}

// Raw is written verbatim.
type Raw []byte

// Encode writes an AMF0 value to the writer.
// Supported values: float64, int, bool, string, nil, Object, Typed, Switch and Raw.
func Encode(w io.Writer, val interface{}) error {
	switch v := val.(type) {
	case float64:
		return encodeNumber(w, v)
	case int:
		return encodeNumber(w, float64(v))
	case bool:
		return encodeBoolean(w, v)
	case string:
		if err := writeByte(w, 0x02); err != nil {
			return err
		}
		return encodeUTF8(w, v)
	case nil:
		return writeByte(w, 0x05)
	case Object:
		if err := writeByte(w, 0x03); err != nil {
			return err
		}
		return encodeFields(w, v)
	case Typed:
		if err := writeByte(w, 0x10); err != nil {
			return err
		}
		if err := encodeUTF8(w, v.Class); err != nil {
			return err
		}
		return encodeFields(w, v.Fields)
	case Switch:
		return writeByte(w, 0x11)
	case Raw:
		_, err := w.Write(v)
		return err
	default:
		return writeByte(w, 0x06)
	}
}

// AMF0 encodes values back to back.
func AMF0(vals ...interface{}) []byte {
	var buf bytes.Buffer
	for _, v := range vals {
		// bytes.Buffer writes do not fail.
		_ = Encode(&buf, v)
	}
	return buf.Bytes()
}

// Command encodes an RTMP command body: name, transaction id, then args.
func Command(name string, txn float64, args ...interface{}) []byte {
	return AMF0(append([]interface{}{name, txn}, args...)...)
}

// writeByte writes a single marker byte.
func writeByte(w io.Writer, b byte) error {
	return binary.Write(w, binary.BigEndian, b)
}

// encodeNumber encodes an AMF0 number.
func encodeNumber(w io.Writer, num float64) error {
	if err := writeByte(w, 0x00); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, num)
}

// encodeBoolean encodes an AMF0 boolean.
func encodeBoolean(w io.Writer, b bool) error {
	if err := writeByte(w, 0x01); err != nil {
		return err
	}
	var val byte
	if b {
		val = 1
	}
	return writeByte(w, val)
}

// encodeUTF8 writes a 16-bit length and the string bytes.
func encodeUTF8(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// encodeFields writes ordered properties and the object end marker.
func encodeFields(w io.Writer, fields Object) error {
	for _, f := range fields {
		if err := encodeUTF8(w, f.Key); err != nil {
			return err
		}
		if err := Encode(w, f.Value); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{0x00, 0x00, 0x09})
	return err
}
