// If you are AI: This file defines AMF0 and AMF3 type markers and decoder constants.

package amf

// AMF0 type markers
const (
	AMF0Number      = 0x00
	AMF0Boolean     = 0x01
	AMF0String      = 0x02
	AMF0Object      = 0x03
	AMF0Null        = 0x05
	AMF0Undefined   = 0x06
	AMF0ObjectEnd   = 0x09
	AMF0TypedObject = 0x10
	AMF0AVMPlus     = 0x11 // Switch to AMF3
)

// AMF3 type markers understood by the decoder.
// Array uses 0x08 and the associative segment is never read.
const (
	AMF3Null    = 0x01
	AMF3False   = 0x02
	AMF3True    = 0x03
	AMF3Integer = 0x04
	AMF3Double  = 0x05
	AMF3String  = 0x06
	AMF3Array   = 0x08
	AMF3Object  = 0x0A
)

// amf3DynamicEnd is the raw byte that ends a dynamic member list.
const amf3DynamicEnd = 0x01

// MissingString is produced for an AMF3 string reference with no table entry.
const MissingString = "String Not Found"

// Mode selects which decoder the top-level loop dispatches to.
type Mode uint8

const (
	ModeAMF0 Mode = 0
	ModeAMF3 Mode = 3
)

// String returns the encoding name for the mode.
func (m Mode) String() string {
	if m == ModeAMF3 {
		return "AMF3"
	}
	return "AMF0"
}
