// If you are AI: This file defines value kinds and their display names.

package amf

// Kind enumerates the value variants of both encodings.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAMF0Number
	KindAMF0Bool
	KindAMF0String
	KindAMF0Object
	KindAMF0Null
	KindAMF0Undefined
	KindAMF0TypedObject
	KindAMF0Switch
	KindAMF3Undefined
	KindAMF3Null
	KindAMF3False
	KindAMF3True
	KindAMF3Integer
	KindAMF3Double
	KindAMF3String
	KindAMF3Array
	KindAMF3Object
	KindFormatSelector
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindAMF0Number:      "Amf0 Number",
	KindAMF0Bool:        "Amf0 Bool",
	KindAMF0String:      "Amf0 String",
	KindAMF0Object:      "Amf0 Object",
	KindAMF0Null:        "Amf0 Null",
	KindAMF0Undefined:   "Amf0 Undefined",
	KindAMF0TypedObject: "Amf0 Typed Object",
	KindAMF0Switch:      "Amf0 Switch",
	KindAMF3Undefined:   "Amf3 Undefined",
	KindAMF3Null:        "Amf3 Null",
	KindAMF3False:       "Amf3 False",
	KindAMF3True:        "Amf3 True",
	KindAMF3Integer:     "Amf3 Integer",
	KindAMF3Double:      "Amf3 Double",
	KindAMF3String:      "Amf3 String",
	KindAMF3Array:       "Amf3 Array",
	KindAMF3Object:      "Amf3 Object",
	KindFormatSelector:  "Format Selector",
}

// String returns the display name shown by inspectors.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsAMF3 reports whether the kind belongs to the AMF3 family.
func (k Kind) IsAMF3() bool {
	return k >= KindAMF3Undefined && k <= KindAMF3Object
}

// IsComposite reports whether values of this kind reference children.
func (k Kind) IsComposite() bool {
	switch k {
	case KindAMF0Object, KindAMF0TypedObject, KindAMF3Array, KindAMF3Object:
		return true
	}
	return false
}
