// If you are AI: This file builds AMF3 byte fixtures for tests.

package amftest

// U29 returns the variable-length encoding of v, which must fit in 29 bits.
func U29(v uint32) []byte {
	v &= 0x1FFFFFFF
	switch {
	case v < 0x80:
		return []byte{byte(v)}
	case v < 0x4000:
		return []byte{byte(v>>7) | 0x80, byte(v & 0x7F)}
	case v < 0x200000:
		return []byte{byte(v>>14) | 0x80, byte(v>>7) | 0x80, byte(v & 0x7F)}
	default:
		return []byte{byte(v>>22) | 0x80, byte(v>>15) | 0x80, byte(v>>8) | 0x80, byte(v)}
	}
}

// Int3 encodes an AMF3 integer.
func Int3(v int32) []byte {
	return append([]byte{0x04}, U29(uint32(v))...)
}

// Str3 encodes an inline AMF3 string value.
func Str3(s string) []byte {
	return append([]byte{0x06}, Name3(s)...)
}

// StrRef3 encodes an AMF3 string value referencing table entry i.
func StrRef3(i int) []byte {
	return append([]byte{0x06}, U29(uint32(i)<<1)...)
}

// Name3 encodes an inline AMF3 string without a marker, as used for
// class and member names.
func Name3(s string) []byte {
	return append(U29(uint32(len(s))<<1|1), s...)
}

// DynamicObject3 encodes an anonymous dynamic AMF3 object. Values are
// pre-encoded AMF3 values paired with keys in order.
func DynamicObject3(pairs ...Pair3) []byte {
	out := []byte{0x0A, 0x0B, 0x01}
	for _, p := range pairs {
		out = append(out, Name3(p.Name)...)
		out = append(out, p.Value...)
	}
	return append(out, 0x01)
}

// Pair3 is a dynamic member name with its encoded value.
type Pair3 struct {
	Name  string
	Value []byte
}
