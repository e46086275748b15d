// If you are AI: This file implements the AMF3 U29 variable-length integer codec.
// U29 values are shared by integers, string lengths, array counts and trait headers.

package amf

const (
	u29MaxContinuation = 3
	u29SignBit         = 1 << 28
	u29Range           = 1 << 29
)

// ReadU29 decodes a U29 from the cursor.
// visit is called with every consumed byte, including the bytes of a
// truncated value, so callers can annotate them.
func ReadU29(c *Cursor, visit func(byte)) (uint32, error) {
	var v uint32
	for i := 0; ; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return v, err
		}
		if visit != nil {
			visit(b)
		}
		if i == u29MaxContinuation {
			return v<<8 | uint32(b), nil
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// DecodeU29 decodes a U29 from the start of buf.
// Returns the value and the number of bytes consumed.
func DecodeU29(buf []byte) (uint32, int, error) {
	c := NewCursor(buf)
	v, err := ReadU29(c, nil)
	return v, c.Offset(), err
}

// SignExtend29 reinterprets a U29 as a 29-bit two's-complement integer.
func SignExtend29(v uint32) int32 {
	v &= u29Range - 1
	if v&u29SignBit != 0 {
		return int32(v) - u29Range
	}
	return int32(v)
}
