// If you are AI: This file contains fixture helpers shared by the decoder tests.

package amf

import (
	"encoding/binary"
	"math"
)

// f64 returns the big-endian IEEE-754 encoding of v.
func f64(v float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return b
}

// amf0Str returns a 16-bit length prefixed string body.
func amf0Str(s string) []byte {
	b := []byte{byte(len(s) >> 8), byte(len(s))}
	return append(b, s...)
}

// join concatenates fixture fragments.
func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// ownedBy returns the annotated bytes owned by id, in input order.
func ownedBy(res *Result, id ValueID) []byte {
	var out []byte
	for _, sb := range res.Syntax {
		if sb.Owner == id {
			out = append(out, sb.Value)
		}
	}
	return out
}

// mustGet returns the descriptor for id or the zero descriptor.
func mustGet(res *Result, id ValueID) Descriptor {
	d, _ := res.Graph.Get(id)
	return d
}
