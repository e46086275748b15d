// If you are AI: This file contains unit tests for the AMF0 decoder.

package amf

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAMF0Number(t *testing.T) {
	for _, v := range []float64{0, 1, -2.5, math.Pi, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		buf := join([]byte{AMF0Number}, f64(v))
		res := Decode(buf, false)

		require.False(t, res.Errored)
		d := mustGet(res, 0)
		require.Equal(t, KindAMF0Number, d.Kind())
		assert.Equal(t, math.Float64bits(v), math.Float64bits(float64(d.Value.(AMF0NumberValue))))

		require.Len(t, res.Syntax, 9)
		for _, sb := range res.Syntax {
			assert.Equal(t, ValueID(0), sb.Owner)
		}
		assert.Equal(t, TagNumberMarker, res.Syntax[0].Tag)
		assert.Equal(t, TagNumber, res.Syntax[8].Tag)
	}
}

func TestAMF0Boolean(t *testing.T) {
	res := Decode([]byte{AMF0Boolean, 0x00, AMF0Boolean, 0x01, AMF0Boolean, 0x02}, false)

	assert.Equal(t, AMF0BoolValue(false), mustGet(res, 0).Value)
	assert.Equal(t, AMF0BoolValue(true), mustGet(res, 1).Value)
	assert.Equal(t, AMF0BoolValue(true), mustGet(res, 2).Value, "nonzero is true")

	assert.Equal(t, TagBoolFalse, res.Syntax[1].Tag)
	assert.Equal(t, TagBoolTrue, res.Syntax[3].Tag)
}

func TestAMF0String(t *testing.T) {
	res := Decode(join([]byte{AMF0String}, amf0Str("hello")), false)

	d := mustGet(res, 0)
	assert.Equal(t, AMF0StringValue("hello"), d.Value)
	assert.Equal(t, StringProps{Identifier: 5, ValidUTF8: true}, d.Props)

	require.Len(t, res.Syntax, 8)
	assert.Equal(t, TagStringMarker, res.Syntax[0].Tag)
	assert.Equal(t, TagStringLength, res.Syntax[1].Tag)
	assert.Equal(t, TagStringLength, res.Syntax[2].Tag)
	assert.Equal(t, TagString, res.Syntax[3].Tag)
}

func TestAMF0StringInvalidUTF8(t *testing.T) {
	res := Decode([]byte{AMF0String, 0x00, 0x02, 0xC3, 0x28}, false)

	d := mustGet(res, 0)
	require.False(t, res.Errored)
	assert.False(t, d.Props.(StringProps).ValidUTF8)
}

func TestAMF0Object(t *testing.T) {
	buf := join(
		[]byte{AMF0Object},
		amf0Str("a"), []byte{AMF0Number}, f64(1),
		[]byte{0x00, 0x00, AMF0ObjectEnd},
	)
	d := NewDecoder(buf, false)
	res := d.Run()

	require.False(t, res.Errored)
	obj := mustGet(res, 0)
	require.Equal(t, KindAMF0Object, obj.Kind())
	assert.Equal(t, AMF0ObjectValue{{Key: "a", KeyID: 1, ValueID: 2}}, obj.Value)
	assert.Equal(t, AMF0StringValue("a"), mustGet(res, 1).Value)
	assert.Equal(t, AMF0NumberValue(1), mustGet(res, 2).Value)
	assert.Equal(t, 0, d.depth, "depth must return to its pre-call value")

	assert.Equal(t, []byte{AMF0Object, 0x00, 0x00, AMF0ObjectEnd}, ownedBy(res, 0))
	assert.Equal(t, []byte{0x00, 0x01, 'a'}, ownedBy(res, 1))

	last := res.Syntax[len(res.Syntax)-1]
	assert.Equal(t, TagObjectEnd, last.Tag)
	assert.Equal(t, TagObjectKey, res.Syntax[3].Tag)
	assert.Equal(t, uint8(1), res.Syntax[3].Depth)
	assert.Equal(t, uint8(0), res.Syntax[0].Depth)
}

func TestAMF0NestedObjectDepth(t *testing.T) {
	buf := join(
		[]byte{AMF0Object},
		amf0Str("o"), []byte{AMF0Object},
		amf0Str("n"), []byte{AMF0Null},
		[]byte{0x00, 0x00, AMF0ObjectEnd},
		[]byte{0x00, 0x00, AMF0ObjectEnd},
	)
	d := NewDecoder(buf, false)
	res := d.Run()

	require.False(t, res.Errored)
	assert.Equal(t, AMF0ObjectValue{{Key: "o", KeyID: 1, ValueID: 2}}, mustGet(res, 0).Value)
	assert.Equal(t, AMF0ObjectValue{{Key: "n", KeyID: 3, ValueID: 4}}, mustGet(res, 2).Value)
	assert.Equal(t, 0, d.depth)
	assert.Equal(t, 0, d.nesting)

	var maxDepth uint8
	for _, sb := range res.Syntax {
		maxDepth = max(maxDepth, sb.Depth)
	}
	assert.Equal(t, uint8(2), maxDepth)
}

func TestAMF0EmptyKeyWithValue(t *testing.T) {
	buf := []byte{AMF0Object, 0x00, 0x00, AMF0Null, 0x00, 0x00, AMF0ObjectEnd}
	res := Decode(buf, false)

	require.False(t, res.Errored)
	assert.Equal(t, AMF0ObjectValue{{Key: "", KeyID: 1, ValueID: 2}}, mustGet(res, 0).Value)
	assert.Equal(t, AMF0NullValue{}, mustGet(res, 2).Value)
}

func TestAMF0TypedObject(t *testing.T) {
	buf := join(
		[]byte{AMF0TypedObject}, amf0Str("Foo"),
		amf0Str("x"), []byte{AMF0Boolean, 0x01},
		[]byte{0x00, 0x00, AMF0ObjectEnd},
	)
	d := NewDecoder(buf, false)
	res := d.Run()

	require.False(t, res.Errored)
	obj := mustGet(res, 0)
	assert.Equal(t, AMF0TypedObjectValue{
		ClassName:  "Foo",
		Properties: []Property{{Key: "x", KeyID: 2, ValueID: 3}},
	}, obj.Value)
	assert.Equal(t, TypedObjectProps{ClassNameID: 1}, obj.Props)
	assert.Equal(t, []ValueID{1, 2, 3}, obj.Children())
	assert.Equal(t, AMF0StringValue("Foo"), mustGet(res, 1).Value)
	assert.Equal(t, TagTypedObjectClass, res.Syntax[3].Tag)
	assert.Equal(t, 0, d.depth)
}

func TestAMF0NullUndefinedUnknown(t *testing.T) {
	res := Decode([]byte{AMF0Null, AMF0Undefined, 0x0B, AMF0Null}, false)

	require.False(t, res.Errored)
	assert.Equal(t, AMF0NullValue{}, mustGet(res, 0).Value)
	assert.Equal(t, AMF0UndefinedValue{}, mustGet(res, 1).Value)
	assert.Nil(t, mustGet(res, 1).Props)

	unknown := mustGet(res, 2)
	assert.Equal(t, AMF0UndefinedValue{}, unknown.Value)
	assert.Equal(t, MarkerProps{Marker: 0x0B}, unknown.Props)
	assert.Equal(t, TagUnknownAMF0, res.Syntax[2].Tag)

	assert.Equal(t, AMF0NullValue{}, mustGet(res, 3).Value, "decoding continues after an unknown marker")
}

func TestAMF0TruncatedString(t *testing.T) {
	buf := []byte{AMF0String, 0x00, 0x05, 'a', 'b'}
	res := Decode(buf, false)

	require.True(t, res.Errored)
	assert.Equal(t, 3, res.ErrorOffset)

	require.Len(t, res.Syntax, len(buf))
	for _, sb := range res.Syntax[3:] {
		assert.Equal(t, SentinelID, sb.Owner)
		assert.Equal(t, TagError, sb.Tag)
	}
	assert.Equal(t, []byte{'a', 'b'}, ownedBy(res, SentinelID))

	sentinel, ok := res.Graph.Get(SentinelID)
	require.True(t, ok)
	assert.Equal(t, KindAMF0Undefined, sentinel.Kind())

	partial := mustGet(res, 0)
	assert.True(t, partial.Partial)
}

func TestAMF0TruncatedObjectKeepsDecodedProperties(t *testing.T) {
	buf := join([]byte{AMF0Object}, amf0Str("k"), []byte{AMF0Null}, amf0Str("z"))
	res := Decode(buf, false)

	require.True(t, res.Errored)
	obj := mustGet(res, 0)
	assert.True(t, obj.Partial)
	assert.Equal(t, AMF0ObjectValue{{Key: "k", KeyID: 1, ValueID: 2}}, obj.Value)

	_, ok := res.Graph.Get(3)
	assert.True(t, ok, "the key that hit the end of input still resolves")
}

func TestAMF0NestingLimit(t *testing.T) {
	level := join([]byte{AMF0Object}, amf0Str("a"))
	buf := bytes.Repeat(level, MaxNesting+10)
	d := NewDecoder(buf, false)
	res := d.Run()

	require.True(t, res.Errored)
	assert.Equal(t, len(level)*MaxNesting+1, res.ErrorOffset)
	_, ok := res.Graph.Get(SentinelID)
	assert.True(t, ok)
	assert.Empty(t, res.Graph.Pending())
	assert.Equal(t, 0, d.depth)
	assert.Equal(t, 0, d.nesting)

	var deepest uint8
	for _, sb := range res.Syntax {
		deepest = max(deepest, sb.Depth)
	}
	assert.Equal(t, uint8(math.MaxUint8), deepest, "shading depth saturates")
}
