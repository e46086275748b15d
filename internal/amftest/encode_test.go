// If you are AI: This file checks the fixture builders against the decoder.

package amftest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amfscope/internal/core/protocol/amf"
)

// TestCommandStartsWithString verifies command bodies are written as a
// plain sequence, not wrapped in an array.
func TestCommandStartsWithString(t *testing.T) {
	body := Command("_result", 1, Object{{"fmsVer", "FMS/3,0,1,123"}}, nil)

	require.NotEmpty(t, body)
	assert.Equal(t, byte(0x02), body[0])
	assert.Equal(t, "_result", string(body[3:10]))
}

func TestAMF0FixturesDecode(t *testing.T) {
	buf := AMF0("a", 2, true, nil, Typed{Class: "C", Fields: Object{{"k", "v"}}}, Switch{}, Raw(Int3(-3)))
	res := amf.Decode(buf, false)

	require.False(t, res.Errored)
	kinds := make([]amf.Kind, 0, res.Graph.Len())
	for _, id := range res.Graph.Roots() {
		d, _ := res.Graph.Get(id)
		kinds = append(kinds, d.Kind())
	}
	assert.Equal(t, []amf.Kind{
		amf.KindAMF0String, amf.KindAMF0Number, amf.KindAMF0Bool, amf.KindAMF0Null,
		amf.KindAMF0TypedObject, amf.KindAMF0Switch, amf.KindAMF3Integer,
	}, kinds)
}

func TestU29MatchesDecoder(t *testing.T) {
	for _, v := range []uint32{0, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF, 0x200000, 0x1FFFFFFF} {
		enc := U29(v)
		got, n, err := amf.DecodeU29(enc)
		require.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, v, got, "value 0x%X", v)
	}
}

func TestDynamicObject3(t *testing.T) {
	buf := append([]byte{0x03}, DynamicObject3(Pair3{"n", Int3(9)}, Pair3{"s", Str3("x")})...)
	res := amf.Decode(buf, true)

	require.False(t, res.Errored)
	obj, ok := res.Graph.Get(1)
	require.True(t, ok)
	assert.Len(t, obj.Value, 2)
	assert.Equal(t, []string{"n", "s", "x"}, res.Strings)
}
