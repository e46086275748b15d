// If you are AI: This file contains unit tests for the decode pass and error recovery.

package amf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mixedStream is an AMF0 command stream that switches to AMF3 midway.
func mixedStream() []byte {
	return join(
		[]byte{0x00},
		[]byte{AMF0String}, amf0Str("connect"),
		[]byte{AMF0Number}, f64(1),
		[]byte{AMF0Object}, amf0Str("app"), []byte{AMF0String}, amf0Str("live"),
		[]byte{0x00, 0x00, AMF0ObjectEnd},
		[]byte{AMF0AVMPlus},
		[]byte{AMF3Object, 0x0B, 0x01, 0x03, 'k', AMF3String, 0x03, 'v', 0x01},
		[]byte{AMF3String, 0x02},
	)
}

func TestDecodeEmpty(t *testing.T) {
	for _, isCommand := range []bool{false, true} {
		res := Decode(nil, isCommand)
		assert.False(t, res.Errored)
		assert.Equal(t, -1, res.ErrorOffset)
		assert.Zero(t, res.Graph.Len())
		assert.Empty(t, res.Syntax)
	}
}

func TestDecodeCommandSelectorZero(t *testing.T) {
	res := Decode([]byte{0x00, AMF0Null}, true)

	require.False(t, res.Errored)
	assert.Equal(t, ModeAMF0, res.Mode)
	assert.Equal(t, FormatSelectorValue(0), mustGet(res, 0).Value)
	assert.Equal(t, AMF0NullValue{}, mustGet(res, 1).Value)
	assert.Equal(t, TagFormatSelector, res.Syntax[0].Tag)
}

func TestDecodeWithoutCommandReadsFirstByte(t *testing.T) {
	res := Decode([]byte{AMF0Null}, false)

	assert.Equal(t, AMF0NullValue{}, mustGet(res, 0).Value)
}

func TestDecodeSwitchToAMF3(t *testing.T) {
	res := Decode([]byte{AMF0AVMPlus, AMF3Integer, 0x05}, false)

	require.False(t, res.Errored)
	assert.Equal(t, ModeAMF3, res.Mode)
	assert.Equal(t, AMF0SwitchValue{}, mustGet(res, 0).Value)
	assert.Equal(t, AMF3IntegerValue(5), mustGet(res, 1).Value)
	assert.Equal(t, TagSwitchMarker, res.Syntax[0].Tag)
}

func TestDecodeMixedStream(t *testing.T) {
	buf := mixedStream()
	res := Decode(buf, true)

	require.False(t, res.Errored)
	assert.Equal(t, AMF0StringValue("connect"), mustGet(res, 1).Value)
	assert.Equal(t, AMF0NumberValue(1), mustGet(res, 2).Value)
	assert.Equal(t, KindAMF0Object, mustGet(res, 3).Kind())
	assert.Equal(t, KindAMF0Switch, mustGet(res, 6).Kind())

	obj := mustGet(res, 7)
	require.Equal(t, KindAMF3Object, obj.Kind())
	assert.Equal(t, AMF3ObjectValue{
		{Name: "k", NameID: 9, ValueID: 10, HasValue: true, Dynamic: true},
	}, obj.Value)

	ref := mustGet(res, 11)
	assert.Equal(t, AMF3StringValue("v"), ref.Value)
	assert.Equal(t, []string{"k", "v"}, res.Strings)
	assert.Equal(t, []ValueID{0, 1, 2, 3, 6, 7, 11}, res.Graph.Roots())
}

func TestDecodeAnnotationCoverage(t *testing.T) {
	inputs := [][]byte{
		mixedStream(),
		mixedStream()[:20],
		{AMF0Object, 0x00},
		{0x03, AMF3Array, 0x09, AMF3True},
		{0xFF, 0xFF, 0xFF},
	}
	for _, buf := range inputs {
		for _, isCommand := range []bool{false, true} {
			res := Decode(buf, isCommand)
			require.Len(t, res.Syntax, len(buf))
			for i, sb := range res.Syntax {
				assert.Equal(t, buf[i], sb.Value, "byte %d", i)
				_, ok := res.Graph.Get(sb.Owner)
				assert.True(t, ok, "owner %d of byte %d must resolve", sb.Owner, i)
			}
			assert.Empty(t, res.Graph.Pending())
		}
	}
}

func TestDecodeChildrenFollowParents(t *testing.T) {
	res := Decode(mixedStream(), true)

	for _, d := range res.Graph.Descriptors() {
		for _, c := range d.Children() {
			assert.Greater(t, c, d.ID, "child %d of %d", c, d.ID)
			_, ok := res.Graph.Get(c)
			assert.True(t, ok)
		}
	}
}

func TestDecodeErrorModeDrains(t *testing.T) {
	buf := []byte{AMF0Null, AMF0Number, 0x01, 0x02, 0x03}
	res := Decode(buf, false)

	require.True(t, res.Errored)
	assert.Equal(t, 2, res.ErrorOffset)
	assert.Equal(t, AMF0NullValue{}, mustGet(res, 0).Value)

	partial := mustGet(res, 1)
	assert.True(t, partial.Partial)
	assert.Equal(t, KindAMF0Undefined, partial.Kind())

	assert.Equal(t, []byte{0x01, 0x02, 0x03}, ownedBy(res, SentinelID))
	assert.Equal(t, []ValueID{0, 1, SentinelID}, res.Graph.IDs())
}

func TestDecodeRunIsCached(t *testing.T) {
	d := NewDecoder([]byte{AMF0Null}, false)
	first := d.Run()
	second := d.Run()

	assert.Same(t, first, second)
	assert.Equal(t, 1, second.Graph.Len())
}

func TestDecodeDeterministic(t *testing.T) {
	buf := mixedStream()
	a := Decode(buf, true)
	b := Decode(buf, true)

	assert.Equal(t, a.Syntax, b.Syntax)
	assert.Equal(t, a.Graph.Descriptors(), b.Graph.Descriptors())
}

func TestDecodeWithLogger(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Decode([]byte{AMF0AVMPlus, AMF3Integer}, false, WithLogger(logger))

	assert.Contains(t, out.String(), "switching to AMF3")
	assert.Contains(t, out.String(), "entering error mode")
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	d := NewDecoder(nil, false, WithLogger(nil))
	require.NotNil(t, d.logger)
	assert.NotPanics(t, func() { d.Run() })
}
