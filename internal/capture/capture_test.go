// If you are AI: This file contains unit tests for capture extraction and concurrent decoding.

package capture

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amfscope/internal/amftest"
	"amfscope/internal/core/protocol/amf"
	"amfscope/internal/core/protocol/flv"
	"amfscope/internal/core/protocol/rtmp"
)

// rtmpCapture builds a client capture with a handshake and three messages.
func rtmpCapture(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, rtmp.WriteClientHandshake(&buf))
	write := func(csID uint32, typ byte, body []byte) {
		require.NoError(t, rtmp.WriteChunk(&buf, csID, typ, 0, 0, body, rtmp.DefaultChunkSize))
	}
	write(3, rtmp.MessageTypeCommandAMF0, amftest.Command("connect", 1, amftest.Object{{Key: "app", Value: "live"}}))
	write(4, rtmp.MessageTypeVideo, []byte{0x17, 0x00})
	write(3, rtmp.MessageTypeCommandAMF3, append([]byte{0x00}, amftest.Command("publish", 2, nil, "cam")...))
	write(5, rtmp.MessageTypeDataAMF0, amftest.AMF0("@setDataFrame", "onMetaData", amftest.Object{{Key: "width", Value: 640}}))
	return buf.Bytes()
}

func TestFromRTMP(t *testing.T) {
	payloads, err := FromRTMP(bytes.NewReader(rtmpCapture(t)))
	require.NoError(t, err)
	require.Len(t, payloads, 3)

	assert.Equal(t, "command_amf0", payloads[0].Kind)
	assert.False(t, payloads[0].Command)
	assert.Equal(t, "command_amf3", payloads[1].Kind)
	assert.True(t, payloads[1].Command)
	assert.Equal(t, 2, payloads[2].Index)
	assert.Equal(t, int64(-1), payloads[2].Offset)
}

func TestFromRTMPTruncated(t *testing.T) {
	data := rtmpCapture(t)
	payloads, err := FromRTMP(bytes.NewReader(data[:len(data)-5]))
	assert.Error(t, err)
	assert.Len(t, payloads, 2)
}

func TestFromFLV(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(flv.NewHeader(true, false).Bytes())
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write(flv.NewTag(flv.TagTypeScript, 0, amftest.AMF0("onMetaData", amftest.Object{{Key: "duration", Value: 3}})).Bytes())
	buf.Write(flv.NewTag(flv.TagTypeAudio, 0, []byte{0xAF}).Bytes())

	payloads, err := FromFLV(&buf)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "script", payloads[0].Kind)
	assert.Equal(t, int64(13), payloads[0].Offset)
}

func TestDecodeAll(t *testing.T) {
	payloads, err := FromRTMP(bytes.NewReader(rtmpCapture(t)))
	require.NoError(t, err)
	payloads = append(payloads, Payload{Index: 3, Kind: "broken", Data: []byte{0x02, 0x00, 0x09}})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	decoded, err := DecodeAll(context.Background(), payloads, 2, logger)
	require.NoError(t, err)
	require.Len(t, decoded, 4)

	assert.Equal(t, "connect", decoded[0].Name())
	assert.Equal(t, "publish", decoded[1].Name())
	assert.Equal(t, amf.ModeAMF0, decoded[1].Result.Mode)
	assert.Equal(t, "@setDataFrame", decoded[2].Name())
	assert.True(t, decoded[3].Result.Errored)
	assert.Equal(t, "", decoded[3].Name())
	assert.Contains(t, logs.String(), "payload decoded with errors")
}

func TestDecodeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecodeAll(ctx, []Payload{{Data: []byte{0x05}}}, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
