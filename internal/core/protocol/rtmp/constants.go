// If you are AI: This file defines RTMP protocol constants and message types.

package rtmp

// RTMP version constant
const RTMPVersion = 3

// Handshake sizes
const (
	HandshakePacketSize = 1536                      // C1 and C2
	HandshakeClientSize = 1 + 2*HandshakePacketSize // C0 + C1 + C2
)

// Default chunk size
const DefaultChunkSize = 128

// Maximum chunk size
const MaxChunkSize = 16777215 // 2^24 - 1

// Message type IDs
const (
	MessageTypeSetChunkSize     = 1
	MessageTypeAbortMessage     = 2
	MessageTypeAck              = 3
	MessageTypeUserCtrl         = 4
	MessageTypeWinAckSize       = 5
	MessageTypeSetPeerBandwidth = 6
	MessageTypeAudio            = 8
	MessageTypeVideo            = 9
	MessageTypeDataAMF3         = 15
	MessageTypeSharedObjectAMF3 = 16
	MessageTypeCommandAMF3      = 17
	MessageTypeDataAMF0         = 18
	MessageTypeSharedObjectAMF0 = 19
	MessageTypeCommandAMF0      = 20
	MessageTypeAggregate        = 22
)

// Chunk basic header format types
const (
	ChunkFmt0 = 0 // 11-byte header
	ChunkFmt1 = 1 // 7-byte header
	ChunkFmt2 = 2 // 3-byte header
	ChunkFmt3 = 3 // 0-byte header
)

// extendedTimestamp marks a 24-bit timestamp field that is followed by a 32-bit one.
const extendedTimestamp = 0xFFFFFF

// knownMessageType reports whether t is a message type id defined by RTMP.
func knownMessageType(t byte) bool {
	switch t {
	case MessageTypeSetChunkSize, MessageTypeAbortMessage, MessageTypeAck,
		MessageTypeUserCtrl, MessageTypeWinAckSize, MessageTypeSetPeerBandwidth,
		MessageTypeAudio, MessageTypeVideo,
		MessageTypeDataAMF3, MessageTypeSharedObjectAMF3, MessageTypeCommandAMF3,
		MessageTypeDataAMF0, MessageTypeSharedObjectAMF0, MessageTypeCommandAMF0,
		MessageTypeAggregate:
		return true
	}
	return false
}
