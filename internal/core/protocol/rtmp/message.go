// If you are AI: This file handles RTMP message parsing and chunk writing.
// Messages carrying AMF are exposed with the framing the decoder expects.

package rtmp

import (
	"encoding/binary"
	"io"
)

// Message represents a reassembled RTMP message.
type Message struct {
	Type          byte
	Length        uint32
	Timestamp     uint32
	StreamID      uint32
	ChunkStreamID uint32
	Body          []byte
}

// IsAMF reports whether the message body is AMF encoded.
func (m Message) IsAMF() bool {
	switch m.Type {
	case MessageTypeDataAMF3, MessageTypeCommandAMF3, MessageTypeDataAMF0, MessageTypeCommandAMF0:
		return true
	}
	return false
}

// IsCommandStream reports whether the body starts with a format selector byte.
// AMF3 data and command messages carry one; AMF0 messages do not.
func (m Message) IsCommandStream() bool {
	return m.Type == MessageTypeDataAMF3 || m.Type == MessageTypeCommandAMF3
}

// TypeName returns a short name for the message type.
func (m Message) TypeName() string {
	switch m.Type {
	case MessageTypeSetChunkSize:
		return "set_chunk_size"
	case MessageTypeAbortMessage:
		return "abort"
	case MessageTypeAck:
		return "ack"
	case MessageTypeUserCtrl:
		return "user_control"
	case MessageTypeWinAckSize:
		return "window_ack_size"
	case MessageTypeSetPeerBandwidth:
		return "set_peer_bandwidth"
	case MessageTypeAudio:
		return "audio"
	case MessageTypeVideo:
		return "video"
	case MessageTypeDataAMF3:
		return "data_amf3"
	case MessageTypeSharedObjectAMF3:
		return "shared_object_amf3"
	case MessageTypeCommandAMF3:
		return "command_amf3"
	case MessageTypeDataAMF0:
		return "data_amf0"
	case MessageTypeSharedObjectAMF0:
		return "shared_object_amf0"
	case MessageTypeCommandAMF0:
		return "command_amf0"
	case MessageTypeAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// ParseSetChunkSize parses a Set Chunk Size message.
func ParseSetChunkSize(body []byte) (uint32, error) {
	if len(body) < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	// The top bit is reserved and must be zero.
	size := binary.BigEndian.Uint32(body[0:4]) & 0x7FFFFFFF
	if size == 0 || size > MaxChunkSize {
		return 0, ErrChunkTooLarge
	}
	return size, nil
}

// CreateSetChunkSize creates a Set Chunk Size message body.
func CreateSetChunkSize(size uint32) []byte {
	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, size)
	return body
}

// WriteChunk writes a message as RTMP chunks: one type 0 chunk followed by
// type 3 continuations. It is used to build capture fixtures.
func WriteChunk(w io.Writer, csID uint32, msgType byte, timestamp uint32, streamID uint32, body []byte, chunkSize uint32) error {
	bodyLen := uint32(len(body))
	offset := uint32(0)

	for first := true; first || offset < bodyLen; first = false {
		fmt := byte(ChunkFmt3)
		if first {
			fmt = ChunkFmt0
		}
		if err := writeBasicHeader(w, fmt, csID); err != nil {
			return err
		}

		if fmt == ChunkFmt0 {
			ts := min(timestamp, extendedTimestamp)
			header := make([]byte, 11)
			header[0] = byte(ts >> 16)
			header[1] = byte(ts >> 8)
			header[2] = byte(ts)
			header[3] = byte(bodyLen >> 16)
			header[4] = byte(bodyLen >> 8)
			header[5] = byte(bodyLen)
			header[6] = msgType
			// Stream ID is little-endian in RTMP
			binary.LittleEndian.PutUint32(header[7:11], streamID)
			if _, err := w.Write(header); err != nil {
				return err
			}
		}
		if timestamp >= extendedTimestamp {
			if err := binary.Write(w, binary.BigEndian, timestamp); err != nil {
				return err
			}
		}

		chunkLen := min(chunkSize, bodyLen-offset)
		if _, err := w.Write(body[offset : offset+chunkLen]); err != nil {
			return err
		}
		offset += chunkLen
	}
	return nil
}

// writeBasicHeader writes the 1-3 byte chunk basic header.
func writeBasicHeader(w io.Writer, fmt byte, csID uint32) error {
	basicHeader := fmt << 6
	switch {
	case csID < 64:
		_, err := w.Write([]byte{basicHeader | byte(csID)})
		return err
	case csID < 320:
		_, err := w.Write([]byte{basicHeader, byte(csID - 64)})
		return err
	default:
		id := csID - 64
		_, err := w.Write([]byte{basicHeader | 1, byte(id), byte(id >> 8)})
		return err
	}
}
