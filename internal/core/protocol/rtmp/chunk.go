// If you are AI: This file implements RTMP chunk parsing and reassembly.
// Each chunk stream id keeps its own header state and reassembly buffer.

package rtmp

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrInvalidChunkHeader = errors.New("invalid chunk header")
	ErrChunkTooLarge      = errors.New("chunk size too large")
)

// ChunkStream represents a chunk stream for message reassembly.
// Each chunk stream ID has its own reassembly buffer.
type ChunkStream struct {
	chunkStreamID  uint32
	messageType    byte
	messageLength  uint32
	messageStream  uint32
	timestamp      uint32
	timestampDelta uint32
	extended       bool // Last header carried an extended timestamp
	buffer         []byte
	bytesRead      uint32
	started        bool // A type 0 header has been seen
	complete       bool // buffer holds a whole message not yet returned
}

// ChunkParser parses RTMP chunks and reassembles messages.
type ChunkParser struct {
	chunkStreams map[uint32]*ChunkStream
	chunkSize    uint32
}

// NewChunkParser creates a new chunk parser.
func NewChunkParser() *ChunkParser {
	return &ChunkParser{
		chunkStreams: make(map[uint32]*ChunkStream),
		chunkSize:    DefaultChunkSize,
	}
}

// SetChunkSize sets the chunk size used for incoming chunks.
func (p *ChunkParser) SetChunkSize(size uint32) {
	p.chunkSize = size
}

// ChunkSize returns the chunk size currently in effect.
func (p *ChunkParser) ChunkSize() uint32 {
	return p.chunkSize
}

// Abort drops the partially reassembled message on a chunk stream.
func (p *ChunkParser) Abort(csID uint32) {
	if cs, ok := p.chunkStreams[csID]; ok {
		cs.buffer = cs.buffer[:0]
		cs.bytesRead = cs.messageLength
		cs.complete = false
	}
}

// ReadChunk reads and parses a chunk from the reader.
// Returns the chunk stream ID and any error.
func (p *ChunkParser) ReadChunk(r io.Reader) (uint32, error) {
	var basicHeader byte
	if err := binary.Read(r, binary.BigEndian, &basicHeader); err != nil {
		return 0, err
	}

	// Extract format and chunk stream ID
	fmt := (basicHeader >> 6) & 0x03
	csID := uint32(basicHeader & 0x3F)

	switch csID {
	case 0:
		var extID byte
		if err := binary.Read(r, binary.BigEndian, &extID); err != nil {
			return 0, unexpected(err)
		}
		csID = uint32(extID) + 64
	case 1:
		// 2-byte extended ID, little-endian on the wire
		var extID [2]byte
		if _, err := io.ReadFull(r, extID[:]); err != nil {
			return 0, unexpected(err)
		}
		csID = uint32(extID[1])<<8 | uint32(extID[0]) + 64
	}

	cs, exists := p.chunkStreams[csID]
	if !exists {
		cs = &ChunkStream{chunkStreamID: csID}
		p.chunkStreams[csID] = cs
	}
	if fmt != ChunkFmt0 && !cs.started {
		return csID, ErrInvalidChunkHeader
	}

	if err := p.readMessageHeader(r, cs, fmt); err != nil {
		return csID, unexpected(err)
	}

	payloadSize := min(p.chunkSize, cs.messageLength-cs.bytesRead)
	start := len(cs.buffer)
	cs.buffer = append(cs.buffer, make([]byte, payloadSize)...)
	if _, err := io.ReadFull(r, cs.buffer[start:]); err != nil {
		return csID, unexpected(err)
	}
	cs.bytesRead += payloadSize
	cs.complete = cs.bytesRead == cs.messageLength
	return csID, nil
}

// readMessageHeader reads the message header based on format type.
func (p *ChunkParser) readMessageHeader(r io.Reader, cs *ChunkStream, fmt byte) error {
	// A new message starts on type 0-2 headers, and on type 3 once the previous one is complete.
	newMessage := fmt != ChunkFmt3 || cs.bytesRead >= cs.messageLength

	switch fmt {
	case ChunkFmt0:
		// 11 bytes: timestamp (3) + length (3) + type (1) + stream ID (4, little-endian)
		var header [11]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return err
		}
		ts, err := readTimestamp(r, uint24(header[0:3]))
		if err != nil {
			return err
		}
		cs.extended = uint24(header[0:3]) == extendedTimestamp
		cs.timestamp = ts
		cs.timestampDelta = 0
		cs.messageLength = uint24(header[3:6])
		cs.messageType = header[6]
		cs.messageStream = binary.LittleEndian.Uint32(header[7:11])
		cs.started = true

	case ChunkFmt1:
		// 7 bytes: timestamp delta (3) + length (3) + type (1)
		var header [7]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return err
		}
		delta, err := readTimestamp(r, uint24(header[0:3]))
		if err != nil {
			return err
		}
		cs.extended = uint24(header[0:3]) == extendedTimestamp
		cs.timestampDelta = delta
		cs.timestamp += delta
		cs.messageLength = uint24(header[3:6])
		cs.messageType = header[6]

	case ChunkFmt2:
		// 3 bytes: timestamp delta (3)
		var header [3]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return err
		}
		delta, err := readTimestamp(r, uint24(header[:]))
		if err != nil {
			return err
		}
		cs.extended = uint24(header[:]) == extendedTimestamp
		cs.timestampDelta = delta
		cs.timestamp += delta

	case ChunkFmt3:
		// No header; an extended timestamp is repeated when the last header had one
		if cs.extended {
			var ext uint32
			if err := binary.Read(r, binary.BigEndian, &ext); err != nil {
				return err
			}
		}
		if newMessage {
			cs.timestamp += cs.timestampDelta
		}
	}

	if newMessage {
		cs.bytesRead = 0
		cs.buffer = cs.buffer[:0]
	}
	return nil
}

// readTimestamp returns field, or the following 32-bit value when field is the extended marker.
func readTimestamp(r io.Reader, field uint32) (uint32, error) {
	if field != extendedTimestamp {
		return field, nil
	}
	var ext uint32
	err := binary.Read(r, binary.BigEndian, &ext)
	return ext, err
}

// uint24 decodes a 3-byte big-endian value.
func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// unexpected converts a clean EOF inside a chunk into io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// GetCompleteMessage returns the message on csID if reassembly is complete.
// A message is returned once; the next chunk on the stream starts a new one.
func (p *ChunkParser) GetCompleteMessage(csID uint32) (Message, bool) {
	cs, exists := p.chunkStreams[csID]
	if !exists || !cs.complete {
		return Message{}, false
	}
	cs.complete = false

	body := make([]byte, len(cs.buffer))
	copy(body, cs.buffer)
	return Message{
		Type:          cs.messageType,
		Length:        cs.messageLength,
		Timestamp:     cs.timestamp,
		StreamID:      cs.messageStream,
		ChunkStreamID: csID,
		Body:          body,
	}, true
}
