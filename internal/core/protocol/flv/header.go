// If you are AI: This file implements FLV file header parsing and generation.
// The header is read once at the start of the file.

package flv

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrInvalidSignature = errors.New("invalid FLV signature")
	ErrInvalidHeader    = errors.New("invalid FLV header")
)

// Header represents an FLV file header.
type Header struct {
	Version    byte
	HasAudio   bool
	HasVideo   bool
	DataOffset uint32 // Offset of the first previous-tag-size field
}

// Bytes returns the FLV header as a byte slice.
func (h *Header) Bytes() []byte {
	header := make([]byte, FLVHeaderSize)

	// Signature "FLV" (3 bytes)
	copy(header[0:3], FLVSignature)

	header[3] = FLVVersion

	// Flags (1 byte): audio and video flags
	flags := byte(0)
	if h.HasAudio {
		flags |= 0x04
	}
	if h.HasVideo {
		flags |= 0x01
	}
	header[4] = flags

	// Data offset (4 bytes, big-endian)
	offset := h.DataOffset
	if offset == 0 {
		offset = FLVHeaderSize
	}
	binary.BigEndian.PutUint32(header[5:9], offset)
	return header
}

// NewHeader creates a new FLV header with specified audio/video flags.
func NewHeader(hasAudio, hasVideo bool) *Header {
	return &Header{
		Version:    FLVVersion,
		HasAudio:   hasAudio,
		HasVideo:   hasVideo,
		DataOffset: FLVHeaderSize,
	}
}

// ReadHeader reads the file header and skips to the first tag, including
// the leading previous-tag-size field.
func ReadHeader(r io.Reader) (*Header, error) {
	var b [FLVHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, err
	}
	if string(b[0:3]) != FLVSignature {
		return nil, ErrInvalidSignature
	}
	h := &Header{
		Version:    b[3],
		HasAudio:   b[4]&0x04 != 0,
		HasVideo:   b[4]&0x01 != 0,
		DataOffset: binary.BigEndian.Uint32(b[5:9]),
	}
	if h.DataOffset < FLVHeaderSize {
		return nil, ErrInvalidHeader
	}
	// Skip any extended header bytes plus PreviousTagSize0.
	if _, err := io.CopyN(io.Discard, r, int64(h.DataOffset-FLVHeaderSize)+4); err != nil {
		return nil, err
	}
	return h, nil
}
