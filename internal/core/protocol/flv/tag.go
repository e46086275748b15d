// If you are AI: This file implements FLV tag reading and encoding.
// Script tags carry AMF0 metadata such as onMetaData.

package flv

import (
	"encoding/binary"
	"errors"
	"io"
)

// Tag represents an FLV tag (audio, video, or script).
type Tag struct {
	Type      byte
	Timestamp uint32
	Offset    int64 // File offset of the tag header, set by Reader
	Data      []byte
}

// Bytes encodes the tag as FLV tag bytes.
// Format: tag type (1) + data size (3) + timestamp lower (3) + timestamp upper (1) + stream ID (3) + data (N) + previous tag size (4)
func (t *Tag) Bytes() []byte {
	dataSize := uint32(len(t.Data))
	result := make([]byte, TagHeaderSize+len(t.Data)+4)

	result[0] = t.Type

	// Data size (3 bytes, big-endian)
	result[1] = byte(dataSize >> 16)
	result[2] = byte(dataSize >> 8)
	result[3] = byte(dataSize)

	// Timestamp: lower 24 bits in bytes 4-6, upper 8 bits in byte 7
	result[4] = byte(t.Timestamp >> 16)
	result[5] = byte(t.Timestamp >> 8)
	result[6] = byte(t.Timestamp)
	result[7] = byte(t.Timestamp >> 24)

	// Stream ID (3 bytes) stays 0
	copy(result[TagHeaderSize:], t.Data)

	// Previous tag size (4 bytes, big-endian) = 11 + data size
	binary.BigEndian.PutUint32(result[TagHeaderSize+len(t.Data):], uint32(TagHeaderSize+len(t.Data)))
	return result
}

// NewTag creates a new FLV tag from type, timestamp, and data.
func NewTag(tagType byte, timestamp uint32, data []byte) *Tag {
	return &Tag{
		Type:      tagType,
		Timestamp: timestamp,
		Data:      data,
	}
}

// Reader walks the tags of an FLV file.
type Reader struct {
	r      io.Reader
	header *Header
	offset int64
}

// NewReader reads the file header and returns a tag reader.
func NewReader(r io.Reader) (*Reader, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, header: h, offset: int64(h.DataOffset) + 4}, nil
}

// Header returns the parsed file header.
func (fr *Reader) Header() *Header {
	return fr.header
}

// Next returns the next tag, or io.EOF at a clean end of file.
func (fr *Reader) Next() (*Tag, error) {
	var hdr [TagHeaderSize]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		return nil, io.EOF
	}
	size := uint32(hdr[1])<<16 | uint32(hdr[2])<<8 | uint32(hdr[3])
	t := &Tag{
		Type:      hdr[0] & tagTypeFilter,
		Timestamp: uint32(hdr[7])<<24 | uint32(hdr[4])<<16 | uint32(hdr[5])<<8 | uint32(hdr[6]),
		Offset:    fr.offset,
		Data:      make([]byte, size),
	}
	if _, err := io.ReadFull(fr.r, t.Data); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	// The trailing previous tag size may be missing at the end of a truncated file.
	var prev [4]byte
	if _, err := io.ReadFull(fr.r, prev[:]); err != nil && !errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	fr.offset += int64(TagHeaderSize) + int64(size) + 4
	return t, nil
}

// ScriptTags returns every script data tag of the file.
// Tags read before a truncation are returned together with the error.
func ScriptTags(r io.Reader) ([]*Tag, error) {
	fr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	var tags []*Tag
	for {
		t, err := fr.Next()
		if errors.Is(err, io.EOF) {
			return tags, nil
		}
		if err != nil {
			return tags, err
		}
		if t.Type == TagTypeScript {
			tags = append(tags, t)
		}
	}
}
