// If you are AI: This file recognises and skips the client RTMP handshake in captures.
// It also writes client handshakes for building capture fixtures.

package rtmp

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	ErrInvalidVersion  = errors.New("invalid RTMP version")
	ErrHandshakeFailed = errors.New("handshake failed")
)

// HandshakeMode selects how a capture's leading bytes are treated.
type HandshakeMode int

const (
	HandshakeAuto    HandshakeMode = iota // Detect C0/C1/C2 from the first bytes
	HandshakePresent                      // Always skip C0/C1/C2
	HandshakeAbsent                       // The capture starts with a chunk
)

// DetectHandshake reports whether prefix looks like C0 followed by C1
// rather than a type 0 chunk on stream 3.
// Both start with 0x03; byte 7 is a message type id in a chunk but falls
// in the zero or version field of C1.
func DetectHandshake(prefix []byte) bool {
	if len(prefix) < 8 || prefix[0] != RTMPVersion {
		return false
	}
	return !knownMessageType(prefix[7])
}

// SkipHandshake consumes C0/C1/C2 from r according to mode.
// Reports whether a handshake was skipped.
func SkipHandshake(r *bufio.Reader, mode HandshakeMode) (bool, error) {
	switch mode {
	case HandshakeAbsent:
		return false, nil
	case HandshakeAuto:
		prefix, err := r.Peek(8)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		if !DetectHandshake(prefix) {
			return false, nil
		}
	}

	c0, err := r.ReadByte()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	if c0 != RTMPVersion {
		return false, ErrInvalidVersion
	}
	if _, err := r.Discard(2 * HandshakePacketSize); err != nil {
		return false, fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	return true, nil
}

// WriteClientHandshake writes the client side of a simple handshake:
// C0, C1 (time, zero, random) and C2.
func WriteClientHandshake(w io.Writer) error {
	if _, err := w.Write([]byte{RTMPVersion}); err != nil {
		return err
	}

	c1 := make([]byte, HandshakePacketSize)
	binary.BigEndian.PutUint32(c1[0:4], uint32(time.Now().Unix()))
	binary.BigEndian.PutUint32(c1[4:8], 0)
	if _, err := rand.Read(c1[8:]); err != nil {
		return err
	}
	if _, err := w.Write(c1); err != nil {
		return err
	}

	// C2 echoes S1; a capture of one direction only needs the size right.
	c2 := make([]byte, HandshakePacketSize)
	copy(c2, c1)
	_, err := w.Write(c2)
	return err
}
