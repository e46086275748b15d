// If you are AI: This file implements the bounds-checked byte cursor used by the decoder.
// The cursor never panics and only advances on a successful read.

package amf

import "errors"

// ErrExhausted is returned when a read needs more bytes than remain.
var ErrExhausted = errors.New("input exhausted")

// Cursor reads sequentially from a fixed buffer.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// ReadByte reads one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrExhausted
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes or nothing at all.
// The returned slice aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.PeekN(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrExhausted
	}
	return c.buf[c.pos], nil
}

// PeekN returns the next n bytes without consuming them.
func (c *Cursor) PeekN(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, ErrExhausted
	}
	return c.buf[c.pos : c.pos+n : c.pos+n], nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.pos
}
