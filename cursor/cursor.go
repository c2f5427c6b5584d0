// Package cursor provides a consumable byte buffer shared by chained decoders.
//
// A Cursor owns a private copy of its input. Decoders remove the bytes they need
// from the front (or, via ConsumeAt, from anywhere in the remaining sequence) and
// leave the rest for the next decoder, so a tag byte, a varint and a payload can
// be read back-to-back without tracking offsets by hand.
//
// A Cursor is not safe for concurrent use. One decode session owns one cursor.
package cursor

import (
	"io"
)

// Cursor is a shrinking byte sequence with position tracking.
type Cursor struct {
	buf []byte
	pos int
}

// New creates a Cursor over a copy of data.
func New(data []byte) *Cursor {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Cursor{buf: buf}
}

// Len returns the number of bytes left.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// IsEmpty reports whether every byte has been consumed.
func (c *Cursor) IsEmpty() bool {
	return len(c.buf) == 0
}

// Position returns how many bytes have been consumed so far.
func (c *Cursor) Position() int {
	return c.pos
}

// Bytes returns the remaining bytes. The slice aliases the cursor's storage.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// ConsumeAt removes and returns the byte at index of the remaining sequence.
// It reports false when index is out of bounds.
func (c *Cursor) ConsumeAt(index int) (byte, bool) {
	if index < 0 || index >= len(c.buf) {
		return 0, false
	}
	b := c.buf[index]
	if index == 0 {
		c.buf = c.buf[1:]
	} else {
		c.buf = append(c.buf[:index], c.buf[index+1:]...)
	}
	c.pos++
	return b, true
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if len(c.buf) == 0 {
		return 0, false
	}
	return c.buf[0], true
}

// ReadByte consumes the next byte. It implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	b, ok := c.ConsumeAt(0)
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

// Consume removes and returns the next n bytes.
// It reports false and consumes nothing when fewer than n bytes remain.
func (c *Cursor) Consume(n int) ([]byte, bool) {
	if n < 0 || n > len(c.buf) {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, c.buf[:n])
	c.buf = c.buf[n:]
	c.pos += n
	return out, true
}

// Clone returns an independent cursor over the remaining bytes.
func (c *Cursor) Clone() *Cursor {
	clone := New(c.buf)
	clone.pos = c.pos
	return clone
}
