// Package cursor provides a bounds-checked read position over an immutable
// byte sequence. Every decoder in this module reads through it; a read that
// would pass the end of the sequence fails with ErrOutOfBounds instead of
// panicking.
package cursor

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read or seek would leave the buffer.
var ErrOutOfBounds = errors.New("read past end of buffer")

// Cursor tracks a read position inside a byte sequence. It never mutates the
// underlying bytes and holds no state besides the position, so a fresh Cursor
// per decode call is cheap.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the read position to pos. Positions from 0 up to and including
// the buffer length are valid; a cursor sitting exactly at the end simply has
// nothing left to read.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: seek to %d in %d bytes", ErrOutOfBounds, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// ReadUint reads n bytes (1 to 4) as a little-endian unsigned integer and
// advances the position.
func (c *Cursor) ReadUint(n int) (uint32, error) {
	if n < 1 || n > 4 {
		return 0, fmt.Errorf("invalid integer width %d", n)
	}
	if c.Remaining() < n {
		return 0, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrOutOfBounds, n, c.pos, c.Remaining())
	}
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(c.data[c.pos+i]) << (8 * i)
	}
	c.pos += n
	return v, nil
}

// ReadByte reads a single byte and advances the position.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrOutOfBounds, c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes reads n bytes into a freshly allocated slice and advances the
// position. Returning a copy keeps decoded fields independent from the
// underlying buffer and from each other.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrOutOfBounds, n, c.pos, c.Remaining())
	}
	out := make([]byte, n)
	copy(out, c.data[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// Skip advances the position by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("%w: skip %d bytes at offset %d, have %d", ErrOutOfBounds, n, c.pos, c.Remaining())
	}
	c.pos += n
	return nil
}
