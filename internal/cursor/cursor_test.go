package cursor

import (
	"errors"
	"testing"
)

func TestReadUint(t *testing.T) {
	c := New([]byte{0x42, 0x00, 0x01, 0x02, 0x03, 0x04})
	v, err := c.ReadUint(2)
	if err != nil {
		t.Fatalf("ReadUint: %v", err)
	}
	if v != 0x0042 {
		t.Fatalf("unexpected value 0x%04X", v)
	}
	v, err = c.ReadUint(4)
	if err != nil {
		t.Fatalf("ReadUint: %v", err)
	}
	if v != 0x04030201 {
		t.Fatalf("unexpected value 0x%08X", v)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected empty cursor, %d bytes remain", c.Remaining())
	}
}

func TestReadUint3ByteDescriptor(t *testing.T) {
	c := New([]byte{0x42, 0x00, 0x01})
	v, err := c.ReadUint(3)
	if err != nil {
		t.Fatalf("ReadUint: %v", err)
	}
	if v != 0x010042 {
		t.Fatalf("unexpected value 0x%06X", v)
	}
}

func TestReadPastEnd(t *testing.T) {
	c := New([]byte{0x01, 0x02})
	if _, err := c.ReadUint(4); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	// A failed read must not move the position.
	if c.Pos() != 0 {
		t.Fatalf("position moved to %d after failed read", c.Pos())
	}
	if _, err := c.ReadBytes(3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSeekBounds(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})
	if err := c.Seek(3); err != nil {
		t.Fatalf("seek to end: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", c.Remaining())
	}
	if err := c.Seek(4); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestReadBytesCopies(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC}
	c := New(data)
	out, err := c.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	out[0] = 0x00
	if data[0] != 0xAA {
		t.Fatal("ReadBytes aliases the underlying buffer")
	}
}
