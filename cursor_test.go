// seehuhn.de/go/iccdesc - read descriptions from ICC profiles
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package iccdesc

import (
	"errors"
	"testing"
)

func TestCursorBigEndian(t *testing.T) {
	c := NewCursor([]byte{0x12, 0x34, 0xDE, 0xAD, 0xBE, 0xEF, 'd', 'e', 's', 'c', 1, 2})

	x16, err := c.ReadUint16()
	if err != nil || x16 != 0x1234 {
		t.Fatalf("ReadUint16 = %04X, %v", x16, err)
	}
	x32, err := c.ReadUint32()
	if err != nil || x32 != 0xDEADBEEF {
		t.Fatalf("ReadUint32 = %08X, %v", x32, err)
	}
	sig, err := c.ReadSignature()
	if err != nil || sig != DescriptionTag {
		t.Fatalf("ReadSignature = %s, %v", sig, err)
	}
	if c.Pos() != 10 || c.Remaining() != 2 {
		t.Fatalf("pos=%d remaining=%d, want 10 and 2", c.Pos(), c.Remaining())
	}
	b, err := c.ReadBytes(2)
	if err != nil || b[0] != 1 || b[1] != 2 {
		t.Fatalf("ReadBytes = %v, %v", b, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", c.Remaining())
	}
}

func TestCursorOutOfBounds(t *testing.T) {
	data := []byte{1, 2, 3}
	reads := []struct {
		name string
		read func(c *Cursor) error
	}{
		{"uint32", func(c *Cursor) error { _, err := c.ReadUint32(); return err }},
		{"bytes", func(c *Cursor) error { _, err := c.ReadBytes(4); return err }},
		{"negative", func(c *Cursor) error { _, err := c.ReadBytes(-1); return err }},
		{"seek", func(c *Cursor) error { return c.Seek(4) }},
		{"seekNegative", func(c *Cursor) error { return c.Seek(-1) }},
	}
	for _, r := range reads {
		t.Run(r.name, func(t *testing.T) {
			c := NewCursor(data)
			if err := r.read(c); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("got %v, want out of bounds", err)
			}
			if c.Pos() != 0 {
				t.Errorf("failed read moved cursor to %d", c.Pos())
			}
		})
	}

	c := NewCursor(data)
	if err := c.Seek(2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ReadUint16(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadUint16 with one byte left: got %v", err)
	}
	if c.Pos() != 2 {
		t.Errorf("pos = %d, want 2", c.Pos())
	}
}

func TestCursorSeekToEnd(t *testing.T) {
	c := NewCursor(make([]byte, 8))
	if err := c.Seek(8); err != nil {
		t.Fatalf("seeking to the end: %v", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", c.Remaining())
	}
	b, err := c.ReadBytes(0)
	if err != nil || len(b) != 0 {
		t.Errorf("ReadBytes(0) at end = %v, %v", b, err)
	}
}

// ReadBytes must not allow appending into the data following the slice.
func TestCursorBytesCapacity(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := NewCursor(data)
	b, err := c.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	_ = append(b, 99)
	if data[2] != 3 {
		t.Errorf("append overwrote underlying data")
	}
}
