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

import "strconv"

// Cursor reads big-endian values from a byte slice.
//
// Every read is checked against the end of the data.  A read which would go
// past the end fails with an [OutOfBounds] error and leaves the position
// unchanged.  The Cursor never modifies the underlying data.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of bytes between the read position and the
// end of the data.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the read position to pos, counted from the start of the data.
// Positioning the cursor exactly at the end of the data is allowed.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return parseError(OutOfBounds, c.pos, "cannot seek to "+strconv.Itoa(pos))
	}
	c.pos = pos
	return nil
}

// ReadUint16 reads a big-endian 16-bit unsigned integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadUint32 reads a big-endian 32-bit unsigned integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadSignature reads a four-byte tag or type signature.
func (c *Cursor) ReadSignature() (Signature, error) {
	x, err := c.ReadUint32()
	return Signature(x), err
}

// ReadBytes returns the next n bytes.
// The returned slice shares storage with the underlying data.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.next(n)
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, parseError(OutOfBounds, c.pos,
			"need "+strconv.Itoa(n)+" bytes, have "+strconv.Itoa(c.Remaining()))
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}
