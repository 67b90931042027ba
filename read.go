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
	"bytes"
	"crypto/md5"
	"fmt"
	"time"
)

const (
	headerSize    = 128
	tagCountSize  = 4
	tagEntrySize  = 12
	minProfileLen = headerSize + tagCountSize
)

// TagEntry is an entry of the tag table of an ICC profile.
// Offset is counted from the start of the profile.
type TagEntry struct {
	Signature Signature
	Offset    uint32
	Size      uint32
}

// Header is the decoded form of the 128-byte profile header, together with
// the tag table which follows it.
type Header struct {
	Size               uint32
	PreferredCMMType   Signature
	Version            Version
	Class              ProfileClass
	ColorSpace         ColorSpace
	PCS                ColorSpace
	CreationDate       time.Time
	Magic              Signature // "acsp" for conforming profiles
	PrimaryPlatform    Signature
	Flags              uint32
	DeviceManufacturer Signature
	DeviceModel        Signature
	DeviceAttributes   uint64
	RenderingIntent    RenderingIntent
	Creator            Signature
	ProfileID          [16]byte

	// Tags lists the tag table entries in the order they appear in the
	// profile.
	Tags []TagEntry
}

// FindDescriptionTag locates the profile description tag.
//
// The tag table is scanned in order and the first entry with signature
// 'desc' is returned; the remaining entries are not examined.  Every entry
// which is read is checked to lie within data.
func FindDescriptionTag(data []byte) (TagEntry, error) {
	c, numTags, err := openTagTable(data)
	if err != nil {
		return TagEntry{}, err
	}
	for i := uint32(0); i < numTags; i++ {
		tag, err := readTagEntry(c)
		if err != nil {
			return TagEntry{}, err
		}
		if tag.Signature == DescriptionTag {
			return tag, nil
		}
	}
	return TagEntry{}, parseError(DescriptionTagNotFound, headerSize,
		fmt.Sprintf("no 'desc' entry among %d tags", numTags))
}

// ReadHeader decodes the profile header and the complete tag table.
// The checks applied are the same as for [FindDescriptionTag], but all
// entries of the tag table are validated.
func ReadHeader(data []byte) (*Header, error) {
	c, numTags, err := openTagTable(data)
	if err != nil {
		return nil, err
	}

	h := &Header{
		Size:               getUint32(data, 0),
		PreferredCMMType:   Signature(getUint32(data, 4)),
		Version:            Version(getUint32(data, 8)),
		Class:              ProfileClass(getUint32(data, 12)),
		ColorSpace:         ColorSpace(getUint32(data, 16)),
		PCS:                ColorSpace(getUint32(data, 20)),
		CreationDate:       getDateTime(data, 24),
		Magic:              Signature(getUint32(data, 36)),
		PrimaryPlatform:    Signature(getUint32(data, 40)),
		Flags:              getUint32(data, 44),
		DeviceManufacturer: Signature(getUint32(data, 48)),
		DeviceModel:        Signature(getUint32(data, 52)),
		DeviceAttributes:   uint64(getUint32(data, 56))<<32 | uint64(getUint32(data, 60)),
		RenderingIntent:    RenderingIntent(getUint32(data, 64)),
		Creator:            Signature(getUint32(data, 80)),
		Tags:               make([]TagEntry, 0, numTags),
	}
	copy(h.ProfileID[:], data[84:100])

	for i := uint32(0); i < numTags; i++ {
		tag, err := readTagEntry(c)
		if err != nil {
			return nil, err
		}
		h.Tags = append(h.Tags, tag)
	}
	return h, nil
}

// openTagTable validates the header size field and the tag count.
// On success, the returned cursor is positioned at the first tag entry.
func openTagTable(data []byte) (*Cursor, uint32, error) {
	if len(data) < minProfileLen {
		return nil, 0, parseError(TruncatedHeader, 0,
			fmt.Sprintf("profile has %d bytes, need at least %d", len(data), minProfileLen))
	}

	c := NewCursor(data)
	size, err := c.ReadUint32()
	if err != nil {
		return nil, 0, err
	}
	if uint64(size) != uint64(len(data)) {
		return nil, 0, parseError(HeaderLengthMismatch, 0,
			fmt.Sprintf("header declares %d bytes, have %d", size, len(data)))
	}

	if err := c.Seek(headerSize); err != nil {
		return nil, 0, err
	}
	numTags, err := c.ReadUint32()
	if err != nil {
		return nil, 0, err
	}
	if uint64(numTags) > uint64(c.Remaining()/tagEntrySize) {
		return nil, 0, parseError(TagTableOverflow, headerSize,
			fmt.Sprintf("%d tags do not fit into %d bytes", numTags, c.Remaining()))
	}
	return c, numTags, nil
}

func readTagEntry(c *Cursor) (TagEntry, error) {
	pos := c.Pos()
	sig, err := c.ReadSignature()
	if err != nil {
		return TagEntry{}, err
	}
	offset, err := c.ReadUint32()
	if err != nil {
		return TagEntry{}, err
	}
	size, err := c.ReadUint32()
	if err != nil {
		return TagEntry{}, err
	}

	// computed in 64 bits, so that offset+size cannot wrap around
	if uint64(offset)+uint64(size) > uint64(len(c.data)) {
		return TagEntry{}, parseError(TagRangeOverflow, pos,
			fmt.Sprintf("tag %s at %d+%d exceeds %d bytes", sig, offset, size, len(c.data)))
	}
	return TagEntry{Signature: sig, Offset: offset, Size: size}, nil
}

// CheckProfileID verifies the MD5 profile ID stored in bytes 84 to 99 of
// the header.  The data is not modified.
func CheckProfileID(data []byte) CheckSum {
	if len(data) < headerSize || isZero(data[84:100]) {
		return CheckSumMissing
	}

	// The entire profile, with the profile flags field, rendering intent
	// field, and profile ID field in the profile header temporarily set to
	// zeros, is used to calculate the ID.
	buf := bytes.Clone(data)
	clear(buf[44:48])
	clear(buf[64:68])
	clear(buf[84:100])

	sum := md5.Sum(buf)
	if bytes.Equal(sum[:], data[84:100]) {
		return CheckSumValid
	}
	return CheckSumInvalid
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// getUint32 reads a big-endian value.  The caller must ensure that
// offset+4 <= len(data).
func getUint32(data []byte, offset int) uint32 {
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
}

func getDateTime(data []byte, offset int) time.Time {
	var f [6]int // year, month, day, hour, minute, second
	for i := range f {
		f[i] = int(data[offset+2*i])<<8 | int(data[offset+2*i+1])
	}
	if f[0] < 1970 || f[0] > 3000 ||
		f[1] < 1 || f[1] > 12 ||
		f[2] < 1 || f[2] > 31 ||
		f[3] > 23 || f[4] > 59 || f[5] > 61 {
		return time.Time{}
	}
	return time.Date(f[0], time.Month(f[1]), f[2], f[3], f[4], f[5], 0, time.UTC)
}
