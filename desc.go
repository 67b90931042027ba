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
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/language"
)

// Description is the decoded contents of a profile description tag.
// The concrete type is one of [TextDescription], [MultiLocalizedUnicode]
// or [Unsupported].
type Description interface {
	// TagType returns the type signature of the tag data.
	TagType() Signature

	// String returns the description text.  This is empty for
	// [Unsupported].
	String() string

	isDescription()
}

// TextDescription is a description stored as a legacy textDescriptionType.
type TextDescription struct {
	Text string
}

func (TextDescription) TagType() Signature { return TextDescriptionType }
func (d TextDescription) String() string   { return d.Text }
func (TextDescription) isDescription()     {}

// MultiLocalizedUnicode is a description stored as a
// multiLocalizedUnicodeType.  Only the first record of the tag is used.
type MultiLocalizedUnicode struct {
	Language string // ISO 639-1 language code, e.g. "en"
	Region   string // ISO 3166-1 country code, e.g. "US"

	// Units holds the UTF-16 code units of the text, exactly as stored.
	Units []uint16
}

func (MultiLocalizedUnicode) TagType() Signature { return MultiLocalizedUnicodeType }
func (MultiLocalizedUnicode) isDescription()     {}

// String decodes the UTF-16 text.  Surrogate pairs are combined;
// unpaired surrogates are replaced by U+FFFD.
func (d MultiLocalizedUnicode) String() string {
	return string(utf16.Decode(d.Units))
}

// Locale returns the language tag of the record.
func (d MultiLocalizedUnicode) Locale() (language.Tag, error) {
	base, err := language.ParseBase(d.Language)
	if err != nil {
		return language.Und, err
	}
	region, err := language.ParseRegion(d.Region)
	if err != nil {
		return language.Compose(base)
	}
	return language.Compose(base, region)
}

// Unsupported is returned when the description tag uses a type which is
// not understood.  This is not an error; there just is no description text
// available.
type Unsupported struct {
	Type Signature
}

func (d Unsupported) TagType() Signature { return d.Type }
func (Unsupported) String() string       { return "" }
func (Unsupported) isDescription()       {}

// DecodeDescription decodes the tag data identified by tag.
// Only bytes inside the tag's range are read.
func DecodeDescription(data []byte, tag TagEntry) (Description, error) {
	start := uint64(tag.Offset)
	end := start + uint64(tag.Size)
	if end > uint64(len(data)) {
		return nil, parseError(TagRangeOverflow, int(min(start, uint64(len(data)))),
			fmt.Sprintf("tag %s at %d+%d exceeds %d bytes", tag.Signature, tag.Offset, tag.Size, len(data)))
	}
	if tag.Size < 8 {
		return nil, parseError(MalformedTag, int(start),
			fmt.Sprintf("%d bytes are too short for a tag", tag.Size))
	}

	c := NewCursor(data[:end])
	if err := c.Seek(int(start)); err != nil {
		return nil, err
	}
	tagType, err := c.ReadSignature()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadBytes(4); err != nil { // reserved
		return nil, err
	}

	switch tagType {
	case TextDescriptionType:
		return decodeTextDescription(c)
	case MultiLocalizedUnicodeType:
		return decodeMLUC(c, int(start), tag.Size)
	default:
		return Unsupported{Type: tagType}, nil
	}
}

func decodeTextDescription(c *Cursor) (Description, error) {
	pos := c.Pos()
	if c.Remaining() < 4 {
		return nil, parseError(MalformedTag, pos, "missing ASCII count")
	}
	n, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(c.Remaining()) {
		return nil, parseError(MalformedTag, pos,
			fmt.Sprintf("ASCII count %d exceeds remaining %d bytes", n, c.Remaining()))
	}
	text, err := c.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	return TextDescription{Text: string(text)}, nil
}

// decodeMLUC reads the first record of a multiLocalizedUnicodeType.
// The cursor is positioned after the type signature and reserved bytes,
// start and size give the range of the tag.
func decodeMLUC(c *Cursor, start int, size uint32) (Description, error) {
	pos := c.Pos()
	// record count and record size, followed by the first record
	if c.Remaining() < 8+12 {
		return nil, parseError(MalformedTag, pos, "missing mluc record")
	}
	numRecords, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if numRecords == 0 {
		return nil, parseError(MalformedTag, pos, "mluc tag has no records")
	}
	// The record size is normally 12.  Since only the first record is
	// used, other values do not matter.
	if _, err := c.ReadUint32(); err != nil {
		return nil, err
	}

	lang, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	region, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	recPos := c.Pos()
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	offset, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	if length%2 != 0 {
		return nil, parseError(MalformedTag, recPos,
			fmt.Sprintf("odd UTF-16 length %d", length))
	}
	if uint64(offset)+uint64(length) > uint64(size) {
		return nil, parseError(MalformedTag, recPos,
			fmt.Sprintf("string at %d+%d exceeds tag size %d", offset, length, size))
	}

	if err := c.Seek(start + int(offset)); err != nil {
		return nil, err
	}
	units := make([]uint16, length/2)
	for i := range units {
		units[i], err = c.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	return MultiLocalizedUnicode{
		Language: twoChars(lang),
		Region:   twoChars(region),
		Units:    units,
	}, nil
}

func twoChars(x uint16) string {
	return string([]byte{byte(x >> 8), byte(x)})
}
