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
	"time"
)

// Tag is a tag of an ICC profile, together with its binary data.
type Tag struct {
	Signature Signature
	Data      []byte
}

// Builder assembles an ICC profile from a list of tags.
// It is mainly useful to produce test data and minimal profiles
// for embedding.
type Builder struct {
	Version         Version
	Class           ProfileClass
	ColorSpace      ColorSpace
	PCS             ColorSpace
	CreationDate    time.Time
	RenderingIntent RenderingIntent

	// Tags are written to the tag table in the given order.  Tags with
	// identical data share storage in the profile.
	Tags []Tag
}

// Encode converts the profile to binary form.
func (b *Builder) Encode() []byte {
	version := b.Version
	if version == 0 {
		version = Version4_4_0
	}

	starts := make([]uint32, len(b.Tags))
	pos := minProfileLen + len(b.Tags)*tagEntrySize
	seen := make(map[string]uint32)
	for i, tag := range b.Tags {
		if start, ok := seen[string(tag.Data)]; ok {
			starts[i] = start
			continue
		}
		starts[i] = uint32(pos)
		seen[string(tag.Data)] = starts[i]
		pos += (len(tag.Data) + 3) &^ 3
	}

	buf := make([]byte, pos)
	putUint32(buf, 0, uint32(pos))
	putUint32(buf, 8, uint32(version))
	putUint32(buf, 12, uint32(b.Class))
	putUint32(buf, 16, uint32(b.ColorSpace))
	putUint32(buf, 20, uint32(b.PCS))
	putDateTime(buf, 24, b.CreationDate)
	putUint32(buf, 36, uint32(profileMagic))
	copy(buf[68:], d50)

	putUint32(buf, headerSize, uint32(len(b.Tags)))
	for i, tag := range b.Tags {
		entry := minProfileLen + i*tagEntrySize
		putUint32(buf, entry, uint32(tag.Signature))
		putUint32(buf, entry+4, starts[i])
		putUint32(buf, entry+8, uint32(len(tag.Data)))
		copy(buf[starts[i]:], tag.Data)
	}

	if version >= Version4_0_0 {
		// The rendering intent is still zero at this point, as required
		// for the profile ID computation.
		h := md5.Sum(buf)
		copy(buf[84:], h[:])
	}
	putUint32(buf, 64, uint32(b.RenderingIntent))

	return buf
}

// This is the value for the "PCS illuminant" header field (Bytes 68 to 79).
var d50 = []byte{
	0x00, 0x00, 0xf6, 0xd6, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0xd3, 0x2d,
}

// EncodeTextDescription returns the data of a textDescriptionType tag
// holding the given ASCII text.  The Unicode and ScriptCode parts of the
// tag are left empty.
func EncodeTextDescription(text string) []byte {
	n := len(text) + 1 // including the terminating zero byte
	var buf bytes.Buffer
	buf.Grow(12 + n + 8 + 3 + 67)
	buf.Write(sigBytes(TextDescriptionType))
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write(uint32Bytes(uint32(n)))
	buf.WriteString(text)
	buf.WriteByte(0)
	buf.Write(make([]byte, 4+4)) // Unicode language code and count
	buf.Write(make([]byte, 2+1)) // ScriptCode code and count
	buf.Write(make([]byte, 67))  // ScriptCode string
	return buf.Bytes()
}

// EncodeMLUC returns the data of a multiLocalizedUnicodeType tag with a
// single record.  Language and region must be two-character codes,
// e.g. "en" and "US".
func EncodeMLUC(lang, region string, units []uint16) []byte {
	const recordStart = 16
	const textStart = recordStart + 12

	buf := make([]byte, textStart+2*len(units))
	putUint32(buf, 0, uint32(MultiLocalizedUnicodeType))
	putUint32(buf, 8, 1)
	putUint32(buf, 12, 12)
	copy(buf[recordStart:recordStart+2], lang)
	copy(buf[recordStart+2:recordStart+4], region)
	putUint32(buf, recordStart+4, uint32(2*len(units)))
	putUint32(buf, recordStart+8, textStart)
	for i, u := range units {
		putUint16(buf, textStart+2*i, u)
	}
	return buf
}

func sigBytes(s Signature) []byte {
	bb := s.bytes()
	return bb[:]
}

func uint32Bytes(x uint32) []byte {
	return []byte{byte(x >> 24), byte(x >> 16), byte(x >> 8), byte(x)}
}

func putUint16(data []byte, offset int, value uint16) {
	data[offset] = byte(value >> 8)
	data[offset+1] = byte(value)
}

func putUint32(data []byte, offset int, value uint32) {
	data[offset] = byte(value >> 24)
	data[offset+1] = byte(value >> 16)
	data[offset+2] = byte(value >> 8)
	data[offset+3] = byte(value)
}

func putDateTime(data []byte, offset int, t time.Time) {
	if t.IsZero() {
		return
	}
	year := t.Year()
	data[offset] = byte(year >> 8)
	data[offset+1] = byte(year)
	data[offset+3] = byte(t.Month())
	data[offset+5] = byte(t.Day())
	data[offset+7] = byte(t.Hour())
	data[offset+9] = byte(t.Minute())
	data[offset+11] = byte(t.Second())
}
