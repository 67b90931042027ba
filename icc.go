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

// Package iccdesc extracts the human-readable description from an ICC
// colour profile.
//
// ICC profiles embedded in images carry a profile description tag ('desc').
// Older (version 2) profiles store the description as a textDescriptionType
// holding 7-bit ASCII text; version 4 profiles use a multiLocalizedUnicodeType
// ('mluc') holding UTF-16BE text.  Both encodings are understood.
//
// # Reading a Description
//
// Use [Parse] to obtain the description of a profile:
//
//	d, err := iccdesc.Parse(data, len(data))
//	if err != nil {
//	    // handle error
//	}
//	switch d := d.(type) {
//	case iccdesc.TextDescription:
//	    fmt.Println("legacy:", d.Text)
//	case iccdesc.MultiLocalizedUnicode:
//	    fmt.Println("unicode:", d.String())
//	case iccdesc.Unsupported:
//	    fmt.Println("no description available")
//	}
//
// All reads are bounds-checked.  Malformed profiles result in a
// [*ParseError], which can be classified using [errors.Is] with the
// sentinel values [ErrTruncatedHeader], [ErrMalformedTag] and so on.
//
// The functions in this package hold no state and never retain the
// caller's buffer, so they can be used concurrently on independent data.
package iccdesc

import "fmt"

// Signature is a four-byte identifier used for tags and tag types in ICC
// profiles.  The bytes are stored in big-endian order, so that the
// signature 'desc' has the value 0x64657363.
type Signature uint32

func (s Signature) String() string {
	bb := s.bytes()
	for _, c := range bb {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(s))
		}
	}
	return fmt.Sprintf("%q", string(bb[:]))
}

func (s Signature) bytes() [4]byte {
	return [4]byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
}

// Tag and type signatures used by this package.
const (
	// DescriptionTag is the signature of the profile description tag.
	// By coincidence it equals the signature of the legacy
	// textDescriptionType.
	DescriptionTag Signature = 0x64657363 // "desc"

	TextDescriptionType       Signature = 0x64657363 // "desc"
	MultiLocalizedUnicodeType Signature = 0x6D6C7563 // "mluc"

	profileMagic Signature = 0x61637370 // "acsp"
)

// Version is a version of the ICC profile format.
type Version uint32

// Some well-known versions of the ICC profile format.
const (
	Version2_1_0 Version = 0x0210_0000 // Version 3.3 (November 1996)
	Version2_4_0 Version = 0x0240_0000 // ICC.1:2001-04
	Version4_0_0 Version = 0x0400_0000 // ICC.1:2001-12
	Version4_3_0 Version = 0x0430_0000 // ICC.1:2010-12
	Version4_4_0 Version = 0x0440_0000 // ICC.1:2022-05
)

func (v Version) String() string {
	major := int(v >> 24)
	minor := int(v >> 20 & 0xF)
	bugfix := int(v >> 16 & 0xF)
	if other := int(v & 0xFFFF); other != 0 {
		return fmt.Sprintf("%d.%d.%d.%04X", major, minor, bugfix, other)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, bugfix)
}

// ProfileClass is the ICC profile or device class.
type ProfileClass uint32

// Profile classes defined in the ICC specification.
const (
	InputDeviceProfile   ProfileClass = 0x73636E72 // "scnr"
	DisplayDeviceProfile ProfileClass = 0x6D6E7472 // "mntr"
	OutputDeviceProfile  ProfileClass = 0x70727472 // "prtr"
	DeviceLinkProfile    ProfileClass = 0x6C696E6B // "link"
	ColorSpaceProfile    ProfileClass = 0x73706163 // "spac"
	AbstractProfile      ProfileClass = 0x61627374 // "abst"
	NamedColorProfile    ProfileClass = 0x6E6D636C // "nmcl"
)

func (c ProfileClass) String() string {
	switch c {
	case InputDeviceProfile:
		return "Input Device Profile"
	case DisplayDeviceProfile:
		return "Display Device Profile"
	case OutputDeviceProfile:
		return "Output Device Profile"
	case DeviceLinkProfile:
		return "DeviceLink Profile"
	case ColorSpaceProfile:
		return "ColorSpace Profile"
	case AbstractProfile:
		return "Abstract Profile"
	case NamedColorProfile:
		return "Named Color Profile"
	default:
		return fmt.Sprintf("ProfileClass(%s)", Signature(c))
	}
}

// ColorSpace identifies a colour space in an ICC profile header.
// Only the values needed to describe common profiles are named here.
type ColorSpace uint32

// Some colour spaces defined in the ICC specification.
const (
	CIEXYZSpace ColorSpace = 0x58595A20 // "XYZ "
	CIELabSpace ColorSpace = 0x4C616220 // "Lab "
	RGBSpace    ColorSpace = 0x52474220 // "RGB "
	GraySpace   ColorSpace = 0x47524159 // "GRAY"
	CMYKSpace   ColorSpace = 0x434D594B // "CMYK"
)

// String returns the colour space signature with trailing blanks removed,
// for example "RGB" or "CMYK".
func (s ColorSpace) String() string {
	bb := Signature(s).bytes()
	end := len(bb)
	for end > 0 && bb[end-1] == ' ' {
		end--
	}
	for _, c := range bb[:end] {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("ColorSpace(0x%08X)", uint32(s))
		}
	}
	return string(bb[:end])
}

// RenderingIntent is the default rendering intent stored in the header.
type RenderingIntent uint32

func (ri RenderingIntent) String() string {
	switch ri {
	case 0:
		return "Perceptual"
	case 1:
		return "Relative Colorimetric"
	case 2:
		return "Saturation"
	case 3:
		return "Absolute Colorimetric"
	default:
		return fmt.Sprintf("RenderingIntent(%d)", uint32(ri))
	}
}

// CheckSum describes the state of the profile ID field.
type CheckSum int

func (c CheckSum) String() string {
	switch c {
	case CheckSumValid:
		return "Valid"
	case CheckSumInvalid:
		return "Invalid"
	default:
		return "Missing"
	}
}

// Possible results of [CheckProfileID].
const (
	CheckSumMissing CheckSum = iota
	CheckSumValid
	CheckSumInvalid
)
