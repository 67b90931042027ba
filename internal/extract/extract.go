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

// Package extract locates ICC profiles embedded in image files.
//
// Only the container structure is examined; image data is never decoded.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Format identifies the container a profile was found in.
type Format int

// These are the supported container formats.
const (
	Unknown Format = iota
	RawICC
	PNG
	JPEG
	WebP
	JP2
)

func (f Format) String() string {
	switch f {
	case RawICC:
		return "ICC"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case WebP:
		return "WebP"
	case JP2:
		return "JP2"
	default:
		return "unknown"
	}
}

var (
	// ErrNoProfile is returned if an image contains no ICC profile.
	ErrNoProfile = errors.New("extract: no ICC profile found")

	// ErrUnknownFormat is returned if the file type is not recognised.
	ErrUnknownFormat = errors.New("extract: unknown file format")
)

// maxProfileSize limits the memory used for a single profile.
const maxProfileSize = 64 << 20

var (
	pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jp2Signature = []byte{0, 0, 0, 0x0C, 'j', 'P', ' ', ' ', 0x0D, 0x0A, 0x87, 0x0A}
)

// Sniff determines the file format from the first bytes of a file.
func Sniff(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, pngSignature):
		return PNG
	case len(head) >= 3 && head[0] == 0xFF && head[1] == 0xD8 && head[2] == 0xFF:
		return JPEG
	case len(head) >= 12 && string(head[0:4]) == "RIFF" && string(head[8:12]) == "WEBP":
		return WebP
	case bytes.HasPrefix(head, jp2Signature):
		return JP2
	case len(head) >= 40 && string(head[36:40]) == "acsp":
		return RawICC
	default:
		return Unknown
	}
}

// Profile reads the ICC profile from an image file or a stand-alone
// profile.  The format is detected automatically.
func Profile(r io.ReadSeeker) ([]byte, Format, error) {
	head := make([]byte, 40)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, Unknown, err
	}
	format := Sniff(head[:n])
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, format, err
	}

	var data []byte
	switch format {
	case RawICC:
		data, err = readAll(r)
	case PNG:
		data, err = FromPNG(r)
	case JPEG:
		data, err = FromJPEG(r)
	case WebP:
		data, err = FromWebP(r)
	case JP2:
		data, err = FromJP2(r)
	default:
		return nil, Unknown, ErrUnknownFormat
	}
	if err != nil {
		return nil, format, err
	}
	return data, format, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxProfileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxProfileSize {
		return nil, errTooLarge(int64(len(data)))
	}
	return data, nil
}

func errTooLarge(n int64) error {
	return fmt.Errorf("extract: profile of %d bytes exceeds limit of %d bytes", n, maxProfileSize)
}
