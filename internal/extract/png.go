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

package extract

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// pngChunkHeader is the length and type which start every PNG chunk.
type pngChunkHeader struct {
	Length uint32
	Type   [4]byte
}

// FromPNG reads the ICC profile stored in the iCCP chunk of a PNG file.
func FromPNG(r io.Reader) ([]byte, error) {
	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, errors.New("extract: invalid PNG signature")
	}

	for {
		var h pngChunkHeader
		err := binary.Read(r, binary.BigEndian, &h)
		if err == io.EOF {
			return nil, ErrNoProfile
		} else if err != nil {
			return nil, err
		}

		switch string(h.Type[:]) {
		case "iCCP":
			if h.Length > maxProfileSize {
				return nil, errTooLarge(int64(h.Length))
			}
			return readICCPChunk(r, h)
		case "IDAT", "IEND":
			// the iCCP chunk must precede the image data
			return nil, ErrNoProfile
		}

		// skip data and CRC
		if _, err := io.CopyN(io.Discard, r, int64(h.Length)+4); err != nil {
			return nil, err
		}
	}
}

func readICCPChunk(r io.Reader, h pngChunkHeader) ([]byte, error) {
	body := make([]byte, h.Length+4)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	data, stored := body[:h.Length], binary.BigEndian.Uint32(body[h.Length:])

	crc := crc32.NewIEEE()
	crc.Write(h.Type[:])
	crc.Write(data)
	if crc.Sum32() != stored {
		return nil, errors.New("extract: iCCP chunk has invalid CRC")
	}

	// profile name (1-79 bytes), zero byte, compression method
	nameEnd := bytes.IndexByte(data, 0)
	if nameEnd < 1 || nameEnd > 79 || nameEnd+2 > len(data) {
		return nil, errors.New("extract: malformed iCCP chunk")
	}
	if method := data[nameEnd+1]; method != 0 {
		return nil, fmt.Errorf("extract: unknown iCCP compression method %d", method)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[nameEnd+2:]))
	if err != nil {
		return nil, fmt.Errorf("extract: iCCP chunk: %w", err)
	}
	defer zr.Close()
	profile, err := readAll(zr)
	if err != nil {
		return nil, fmt.Errorf("extract: iCCP chunk: %w", err)
	}
	return profile, nil
}
