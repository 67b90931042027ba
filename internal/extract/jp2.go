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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	jp2BoxHeader     = 0x6A703268 // "jp2h"
	jp2BoxCodestream = 0x6A703263 // "jp2c"
	jp2BoxColorSpec  = 0x636F6C72 // "colr"

	jp2ColorICC    = 2 // restricted ICC profile
	jp2ColorICCAny = 3 // any ICC profile
)

// FromJP2 reads the ICC profile from the colour specification box of a
// JP2 file.
func FromJP2(r io.Reader) ([]byte, error) {
	for {
		boxType, n, err := readBoxHeader(r)
		if err == io.EOF {
			return nil, ErrNoProfile
		} else if err != nil {
			return nil, err
		}

		switch {
		case boxType == jp2BoxCodestream:
			// the header box must come before the codestream
			return nil, ErrNoProfile
		case boxType == jp2BoxHeader:
			var body []byte
			if n < 0 {
				body, err = readAll(r)
			} else if n > maxProfileSize {
				return nil, errTooLarge(n)
			} else {
				body = make([]byte, n)
				_, err = io.ReadFull(r, body)
			}
			if err != nil {
				return nil, err
			}
			return findColorSpec(body)
		case n < 0:
			return nil, ErrNoProfile
		default:
			if _, err := io.CopyN(io.Discard, r, n); err != nil {
				return nil, err
			}
		}
	}
}

// readBoxHeader reads the header of a JP2 box and returns the box type and
// the length of the box contents.  A length of -1 means that the box
// extends to the end of the file.
func readBoxHeader(r io.Reader) (uint32, int64, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:8]); err != nil {
		return 0, 0, err
	}
	lbox := binary.BigEndian.Uint32(buf[0:4])
	boxType := binary.BigEndian.Uint32(buf[4:8])
	switch {
	case lbox == 0:
		return boxType, -1, nil
	case lbox == 1:
		if _, err := io.ReadFull(r, buf[8:16]); err != nil {
			return 0, 0, err
		}
		xl := binary.BigEndian.Uint64(buf[8:16])
		if xl < 16 || xl > 1<<62 {
			return 0, 0, fmt.Errorf("extract: invalid JP2 box length %d", xl)
		}
		return boxType, int64(xl - 16), nil
	case lbox < 8:
		return 0, 0, fmt.Errorf("extract: invalid JP2 box length %d", lbox)
	default:
		return boxType, int64(lbox - 8), nil
	}
}

// findColorSpec looks for a colour specification box holding an ICC
// profile inside the contents of the JP2 header box.
func findColorSpec(data []byte) ([]byte, error) {
	pos := 0
	for pos+8 <= len(data) {
		lbox := int64(binary.BigEndian.Uint32(data[pos:]))
		boxType := binary.BigEndian.Uint32(data[pos+4:])
		headerLen := int64(8)
		switch lbox {
		case 0:
			lbox = int64(len(data) - pos)
		case 1:
			if pos+16 > len(data) {
				return nil, errors.New("extract: truncated JP2 box header")
			}
			xl := binary.BigEndian.Uint64(data[pos+8:])
			if xl > uint64(len(data)) {
				return nil, errors.New("extract: JP2 box exceeds header box")
			}
			lbox = int64(xl)
			headerLen = 16
		}
		if lbox < headerLen || int64(pos)+lbox > int64(len(data)) {
			return nil, errors.New("extract: JP2 box exceeds header box")
		}

		body := data[pos+int(headerLen) : pos+int(lbox)]
		if boxType == jp2BoxColorSpec && len(body) > 3 {
			method := body[0]
			if method == jp2ColorICC || method == jp2ColorICCAny {
				return body[3:], nil
			}
		}
		pos += int(lbox)
	}
	return nil, ErrNoProfile
}
