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
	"errors"
	"io"

	"golang.org/x/image/riff"
)

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccICCP = riff.FourCC{'I', 'C', 'C', 'P'}
)

// FromWebP reads the ICC profile from the ICCP chunk of an extended
// format WebP file.
func FromWebP(r io.Reader) ([]byte, error) {
	formType, rr, err := riff.NewReader(r)
	if err != nil {
		return nil, err
	}
	if formType != fccWEBP {
		return nil, errors.New("extract: not a WebP file")
	}

	for {
		id, n, chunk, err := rr.Next()
		if err == io.EOF {
			return nil, ErrNoProfile
		} else if err != nil {
			return nil, err
		}
		if id != fccICCP {
			continue
		}
		if n > maxProfileSize {
			return nil, errTooLarge(int64(n))
		}
		data := make([]byte, n)
		if _, err := io.ReadFull(chunk, data); err != nil {
			return nil, err
		}
		return data, nil
	}
}
