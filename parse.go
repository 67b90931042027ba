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

import "fmt"

// Parse extracts the description from the ICC profile stored in the first
// length bytes of data.
//
// If the description tag has a type other than textDescriptionType or
// multiLocalizedUnicodeType, the result is [Unsupported] and the error is
// nil.  The returned value does not share memory with data.
func Parse(data []byte, length int) (Description, error) {
	if length < 0 || length > len(data) {
		return nil, parseError(OutOfBounds, 0,
			fmt.Sprintf("length %d does not fit buffer of %d bytes", length, len(data)))
	}
	data = data[:length]

	tag, err := FindDescriptionTag(data)
	if err != nil {
		return nil, err
	}
	return DecodeDescription(data, tag)
}

// Describe returns the description text of an ICC profile.
// The empty string is returned if the description tag has an unsupported
// type.
func Describe(data []byte) (string, error) {
	d, err := Parse(data, len(data))
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
