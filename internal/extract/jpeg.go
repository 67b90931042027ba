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
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
)

const (
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP2 = 0xE2
)

const iccMarkerTag = "ICC_PROFILE\x00"

// FromJPEG reads the ICC profile stored in the APP2 segments of a JPEG
// file.  Large profiles are split across several segments, these are
// reassembled in sequence order.
func FromJPEG(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	var soi [2]byte
	if _, err := io.ReadFull(br, soi[:]); err != nil {
		return nil, err
	}
	if soi[0] != 0xFF || soi[1] != markerSOI {
		return nil, errors.New("extract: not a JPEG file")
	}

	var segments [][]byte
	size := 0
	for {
		marker, err := nextMarker(br)
		if err != nil {
			return nil, err
		}
		if marker == markerSOS || marker == markerEOI {
			break
		}
		if marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7) {
			continue // no payload
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
			return nil, err
		}
		n := int(lenBuf[0])<<8 | int(lenBuf[1])
		if n < 2 {
			return nil, fmt.Errorf("extract: invalid JPEG segment length %d", n)
		}
		n -= 2

		if marker != markerAPP2 {
			if _, err := br.Discard(n); err != nil {
				return nil, err
			}
			continue
		}

		payload := make([]byte, n)
		if _, err := io.ReadFull(br, payload); err != nil {
			return nil, err
		}
		if len(payload) >= 14 && string(payload[:12]) == iccMarkerTag {
			size += len(payload)
			if size > maxProfileSize {
				return nil, errTooLarge(int64(size))
			}
			segments = append(segments, payload)
		}
	}

	return assembleICC(segments)
}

// nextMarker skips to the next marker and returns its code.
// Fill bytes (0xFF) before the marker code are ignored.
func nextMarker(br *bufio.Reader) (byte, error) {
	b, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, fmt.Errorf("extract: expected JPEG marker, found 0x%02X", b)
	}
	for {
		b, err = br.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			return b, nil
		}
	}
}

// assembleICC reassembles an ICC profile from APP2 segment payloads.
// Each payload starts with "ICC_PROFILE\0", a one-based sequence number and
// the total number of segments.
func assembleICC(segments [][]byte) ([]byte, error) {
	type chunk struct {
		seq  int
		data []byte
	}
	var chunks []chunk
	count := 0
	for _, s := range segments {
		seq, n := int(s[12]), int(s[13])
		if seq == 0 || seq > n {
			return nil, fmt.Errorf("extract: invalid ICC chunk sequence %d/%d", seq, n)
		}
		if count == 0 {
			count = n
		} else if n != count {
			return nil, fmt.Errorf("extract: inconsistent ICC chunk count: %d vs %d", n, count)
		}
		chunks = append(chunks, chunk{seq: seq, data: s[14:]})
	}

	if len(chunks) == 0 {
		return nil, ErrNoProfile
	}
	if len(chunks) != count {
		return nil, fmt.Errorf("extract: expected %d ICC chunks, found %d", count, len(chunks))
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })
	var profile []byte
	for i, c := range chunks {
		if c.seq != i+1 {
			return nil, fmt.Errorf("extract: duplicate ICC chunk %d", c.seq)
		}
		profile = append(profile, c.data...)
	}
	return profile, nil
}
