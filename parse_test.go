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
	"errors"
	"sync"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
)

func TestParseLegacy(t *testing.T) {
	data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("sRGB built-in")})
	d, err := Parse(data, len(data))
	if err != nil {
		t.Fatal(err)
	}
	want := TextDescription{Text: "sRGB built-in"}
	if d != want {
		t.Errorf("got %#v, want %#v", d, want)
	}
}

func TestParseUnicode(t *testing.T) {
	units := utf16.Encode([]rune("Display P3"))
	data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeMLUC("en", "US", units)})
	d, err := Parse(data, len(data))
	if err != nil {
		t.Fatal(err)
	}
	want := MultiLocalizedUnicode{Language: "en", Region: "US", Units: units}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if d.String() != "Display P3" {
		t.Errorf("text = %q", d.String())
	}
}

func TestParseUnsupported(t *testing.T) {
	xyz := []byte("XYZ \x00\x00\x00\x00\x00\x00\xf6\xd6\x00\x01\x00\x00\x00\x00\xd3\x2d")
	data := buildProfile(Tag{Signature: DescriptionTag, Data: xyz})
	d, err := Parse(data, len(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(Unsupported); !ok {
		t.Errorf("got %#v, want Unsupported", d)
	}
	s, err := Describe(data)
	if err != nil || s != "" {
		t.Errorf("Describe = %q, %v", s, err)
	}
}

func TestParseNoDescription(t *testing.T) {
	data := buildProfile(Tag{Signature: 0x63707274, Data: []byte("text\x00\x00\x00\x00(c)\x00")})
	if _, err := Parse(data, len(data)); !errors.Is(err, ErrDescriptionTagNotFound) {
		t.Errorf("got %v, want description tag not found", err)
	}

	data = buildProfile()
	if _, err := Parse(data, len(data)); !errors.Is(err, ErrDescriptionTagNotFound) {
		t.Errorf("empty tag table: got %v, want description tag not found", err)
	}
}

func TestParseTruncated(t *testing.T) {
	for n := 0; n < minProfileLen; n++ {
		data := make([]byte, n)
		if n >= 4 {
			putUint32(data, 0, uint32(n))
		}
		_, err := Parse(data, n)
		if !errors.Is(err, ErrTruncatedHeader) {
			t.Fatalf("%d bytes: got %v, want truncated header", n, err)
		}
	}
}

func TestParseLengthMismatch(t *testing.T) {
	good := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("abc")})
	for _, size := range []uint32{0, uint32(len(good)) - 1, uint32(len(good)) + 1, 0xFFFFFFFF} {
		data := bytes.Clone(good)
		putUint32(data, 0, size)
		if _, err := Parse(data, len(data)); !errors.Is(err, ErrHeaderLengthMismatch) {
			t.Errorf("size field %d: got %v, want header length mismatch", size, err)
		}
	}

	// profile followed by unrelated data
	data := append(bytes.Clone(good), 1, 2, 3, 4)
	if _, err := Parse(data, len(data)); !errors.Is(err, ErrHeaderLengthMismatch) {
		t.Errorf("trailing data: got %v, want header length mismatch", err)
	}
	// ... which is fine, if the caller passes the correct length
	if s, err := Parse(data, len(good)); err != nil || s.String() != "abc" {
		t.Errorf("Parse with length: %v, %v", s, err)
	}
}

func TestParseTagRangeOverflow(t *testing.T) {
	good := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("abc")})
	entry := minProfileLen
	tests := []struct {
		name         string
		offset, size uint32
	}{
		{"size", uint32(entry + tagEntrySize), uint32(len(good))},
		{"offset", uint32(len(good)), 1},
		{"wrap", 0xFFFFFFFF, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Clone(good)
			putUint32(data, entry+4, tt.offset)
			putUint32(data, entry+8, tt.size)
			if _, err := Parse(data, len(data)); !errors.Is(err, ErrTagRangeOverflow) {
				t.Errorf("got %v, want tag range overflow", err)
			}
		})
	}
}

func TestParseOddUnicodeLength(t *testing.T) {
	tag := EncodeMLUC("en", "US", utf16.Encode([]rune("Display P3")))
	putUint32(tag, 20, 19)
	data := buildProfile(Tag{Signature: DescriptionTag, Data: tag})
	if _, err := Parse(data, len(data)); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("got %v, want malformed tag", err)
	}
}

func TestParseBadLength(t *testing.T) {
	data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("abc")})
	for _, n := range []int{-1, len(data) + 1} {
		if _, err := Parse(data, n); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("length %d: got %v, want out of bounds", n, err)
		}
	}
}

func TestRoundTripText(t *testing.T) {
	for _, s := range []string{"", "a", "sRGB IEC61966-2.1", "Generic Gray Gamma 2.2 Profile", "~!@#$%^&*()"} {
		data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription(s)})
		got, err := Describe(data)
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("got %q, want %q", got, s)
		}
	}
}

func TestRoundTripUnicode(t *testing.T) {
	tests := [][]uint16{
		nil,
		utf16.Encode([]rune("Display P3")),
		utf16.Encode([]rune("Écran – 色空間 🎨")),
		{0x0041, 0xD800, 0x0042}, // unpaired high surrogate
		{0xDC00, 0xD83C},         // reversed pair
		{0x0000, 0xFFFF},
	}
	for _, units := range tests {
		data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeMLUC("ja", "JP", units)})
		d, err := Parse(data, len(data))
		if err != nil {
			t.Fatal(err)
		}
		m, ok := d.(MultiLocalizedUnicode)
		if !ok {
			t.Fatalf("got %T", d)
		}
		if diff := cmp.Diff(units, m.Units, cmpEmptyUnits); diff != "" {
			t.Errorf("code units differ (-want +got):\n%s", diff)
		}
	}
}

var cmpEmptyUnits = cmp.FilterValues(func(a, b []uint16) bool {
	return len(a) == 0 && len(b) == 0
}, cmp.Ignore())

// The result must not share memory with the input buffer.
func TestParseDoesNotRetain(t *testing.T) {
	units := utf16.Encode([]rune("abc"))
	data := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeMLUC("en", "US", units)})
	d, err := Parse(data, len(data))
	if err != nil {
		t.Fatal(err)
	}
	clear(data)
	if d.String() != "abc" {
		t.Errorf("description changed to %q after clearing the input", d)
	}
}

func TestParseConcurrent(t *testing.T) {
	legacy := buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("legacy")})
	unicode := buildProfile(Tag{Signature: DescriptionTag,
		Data: EncodeMLUC("en", "US", utf16.Encode([]rune("unicode")))})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		data, want := legacy, "legacy"
		if i%2 == 1 {
			data, want = unicode, "unicode"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := Describe(data)
				if err == nil && got != want {
					err = errors.New("got " + got + ", want " + want)
				}
				if err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func FuzzParse(f *testing.F) {
	f.Add(buildProfile(Tag{Signature: DescriptionTag, Data: EncodeTextDescription("sRGB")}))
	f.Add(buildProfile(Tag{Signature: DescriptionTag,
		Data: EncodeMLUC("en", "US", utf16.Encode([]rune("Display P3")))}))
	f.Add(buildProfile(
		Tag{Signature: 0x63707274, Data: []byte("text\x00\x00\x00\x00(c)")},
		Tag{Signature: DescriptionTag, Data: []byte("XYZ \x00\x00\x00\x00")},
	))
	f.Fuzz(func(t *testing.T, a []byte) {
		orig := bytes.Clone(a)
		d, err := Parse(a, len(a))
		if !bytes.Equal(a, orig) {
			t.Fatal("Parse modified its input")
		}
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		if d == nil {
			t.Fatal("nil description without error")
		}

		// re-encode the description and parse it again
		var tag []byte
		switch d := d.(type) {
		case TextDescription:
			if bytes.IndexByte([]byte(d.Text), 0) >= 0 {
				t.Fatalf("text %q contains a zero byte", d.Text)
			}
			tag = EncodeTextDescription(d.Text)
		case MultiLocalizedUnicode:
			tag = EncodeMLUC(d.Language, d.Region, d.Units)
		default:
			return
		}
		b := buildProfile(Tag{Signature: DescriptionTag, Data: tag})
		e, err := Parse(b, len(b))
		if err != nil {
			t.Fatalf("re-parsing failed: %v", err)
		}
		if diff := cmp.Diff(d, e, cmpEmptyUnits); diff != "" {
			t.Fatalf("round trip mismatch:\n%s", diff)
		}
	})
}
