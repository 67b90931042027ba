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

// ErrorKind classifies the ways in which parsing a profile can fail.
type ErrorKind int

// These are the possible values of [ParseError.Kind].
const (
	// TruncatedHeader means the data is too short to hold the 128-byte
	// header and the tag count.
	TruncatedHeader ErrorKind = iota + 1

	// HeaderLengthMismatch means the size field in the header does not
	// match the length of the data.
	HeaderLengthMismatch

	// TagTableOverflow means the tag table extends past the end of the data.
	TagTableOverflow

	// TagRangeOverflow means a tag's offset and size point past the end of
	// the data.
	TagRangeOverflow

	// DescriptionTagNotFound means the tag table has no 'desc' entry.
	DescriptionTagNotFound

	// MalformedTag means the contents of the description tag are
	// inconsistent with the tag's own size.
	MalformedTag

	// OutOfBounds means a read would go past the end of the data.
	OutOfBounds
)

func (k ErrorKind) String() string {
	switch k {
	case TruncatedHeader:
		return "truncated header"
	case HeaderLengthMismatch:
		return "header length mismatch"
	case TagTableOverflow:
		return "tag table overflow"
	case TagRangeOverflow:
		return "tag range overflow"
	case DescriptionTagNotFound:
		return "description tag not found"
	case MalformedTag:
		return "malformed tag"
	case OutOfBounds:
		return "out of bounds"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError indicates that an ICC profile contains invalid binary data.
// Offset is the byte position in the profile where the problem was found.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Reason string
}

func parseError(kind ErrorKind, offset int, reason string) error {
	return &ParseError{Kind: kind, Offset: offset, Reason: reason}
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("icc: %s (byte %d)", e.Kind, e.Offset)
	}
	return fmt.Sprintf("icc: %s (byte %d): %s", e.Kind, e.Offset, e.Reason)
}

// Is reports whether target is a *ParseError of the same kind.
// This allows to test errors using the sentinel values, for example
// errors.Is(err, ErrMalformedTag).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// Sentinel values for use with [errors.Is].
var (
	ErrTruncatedHeader        = &ParseError{Kind: TruncatedHeader}
	ErrHeaderLengthMismatch   = &ParseError{Kind: HeaderLengthMismatch}
	ErrTagTableOverflow       = &ParseError{Kind: TagTableOverflow}
	ErrTagRangeOverflow       = &ParseError{Kind: TagRangeOverflow}
	ErrDescriptionTagNotFound = &ParseError{Kind: DescriptionTagNotFound}
	ErrMalformedTag           = &ParseError{Kind: MalformedTag}
	ErrOutOfBounds            = &ParseError{Kind: OutOfBounds}
)
