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

package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/iccdesc"
	"seehuhn.de/go/iccdesc/internal/extract"
)

func show(w io.Writer, fname string, verbose bool) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	profile, format, err := extract.Profile(fd)
	if err != nil {
		return err
	}

	desc, err := iccdesc.Parse(profile, len(profile))
	if err != nil {
		return err
	}

	if !verbose {
		fmt.Fprintf(w, "%-5s %6d bytes  %s  %s\n", format, len(profile), describe(desc), fname)
		return nil
	}

	h, err := iccdesc.ReadHeader(profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File: %s\n", fname)
	fmt.Fprintf(w, "  Container: %s\n", format)
	fmt.Fprintf(w, "  Description: %s\n", describe(desc))
	if m, ok := desc.(iccdesc.MultiLocalizedUnicode); ok {
		if locale, err := m.Locale(); err == nil {
			fmt.Fprintf(w, "  Locale: %s\n", locale)
		}
	}
	fmt.Fprintf(w, "  Size: %d bytes\n", h.Size)
	if h.PreferredCMMType != 0 {
		fmt.Fprintf(w, "  PreferredCMMType: %s\n", h.PreferredCMMType)
	}
	fmt.Fprintf(w, "  Version: %s\n", h.Version)
	fmt.Fprintf(w, "  Class: %s\n", h.Class)
	fmt.Fprintf(w, "  ColorSpace: %s\n", h.ColorSpace)
	fmt.Fprintf(w, "  PCS: %s\n", h.PCS)
	if !h.CreationDate.IsZero() {
		fmt.Fprintf(w, "  CreationDate: %s\n", h.CreationDate)
	}
	if h.Magic != 0x61637370 { // "acsp"
		fmt.Fprintf(w, "  Magic: %s (expected \"acsp\")\n", h.Magic)
	}
	if h.DeviceManufacturer != 0 {
		fmt.Fprintf(w, "  DeviceManufacturer: %s\n", h.DeviceManufacturer)
	}
	if h.DeviceModel != 0 {
		fmt.Fprintf(w, "  DeviceModel: %s\n", h.DeviceModel)
	}
	fmt.Fprintf(w, "  RenderingIntent: %s\n", h.RenderingIntent)
	if h.Creator != 0 {
		fmt.Fprintf(w, "  Creator: %s\n", h.Creator)
	}
	if sum := iccdesc.CheckProfileID(profile); sum != iccdesc.CheckSumMissing {
		fmt.Fprintf(w, "  CheckSum: %s\n", sum)
	}

	fmt.Fprintln(w)

	byTag := make(map[iccdesc.Signature]iccdesc.TagEntry, len(h.Tags))
	for _, tag := range h.Tags {
		if _, seen := byTag[tag.Signature]; !seen {
			byTag[tag.Signature] = tag
		}
	}
	sigs := maps.Keys(byTag)
	slices.Sort(sigs)
	for _, sig := range sigs {
		tag := byTag[sig]
		fmt.Fprintf(w, "  %s: %s (%d bytes at %d)\n", sig, tagType(profile, tag), tag.Size, tag.Offset)
	}

	fmt.Fprintln(w)

	return nil
}

func describe(d iccdesc.Description) string {
	if _, ok := d.(iccdesc.Unsupported); ok {
		return fmt.Sprintf("(no description, tag type %s)", d.TagType())
	}
	return fmt.Sprintf("%q [%s]", d.String(), d.TagType())
}

// tagType reads the type signature at the start of the tag data.
func tagType(profile []byte, tag iccdesc.TagEntry) string {
	c := iccdesc.NewCursor(profile)
	if err := c.Seek(int(tag.Offset)); err != nil || tag.Size < 4 {
		return "-"
	}
	sig, err := c.ReadSignature()
	if err != nil {
		return "-"
	}
	return sig.String()
}
