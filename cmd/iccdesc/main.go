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

// Iccdesc prints the descriptions of ICC profiles embedded in image files.
//
// Usage:
//
//	iccdesc [-v] [--time] file...
//
// Each file may be a stand-alone ICC profile, or a PNG, JPEG, WebP or JP2
// image with an embedded profile.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "iccdesc [flags] file...",
		Short:         "Show the descriptions of embedded ICC profiles",
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("verbose", "v", false, "show profile header and tag table")
	cmd.Flags().Bool("time", false, "report the total processing time")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "iccdesc:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	showTime, _ := cmd.Flags().GetBool("time")

	start := time.Now()
	failed := 0
	for _, fname := range args {
		err := show(cmd.OutOrStdout(), fname, verbose)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", fname, err)
			failed++
		}
	}
	if showTime {
		fmt.Fprintf(cmd.OutOrStdout(), "TotalTime: %.6f\n", time.Since(start).Seconds())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
