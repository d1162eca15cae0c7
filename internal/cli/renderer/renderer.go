// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

// Package renderer turns diff chunks into terminal output: a side-by-side
// view with per-side line numbers, a gtree overview of the chunk structure,
// and tabular rule listings.
package renderer

import (
	"fmt"
	"strings"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/diff"
)

const maxColumnWidth = 80

type Options struct {
	Colorize  bool
	ExpandAll bool
}

// RenderChunks renders the side-by-side view. Context chunks print collapsed
// as a single fold marker unless ExpandAll is set; change chunks always print
// their rows.
func RenderChunks(chunks []diff.Chunk, opts Options) string {
	width := columnWidth(chunks)

	var b strings.Builder
	for _, chunk := range chunks {
		if !chunk.Expanded && !opts.ExpandAll {
			b.WriteString(foldMarker(len(chunk.Rows), opts))
			continue
		}
		for _, row := range chunk.Rows {
			b.WriteString(renderRow(row, width, opts))
		}
	}
	return b.String()
}

func renderRow(row diff.Row, width int, opts Options) string {
	left := renderCell(row.Left, width, "-", display.Red, opts)
	right := renderCell(row.Right, width, "+", display.Green, opts)
	return left + " │ " + right + "\n"
}

func renderCell(cell diff.Cell, width int, marker string, colorFn func(string) string, opts Options) string {
	if cell.Type == diff.OpNone {
		return fmt.Sprintf("%4s  %-*s", "", width+1, "")
	}

	mark := " "
	if cell.Type != diff.OpEqual {
		mark = marker
	}

	text := cell.Text
	if len(text) > width {
		text = text[:width-1] + "…"
	}

	s := fmt.Sprintf("%4d  %s%-*s", cell.Number, mark, width, text)
	if opts.Colorize && cell.Type != diff.OpEqual {
		return colorFn(s)
	}
	return s
}

func foldMarker(hidden int, opts Options) string {
	s := fmt.Sprintf("  ··· %d unchanged lines hidden ···\n", hidden)
	if opts.Colorize {
		return display.Grey(s)
	}
	return s
}

func columnWidth(chunks []diff.Chunk) int {
	width := 20
	for _, chunk := range chunks {
		for _, row := range chunk.Rows {
			if l := len(row.Left.Text); l > width {
				width = l
			}
		}
	}
	return min(width, maxColumnWidth)
}

// RenderStats is the one-line footer under the diff.
func RenderStats(stats diff.Stats, identical bool, opts Options) string {
	if identical {
		msg := "documents are identical after canonicalization"
		if opts.Colorize {
			return display.Green(msg) + "\n"
		}
		return msg + "\n"
	}

	added := fmt.Sprintf("+%d", stats.Added)
	removed := fmt.Sprintf("-%d", stats.Removed)
	unchanged := fmt.Sprintf("%d unchanged", stats.Unchanged)
	if opts.Colorize {
		added = display.Green(added)
		removed = display.Red(removed)
		unchanged = display.Grey(unchanged)
	}
	return fmt.Sprintf("%s %s %s\n", added, removed, unchanged)
}
