// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package renderer

import (
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/diff"
)

// RenderSummary prints the chunk structure as a tree: one node per chunk with
// its row span and, for change chunks, the added/removed line counts.
func RenderSummary(chunks []diff.Chunk, opts Options) (string, error) {
	root := gtree.NewRoot("comparison")

	row := 1
	for i, chunk := range chunks {
		span := fmt.Sprintf("rows %d-%d", row, row+len(chunk.Rows)-1)
		row += len(chunk.Rows)

		if chunk.Type == diff.ChunkContext {
			label := fmt.Sprintf("%s: %d unchanged", span, len(chunk.Rows))
			if opts.Colorize {
				label = display.Grey(label)
			}
			root.Add(label)
			continue
		}

		added, removed := 0, 0
		for _, r := range chunk.Rows {
			if r.Right.Type == diff.OpAdded {
				added++
			}
			if r.Left.Type == diff.OpRemoved {
				removed++
			}
		}

		label := fmt.Sprintf("%s: change #%d", span, i+1)
		if opts.Colorize {
			label = display.LightBlue(label)
		}
		node := root.Add(label)

		addedLabel := fmt.Sprintf("+%d added", added)
		removedLabel := fmt.Sprintf("-%d removed", removed)
		contextLabel := fmt.Sprintf("%d/%d context rows (lead/trail)", chunk.LeadingContext, chunk.TrailingContext)
		if opts.Colorize {
			addedLabel = display.Green(addedLabel)
			removedLabel = display.Red(removedLabel)
			contextLabel = display.Grey(contextLabel)
		}
		node.Add(addedLabel)
		node.Add(removedLabel)
		node.Add(contextLabel)
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
