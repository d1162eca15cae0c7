// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package diff

// ChunkType tags a run of rows as surrounding context or actual change.
type ChunkType string

const (
	ChunkContext ChunkType = "context"
	ChunkChange  ChunkType = "change"
)

// DefaultContext is the number of unchanged rows kept expanded around each
// change region.
const DefaultContext = 3

// expandAllLimit is the row count at or below which the whole projection is
// emitted as a single expanded chunk instead of being folded.
const expandAllLimit = 20

// Chunk is a contiguous, independently collapsible run of projected rows.
// LeadingContext and TrailingContext count how many of a change chunk's edge
// rows are pure padding rather than changed lines.
type Chunk struct {
	Type            ChunkType `json:"type"`
	Rows            []Row     `json:"rows"`
	Expanded        bool      `json:"expanded"`
	LeadingContext  int       `json:"leadingContext,omitempty"`
	TrailingContext int       `json:"trailingContext,omitempty"`
}

// Chunks groups a projection into display chunks: change regions (padded with
// up to contextSize unchanged rows on each side, with gaps smaller than
// 2×contextSize bridged into one region) stay expanded, long unchanged runs
// collapse. Every row lands in exactly one chunk, in order; unchanged
// remainders at the document edges are emitted as collapsed context rather
// than dropped.
func Chunks(rows []Row, contextSize int) []Chunk {
	if contextSize <= 0 {
		contextSize = DefaultContext
	}
	n := len(rows)
	if n == 0 {
		return nil
	}

	if n <= expandAllLimit {
		t := ChunkContext
		for _, r := range rows {
			if r.Changed() {
				t = ChunkChange
				break
			}
		}
		return []Chunk{{Type: t, Rows: rows, Expanded: true}}
	}

	var chunks []Chunk
	emitted := 0

	for i := 0; i < n; {
		if !rows[i].Changed() {
			i++
			continue
		}

		s, e := i, i
		for e+1 < n {
			if rows[e+1].Changed() {
				e++
				continue
			}
			// Bridge: merge a nearby change into this region so close-together
			// edits land in one chunk.
			next := -1
			for k := e + 2; k <= e+2*contextSize && k < n; k++ {
				if rows[k].Changed() {
					next = k
					break
				}
			}
			if next < 0 {
				break
			}
			e = next
		}

		start := max(s-contextSize, emitted)
		end := min(e+contextSize, n-1)

		if start > emitted {
			chunks = append(chunks, Chunk{
				Type: ChunkContext,
				Rows: rows[emitted:start],
			})
		}
		chunks = append(chunks, Chunk{
			Type:            ChunkChange,
			Rows:            rows[start : end+1],
			Expanded:        true,
			LeadingContext:  s - start,
			TrailingContext: end - e,
		})

		emitted = end + 1
		i = emitted
	}

	if emitted < n {
		chunks = append(chunks, Chunk{
			Type: ChunkContext,
			Rows: rows[emitted:],
		})
	}
	return chunks
}
