// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

// Package diff aligns the serialized lines of two canonicalized JSON values.
// The alignment is a greedy single pass with bounded lookahead
// resynchronization, deliberately not an LCS: it favors fast local recovery
// over a minimal edit script. Downstream, the linear op sequence is projected
// into side-by-side rows and grouped into collapsible chunks.
package diff

import (
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/canonical"
)

// OpType tags one aligned line of diff output.
type OpType string

const (
	OpEqual   OpType = "equal"
	OpAdded   OpType = "added"
	OpRemoved OpType = "removed"

	// OpNone marks the padded, empty side of a projected row.
	OpNone OpType = "empty"
)

// Lookahead is how many lines past the current cursor each side is searched
// for a resynchronization point before a mismatch is emitted as a
// substitution. Two matching lines separated by more drift than this on both
// sides will not be re-aligned.
const Lookahead = 4

// Op is one aligned unit of diff output: the line's text and its index in
// the sequence it came from (left for equal and removed, right for added).
type Op struct {
	Type OpType `json:"type"`
	Text string `json:"text"`
	Line int    `json:"line"`
}

// Values serializes two canonicalized values with the fixed pretty-printer
// and diffs the resulting line sequences. Callers are expected to have
// applied canonical.Canonicalize to both sides already.
func Values(left, right any) []Op {
	return Lines(canonical.EncodeLines(left), canonical.EncodeLines(right))
}

// Lines aligns two line sequences into an ordered op sequence. Concatenating
// the equal and removed ops reproduces left; equal and added reproduce right.
func Lines(left, right []string) []Op {
	ops := make([]Op, 0, max(len(left), len(right)))
	i, j := 0, 0

	for i < len(left) || j < len(right) {
		switch {
		case i >= len(left):
			ops = append(ops, Op{Type: OpAdded, Text: right[j], Line: j})
			j++

		case j >= len(right):
			ops = append(ops, Op{Type: OpRemoved, Text: left[i], Line: i})
			i++

		case left[i] == right[j]:
			ops = append(ops, Op{Type: OpEqual, Text: left[i], Line: i})
			i++
			j++

		default:
			// The right window is searched first; this tie-break is fixed,
			// so a left-side resync only happens when the right finds nothing.
			if k, ok := findWithin(right, j+1, left[i]); ok {
				for m := j; m < k; m++ {
					ops = append(ops, Op{Type: OpAdded, Text: right[m], Line: m})
				}
				ops = append(ops, Op{Type: OpEqual, Text: left[i], Line: i})
				i++
				j = k + 1
				continue
			}
			if k, ok := findWithin(left, i+1, right[j]); ok {
				for m := i; m < k; m++ {
					ops = append(ops, Op{Type: OpRemoved, Text: left[m], Line: m})
				}
				ops = append(ops, Op{Type: OpEqual, Text: right[j], Line: k})
				i = k + 1
				j++
				continue
			}
			// No resync in range either direction: direct substitution.
			ops = append(ops,
				Op{Type: OpRemoved, Text: left[i], Line: i},
				Op{Type: OpAdded, Text: right[j], Line: j})
			i++
			j++
		}
	}
	return ops
}

func findWithin(seq []string, start int, want string) (int, bool) {
	for k := start; k < start+Lookahead && k < len(seq); k++ {
		if seq[k] == want {
			return k, true
		}
	}
	return 0, false
}

// Stats summarizes an op sequence for display and metrics.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

func Summarize(ops []Op) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Type {
		case OpAdded:
			s.Added++
		case OpRemoved:
			s.Removed++
		case OpEqual:
			s.Unchanged++
		}
	}
	return s
}

// Identical reports whether the diff contains no additions or removals.
func Identical(ops []Op) bool {
	for _, op := range ops {
		if op.Type != OpEqual {
			return false
		}
	}
	return true
}
