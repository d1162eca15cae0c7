// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build property

package diff

import (
	"testing"

	"pgregory.net/rapid"
)

// linesGen draws short line sequences from a small alphabet so that equal
// lines, drift and substitutions all occur often.
func linesGen() *rapid.Generator[[]string] {
	line := rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	return rapid.SliceOfN(line, 0, 30)
}

func rebuild(ops []Op, keep OpType) []string {
	out := []string{}
	for _, op := range ops {
		if op.Type == OpEqual || op.Type == keep {
			out = append(out, op.Text)
		}
	}
	return out
}

func TestLines_ReconstructionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		left := linesGen().Draw(rt, "left")
		right := linesGen().Draw(rt, "right")

		ops := Lines(left, right)

		gotLeft := rebuild(ops, OpRemoved)
		if len(gotLeft) != len(left) {
			rt.Fatalf("left reconstruction length %d, want %d", len(gotLeft), len(left))
		}
		for i := range left {
			if gotLeft[i] != left[i] {
				rt.Fatalf("left reconstruction differs at %d: %q vs %q", i, gotLeft[i], left[i])
			}
		}

		gotRight := rebuild(ops, OpAdded)
		if len(gotRight) != len(right) {
			rt.Fatalf("right reconstruction length %d, want %d", len(gotRight), len(right))
		}
		for i := range right {
			if gotRight[i] != right[i] {
				rt.Fatalf("right reconstruction differs at %d: %q vs %q", i, gotRight[i], right[i])
			}
		}
	})
}

func TestLines_StatsConsistencyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		left := linesGen().Draw(rt, "left")
		right := linesGen().Draw(rt, "right")

		ops := Lines(left, right)
		stats := Summarize(ops)

		if stats.Unchanged+stats.Removed != len(left) {
			rt.Fatalf("unchanged+removed = %d, want len(left) = %d", stats.Unchanged+stats.Removed, len(left))
		}
		if stats.Unchanged+stats.Added != len(right) {
			rt.Fatalf("unchanged+added = %d, want len(right) = %d", stats.Unchanged+stats.Added, len(right))
		}
		if Identical(ops) != (stats.Added == 0 && stats.Removed == 0) {
			rt.Fatalf("Identical disagrees with stats: %+v", stats)
		}
	})
}

func TestLines_IdenticalInputProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := linesGen().Draw(rt, "lines")

		ops := Lines(lines, lines)
		if !Identical(ops) {
			rt.Fatalf("diff of a sequence against itself is not all-equal")
		}
		if len(ops) != len(lines) {
			rt.Fatalf("op count %d, want %d", len(ops), len(lines))
		}
	})
}
