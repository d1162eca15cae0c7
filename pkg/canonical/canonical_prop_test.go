// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build property

package canonical

import (
	"encoding/json"
	"sort"
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// jsonValueGen draws values from the closed parsed-document type set, bounded
// in depth so cases stay readable when rapid shrinks a failure.
func jsonValueGen(depth int) *rapid.Generator[any] {
	scalar := rapid.OneOf(
		rapid.Just[any](nil),
		rapid.Map(rapid.Bool(), func(b bool) any { return b }),
		rapid.Map(rapid.Int64(), func(n int64) any { return json.Number(strconv.FormatInt(n, 10)) }),
		rapid.Map(rapid.StringN(0, 8, 16), func(s string) any { return s }),
	)
	if depth <= 0 {
		return scalar
	}

	child := jsonValueGen(depth - 1)
	return rapid.OneOf(
		scalar,
		rapid.Map(rapid.SliceOfN(child, 0, 4), func(s []any) any { return s }),
		rapid.Map(rapid.MapOfN(rapid.StringN(1, 6, 8), child, 0, 4), func(m map[string]any) any { return m }),
	)
}

var propRules = []model.SortRule{
	{Name: "by-id", Fields: []string{"id"}, Enabled: true},
	{Name: "by-name", Fields: []string{"name"}, Enabled: true},
}

func TestCanonicalize_IdempotentProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := jsonValueGen(3).Draw(rt, "doc")

		once := Canonicalize(v, propRules)
		twice := Canonicalize(once, propRules)

		if Encode(once) != Encode(twice) {
			rt.Fatalf("canonicalization is not idempotent:\nonce:\n%s\ntwice:\n%s", Encode(once), Encode(twice))
		}
	})
}

func TestCanonicalize_PreservesStructure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := jsonValueGen(3).Draw(rt, "doc")
		c := Canonicalize(v, propRules)

		gotLeaves := collectLeaves(c)
		wantLeaves := collectLeaves(v)
		sort.Strings(gotLeaves)
		sort.Strings(wantLeaves)

		if len(gotLeaves) != len(wantLeaves) {
			rt.Fatalf("leaf count changed: %d -> %d", len(wantLeaves), len(gotLeaves))
		}
		for i := range gotLeaves {
			if gotLeaves[i] != wantLeaves[i] {
				rt.Fatalf("leaf multiset changed at %d: %q vs %q", i, wantLeaves[i], gotLeaves[i])
			}
		}
	})
}

func TestCanonicalize_DeterministicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := jsonValueGen(3).Draw(rt, "doc")

		a := Encode(Canonicalize(v, propRules))
		b := Encode(Canonicalize(v, propRules))
		if a != b {
			rt.Fatalf("same input produced different canonical text")
		}
	})
}

// collectLeaves flattens a value into its scalar leaves, each prefixed with a
// type tag so "1" the number and "1" the string stay distinct.
func collectLeaves(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{"null"}
	case bool:
		if val {
			return []string{"bool:true"}
		}
		return []string{"bool:false"}
	case json.Number:
		return []string{"num:" + val.String()}
	case string:
		return []string{"str:" + val}
	case []any:
		var out []string
		for _, el := range val {
			out = append(out, collectLeaves(el)...)
		}
		return out
	case map[string]any:
		var out []string
		for k, el := range val {
			out = append(out, "key:"+k)
			out = append(out, collectLeaves(el)...)
		}
		return out
	}
	return nil
}
