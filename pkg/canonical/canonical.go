// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

// Package canonical turns semantically similar JSON documents into
// byte-identical text. Canonicalization recursively sorts object keys
// lexicographically and reorders arrays of objects according to
// user-configured sort rules; the result is a pure, deterministic function of
// (value, rule list) that never adds, drops or mutates content.
package canonical

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// Canonicalize returns a canonical copy of v: object keys emit in sorted
// order and every array matched by an enabled rule is stable-sorted by that
// rule's fields. Unmatched arrays keep their received element order. The rule
// list is snapshotted once per call; rules are never mutated.
func Canonicalize(v any, rules []model.SortRule) any {
	c := &canonicalizer{
		rules:    model.EnabledRules(rules),
		collator: collate.New(language.English),
	}
	return c.value(v)
}

type canonicalizer struct {
	rules []model.SortRule

	// collate.Collator is not safe for concurrent use, so each run owns one.
	collator *collate.Collator
}

func (c *canonicalizer) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if arr, ok := child.([]any); ok {
				out[k] = c.array(arr, k)
			} else {
				out[k] = c.value(child)
			}
		}
		return out
	case []any:
		return c.array(val, "")
	default:
		return v
	}
}

// array canonicalizes every element first, then sorts the element list at
// most once: a targeted rule for the containing key takes precedence, generic
// matching is the fallback. Element recursion has already handled any nested
// arrays, so the sort at this level is never revisited.
func (c *canonicalizer) array(arr []any, key string) []any {
	out := make([]any, len(arr))
	for i, el := range arr {
		out[i] = c.value(el)
	}

	if key != "" {
		if fields, ok := matchTargeted(c.rules, key, out); ok {
			c.stableSort(out, fields)
			return out
		}
	}
	if fields, ok := matchGeneric(c.rules, out); ok {
		c.stableSort(out, fields)
	}
	return out
}

func (c *canonicalizer) stableSort(elems []any, fields []string) {
	sort.SliceStable(elems, func(i, j int) bool {
		return c.compare(elems[i], elems[j], fields) < 0
	})
}

// compare orders two elements by the rule fields in priority order. A field
// where either side is absent is uninformative and skipped; two numbers
// compare numerically; everything else compares by string form under the
// collator. Elements tying on all fields compare equal, and the stable sort
// keeps their relative input order.
func (c *canonicalizer) compare(a, b any, fields []string) int {
	for _, f := range fields {
		av := Resolve(a, f)
		bv := Resolve(b, f)
		if av == nil || bv == nil {
			continue
		}

		if an, aok := numeric(av); aok {
			if bn, bok := numeric(bv); bok {
				switch {
				case an < bn:
					return -1
				case an > bn:
					return 1
				}
				continue
			}
		}

		if r := c.collator.CompareString(stringForm(av), stringForm(bv)); r != 0 {
			return r
		}
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func stringForm(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
