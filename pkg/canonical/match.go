// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package canonical

import (
	"strings"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// Rule matching runs in two modes. Targeted mode applies while walking an
// object: the array lives under a known member key, and only rules whose
// fields all carry the "<key>[]." prefix are considered. Generic mode is the
// fallback for arrays reached positionally (top level, or nested inside
// another array): rule fields are read as element-relative paths as written.
// In both modes the first enabled eligible rule wins and no further rules are
// tried; when nothing matches the array keeps its received order.

// targetedSubpaths returns the element-relative remainders of the rule's
// fields when every field targets the array under key, nil otherwise. A rule
// whose fields disagree on the array path is never targeted-eligible.
func targetedSubpaths(rule model.SortRule, key string) []string {
	prefix := key + "[]."
	subs := make([]string, 0, len(rule.Fields))
	for _, f := range rule.Fields {
		if !strings.HasPrefix(f, prefix) {
			return nil
		}
		subs = append(subs, strings.TrimPrefix(f, prefix))
	}
	return subs
}

// matchTargeted finds the rule ordering the array stored under key, if any,
// together with the element-relative sort fields.
func matchTargeted(rules []model.SortRule, key string, elems []any) ([]string, bool) {
	for _, r := range rules {
		subs := targetedSubpaths(r, key)
		if subs == nil {
			continue
		}
		if eligible(elems, subs) {
			return subs, true
		}
	}
	return nil, false
}

// matchGeneric finds the rule ordering an anonymous array of objects, if any.
func matchGeneric(rules []model.SortRule, elems []any) ([]string, bool) {
	for _, r := range rules {
		if eligible(elems, r.Fields) {
			return r.Fields, true
		}
	}
	return nil, false
}

// eligible reports whether every element is a plain (non-array) object with a
// usable value at every one of the fields.
func eligible(elems []any, fields []string) bool {
	if len(elems) == 0 {
		return false
	}
	for _, el := range elems {
		if _, ok := el.(map[string]any); !ok {
			return false
		}
		for _, f := range fields {
			if !HasValue(el, f) {
				return false
			}
		}
	}
	return true
}
