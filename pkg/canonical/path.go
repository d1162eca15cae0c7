// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package canonical

import (
	"regexp"
	"strconv"
	"strings"
)

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// Resolve walks a dotted path expression against a value and returns whatever
// it finds, or nil when the path cannot be followed. Bracket indices are
// normalized first ("seg[3]" becomes "seg.3"), then each segment is applied
// in turn: a purely numeric segment indexes an array, anything else reads an
// object member. Resolve never fails on a malformed path; absence, explicit
// null and "not indexable here" all come back as nil.
func Resolve(v any, path string) any {
	path = bracketIndex.ReplaceAllString(path, ".$1")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return v
	}

	cur := v
	for _, seg := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		if idx, ok := arrayIndex(seg); ok {
			arr, isArr := cur.([]any)
			if !isArr || idx >= len(arr) {
				return nil
			}
			cur = arr[idx]
			continue
		}
		obj, isObj := cur.(map[string]any)
		if !isObj {
			return nil
		}
		cur = obj[seg]
	}
	return cur
}

// HasValue reports whether a path resolves to a usable value. Missing members
// and explicit nulls are treated identically: sort rules must not distinguish
// the two when deciding eligibility.
func HasValue(v any, path string) bool {
	return Resolve(v, path) != nil
}

func arrayIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return idx, true
}
