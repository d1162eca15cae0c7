// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"
)

// SortRule describes how the elements of an array of objects should be
// ordered before two documents are compared. Fields are path expressions
// relative to an array element, in priority order: the first field is the
// primary sort key. A field of the form "key[].sub" additionally targets the
// array stored under "key" on the containing object.
//
// Rules are read-only from the comparison pipeline's point of view; they are
// authored by the user and persisted by the rule store.
type SortRule struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []string `json:"fields" yaml:"fields"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
}

// Validate checks the invariants the rest of the pipeline assumes and never
// re-verifies: a display name and at least one non-blank field.
func (r SortRule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule name is required")
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("rule %q must have at least one field", r.Name)
	}
	for i, f := range r.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("rule %q has a blank field at position %d", r.Name, i)
		}
	}
	return nil
}

// EnabledRules filters a rule list down to the enabled ones, preserving the
// configured order. The order is significant: the first eligible rule wins.
func EnabledRules(rules []SortRule) []SortRule {
	out := make([]SortRule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
