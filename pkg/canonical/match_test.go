// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build unit

package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

func decodeArray(t *testing.T, src string) []any {
	t.Helper()
	v, err := Decode([]byte(src))
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	return arr
}

func TestTargetedSubpaths(t *testing.T) {
	t.Run("all fields target the key", func(t *testing.T) {
		rule := model.SortRule{Fields: []string{"data[].id", "data[].name"}}
		assert.Equal(t, []string{"id", "name"}, targetedSubpaths(rule, "data"))
	})

	t.Run("different key is not targeted", func(t *testing.T) {
		rule := model.SortRule{Fields: []string{"data[].id"}}
		assert.Nil(t, targetedSubpaths(rule, "items"))
	})

	t.Run("mixed prefixes disqualify the rule", func(t *testing.T) {
		rule := model.SortRule{Fields: []string{"data[].id", "name"}}
		assert.Nil(t, targetedSubpaths(rule, "data"))
	})

	t.Run("plain fields are not targeted", func(t *testing.T) {
		rule := model.SortRule{Fields: []string{"id"}}
		assert.Nil(t, targetedSubpaths(rule, "data"))
	})
}

func TestMatchTargeted(t *testing.T) {
	rules := []model.SortRule{
		{Name: "by-data-id", Fields: []string{"data[].id"}, Enabled: true},
	}
	elems := decodeArray(t, `[{"id": 2}, {"id": 1}]`)

	fields, ok := matchTargeted(rules, "data", elems)
	assert.True(t, ok)
	assert.Equal(t, []string{"id"}, fields)

	_, ok = matchTargeted(rules, "other", elems)
	assert.False(t, ok)
}

func TestMatchGeneric(t *testing.T) {
	rules := []model.SortRule{
		{Name: "by-missing", Fields: []string{"missing"}, Enabled: true},
		{Name: "by-id", Fields: []string{"id"}, Enabled: true},
	}

	t.Run("first eligible rule wins", func(t *testing.T) {
		elems := decodeArray(t, `[{"id": 2}, {"id": 1}]`)
		fields, ok := matchGeneric(rules, elems)
		assert.True(t, ok)
		assert.Equal(t, []string{"id"}, fields)
	})

	t.Run("targeted field syntax never matches generically", func(t *testing.T) {
		targeted := []model.SortRule{{Name: "t", Fields: []string{"data[].id"}, Enabled: true}}
		elems := decodeArray(t, `[{"id": 2}, {"id": 1}]`)
		_, ok := matchGeneric(targeted, elems)
		assert.False(t, ok)
	})
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		fields []string
		want   bool
	}{
		{"all elements carry the field", `[{"id": 1}, {"id": 2}]`, []string{"id"}, true},
		{"empty array", `[]`, []string{"id"}, false},
		{"non-object element", `[{"id": 1}, 3]`, []string{"id"}, false},
		{"missing field on one element", `[{"id": 1}, {"name": "x"}]`, []string{"id"}, false},
		{"null field counts as missing", `[{"id": 1}, {"id": null}]`, []string{"id"}, false},
		{"nested sort field", `[{"meta": {"rank": 1}}, {"meta": {"rank": 2}}]`, []string{"meta.rank"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, eligible(decodeArray(t, tc.src), tc.fields))
		})
	}
}
