// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build unit

package rulestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "rules.yaml"))
}

func TestStore_MissingFileIsEmptyRuleSet(t *testing.T) {
	rules, err := tempStore(t).Load()
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := tempStore(t)

	saved := []model.SortRule{
		{ID: "one", Name: "users", Description: "users by id", Fields: []string{"users[].id"}, Enabled: true},
		{ID: "two", Name: "generic", Fields: []string{"name", "id"}, Enabled: false},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStore_SaveCreatesMissingDirectories(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dirs", "rules.yaml"))

	require.NoError(t, store.Save([]model.SortRule{{ID: "x", Name: "n", Fields: []string{"id"}, Enabled: true}}))

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestStore_Add(t *testing.T) {
	store := tempStore(t)

	t.Run("assigns an id and appends at the end", func(t *testing.T) {
		first, err := store.Add(model.SortRule{Name: "first", Fields: []string{"id"}, Enabled: true})
		require.NoError(t, err)
		assert.NotEmpty(t, first.ID)

		second, err := store.Add(model.SortRule{Name: "second", Fields: []string{"name"}, Enabled: true})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		rules, err := store.Load()
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "first", rules[0].Name)
		assert.Equal(t, "second", rules[1].Name)
	})

	t.Run("rejects invalid rules", func(t *testing.T) {
		_, err := store.Add(model.SortRule{Name: "", Fields: []string{"id"}})
		assert.Error(t, err)

		_, err = store.Add(model.SortRule{Name: "no-fields"})
		assert.Error(t, err)
	})
}

func TestStore_Remove(t *testing.T) {
	store := tempStore(t)

	rule, err := store.Add(model.SortRule{Name: "doomed", Fields: []string{"id"}, Enabled: true})
	require.NoError(t, err)

	require.NoError(t, store.Remove(rule.ID))

	rules, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, rules)

	assert.Error(t, store.Remove("no-such-id"))
}

func TestStore_SetEnabled(t *testing.T) {
	store := tempStore(t)

	rule, err := store.Add(model.SortRule{Name: "toggle", Fields: []string{"id"}, Enabled: true})
	require.NoError(t, err)

	require.NoError(t, store.SetEnabled(rule.ID, false))

	got, err := store.Get(rule.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	assert.Error(t, store.SetEnabled("no-such-id", true))
}

func TestStore_Reorder(t *testing.T) {
	store := tempStore(t)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		rule, err := store.Add(model.SortRule{Name: name, Fields: []string{"id"}, Enabled: true})
		require.NoError(t, err)
		ids = append(ids, rule.ID)
	}

	names := func() []string {
		rules, err := store.Load()
		require.NoError(t, err)
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Name
		}
		return out
	}

	require.NoError(t, store.Reorder(ids[2], 0))
	assert.Equal(t, []string{"c", "a", "b"}, names())

	t.Run("positions clamp to the list bounds", func(t *testing.T) {
		require.NoError(t, store.Reorder(ids[2], 99))
		assert.Equal(t, []string{"a", "b", "c"}, names())
	})

	assert.Error(t, store.Reorder("no-such-id", 0))
}

func TestStore_Get(t *testing.T) {
	store := tempStore(t)

	rule, err := store.Add(model.SortRule{Name: "lookup", Fields: []string{"id"}, Enabled: true})
	require.NoError(t, err)

	got, err := store.Get(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, rule, got)

	_, err = store.Get("no-such-id")
	assert.Error(t, err)
}
