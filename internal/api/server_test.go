// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build unit

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/api/model"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/rulestore"
	pkgmodel "github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	store := rulestore.NewStore(filepath.Join(t.TempDir(), "rules.yaml"))
	return NewServer(store, 0)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestCompareEndpoint(t *testing.T) {
	s := testServer(t)

	t.Run("identical after canonicalization", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
			Left:  json.RawMessage(`{"b": 2, "a": 1}`),
			Right: json.RawMessage(`{"a": 1, "b": 2}`),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.CompareResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Identical)
		assert.Zero(t, resp.Stats.Added)
		assert.Zero(t, resp.Stats.Removed)
	})

	t.Run("request rules override the store", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
			Left:  json.RawMessage(`{"users": [{"id": 2}, {"id": 1}]}`),
			Right: json.RawMessage(`{"users": [{"id": 1}, {"id": 2}]}`),
			Rules: []pkgmodel.SortRule{
				{Name: "users-by-id", Fields: []string{"users[].id"}, Enabled: true},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.CompareResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Identical)
	})

	t.Run("differences are reported with chunks", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
			Left:  json.RawMessage(`{"a": 1}`),
			Right: json.RawMessage(`{"a": 2}`),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.CompareResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Identical)
		assert.Equal(t, 1, resp.Stats.Added)
		assert.Equal(t, 1, resp.Stats.Removed)
		assert.NotEmpty(t, resp.Chunks)
	})

	t.Run("malformed left document names the side", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
			Left:  json.RawMessage(`{"broken": `),
			Right: json.RawMessage(`{}`),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Equal(t, "left", apiErr.Side)
	})

	t.Run("missing right document", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
			Left: json.RawMessage(`{}`),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Equal(t, "right", apiErr.Side)
	})
}

func TestRuleEndpoints(t *testing.T) {
	s := testServer(t)

	t.Run("list starts empty", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, RulesRoute, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	var created pkgmodel.SortRule

	t.Run("create", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, RulesRoute, pkgmodel.SortRule{
			Name:    "users-by-id",
			Fields:  []string{"users[].id"},
			Enabled: true,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
	})

	t.Run("create rejects invalid rules", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, RulesRoute, pkgmodel.SortRule{Name: ""})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("disable", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPatch, RulesRoute+"/"+created.ID+"/enabled",
			map[string]bool{"enabled": false})
		require.Equal(t, http.StatusNoContent, rec.Code)

		listRec := doJSON(t, s, http.MethodGet, RulesRoute, nil)
		var rules []pkgmodel.SortRule
		require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &rules))
		require.Len(t, rules, 1)
		assert.False(t, rules[0].Enabled)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodDelete, RulesRoute+"/"+created.ID, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		again := doJSON(t, s, http.MethodDelete, RulesRoute+"/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, HealthRoute, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)

	// Generate one comparison so counters exist.
	doJSON(t, s, http.MethodPost, CompareRoute, model.CompareRequest{
		Left:  json.RawMessage(`{"a": 1}`),
		Right: json.RawMessage(`{"a": 1}`),
	})

	rec := doJSON(t, s, http.MethodGet, MetricsRoute, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sjd_compares_total")
}
