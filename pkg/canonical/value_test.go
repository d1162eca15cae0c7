// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

//go:build unit

package canonical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("numbers decode as json.Number", func(t *testing.T) {
		v, err := Decode([]byte(`{"n": 1.50, "big": 9007199254740993}`))
		require.NoError(t, err)

		obj := v.(map[string]any)
		assert.Equal(t, json.Number("1.50"), obj["n"])
		assert.Equal(t, json.Number("9007199254740993"), obj["big"])
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := Decode([]byte(`{"a": `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("trailing data after the document", func(t *testing.T) {
		_, err := Decode([]byte(`{"a": 1} {"b": 2}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trailing data")
	})

	t.Run("scalar documents are valid", func(t *testing.T) {
		v, err := Decode([]byte(`true`))
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})
}

func TestEncode(t *testing.T) {
	t.Run("object keys emit in lexicographic order", func(t *testing.T) {
		v, err := Decode([]byte(`{"zeta": 1, "alpha": 2, "Mid": 3}`))
		require.NoError(t, err)

		assert.Equal(t, "{\n  \"Mid\": 3,\n  \"alpha\": 2,\n  \"zeta\": 1\n}", Encode(v))
	})

	t.Run("number literals survive verbatim", func(t *testing.T) {
		v, err := Decode([]byte(`[1.50, 1e3, -0.0]`))
		require.NoError(t, err)

		assert.Equal(t, "[\n  1.50,\n  1e3,\n  -0.0\n]", Encode(v))
	})

	t.Run("empty containers stay inline", func(t *testing.T) {
		v, err := Decode([]byte(`{"arr": [], "obj": {}}`))
		require.NoError(t, err)

		assert.Equal(t, "{\n  \"arr\": [],\n  \"obj\": {}\n}", Encode(v))
	})

	t.Run("strings are escaped", func(t *testing.T) {
		assert.Equal(t, `"line\nbreak"`, Encode("line\nbreak"))
	})

	t.Run("nested indentation", func(t *testing.T) {
		v, err := Decode([]byte(`{"a": {"b": [1]}}`))
		require.NoError(t, err)

		want := "{\n" +
			"  \"a\": {\n" +
			"    \"b\": [\n" +
			"      1\n" +
			"    ]\n" +
			"  }\n" +
			"}"
		assert.Equal(t, want, Encode(v))
	})

	t.Run("same value always encodes to the same bytes", func(t *testing.T) {
		v, err := Decode([]byte(`{"x": [3, 1, 2], "y": {"b": 1, "a": 2}}`))
		require.NoError(t, err)

		first := Encode(v)
		for range 5 {
			assert.Equal(t, first, Encode(v))
		}
	})
}

func TestEncodeLines(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"{", "  \"a\": 1", "}"}, EncodeLines(v))
}
