// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Parsed documents are represented by the closed set of Go types
// {nil, bool, json.Number, string, []any, map[string]any}. Everything in this
// package dispatches on that set with explicit type switches.

// Decode parses a single JSON document. Numbers are kept as json.Number so
// the original literal survives canonicalization and serialization verbatim.
func Decode(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data after document")
	}
	return v, nil
}

// Encode serializes a value with the fixed pretty-printer the differ relies
// on: 2-space indentation, object keys in ascending lexicographic byte order,
// arrays in stored order. Same value in, byte-identical text out.
func Encode(v any) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

// EncodeLines returns the pretty-printed serialization split into lines, the
// unit the line differ operates on.
func EncodeLines(v any) []string {
	return strings.Split(Encode(v), "\n")
}

func writeValue(b *strings.Builder, v any, indent int) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case json.Number:
		b.WriteString(val.String())
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(val))
	case string:
		writeString(b, val)
	case []any:
		writeArray(b, val, indent)
	case map[string]any:
		writeObject(b, val, indent)
	default:
		// Not part of the closed value set; fall back to the codec.
		raw, err := gojson.Marshal(val)
		if err != nil {
			writeString(b, fmt.Sprint(val))
			return
		}
		b.Write(raw)
	}
}

func writeString(b *strings.Builder, s string) {
	raw, err := gojson.Marshal(s)
	if err != nil {
		b.WriteString(strconv.Quote(s))
		return
	}
	b.Write(raw)
}

func writeArray(b *strings.Builder, arr []any, indent int) {
	if len(arr) == 0 {
		b.WriteString("[]")
		return
	}

	b.WriteString("[\n")
	for i, el := range arr {
		writeIndent(b, indent+1)
		writeValue(b, el, indent+1)
		if i < len(arr)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	writeIndent(b, indent)
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, obj map[string]any, indent int) {
	if len(obj) == 0 {
		b.WriteString("{}")
		return
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("{\n")
	for i, k := range keys {
		writeIndent(b, indent+1)
		writeString(b, k)
		b.WriteString(": ")
		writeValue(b, obj[k], indent+1)
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	writeIndent(b, indent)
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}
