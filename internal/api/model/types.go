// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"

	"github.com/eric-lim-idexx/sorted-json-diff/pkg/diff"
	pkgmodel "github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// CompareRequest carries the two raw documents to compare. Rules, when nil,
// default to the server's persisted rule list; when present they replace it
// for this request only. Context of 0 means the default context size.
type CompareRequest struct {
	Left    json.RawMessage     `json:"left"`
	Right   json.RawMessage     `json:"right"`
	Rules   []pkgmodel.SortRule `json:"rules,omitempty"`
	Context int                 `json:"context,omitempty"`
}

type CompareResponse struct {
	Identical bool         `json:"identical"`
	Stats     diff.Stats   `json:"stats"`
	Chunks    []diff.Chunk `json:"chunks"`
}

// ErrorResponse names the failing side for input errors so a client can
// surface the problem next to the right document.
type ErrorResponse struct {
	Message string `json:"error"`
	Side    string `json:"side,omitempty"`
}

func (e ErrorResponse) Error() string {
	return e.Message
}
