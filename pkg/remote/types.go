// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package remote

import (
	"strings"

	"github.com/walteh/rxgrid/pkg/dataset"
)

// 📥 UploadResponse is the wire body of /api/upload. Every field is optional.
type UploadResponse struct {
	Filename *string          `json:"filename,omitempty"`
	Headers  []string         `json:"headers,omitempty"`
	Columns  []string         `json:"columns,omitempty"`
	Data     [][]dataset.Cell `json:"data,omitempty"`
}

// PreviewRequest is the wire body sent to /api/llm-preview
type PreviewRequest struct {
	NaturalLanguage string `json:"natural_language"`
}

// PreviewResponse is the wire body of /api/llm-preview
type PreviewResponse struct {
	Pattern     *string `json:"pattern,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

// 🔧 TransformRequest is the wire body sent to /api/transform.
// Prompt repeats NaturalLanguage for backends that only read the single field form.
type TransformRequest struct {
	NaturalLanguage         string   `json:"natural_language"`
	Prompt                  string   `json:"prompt"`
	Replacement             string   `json:"replacement"`
	Columns                 []string `json:"columns"`
	ApplyPhoneNormalization bool     `json:"apply_phone_normalization"`
	ApplyDateNormalization  bool     `json:"apply_date_normalization"`
}

// WireStats is the optional stats object of a transform response
type WireStats struct {
	UpdatedRows  *int `json:"updated_rows,omitempty"`
	UpdatedCells *int `json:"updated_cells,omitempty"`
}

// TransformResponse is the wire body of /api/transform
type TransformResponse struct {
	Pattern     *string          `json:"pattern,omitempty"`
	Explanation *string          `json:"explanation,omitempty"`
	Headers     []string         `json:"headers,omitempty"`
	Data        [][]dataset.Cell `json:"data,omitempty"`
	Stats       *WireStats       `json:"stats,omitempty"`
}

// 📦 UploadResult is an upload response with every default applied
type UploadResult struct {
	Dataset  dataset.Dataset
	Filename string
}

// PreviewResult is a preview response with every default applied
type PreviewResult struct {
	Pattern     string
	Explanation string
}

// TransformResult is a transform response with every default applied
type TransformResult struct {
	Dataset     dataset.Dataset
	Pattern     string
	Explanation string
	Stats       *dataset.Stats
}

// 🗺️ Result maps an upload response onto the session model.
//
// Columns come from headers, then columns, then nothing. Rows default to
// empty. The filename falls back to the name of the file that was sent.
func (r *UploadResponse) Result(sentName string) UploadResult {
	if r == nil {
		r = &UploadResponse{}
	}

	columns := r.Headers
	if columns == nil {
		columns = r.Columns
	}

	name := sentName
	if r.Filename != nil && *r.Filename != "" {
		name = *r.Filename
	}

	return UploadResult{
		Dataset:  dataset.Conform(columns, r.Data),
		Filename: name,
	}
}

// 🗺️ Result maps a preview response; the pattern is trimmed
func (r *PreviewResponse) Result() PreviewResult {
	if r == nil {
		return PreviewResult{}
	}
	return PreviewResult{
		Pattern:     strings.TrimSpace(deref(r.Pattern)),
		Explanation: deref(r.Explanation),
	}
}

// 🗺️ Result maps a transform response onto the session model.
//
// A response without headers keeps the current columns, since a find/replace
// does not change the column set. Rows default to empty, the pattern to "" and
// stats to nil. Missing stats counters count as zero.
//
// Some backends also echo a "columns" key holding the columns the transform
// targeted rather than the dataset header; it is not decoded and never used
// as the column set.
func (r *TransformResponse) Result(currentColumns []string) TransformResult {
	if r == nil {
		r = &TransformResponse{}
	}

	columns := r.Headers
	if columns == nil {
		columns = currentColumns
	}

	var stats *dataset.Stats
	if r.Stats != nil {
		stats = &dataset.Stats{
			UpdatedRows:  derefInt(r.Stats.UpdatedRows),
			UpdatedCells: derefInt(r.Stats.UpdatedCells),
		}
	}

	return TransformResult{
		Dataset:     dataset.Conform(columns, r.Data),
		Pattern:     strings.TrimSpace(deref(r.Pattern)),
		Explanation: deref(r.Explanation),
		Stats:       stats,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
