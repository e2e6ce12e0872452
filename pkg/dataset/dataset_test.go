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

package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConform(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]Cell
		want    Dataset
	}{
		{
			name:    "aligned_rows_untouched",
			columns: []string{"email", "phone"},
			rows:    [][]Cell{{"a@x.com", "0411111111"}},
			want: Dataset{
				Columns: []string{"email", "phone"},
				Rows:    [][]Cell{{"a@x.com", "0411111111"}},
			},
		},
		{
			name:    "short_row_padded",
			columns: []string{"a", "b", "c"},
			rows:    [][]Cell{{"1"}},
			want: Dataset{
				Columns: []string{"a", "b", "c"},
				Rows:    [][]Cell{{"1", nil, nil}},
			},
		},
		{
			name:    "long_row_truncated",
			columns: []string{"a"},
			rows:    [][]Cell{{"1", "2", "3"}},
			want: Dataset{
				Columns: []string{"a"},
				Rows:    [][]Cell{{"1"}},
			},
		},
		{
			name:    "no_columns_drops_rows",
			columns: nil,
			rows:    [][]Cell{{"1", "2"}},
			want:    Empty(),
		},
		{
			name:    "nil_rows_become_empty",
			columns: []string{"a"},
			rows:    nil,
			want: Dataset{
				Columns: []string{"a"},
				Rows:    [][]Cell{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Conform(tt.columns, tt.rows)
			assert.Equal(t, tt.want, got, "conformed dataset should match")
			require.NoError(t, got.Validate(), "conformed dataset should be valid")
		})
	}
}

func TestConformDoesNotAliasInput(t *testing.T) {
	columns := []string{"a"}
	rows := [][]Cell{{"x"}}

	got := Conform(columns, rows)
	columns[0] = "changed"
	rows[0][0] = "changed"

	assert.Equal(t, "a", got.Columns[0], "columns should be copied")
	assert.Equal(t, "x", got.Rows[0][0], "rows should be copied")
}

func TestValidate(t *testing.T) {
	ds := Dataset{Columns: []string{"a", "b"}, Rows: [][]Cell{{"1", "2"}, {"3"}}}
	err := ds.Validate()
	require.Error(t, err, "ragged dataset should fail validation")
	assert.Contains(t, err.Error(), "row 1 has 1 cells, expected 2")

	assert.NoError(t, Empty().Validate(), "empty dataset is valid")
	assert.True(t, Empty().IsEmpty(), "empty dataset reports empty")
}

func TestClone(t *testing.T) {
	orig := Dataset{Columns: []string{"a"}, Rows: [][]Cell{{"1"}}}
	cp := orig.Clone()
	cp.Rows[0][0] = "2"
	cp.Columns[0] = "b"

	assert.Equal(t, "1", orig.Rows[0][0], "clone should not share rows")
	assert.Equal(t, "a", orig.Columns[0], "clone should not share columns")
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "nil", cell: nil, want: ""},
		{name: "string", cell: "abc", want: "abc"},
		{name: "json_number", cell: json.Number("1000000"), want: "1000000"},
		{name: "float", cell: 2.5, want: "2.5"},
		{name: "bool", cell: true, want: "true"},
		{name: "int", cell: 7, want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellString(tt.cell))
		})
	}
}

func TestColumnIndex(t *testing.T) {
	ds := Dataset{Columns: []string{"email", "phone"}}
	assert.Equal(t, 1, ds.ColumnIndex("phone"))
	assert.Equal(t, -1, ds.ColumnIndex("missing"))
}

func TestStatsString(t *testing.T) {
	assert.Equal(t, "1 rows, 2 cells updated", Stats{UpdatedRows: 1, UpdatedCells: 2}.String())
}
