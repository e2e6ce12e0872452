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

// Package dataset holds the tabular data model shared by the session store,
// the backend boundary and the renderers.
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// 🧱 Cell is a single value in a row: a string, a json.Number, a bool or nil.
type Cell = any

// 📊 Dataset is an ordered set of columns with positionally aligned rows
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// 🏭 Empty returns the empty dataset (no columns, no rows)
func Empty() Dataset {
	return Dataset{Columns: []string{}, Rows: [][]Cell{}}
}

// IsEmpty reports whether the dataset has neither columns nor rows
func (d Dataset) IsEmpty() bool {
	return len(d.Columns) == 0 && len(d.Rows) == 0
}

// 🔍 Validate checks that every row is as wide as the column list
func (d Dataset) Validate() error {
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return errors.Errorf("row %d has %d cells, expected %d", i, len(row), len(d.Columns))
		}
	}
	return nil
}

// Clone returns a deep copy. Cells are scalars so copying each row is enough.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Columns: make([]string, len(d.Columns)),
		Rows:    make([][]Cell, len(d.Rows)),
	}
	copy(out.Columns, d.Columns)
	for i, row := range d.Rows {
		out.Rows[i] = make([]Cell, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// 📐 Conform builds a dataset that satisfies the row width invariant.
// Short rows are padded with nil, long rows are truncated and a dataset
// without columns carries no rows.
func Conform(columns []string, rows [][]Cell) Dataset {
	out := Empty()
	if len(columns) == 0 {
		return out
	}

	out.Columns = append(out.Columns, columns...)
	out.Rows = make([][]Cell, 0, len(rows))
	for _, row := range rows {
		aligned := make([]Cell, len(columns))
		copy(aligned, row)
		out.Rows = append(out.Rows, aligned)
	}
	return out
}

// ColumnIndex returns the position of the named column or -1
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// 🔤 CellString renders a cell the way the grid shows it; nil is blank
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// 📈 Stats are the change counts reported by the most recent apply
type Stats struct {
	UpdatedRows  int `json:"updated_rows"`
	UpdatedCells int `json:"updated_cells"`
}

// String formats the stats for display
func (s Stats) String() string {
	return fmt.Sprintf("%d rows, %d cells updated", s.UpdatedRows, s.UpdatedCells)
}
