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

// Package render draws the session dataset and transform results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/walteh/rxgrid/pkg/dataset"
	"github.com/walteh/rxgrid/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// 🖼️ Table renders the header and the first maxRows rows of ds.
// Null cells are blank. A non-positive maxRows shows every row.
func Table(ds dataset.Dataset, maxRows int) (string, error) {
	if len(ds.Columns) == 0 {
		return color.New(color.Faint).Sprint("no data loaded") + "\n", nil
	}

	rows := ds.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, append([]string(nil), ds.Columns...))
	for _, row := range rows {
		line := make([]string, len(ds.Columns))
		for i := range ds.Columns {
			if i < len(row) {
				line[i] = dataset.CellString(row[i])
			}
		}
		data = append(data, line)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering table: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(out)
	sb.WriteString("\n")
	if len(rows) < len(ds.Rows) {
		sb.WriteString(color.New(color.Faint).Sprintf("showing %d of %d rows", len(rows), len(ds.Rows)))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// 🔀 Change is one cell that differs between two datasets
type Change struct {
	Row    int
	Column string
	Before string
	After  string
}

// Changes lists the cells of after that differ from before. Rows are paired
// by position and columns by name; a column new in after compares against
// blank cells.
func Changes(before, after dataset.Dataset) []Change {
	var out []Change
	for r, row := range after.Rows {
		var prev []dataset.Cell
		if r < len(before.Rows) {
			prev = before.Rows[r]
		}
		for c, name := range after.Columns {
			var now, was string
			if c < len(row) {
				now = dataset.CellString(row[c])
			}
			if i := before.ColumnIndex(name); i >= 0 && i < len(prev) {
				was = dataset.CellString(prev[i])
			}
			if now != was {
				out = append(out, Change{Row: r + 1, Column: name, Before: was, After: now})
			}
		}
	}
	return out
}

// 🔀 Diff renders at most limit changed cells as "old → new".
// A non-positive limit shows every change.
func Diff(before, after dataset.Dataset, limit int) string {
	changes := Changes(before, after)
	if len(changes) == 0 {
		return color.New(color.Faint).Sprint("no cells changed") + "\n"
	}

	shown := changes
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	var sb strings.Builder
	for _, ch := range shown {
		fmt.Fprintf(&sb, "  row %-4d %-20s %s → %s\n", ch.Row, ch.Column, red.Sprint(quote(ch.Before)), green.Sprint(quote(ch.After)))
	}
	if len(shown) < len(changes) {
		sb.WriteString(color.New(color.Faint).Sprintf("  … %d more changes", len(changes)-len(shown)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func quote(s string) string {
	if s == "" {
		return "∅"
	}
	return s
}

// 📊 Stats renders the change statistics of the last apply
func Stats(stats *dataset.Stats) string {
	if stats == nil {
		return color.New(color.Faint).Sprint("no changes recorded")
	}
	bold := color.New(color.Bold)
	return fmt.Sprintf("%s rows, %s cells updated", bold.Sprint(stats.UpdatedRows), bold.Sprint(stats.UpdatedCells))
}

// 📋 Summary renders the session metadata shown above the grid
func Summary(snap session.Snapshot) (string, error) {
	file := snap.Filename
	if file == "" {
		file = "-"
	}
	pattern := snap.Pattern
	if pattern == "" {
		pattern = "-"
	}

	data := pterm.TableData{
		{"file", file},
		{"shape", fmt.Sprintf("%d columns × %d rows", len(snap.Columns), len(snap.Rows))},
		{"pattern", pattern},
	}
	if snap.Explanation != "" {
		data = append(data, []string{"explanation", snap.Explanation})
	}
	data = append(data,
		[]string{"stats", Stats(snap.Stats)},
		[]string{"status", StatusLine(snap.Status)},
	)

	out, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary: %w", err)
	}
	return out + "\n", nil
}

// StatusLine colours a request status for display
func StatusLine(st session.Status) string {
	switch {
	case st.IsError():
		return color.New(color.FgRed).Sprint("error: " + st.Message)
	case st.IsLoading():
		return color.New(color.FgYellow).Sprint("loading")
	default:
		return color.New(color.FgGreen).Sprint("idle")
	}
}
