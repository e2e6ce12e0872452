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

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/walteh/rxgrid/pkg/dataset"
	"github.com/walteh/rxgrid/pkg/render"
	"github.com/walteh/rxgrid/pkg/session"
)

var (
	accent = lipgloss.Color("205")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

const (
	minColumnWidth = 6
	maxColumnWidth = 28
)

// gridColumns sizes each column to its widest shown cell within bounds
func gridColumns(ds dataset.Dataset, rows [][]dataset.Cell) []table.Column {
	cols := make([]table.Column, len(ds.Columns))
	for i, name := range ds.Columns {
		w := lipgloss.Width(name)
		for _, row := range rows {
			if i < len(row) {
				w = max(w, lipgloss.Width(dataset.CellString(row[i])))
			}
		}
		cols[i] = table.Column{Title: name, Width: min(max(w, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

// gridRows converts the first maxRows rows to table rows
func gridRows(ds dataset.Dataset, maxRows int) [][]dataset.Cell {
	rows := ds.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func newGrid(height int) table.Model {
	t := table.New(table.WithFocused(false), table.WithHeight(height), table.WithWidth(100))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true)
	t.SetStyles(styles)
	return t
}

// syncGrid loads the snapshot dataset into the table
func syncGrid(t *table.Model, snap session.Snapshot, maxRows int) {
	ds := snap.Dataset()
	rows := gridRows(ds, maxRows)

	trows := make([]table.Row, len(rows))
	for r, row := range rows {
		cells := make(table.Row, len(ds.Columns))
		for i := range ds.Columns {
			if i < len(row) {
				cells[i] = dataset.CellString(row[i])
			}
		}
		trows[r] = cells
	}

	// rows must be cleared before columns shrink or the table indexes past them
	t.SetRows(nil)
	t.SetColumns(gridColumns(ds, rows))
	t.SetRows(trows)
}

func checkbox(label string, on bool) string {
	if on {
		return activeStyle.Render("[x] " + label)
	}
	return labelStyle.Render("[ ] " + label)
}

func resultView(snap session.Snapshot) string {
	var sb strings.Builder
	pattern := snap.Pattern
	if pattern == "" {
		pattern = "-"
	}
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("pattern:"), pattern)
	if snap.Explanation != "" {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("explanation:"), snap.Explanation)
	}
	fmt.Fprintf(&sb, "%s %s", labelStyle.Render("stats:"), render.Stats(snap.Stats))
	return sb.String()
}
