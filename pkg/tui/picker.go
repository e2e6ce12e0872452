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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/walteh/rxgrid/pkg/ingest"
)

// fileItem implements list.Item for the file picker
type fileItem struct {
	path      string
	relPath   string
	supported bool
}

func (i fileItem) Title() string {
	prefix := "📄"
	if !i.supported {
		prefix = "  "
	}
	return prefix + " " + i.relPath
}

func (i fileItem) Description() string { return i.path }
func (i fileItem) FilterValue() string { return i.relPath }

// filePicker is the click-to-browse list of local files
type filePicker struct {
	list    list.Model
	workDir string
}

func newFilePicker(workDir string, width, height int) filePicker {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(accent).
		BorderForeground(accent)

	l := list.New([]list.Item{}, delegate, width, height)
	l.Title = "Files"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(accent).Bold(true)

	return filePicker{list: l, workDir: workDir}
}

// load scans the working directory. Spreadsheets come first and any other
// file follows; picking one of those reports the validation error.
func (fp *filePicker) load() error {
	var items []fileItem

	err := filepath.WalkDir(fp.workDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != fp.workDir && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(fp.workDir, path)
		if err != nil {
			return nil
		}

		items = append(items, fileItem{
			path:      path,
			relPath:   rel,
			supported: ingest.Validate(name) == nil,
		})
		return nil
	})
	if err != nil {
		return err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].supported != items[j].supported {
			return items[i].supported
		}
		return items[i].relPath < items[j].relPath
	})

	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	fp.list.SetItems(listItems)
	return nil
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
}

func (fp filePicker) update(msg tea.Msg) (filePicker, tea.Cmd) {
	var cmd tea.Cmd
	fp.list, cmd = fp.list.Update(msg)
	return fp, cmd
}

func (fp filePicker) view() string {
	return fp.list.View()
}

// selected returns the path of the highlighted file
func (fp filePicker) selected() (string, bool) {
	item, ok := fp.list.SelectedItem().(fileItem)
	if !ok {
		return "", false
	}
	return item.path, true
}

func (fp filePicker) filtering() bool {
	return fp.list.FilterState() == list.Filtering
}

func (fp *filePicker) setSize(width, height int) {
	fp.list.SetSize(width, height)
}
