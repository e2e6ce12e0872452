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

// Package tui is the interactive grid: pick a file, describe a pattern,
// preview it and apply it while watching the rows change.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/walteh/rxgrid/pkg/ingest"
	"github.com/walteh/rxgrid/pkg/session"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// focus is the widget receiving keys
type focus int

const (
	focusFiles focus = iota
	focusPrompt
	focusReplacement
	focusColumns
	focusCount
)

// ⚙️ Options seed the form
type Options struct {
	// Dir is scanned for files to upload
	Dir            string
	Replacement    string
	NormalizePhone bool
	NormalizeDate  bool
	MaxRows        int
}

// doneMsg reports that a coordinator call returned
type doneMsg struct {
	op  string
	err error
}

// 🖥️ Model is the bubbletea model of the interactive grid
type Model struct {
	ctx       context.Context
	store     *session.Store
	ingest    *ingest.Coordinator
	transform *transform.Coordinator
	opts      Options

	focus       focus
	files       filePicker
	prompt      textinput.Model
	replacement textinput.Model
	columns     textinput.Model
	phone       bool
	date        bool

	grid    table.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// pending is set from dispatch until the doneMsg arrives
	pending bool
	notice  string
	width   int
	height  int
}

// 🏭 New creates the model; the file list is loaded by Init
func New(ctx context.Context, store *session.Store, ing *ingest.Coordinator, tr *transform.Coordinator, opts Options) Model {
	if opts.Dir == "" {
		opts.Dir = "."
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	prompt := textinput.New()
	prompt.Placeholder = "Describe what to find, e.g. email addresses"
	prompt.CharLimit = 500
	prompt.Width = 60

	replacement := textinput.New()
	replacement.Placeholder = "replacement"
	replacement.SetValue(opts.Replacement)
	replacement.Width = 30

	columns := textinput.New()
	columns.Placeholder = "all columns (comma separated, globs allowed)"
	columns.Width = 40

	m := Model{
		ctx:         ctx,
		store:       store,
		ingest:      ing,
		transform:   tr,
		opts:        opts,
		files:       newFilePicker(opts.Dir, 40, 8),
		prompt:      prompt,
		replacement: replacement,
		columns:     columns,
		phone:       opts.NormalizePhone,
		date:        opts.NormalizeDate,
		grid:        newGrid(10),
		spinner:     s,
		help:        help.New(),
		keys:        defaultKeys(),
	}
	syncGrid(&m.grid, store.Snapshot(), opts.MaxRows)
	return m
}

// Init scans the directory for files
func (m Model) Init() tea.Cmd {
	return m.scanFiles
}

type filesMsg struct{ picker filePicker }

func (m Model) scanFiles() tea.Msg {
	fp := m.files
	if err := fp.load(); err != nil {
		return doneMsg{op: "scan", err: errors.Errorf("scanning %s: %w", m.opts.Dir, err)}
	}
	return filesMsg{picker: fp}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.files.setSize(min(msg.Width/3, 50), max(msg.Height/3, 5))
		m.grid.SetWidth(msg.Width - 4)
		m.grid.SetHeight(max(msg.Height-22, 5))
		m.help.Width = msg.Width
		return m, nil

	case filesMsg:
		m.files = msg.picker
		return m, nil

	case doneMsg:
		m.pending = false
		if msg.err != nil {
			zerolog.Ctx(m.ctx).Debug().Err(msg.err).Str("op", msg.op).Msg("operation returned an error")
			if msg.op == "scan" {
				m.notice = msg.err.Error()
			}
		}
		syncGrid(&m.grid, m.store.Snapshot(), m.opts.MaxRows)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusFiles && m.files.filtering() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Phone):
		m.phone = !m.phone
		return m, nil
	case key.Matches(msg, m.keys.Date):
		m.date = !m.date
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.scanFiles
	case key.Matches(msg, m.keys.Preview):
		return m.submitPreview()
	case key.Matches(msg, m.keys.Apply):
		return m.submitApply()
	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusFiles {
			return m.submitUpload()
		}
		return m.submitApply()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFiles:
		m.files, cmd = m.files.update(msg)
	case focusPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case focusReplacement:
		m.replacement, cmd = m.replacement.Update(msg)
	case focusColumns:
		m.columns, cmd = m.columns.Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.prompt.Blur()
	m.replacement.Blur()
	m.columns.Blur()

	switch f {
	case focusPrompt:
		return m, m.prompt.Focus()
	case focusReplacement:
		return m, m.replacement.Focus()
	case focusColumns:
		return m, m.columns.Focus()
	}
	return m, nil
}

// busy reports whether a request is in flight
func (m Model) busy() bool {
	return m.pending || m.store.Snapshot().Status.IsLoading()
}

// CanApply reports whether the apply control is enabled
func (m Model) CanApply() bool {
	return !m.pending && m.transform.Ready(m.prompt.Value()) == nil
}

// CanPreview reports whether the preview control is enabled
func (m Model) CanPreview() bool {
	return !m.busy() && strings.TrimSpace(m.prompt.Value()) != ""
}

// CanUpload reports whether a file may be uploaded now
func (m Model) CanUpload() bool {
	return !m.busy()
}

func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	if !m.CanUpload() {
		return m, nil
	}
	path, ok := m.files.selected()
	if !ok {
		m.notice = "no file selected"
		return m, nil
	}

	m.pending = true
	m.notice = ""
	ctx, ing := m.ctx, m.ingest
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{op: "upload", err: ing.IngestPath(ctx, path)}
	})
}

func (m Model) submitPreview() (tea.Model, tea.Cmd) {
	if !m.CanPreview() {
		m.notice = "describe a pattern to preview"
		return m, nil
	}

	m.pending = true
	m.notice = ""
	ctx, tr, description := m.ctx, m.transform, m.prompt.Value()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{op: "preview", err: tr.Preview(ctx, description)}
	})
}

func (m Model) submitApply() (tea.Model, tea.Cmd) {
	if !m.CanApply() {
		m.notice = m.applyHint()
		return m, nil
	}

	replacement := m.replacement.Value()
	opts := transform.Options{
		Replacement:    &replacement,
		Columns:        transform.ParseColumns(m.columns.Value()),
		NormalizePhone: m.phone,
		NormalizeDate:  m.date,
	}

	m.pending = true
	m.notice = ""
	ctx, tr, prompt := m.ctx, m.transform, m.prompt.Value()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{op: "apply", err: tr.Apply(ctx, prompt, opts)}
	})
}

// applyHint explains a disabled apply control
func (m Model) applyHint() string {
	if m.pending {
		return "a request is in progress"
	}
	err := m.transform.Ready(m.prompt.Value())
	switch {
	case errors.Is(err, transform.ErrNoDataset):
		return "upload a file first"
	case errors.Is(err, transform.ErrBlankPrompt):
		return "describe what to find"
	case errors.Is(err, transform.ErrBusy):
		return "a request is in progress"
	}
	return ""
}

func (m Model) View() string {
	snap := m.store.Snapshot()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("rxgrid"))
	if snap.HasFile() {
		sb.WriteString(labelStyle.Render("  • " + snap.Filename))
	}
	sb.WriteString("\n\n")

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.label(focusPrompt, "prompt")+m.prompt.View(),
		m.label(focusReplacement, "replace with")+m.replacement.View(),
		m.label(focusColumns, "columns")+m.columns.View(),
		checkbox("phone normalization", m.phone)+"  "+checkbox("date normalization", m.date),
		"",
		resultView(snap),
	)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(m.files.view()),
		" ",
		boxStyle.Render(form),
	))
	sb.WriteString("\n")

	switch {
	case m.busy():
		sb.WriteString(m.spinner.View() + " working…")
	case snap.Status.IsError():
		sb.WriteString(errorStyle.Render("✗ " + snap.Status.Message))
	case m.notice != "":
		sb.WriteString(labelStyle.Render(m.notice))
	}
	sb.WriteString("\n")

	if snap.HasFile() || len(snap.Columns) > 0 {
		sb.WriteString(m.grid.View())
	} else {
		sb.WriteString(labelStyle.Render("no data loaded"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) label(f focus, text string) string {
	style := labelStyle
	if m.focus == f {
		style = activeStyle
	}
	return style.Width(14).Render(text)
}
