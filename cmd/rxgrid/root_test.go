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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rxgrid/cmd/rxgrid/commands"
	"github.com/walteh/rxgrid/pkg/dataset"
	"github.com/walteh/rxgrid/pkg/ingest"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/remote/remotetest"
	"github.com/walteh/rxgrid/pkg/session"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

type harness struct {
	t       *testing.T
	dir     string
	session string
	srv     *remotetest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contacts.csv"), []byte("name,email\nAda,ada@example.com\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.UploadPath, http.StatusOK, map[string]any{
		"filename": "contacts.csv",
		"headers":  []string{"name", "email"},
		"data":     [][]any{{"Ada", "ada@example.com"}, {"Bob", nil}},
	})

	return &harness{t: t, dir: dir, session: filepath.Join(dir, "session.json"), srv: srv}
}

// run executes one cli invocation as a fresh process would
func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--session", h.session, "--server", h.srv.URL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) snapshot() session.Snapshot {
	st, err := session.Open(context.Background(), h.session)
	require.NoError(h.t, err)
	return st.Snapshot()
}

func TestUploadApplyShow(t *testing.T) {
	h := newHarness(t)
	h.srv.ReplyJSON(remote.TransformPath, http.StatusOK, map[string]any{
		"pattern":     ` [\w.]+@[\w.]+ `,
		"explanation": "email addresses",
		"headers":     []string{"name", "email"},
		"data":        [][]any{{"Ada", "REDACTED"}, {"Bob", nil}},
		"stats":       map[string]int{"updated_rows": 1, "updated_cells": 1},
	})

	out, err := h.run("upload", "contacts.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ contacts.csv")
	assert.Contains(t, out, "ada@example.com")
	assert.FileExists(t, h.session)

	out, err = h.run("apply", "--columns", "email", "Find", "email", "addresses")
	require.NoError(t, err)
	assert.Contains(t, out, `pattern: [\w.]+@[\w.]+`)
	assert.Contains(t, out, "ada@example.com → REDACTED")
	assert.Contains(t, out, "1 rows, 1 cells updated")

	reqs := h.srv.Requests(remote.TransformPath)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Find email addresses", reqs[0].JSON["natural_language"])
	assert.Equal(t, "REDACTED", reqs[0].JSON["replacement"])
	assert.Equal(t, []any{"email"}, reqs[0].JSON["columns"])

	uploads := h.srv.Requests(remote.UploadPath)
	require.Len(t, uploads, 1)
	assert.NotEmpty(t, uploads[0].Header.Get("X-Session-Id"))
	assert.Equal(t, uploads[0].Header.Get("X-Session-Id"), reqs[0].Header.Get("X-Session-Id"), "session id survives between invocations")

	out, err = h.run("show")
	require.NoError(t, err)
	assert.Contains(t, out, "contacts.csv")
	assert.Contains(t, out, "email addresses")
	assert.Contains(t, out, "REDACTED")

	snap := h.snapshot()
	assert.True(t, snap.Status.IsIdle())
	assert.Equal(t, [][]dataset.Cell{{"Ada", "REDACTED"}, {"Bob", nil}}, snap.Rows)
}

func TestApplyFlagsOverrideConfig(t *testing.T) {
	h := newHarness(t)
	h.srv.ReplyJSON(remote.TransformPath, http.StatusOK, map[string]any{"pattern": "x"})
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, ".rxgrid.yaml"), []byte(`
transform:
  replacement: "[hidden]"
  normalize_phone: true
`), 0o644))

	_, err := h.run("upload", "contacts.csv")
	require.NoError(t, err)

	tests := []struct {
		name        string
		args        []string
		replacement string
		phone       bool
		date        bool
	}{
		{name: "config_defaults", args: nil, replacement: "[hidden]", phone: true},
		{name: "flags_win", args: []string{"--replacement", "***", "--phone=false", "--date"}, replacement: "***", date: true},
		{name: "empty_replacement_deletes", args: []string{"--replacement", ""}, replacement: "", phone: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(append([]string{"apply"}, append(tt.args, "digits")...)...)
			require.NoError(t, err)

			reqs := h.srv.Requests(remote.TransformPath)
			require.Len(t, reqs, i+1)
			body := reqs[i].JSON
			assert.Equal(t, tt.replacement, body["replacement"])
			assert.Equal(t, tt.phone, body["apply_phone_normalization"])
			assert.Equal(t, tt.date, body["apply_date_normalization"])
		})
	}
}

func TestPreviewCommand(t *testing.T) {
	h := newHarness(t)
	h.srv.ReplyJSON(remote.PreviewPath, http.StatusOK, map[string]any{"pattern": ` \d{3}-\d{4} `, "explanation": "local phone numbers"})

	out, err := h.run("preview", "phone", "numbers")
	require.NoError(t, err)
	assert.Contains(t, out, `pattern: \d{3}-\d{4}`)
	assert.Contains(t, out, "explanation: local phone numbers")

	snap := h.snapshot()
	assert.Equal(t, `\d{3}-\d{4}`, snap.Pattern)
	assert.False(t, snap.HasFile(), "preview does not need a file")
}

func TestUploadUnsupportedFile(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("upload", "notes.txt")
	require.Error(t, err)

	var verr *ingest.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, out, "✗")
	assert.Zero(t, h.srv.Count(remote.UploadPath))

	snap := h.snapshot()
	assert.True(t, snap.Status.IsError())
	assert.Contains(t, snap.Status.Message, ".csv, .xlsx, .xls")
}

func TestApplyWithoutUpload(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("apply", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, transform.ErrNoDataset)
	assert.Zero(t, h.srv.Count(remote.TransformPath))
	assert.NotContains(t, out, "✓", "a refused apply is not reported as an operation")
}

func TestApplyUnknownColumn(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("upload", "contacts.csv")
	require.NoError(t, err)

	_, err = h.run("apply", "--columns", "emial", "emails")
	require.Error(t, err)

	var cerr *transform.ColumnError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "email", cerr.Suggestion)
	assert.Zero(t, h.srv.Count(remote.TransformPath))
	assert.True(t, h.snapshot().Status.IsError())
}

func TestBackendErrorIsPersisted(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(remote.TransformPath, remotetest.Reply{Status: http.StatusInternalServerError, Body: "LLM timeout"})

	_, err := h.run("upload", "contacts.csv")
	require.NoError(t, err)

	out, err := h.run("apply", "emails")
	require.Error(t, err)
	assert.Contains(t, out, "LLM timeout")

	snap := h.snapshot()
	assert.Equal(t, session.Failed("LLM timeout"), snap.Status)
	assert.Equal(t, [][]dataset.Cell{{"Ada", "ada@example.com"}, {"Bob", nil}}, snap.Rows, "dataset untouched")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)
}

func TestInvalidServerFlag(t *testing.T) {
	h := newHarness(t)

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--session", h.session, "--server", "ftp://nowhere", "show"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating flags")
}

func TestTUIRequiresTerminal(t *testing.T) {
	h := newHarness(t)

	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	stdin := os.Stdin
	os.Stdin = devNull
	t.Cleanup(func() {
		os.Stdin = stdin
		devNull.Close()
	})

	_, err = h.run("tui")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNoTerminal)
}
