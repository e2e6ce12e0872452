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

package ingest

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rxgrid/gen/mockery"
	"github.com/walteh/rxgrid/pkg/dataset"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/remote/httpapi"
	"github.com/walteh/rxgrid/pkg/remote/remotetest"
	"github.com/walteh/rxgrid/pkg/session"
	"gitlab.com/tozd/go/errors"
)

func testContext() context.Context {
	return zerolog.New(os.Stderr).Level(zerolog.DebugLevel).WithContext(context.Background())
}

func ptr[T any](v T) *T { return &v }

// seeded returns a store that already holds a dataset and derived state
func seeded() *session.Store {
	st := session.New()
	st.Batch(func(w session.Writer) {
		w.ReplaceDataset([]string{"name"}, [][]dataset.Cell{{"ada"}})
		w.SetFilename("old.csv")
		w.SetPattern(`a+`)
		w.SetExplanation("runs of a")
		w.SetStats(&dataset.Stats{UpdatedRows: 1, UpdatedCells: 1})
	})
	return st
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{name: "csv", file: "contacts.csv"},
		{name: "xlsx", file: "book.xlsx"},
		{name: "xls", file: "legacy.xls"},
		{name: "upper case", file: "REPORT.CSV"},
		{name: "mixed case", file: "Report.XlSx"},
		{name: "pdf", file: "report.pdf", wantErr: true},
		{name: "no extension", file: "README", wantErr: true},
		{name: "extension in the middle", file: "data.csv.bak", wantErr: true},
		{name: "empty", file: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error should be a ValidationError")
			for _, ext := range AllowedExtensions {
				assert.Contains(t, err.Error(), ext, "message should name allowed extensions")
			}
		})
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, mockery.NewMockBackend_remote(t))
	assert.Error(t, err)
	_, err = New(session.New(), nil)
	assert.Error(t, err)
}

func TestIngestRejectsUnsupportedFile(t *testing.T) {
	st := seeded()
	before := st.Snapshot()

	// no expectations: any backend call fails the test
	backend := mockery.NewMockBackend_remote(t)
	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.Ingest(testContext(), remote.File{Name: "report.pdf", Content: strings.NewReader("%PDF")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "report.pdf", verr.Filename)

	after := st.Snapshot()
	assert.Equal(t, before.Dataset(), after.Dataset(), "dataset should be untouched")
	assert.Equal(t, "old.csv", after.Filename)
	assert.Equal(t, `a+`, after.Pattern)
	assert.Equal(t, before.Stats, after.Stats)
	require.True(t, after.Status.IsError(), "status should be error")
	assert.Contains(t, after.Status.Message, ".csv")
}

func TestIngestRejectionKeepsRequestInFlight(t *testing.T) {
	st := seeded()
	tk := st.Begin()

	backend := mockery.NewMockBackend_remote(t)
	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.Ingest(testContext(), remote.File{Name: "notes.txt", Content: strings.NewReader("hi")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	assert.True(t, st.Snapshot().Status.IsLoading(), "the request in flight keeps its loading status")
	assert.True(t, st.Current(tk))
}

func TestIngestSuccess(t *testing.T) {
	tests := []struct {
		name         string
		resp         *remote.UploadResponse
		wantColumns  []string
		wantRows     [][]dataset.Cell
		wantFilename string
	}{
		{
			name: "headers and filename",
			resp: &remote.UploadResponse{
				Filename: ptr("contacts.csv"),
				Headers:  []string{"name", "email"},
				Data:     [][]dataset.Cell{{"ann", "a@x.com"}, {"bob", "b@y.org"}},
			},
			wantColumns:  []string{"name", "email"},
			wantRows:     [][]dataset.Cell{{"ann", "a@x.com"}, {"bob", "b@y.org"}},
			wantFilename: "contacts.csv",
		},
		{
			name: "columns used when headers absent",
			resp: &remote.UploadResponse{
				Columns: []string{"a", "b"},
				Data:    [][]dataset.Cell{{"1", "2"}},
			},
			wantColumns:  []string{"a", "b"},
			wantRows:     [][]dataset.Cell{{"1", "2"}},
			wantFilename: "local.csv",
		},
		{
			name:         "empty response",
			resp:         &remote.UploadResponse{},
			wantColumns:  []string{},
			wantRows:     [][]dataset.Cell{},
			wantFilename: "local.csv",
		},
		{
			name:         "nil response",
			resp:         nil,
			wantColumns:  []string{},
			wantRows:     [][]dataset.Cell{},
			wantFilename: "local.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seeded()
			backend := mockery.NewMockBackend_remote(t)
			backend.EXPECT().Upload(mock.Anything, mock.MatchedBy(func(f remote.File) bool {
				return f.Name == "local.csv"
			})).Return(tt.resp, nil).Once()

			c, err := New(st, backend)
			require.NoError(t, err)

			require.NoError(t, c.Ingest(testContext(), remote.File{Name: "local.csv", Content: strings.NewReader("x")}))

			snap := st.Snapshot()
			assert.Equal(t, tt.wantColumns, snap.Columns)
			assert.Equal(t, tt.wantRows, snap.Rows)
			assert.Equal(t, tt.wantFilename, snap.Filename)
			assert.Empty(t, snap.Pattern, "pattern should be reset")
			assert.Empty(t, snap.Explanation, "explanation should be reset")
			assert.Nil(t, snap.Stats, "stats should be reset")
			assert.True(t, snap.Status.IsIdle(), "status should be idle")
		})
	}
}

func TestIngestFailureKeepsDataset(t *testing.T) {
	st := seeded()
	before := st.Snapshot()

	backend := mockery.NewMockBackend_remote(t)
	backend.EXPECT().Upload(mock.Anything, mock.Anything).
		Return(nil, remote.NewStatusError(remote.UploadPath, http.StatusBadRequest, []byte("could not parse sheet"))).Once()

	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.Ingest(testContext(), remote.File{Name: "broken.xlsx", Content: strings.NewReader("")})
	var rerr *remote.RequestError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadRequest, rerr.StatusCode)

	after := st.Snapshot()
	assert.Equal(t, before.Dataset(), after.Dataset())
	assert.Equal(t, before.Filename, after.Filename)
	assert.Equal(t, before.Pattern, after.Pattern)
	assert.Equal(t, before.Stats, after.Stats)
	assert.Equal(t, session.Failed("could not parse sheet"), after.Status)
}

func TestIngestSupersededResponseIsDropped(t *testing.T) {
	st := seeded()

	backend := mockery.NewMockBackend_remote(t)
	backend.EXPECT().Upload(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, file remote.File) {
			// a newer request starts while this upload is in flight
			st.Begin()
		}).
		Return(&remote.UploadResponse{Headers: []string{"late"}}, nil).Once()

	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.Ingest(testContext(), remote.File{Name: "slow.csv", Content: strings.NewReader("")})
	assert.ErrorIs(t, err, session.ErrSuperseded)

	snap := st.Snapshot()
	assert.Equal(t, []string{"name"}, snap.Columns, "stale response should not replace the dataset")
	assert.Equal(t, "old.csv", snap.Filename)
	assert.True(t, snap.Status.IsLoading(), "newer request still owns the status")
}

func TestIngestPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("email\na@x.com\n"), 0o644))

	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.UploadPath, http.StatusOK, map[string]any{
		"headers": []string{"email"},
		"data":    [][]any{{"a@x.com"}},
	})

	backend, err := httpapi.New(srv.URL)
	require.NoError(t, err)

	st := session.New()
	c, err := New(st, backend)
	require.NoError(t, err)

	require.NoError(t, c.IngestPath(testContext(), path))

	reqs := srv.Requests(remote.UploadPath)
	require.Len(t, reqs, 1)
	assert.Equal(t, "contacts.csv", reqs[0].Filename)
	assert.Equal(t, "email\na@x.com\n", string(reqs[0].FileContent))

	snap := st.Snapshot()
	assert.Equal(t, "contacts.csv", snap.Filename)
	assert.Equal(t, []string{"email"}, snap.Columns)
	assert.Equal(t, [][]dataset.Cell{{"a@x.com"}}, snap.Rows)
}

func TestIngestPathValidatesBeforeOpening(t *testing.T) {
	srv := remotetest.NewServer(t)
	backend, err := httpapi.New(srv.URL)
	require.NoError(t, err)

	st := session.New()
	c, err := New(st, backend)
	require.NoError(t, err)

	// the file does not exist; the extension check must fail first
	err = c.IngestPath(testContext(), filepath.Join(t.TempDir(), "notes.txt"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, srv.Count(remote.UploadPath), "no request should be made")
	assert.True(t, st.Snapshot().Status.IsError())
}

func TestIngestPathMissingFile(t *testing.T) {
	backend := mockery.NewMockBackend_remote(t)
	st := session.New()
	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.IngestPath(testContext(), filepath.Join(t.TempDir(), "gone.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, st.Snapshot().Status.IsError())
}

func TestIngestServerErrorScenario(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Reply(remote.UploadPath, remotetest.Reply{Status: http.StatusInternalServerError})

	backend, err := httpapi.New(srv.URL)
	require.NoError(t, err)

	st := session.New()
	c, err := New(st, backend)
	require.NoError(t, err)

	err = c.Ingest(testContext(), remote.File{Name: "a.csv", Content: strings.NewReader("x")})
	require.Error(t, err)

	snap := st.Snapshot()
	assert.Equal(t, session.Failed("upload failed"), snap.Status, "empty body should fall back to a generic message")
	assert.False(t, snap.HasFile())
}
