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

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rxgrid/pkg/dataset"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/remote/remotetest"
)

func testContext() context.Context {
	return zerolog.New(os.Stderr).Level(zerolog.DebugLevel).WithContext(context.Background())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		wantErr     bool
		errContains string
	}{
		{name: "http", baseURL: "http://localhost:8000"},
		{name: "https_trailing_slash", baseURL: "https://example.com/"},
		{name: "bad_scheme", baseURL: "ftp://example.com", wantErr: true, errContains: "must be http or https"},
		{name: "no_host", baseURL: "http://", wantErr: true, errContains: "no host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(c.BaseURL(), "/"), "base url should be trimmed")
		})
	}
}

func TestRegisteredSchemes(t *testing.T) {
	b, err := remote.Open(context.Background(), "http://localhost:8000")
	require.NoError(t, err)
	assert.IsType(t, &Client{}, b)
}

func TestOpenCarriesSession(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.PreviewPath, http.StatusOK, map[string]any{"pattern": "x"})

	ctx := remote.ContextWithSession(testContext(), "sess-from-ctx")
	b, err := remote.Open(ctx, srv.URL)
	require.NoError(t, err)

	_, err = b.Preview(ctx, remote.PreviewRequest{NaturalLanguage: "x"})
	require.NoError(t, err)

	reqs := srv.Requests(remote.PreviewPath)
	require.Len(t, reqs, 1)
	assert.Equal(t, "sess-from-ctx", reqs[0].Header.Get(SessionIDHeader))
}

func TestUpload(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.UploadPath, http.StatusOK, map[string]any{
		"filename": "data.csv",
		"headers":  []string{"email", "phone"},
		"data":     [][]any{{"a@x.com", 411111111}},
	})

	c, err := New(srv.URL, WithSessionID("sess-1"))
	require.NoError(t, err)

	resp, err := c.Upload(testContext(), remote.File{Name: "data.csv", Content: strings.NewReader("email,phone\n")})
	require.NoError(t, err)
	require.NotNil(t, resp.Filename)
	assert.Equal(t, "data.csv", *resp.Filename)
	assert.Equal(t, []string{"email", "phone"}, resp.Headers)
	assert.Equal(t, [][]dataset.Cell{{"a@x.com", json.Number("411111111")}}, resp.Data, "numbers should keep their text")

	reqs := srv.Requests(remote.UploadPath)
	require.Len(t, reqs, 1)
	assert.Equal(t, "data.csv", reqs[0].Filename)
	assert.Equal(t, "email,phone\n", string(reqs[0].FileContent))
	assert.Equal(t, "sess-1", reqs[0].Header.Get(SessionIDHeader))
	assert.NotEmpty(t, reqs[0].Header.Get(RequestIDHeader))
}

func TestTransformSendsRicherForm(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.TransformPath, http.StatusOK, map[string]any{
		"pattern": `[\w.]+@[\w.]+`,
		"headers": []string{"email"},
		"data":    [][]any{{"REDACTED"}},
		"stats":   map[string]any{"updated_rows": 1, "updated_cells": 1},
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Transform(testContext(), remote.TransformRequest{
		NaturalLanguage:         "Find email addresses",
		Prompt:                  "Find email addresses",
		Replacement:             "REDACTED",
		Columns:                 []string{"email"},
		ApplyPhoneNormalization: true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 1, *resp.Stats.UpdatedRows)

	reqs := srv.Requests(remote.TransformPath)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Find email addresses", reqs[0].JSON["natural_language"])
	assert.Equal(t, "Find email addresses", reqs[0].JSON["prompt"])
	assert.Equal(t, "REDACTED", reqs[0].JSON["replacement"])
	assert.Equal(t, []any{"email"}, reqs[0].JSON["columns"])
	assert.Equal(t, true, reqs[0].JSON["apply_phone_normalization"])
	assert.Equal(t, false, reqs[0].JSON["apply_date_normalization"])
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestPreview(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.ReplyJSON(remote.PreviewPath, http.StatusOK, map[string]any{
		"pattern":     `\b\d{4}\b`,
		"explanation": "4-digit Australian postcodes",
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Preview(testContext(), remote.PreviewRequest{NaturalLanguage: "postcode"})
	require.NoError(t, err)
	assert.Equal(t, remote.PreviewResult{Pattern: `\b\d{4}\b`, Explanation: "4-digit Australian postcodes"}, resp.Result())
	assert.Equal(t, "postcode", srv.Requests(remote.PreviewPath)[0].JSON["natural_language"])
}

func TestFailureSurfacesBody(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Reply(remote.TransformPath, remotetest.Reply{Status: http.StatusInternalServerError, Body: "LLM timeout"})

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Transform(testContext(), remote.TransformRequest{NaturalLanguage: "x"})
	require.Error(t, err)

	var reqErr *remote.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "LLM timeout", reqErr.Message)
	assert.Equal(t, remote.TransformPath, reqErr.Endpoint)
}

func TestMalformedSuccessBodyDegrades(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Reply(remote.UploadPath, remotetest.Reply{Status: http.StatusOK, Body: `{"headers": "not-a-list"}`})
	srv.Reply(remote.PreviewPath, remotetest.Reply{Status: http.StatusOK, Body: ""})

	c, err := New(srv.URL)
	require.NoError(t, err)

	up, err := c.Upload(testContext(), remote.File{Name: "a.csv", Content: strings.NewReader("a")})
	require.NoError(t, err, "malformed success body should not fail")
	assert.Nil(t, up.Headers)

	pv, err := c.Preview(testContext(), remote.PreviewRequest{NaturalLanguage: "x"})
	require.NoError(t, err, "empty success body should not fail")
	assert.Nil(t, pv.Pattern)
}

func TestTransportError(t *testing.T) {
	srv := remotetest.NewServer(t)
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)

	_, err = c.Upload(testContext(), remote.File{Name: "a.csv", Content: strings.NewReader("a")})
	require.Error(t, err)

	var reqErr *remote.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 0, reqErr.StatusCode)
	assert.True(t, strings.HasPrefix(reqErr.Message, "upload failed: "), "message should carry the fallback prefix")
}

func TestContextCancellation(t *testing.T) {
	srv := remotetest.NewServer(t)
	release := make(chan struct{})
	defer close(release)
	srv.Reply(remote.PreviewPath, remotetest.Reply{Status: http.StatusOK, JSON: map[string]any{}, Wait: release})

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(testContext(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Preview(ctx, remote.PreviewRequest{NaturalLanguage: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
