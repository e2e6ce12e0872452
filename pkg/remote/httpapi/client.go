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

// Package httpapi talks to the transform backend over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/rxgrid/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

const (
	RequestIDHeader = "X-Request-Id"
	SessionIDHeader = "X-Session-Id"
)

func init() {
	remote.Register("http", factory)
	remote.Register("https", factory)
}

func factory(ctx context.Context, baseURL *url.URL) (remote.Backend, error) {
	return New(baseURL.String(), WithSessionID(remote.SessionFromContext(ctx)))
}

// 🎯 Client implements remote.Backend against a base URL
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	sessionID string
}

var _ remote.Backend = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient swaps the underlying http client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSessionID tags every request with the session id
func WithSessionID(id string) Option {
	return func(c *Client) {
		c.sessionID = id
	}
}

// 🏭 New creates a client for baseURL (e.g. http://localhost:8000).
// No client side timeout is set; callers bound requests through the context.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("base url must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, errors.Errorf("base url has no host: %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base url
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// 📤 Upload posts the file as multipart form field "file"
func (c *Client) Upload(ctx context.Context, file remote.File) (*remote.UploadResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, remote.NewTransportError(remote.UploadPath, errors.Errorf("creating form file: %w", err))
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, remote.NewTransportError(remote.UploadPath, errors.Errorf("reading file content: %w", err))
		}
	}
	if err := mw.Close(); err != nil {
		return nil, remote.NewTransportError(remote.UploadPath, errors.Errorf("closing multipart body: %w", err))
	}

	req, err := c.newRequest(ctx, remote.UploadPath, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out remote.UploadResponse
	if err := c.do(req, remote.UploadPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// 🔍 Preview asks the backend to derive a pattern without applying it
func (c *Client) Preview(ctx context.Context, in remote.PreviewRequest) (*remote.PreviewResponse, error) {
	var out remote.PreviewResponse
	if err := c.postJSON(ctx, remote.PreviewPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// 🔧 Transform derives a pattern and applies it across the dataset
func (c *Client) Transform(ctx context.Context, in remote.TransformRequest) (*remote.TransformResponse, error) {
	var out remote.TransformResponse
	if err := c.postJSON(ctx, remote.TransformPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return remote.NewTransportError(endpoint, errors.Errorf("encoding request: %w", err))
	}

	req, err := c.newRequest(ctx, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, endpoint, out)
}

func (c *Client) newRequest(ctx context.Context, endpoint string, body io.Reader) (*http.Request, error) {
	target := c.baseURL.JoinPath(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), body)
	if err != nil {
		return nil, remote.NewTransportError(endpoint, errors.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.sessionID != "" {
		req.Header.Set(SessionIDHeader, c.sessionID)
	}
	return req, nil
}

// do sends req and decodes a success body into out. A success body that is
// not valid JSON leaves out at its zero value.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	logger := zerolog.Ctx(req.Context()).With().
		Str("endpoint", endpoint).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("request failed before a response")
		return remote.NewTransportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return remote.NewTransportError(endpoint, errors.Errorf("reading response: %w", err))
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remote.NewStatusError(endpoint, resp.StatusCode, body)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		logger.Warn().Err(err).Msg("ignoring malformed response body")
		reflect.ValueOf(out).Elem().SetZero()
	}
	return nil
}
