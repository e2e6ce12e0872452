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

// Package remotetest provides a scriptable stand-in for the transform backend.
package remotetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/walteh/rxgrid/pkg/remote"
)

// 📝 Reply is one scripted response
type Reply struct {
	Status int
	// Body is sent verbatim; JSON is marshalled when Body is empty
	Body string
	JSON any
	// Wait, when set, holds the response until the channel is closed
	Wait <-chan struct{}
}

// 📨 Request is what the server recorded for one call
type Request struct {
	Endpoint    string
	Header      http.Header
	Filename    string
	FileContent []byte
	Body        []byte
	JSON        map[string]any
}

// 🧪 Server is an httptest server that answers the three backend endpoints
// with queued replies. The last queued reply of an endpoint is sticky.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string][]Reply
	requests []Request
}

// NewServer starts a server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	s := &Server{replies: map[string][]Reply{}}
	mux := http.NewServeMux()
	for _, endpoint := range []string{remote.UploadPath, remote.PreviewPath, remote.TransformPath} {
		endpoint := endpoint
		mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
			s.serve(endpoint, w, r)
		})
	}
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Reply queues a response for endpoint
func (s *Server) Reply(endpoint string, r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[endpoint] = append(s.replies[endpoint], r)
}

// ReplyJSON queues a JSON response for endpoint
func (s *Server) ReplyJSON(endpoint string, status int, v any) {
	s.Reply(endpoint, Reply{Status: status, JSON: v})
}

// Requests returns the recorded calls to endpoint in arrival order
func (s *Server) Requests(endpoint string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if r.Endpoint == endpoint {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many calls endpoint received
func (s *Server) Count(endpoint string) int {
	return len(s.Requests(endpoint))
}

func (s *Server) serve(endpoint string, w http.ResponseWriter, r *http.Request) {
	rec := Request{Endpoint: endpoint, Header: r.Header.Clone()}
	if endpoint == remote.UploadPath {
		if f, hdr, err := r.FormFile("file"); err == nil {
			rec.Filename = hdr.Filename
			rec.FileContent, _ = io.ReadAll(f)
			f.Close()
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
		_ = json.Unmarshal(rec.Body, &rec.JSON)
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	reply, ok := s.next(endpoint)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "no reply scripted for "+endpoint, http.StatusNotFound)
		return
	}

	if reply.Wait != nil {
		select {
		case <-reply.Wait:
		case <-r.Context().Done():
			return
		}
	}

	body := []byte(reply.Body)
	if len(body) == 0 && reply.JSON != nil {
		body, _ = json.Marshal(reply.JSON)
		w.Header().Set("Content-Type", "application/json")
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.Copy(w, bytes.NewReader(body))
}

// next pops the head reply unless it is the last one; callers hold s.mu
func (s *Server) next(endpoint string) (Reply, bool) {
	queue := s.replies[endpoint]
	if len(queue) == 0 {
		return Reply{}, false
	}
	head := queue[0]
	if len(queue) > 1 {
		s.replies[endpoint] = queue[1:]
	}
	return head, true
}
