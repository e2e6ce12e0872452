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

package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ❌ RequestError is a failed upload, preview or transform request.
// StatusCode is zero when the request never got a response.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// 🔁 FallbackMessage is the generic message for an endpoint when the server says nothing
func FallbackMessage(endpoint string) string {
	switch endpoint {
	case UploadPath:
		return "upload failed"
	case PreviewPath:
		return "preview failed"
	case TransformPath:
		return "transform failed"
	default:
		return "request failed"
	}
}

// NewStatusError builds the error for a non-success response.
// The body text is surfaced as the message; a JSON object body with a string
// "error" or "detail" field contributes just that field.
func NewStatusError(endpoint string, statusCode int, body []byte) *RequestError {
	return &RequestError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    messageFromBody(endpoint, body),
	}
}

// NewTransportError builds the error for a request that never got a response
func NewTransportError(endpoint string, err error) *RequestError {
	return &RequestError{
		Endpoint: endpoint,
		Message:  fmt.Sprintf("%s: %v", FallbackMessage(endpoint), err),
		Err:      err,
	}
}

func messageFromBody(endpoint string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return FallbackMessage(endpoint)
	}

	var obj map[string]any
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &obj) == nil {
		for _, key := range []string{"error", "detail"} {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return text
}

// 💬 Message extracts the user facing message from any coordinator error
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
