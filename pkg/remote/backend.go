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
	"context"
	"io"
)

// Endpoint paths served by the transform backend
const (
	UploadPath    = "/api/upload"
	PreviewPath   = "/api/llm-preview"
	TransformPath = "/api/transform"
)

// 🔌 Backend is the network boundary the coordinators talk to.
// Implementations return a *RequestError for any non-success outcome.
type Backend interface {
	// Upload sends a file to be parsed into a dataset
	Upload(ctx context.Context, file File) (*UploadResponse, error)
	// Preview derives a pattern from a description without touching the dataset
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	// Transform derives a pattern and applies it across the dataset
	Transform(ctx context.Context, req TransformRequest) (*TransformResponse, error)
}

// 📄 File is a named blob picked by the user
type File struct {
	Name    string
	Content io.Reader
}
