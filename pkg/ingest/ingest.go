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

// Package ingest validates a picked file, uploads it and replaces the session dataset.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// AllowedExtensions are the file types the backend can parse
var AllowedExtensions = []string{".csv", ".xlsx", ".xls"}

// 🚫 ValidationError rejects a file before any request is made
type ValidationError struct {
	Filename string
}

func (e *ValidationError) Error() string {
	ext := filepath.Ext(e.Filename)
	if ext == "" {
		ext = e.Filename
	}
	return fmt.Sprintf("unsupported file type %q: allowed extensions are %s", ext, strings.Join(AllowedExtensions, ", "))
}

// 🔍 Validate checks the name against the extension allow-list, ignoring case
func Validate(name string) error {
	lower := strings.ToLower(name)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return &ValidationError{Filename: name}
}

// 📥 Coordinator sequences file ingestion against the session store
type Coordinator struct {
	store   *session.Store
	backend remote.Backend
}

// 🏭 New creates an ingestion coordinator
func New(store *session.Store, backend remote.Backend) (*Coordinator, error) {
	if store == nil {
		return nil, errors.Errorf("session store is required")
	}
	if backend == nil {
		return nil, errors.Errorf("backend is required")
	}
	return &Coordinator{store: store, backend: backend}, nil
}

// IngestPath opens a local file and ingests it. Browsing and dropping a file
// both end up here.
func (c *Coordinator) IngestPath(ctx context.Context, path string) error {
	name := filepath.Base(path)
	if err := c.reject(ctx, name); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		c.store.Fail(fmt.Sprintf("cannot open %s: %v", name, err))
		return errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return c.Ingest(ctx, remote.File{Name: name, Content: f})
}

// 🚀 Ingest uploads file and, on success, replaces the dataset, records the
// filename and clears the pattern and stats derived from the previous dataset.
// On failure only the status changes.
func (c *Coordinator) Ingest(ctx context.Context, file remote.File) error {
	logger := zerolog.Ctx(ctx).With().Str("file", file.Name).Logger()

	if err := c.reject(ctx, file.Name); err != nil {
		return err
	}

	tk := c.store.Begin()
	defer c.store.Settle(tk, remote.FallbackMessage(remote.UploadPath))

	logger.Debug().Uint64("seq", tk.Seq()).Msg("uploading file")

	resp, err := c.backend.Upload(ctx, file)
	if err != nil {
		msg := remote.Message(err, remote.FallbackMessage(remote.UploadPath))
		if !c.store.Commit(tk, func(w session.Writer) { w.SetStatus(session.Failed(msg)) }) {
			logger.Debug().Err(err).Msg("dropping failure of superseded upload")
		}
		logger.Error().Err(err).Msg("upload failed")
		return errors.Errorf("uploading %s: %w", file.Name, err)
	}

	res := resp.Result(file.Name)
	committed := c.store.Commit(tk, func(w session.Writer) {
		w.ReplaceDataset(res.Dataset.Columns, res.Dataset.Rows)
		w.SetFilename(res.Filename)
		w.ResetDerived()
		w.SetStatus(session.Idle())
	})
	if !committed {
		logger.Debug().Msg("dropping superseded upload response")
		return errors.WithStack(session.ErrSuperseded)
	}

	logger.Info().
		Str("filename", res.Filename).
		Int("columns", len(res.Dataset.Columns)).
		Int("rows", len(res.Dataset.Rows)).
		Msg("file ingested")
	return nil
}

// reject records a validation failure in the session without touching the
// dataset. A request in flight keeps its loading status.
func (c *Coordinator) reject(ctx context.Context, name string) error {
	err := Validate(name)
	if err == nil {
		return nil
	}
	zerolog.Ctx(ctx).Warn().Str("file", name).Msg("rejecting unsupported file type")
	c.store.Fail(err.Error())
	return err
}
