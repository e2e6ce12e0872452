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

package transform

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/session"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/singleflight"
)

// DefaultReplacement is written over matches when neither the caller nor the
// configuration names a replacement
const DefaultReplacement = "REDACTED"

var (
	ErrNoDataset   = errors.Base("no file has been ingested")
	ErrBlankPrompt = errors.Base("prompt is blank")
	ErrBusy        = errors.Base("another request is in progress")
)

// ⚙️ Options tune a single apply
type Options struct {
	// Replacement overrides the coordinator default; a non-nil empty string
	// deletes matches
	Replacement *string
	// Columns limits the transform to these columns or globs; empty means all
	Columns        []string
	NormalizePhone bool
	NormalizeDate  bool
}

// 🔁 Coordinator runs apply and preview requests against the session store
type Coordinator struct {
	store       *session.Store
	backend     remote.Backend
	replacement string
	previews    singleflight.Group
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithDefaultReplacement sets the replacement used when Options.Replacement is nil
func WithDefaultReplacement(s string) Option {
	return func(c *Coordinator) {
		c.replacement = s
	}
}

// 🏭 New creates a transform coordinator
func New(store *session.Store, backend remote.Backend, opts ...Option) (*Coordinator, error) {
	if store == nil {
		return nil, errors.Errorf("session store is required")
	}
	if backend == nil {
		return nil, errors.Errorf("backend is required")
	}
	c := &Coordinator{store: store, backend: backend, replacement: DefaultReplacement}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// 🚦 Ready reports whether an apply with prompt may be submitted right now
func (c *Coordinator) Ready(prompt string) error {
	return ready(c.store.Snapshot(), prompt)
}

func ready(snap session.Snapshot, prompt string) error {
	if !snap.HasFile() {
		return errors.WithStack(ErrNoDataset)
	}
	if strings.TrimSpace(prompt) == "" {
		return errors.WithStack(ErrBlankPrompt)
	}
	if snap.Status.IsLoading() {
		return errors.WithStack(ErrBusy)
	}
	return nil
}

// 🚀 Apply sends prompt and opts to the transform endpoint and replaces the
// dataset, pattern, explanation and stats with the result. A failed request
// only moves the status to error.
func (c *Coordinator) Apply(ctx context.Context, prompt string, opts Options) error {
	snap := c.store.Snapshot()
	if err := ready(snap, prompt); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx).With().Str("file", snap.Filename).Logger()

	columns, err := ResolveColumns(snap.Columns, opts.Columns)
	if err != nil {
		logger.Warn().Err(err).Msg("rejecting transform target")
		c.store.Fail(err.Error())
		return err
	}

	req := c.request(prompt, columns, opts)

	tk, ok := c.store.TryBegin()
	if !ok {
		return errors.WithStack(ErrBusy)
	}
	defer c.store.Settle(tk, remote.FallbackMessage(remote.TransformPath))

	logger.Debug().
		Uint64("seq", tk.Seq()).
		Strs("columns", req.Columns).
		Bool("phone", req.ApplyPhoneNormalization).
		Bool("date", req.ApplyDateNormalization).
		Msg("applying transform")

	resp, err := c.backend.Transform(ctx, req)
	if err != nil {
		msg := remote.Message(err, remote.FallbackMessage(remote.TransformPath))
		if !c.store.Commit(tk, func(w session.Writer) { w.SetStatus(session.Failed(msg)) }) {
			logger.Debug().Err(err).Msg("dropping failure of superseded transform")
		}
		logger.Error().Err(err).Msg("transform failed")
		return errors.Errorf("applying transform: %w", err)
	}

	res := resp.Result(snap.Columns)
	committed := c.store.Commit(tk, func(w session.Writer) {
		w.ReplaceDataset(res.Dataset.Columns, res.Dataset.Rows)
		w.SetPattern(res.Pattern)
		w.SetExplanation(res.Explanation)
		w.SetStats(res.Stats)
		w.SetStatus(session.Idle())
	})
	if !committed {
		logger.Debug().Msg("dropping superseded transform response")
		return errors.WithStack(session.ErrSuperseded)
	}

	ev := logger.Info().Str("pattern", res.Pattern).Int("rows", len(res.Dataset.Rows))
	if res.Stats != nil {
		ev = ev.Int("updated_rows", res.Stats.UpdatedRows).Int("updated_cells", res.Stats.UpdatedCells)
	}
	ev.Msg("transform applied")
	return nil
}

func (c *Coordinator) request(prompt string, columns []string, opts Options) remote.TransformRequest {
	prompt = strings.TrimSpace(prompt)
	replacement := c.replacement
	if opts.Replacement != nil {
		replacement = *opts.Replacement
	}
	return remote.TransformRequest{
		NaturalLanguage:         prompt,
		Prompt:                  prompt,
		Replacement:             replacement,
		Columns:                 columns,
		ApplyPhoneNormalization: opts.NormalizePhone,
		ApplyDateNormalization:  opts.NormalizeDate,
	}
}

// 🔍 Preview derives the pattern for description without touching the
// dataset or stats. Identical previews in flight at the same time share one
// backend request. Any other request in flight makes Preview return ErrBusy,
// so a preview never supersedes an apply or upload.
func (c *Coordinator) Preview(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errors.WithStack(ErrBlankPrompt)
	}

	_, err, shared := c.previews.Do(description, func() (any, error) {
		return nil, c.preview(ctx, description)
	})
	if shared {
		zerolog.Ctx(ctx).Debug().Str("description", description).Msg("preview shared with an identical request")
	}
	return err
}

func (c *Coordinator) preview(ctx context.Context, description string) error {
	logger := zerolog.Ctx(ctx).With().Str("description", description).Logger()

	tk, ok := c.store.TryBegin()
	if !ok {
		logger.Debug().Msg("refusing preview while another request is in flight")
		return errors.WithStack(ErrBusy)
	}
	defer c.store.Settle(tk, remote.FallbackMessage(remote.PreviewPath))

	logger.Debug().Uint64("seq", tk.Seq()).Msg("previewing pattern")

	resp, err := c.backend.Preview(ctx, remote.PreviewRequest{NaturalLanguage: description})
	if err != nil {
		msg := remote.Message(err, remote.FallbackMessage(remote.PreviewPath))
		if !c.store.Commit(tk, func(w session.Writer) { w.SetStatus(session.Failed(msg)) }) {
			logger.Debug().Err(err).Msg("dropping failure of superseded preview")
		}
		logger.Error().Err(err).Msg("preview failed")
		return errors.Errorf("previewing pattern: %w", err)
	}

	res := resp.Result()
	committed := c.store.Commit(tk, func(w session.Writer) {
		w.SetPattern(res.Pattern)
		w.SetExplanation(res.Explanation)
		w.SetStatus(session.Idle())
	})
	if !committed {
		logger.Debug().Msg("dropping superseded preview response")
		return errors.WithStack(session.ErrSuperseded)
	}

	logger.Info().Str("pattern", res.Pattern).Msg("pattern previewed")
	return nil
}
