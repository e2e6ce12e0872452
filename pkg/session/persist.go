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

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📂 Open loads a session from path, or starts a new one when the file does not exist
func Open(ctx context.Context, path string) (*Store, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading session")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("no session file, starting a new session")
		return New(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading session file: %w", err)
	}

	var snap Snapshot
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&snap); err != nil {
		return nil, errors.Errorf("parsing session file: %w", err)
	}

	st := Restore(snap)
	if err := st.Snapshot().Dataset().Validate(); err != nil {
		return nil, errors.Errorf("validating session dataset: %w", err)
	}
	return st, nil
}

// 💾 Save writes the current snapshot to path atomically
func (s *Store) Save(ctx context.Context, path string) error {
	snap := s.Snapshot()
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("session", snap.SessionID).
		Int("rows", len(snap.Rows)).
		Msg("writing session")

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Errorf("encoding session: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("creating session directory: %w", err)
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return errors.Errorf("writing temp session file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp session file: %w", err)
	}
	return nil
}
