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

package opts

import (
	"context"
	"io"

	"github.com/walteh/rxgrid/pkg/config"
	"github.com/walteh/rxgrid/pkg/ingest"
	"github.com/walteh/rxgrid/pkg/log"
	"github.com/walteh/rxgrid/pkg/session"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config    *config.Config
	Store     *session.Store
	Ingest    *ingest.Coordinator
	Transform *transform.Coordinator
	Console   *log.Logger
	Out       io.Writer
}

// Save persists the session to the configured path
func (o *RootOpts) Save(ctx context.Context) error {
	if err := o.Store.Save(ctx, o.Config.Session.Path); err != nil {
		return errors.Errorf("saving session: %w", err)
	}
	return nil
}
