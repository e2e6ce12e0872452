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

package commands

import (
	"context"
	"fmt"

	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"github.com/walteh/rxgrid/pkg/render"
	"gitlab.com/tozd/go/errors"
)

// finish persists the session and joins a save failure onto the command error
func finish(ctx context.Context, o *opts.RootOpts, err error) error {
	if saveErr := o.Save(ctx); saveErr != nil {
		if err != nil {
			return errors.Join(err, saveErr)
		}
		return saveErr
	}
	return err
}

// printTable writes the current dataset as a grid
func printTable(o *opts.RootOpts) error {
	out, err := render.Table(o.Store.Snapshot().Dataset(), o.Config.Display.MaxRows)
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(o.Out, out)
	return err
}
