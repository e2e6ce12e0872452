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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"gitlab.com/tozd/go/errors"
)

// NewUploadCmd creates a new upload command
func NewUploadCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a CSV or Excel file and start a new session",
		Long: `Upload sends a spreadsheet to the backend and replaces the session dataset
with the parsed result. Only .csv, .xlsx and .xls files are accepted; anything
else is rejected locally without contacting the backend.

A successful upload clears the pattern, explanation and stats left over from
the previous file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			err := opts.Ingest.IngestPath(ctx, path)
			opts.Console.LogIngest(ctx, filepath.Base(path), opts.Store.Snapshot())
			if err != nil {
				return finish(ctx, opts, errors.Errorf("uploading %s: %w", path, err))
			}

			if err := printTable(opts); err != nil {
				return finish(ctx, opts, err)
			}
			return finish(ctx, opts, nil)
		},
	}

	return cmd
}
