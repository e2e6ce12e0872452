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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// NewPreviewCmd creates a new preview command
func NewPreviewCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <description>",
		Short: "Show the pattern a description would produce",
		Long: `Preview asks the backend for the pattern matching a plain language
description without touching the dataset. The pattern and explanation are
kept in the session.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := strings.Join(args, " ")
			if strings.TrimSpace(description) == "" {
				return errors.WithStack(transform.ErrBlankPrompt)
			}

			err := opts.Transform.Preview(ctx, description)
			snap := opts.Store.Snapshot()
			opts.Console.LogPreview(ctx, description, snap)
			if err != nil {
				return finish(ctx, opts, errors.Errorf("previewing: %w", err))
			}

			fmt.Fprintf(opts.Out, "pattern: %s\n", snap.Pattern)
			if snap.Explanation != "" {
				fmt.Fprintf(opts.Out, "explanation: %s\n", snap.Explanation)
			}
			return finish(ctx, opts, nil)
		},
	}

	return cmd
}
