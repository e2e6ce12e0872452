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
	"github.com/walteh/rxgrid/pkg/render"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		replacement string
		columns     []string
		phone       bool
		date        bool
	)

	cmd := &cobra.Command{
		Use:   "apply <prompt>",
		Short: "Find and replace across the dataset",
		Long: `Apply sends the prompt to the backend, which derives a pattern and replaces
every match in the dataset. The changed cells are printed as a diff followed
by the change statistics.

Columns may be exact names or globs such as 'email*' or '{phone,mobile}'.
Unset flags fall back to the transform section of the config file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prompt := strings.Join(args, " ")
			cfg := opts.Config.Transform

			o := transform.Options{
				Columns:        columns,
				NormalizePhone: cfg.NormalizePhone,
				NormalizeDate:  cfg.NormalizeDate,
			}
			if cmd.Flags().Changed("replacement") {
				o.Replacement = &replacement
			}
			if cmd.Flags().Changed("phone") {
				o.NormalizePhone = phone
			}
			if cmd.Flags().Changed("date") {
				o.NormalizeDate = date
			}

			if err := opts.Transform.Ready(prompt); err != nil {
				return errors.Errorf("applying: %w", err)
			}

			before := opts.Store.Snapshot().Dataset()

			err := opts.Transform.Apply(ctx, prompt, o)
			snap := opts.Store.Snapshot()
			opts.Console.LogTransform(ctx, prompt, snap)
			if err != nil {
				return finish(ctx, opts, errors.Errorf("applying: %w", err))
			}

			fmt.Fprintf(opts.Out, "pattern: %s\n", snap.Pattern)
			if snap.Explanation != "" {
				fmt.Fprintf(opts.Out, "explanation: %s\n", snap.Explanation)
			}
			fmt.Fprintln(opts.Out, render.Diff(before, snap.Dataset(), opts.Config.Display.MaxRows))
			fmt.Fprintln(opts.Out, render.Stats(snap.Stats))
			return finish(ctx, opts, nil)
		},
	}

	cmd.Flags().StringVarP(&replacement, "replacement", "r", "", "replacement text (default: transform.replacement)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "restrict to these columns (names or globs)")
	cmd.Flags().BoolVar(&phone, "phone", false, "normalize phone numbers")
	cmd.Flags().BoolVar(&date, "date", false, "normalize dates")

	return cmd
}
