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

	"github.com/spf13/cobra"
	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"github.com/walteh/rxgrid/pkg/render"
	"gitlab.com/tozd/go/errors"
)

// NewShowCmd creates a new show command
func NewShowCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := render.Summary(opts.Store.Snapshot())
			if err != nil {
				return errors.Errorf("rendering summary: %w", err)
			}
			fmt.Fprintln(opts.Out, summary)
			return printTable(opts)
		},
	}

	return cmd
}
