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
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"github.com/walteh/rxgrid/pkg/tui"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when tui runs without an interactive stdin
var ErrNoTerminal = errors.Base("tui needs an interactive terminal")

// NewTUICmd creates a new tui command
func NewTUICmd(opts *opts.RootOpts) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive grid",
		Long: `Tui opens a full screen interface listing the spreadsheets under --dir.
Pick a file to upload it, type a prompt and press enter to apply it, or
ctrl+p to preview the pattern first. The session is saved on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.Config

			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.WithStack(ErrNoTerminal)
			}

			model := tui.New(ctx, opts.Store, opts.Ingest, opts.Transform, tui.Options{
				Dir:            dir,
				Replacement:    cfg.Transform.Replacement,
				NormalizePhone: cfg.Transform.NormalizePhone,
				NormalizeDate:  cfg.Transform.NormalizeDate,
				MaxRows:        cfg.Display.MaxRows,
			})

			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return finish(ctx, opts, errors.Errorf("running tui: %w", err))
			}
			return finish(ctx, opts, nil)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to list files from")

	return cmd
}
