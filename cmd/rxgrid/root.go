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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rxgrid/cmd/rxgrid/commands"
	"github.com/walteh/rxgrid/cmd/rxgrid/opts"
	"github.com/walteh/rxgrid/pkg/config"
	"github.com/walteh/rxgrid/pkg/ingest"
	"github.com/walteh/rxgrid/pkg/log"
	"github.com/walteh/rxgrid/pkg/remote"
	"github.com/walteh/rxgrid/pkg/session"
	"github.com/walteh/rxgrid/pkg/transform"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/rxgrid/pkg/remote/httpapi"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile  string
	sessionPath string
	server      string
	debug       bool
}

// newRootCmd builds the command tree writing user output to stdout
func newRootCmd(stdout io.Writer) *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "rxgrid",
		Short: "Find and replace across spreadsheets with natural language",
		Long: `rxgrid uploads a CSV or Excel file to a transform backend, turns a plain
language description into a pattern and applies it across the rows.

The session (dataset, filename, last pattern and stats) is kept in a file so
that upload, preview and apply can run as separate commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			built, err := newRootOpts(ctx, flags, stdout)
			if err != nil {
				return err
			}
			*ro = *built
			cmd.SetContext(remote.ContextWithSession(ctx, ro.Store.Snapshot().SessionID))
			return nil
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewUploadCmd(ro),
		commands.NewPreviewCmd(ro),
		commands.NewApplyCmd(ro),
		commands.NewShowCmd(ro),
		commands.NewTUICmd(ro),
		newVersionCmd(stdout),
	)

	return cmd
}

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context, flags *rootFlags, stdout io.Writer) (*opts.RootOpts, error) {
	cfg, err := config.Load(ctx, flags.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if flags.sessionPath != "" {
		cfg.Session.Path = flags.sessionPath
	}
	if flags.server != "" {
		cfg.Server.BaseURL = flags.server
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	store, err := session.Open(ctx, cfg.Session.Path)
	if err != nil {
		return nil, errors.Errorf("opening session: %w", err)
	}

	backend, err := remote.Open(remote.ContextWithSession(ctx, store.Snapshot().SessionID), cfg.Server.BaseURL)
	if err != nil {
		return nil, errors.Errorf("opening backend: %w", err)
	}

	ing, err := ingest.New(store, backend)
	if err != nil {
		return nil, errors.Errorf("creating ingest coordinator: %w", err)
	}

	tr, err := transform.New(store, backend, transform.WithDefaultReplacement(cfg.Transform.Replacement))
	if err != nil {
		return nil, errors.Errorf("creating transform coordinator: %w", err)
	}

	level := zerolog.WarnLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("session ready")

	return &opts.RootOpts{
		Config:    cfg,
		Store:     store,
		Ingest:    ing,
		Transform: tr,
		Console:   log.New(stdout, level),
		Out:       stdout,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .rxgrid.{yaml,yml,json,hcl} if present)")
	cmd.PersistentFlags().StringVar(&flags.sessionPath, "session", "", "session file path (overrides session.path)")
	cmd.PersistentFlags().StringVar(&flags.server, "server", "", "backend base url (overrides server.base_url)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging installs a stderr zerolog logger on ctx
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
