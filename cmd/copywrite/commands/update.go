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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/copywrite/cmd/copywrite/opts"
	"github.com/walteh/copywrite/pkg/confirm"
	"github.com/walteh/copywrite/pkg/log"
	"github.com/walteh/copywrite/pkg/operation"
	"github.com/walteh/copywrite/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned when the run finished but some files could not be updated
var ErrFilesFailed = errors.Base("some files could not be updated")

type updateFlags struct {
	yes         bool
	dryRun      bool
	concurrency int
	noRecursive bool
	showOrphans bool
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:   "update <sourceDir> <destDir>",
		Short: "Overwrite destination files with newer copies from the source",
		Long: `Update refreshes files that already exist in the destination tree.
It will:
1. Index both directories by file name
2. Match names present on both sides and compare their content
3. Show every file that would be overwritten
4. Ask once for confirmation and copy the changed files

Files that exist on only one side are never created or deleted.`,
		Args: validateDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "update").Logger().WithContext(ctx)
			ctx = log.NewContext(ctx, opts.Console)

			cfg := opts.Config
			if cmd.Flags().Changed("yes") {
				cfg.AssumeYes = flags.yes
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = flags.concurrency
			}
			if cmd.Flags().Changed("no-recursive") {
				cfg.Recursive = !flags.noRecursive
			}
			if cmd.Flags().Changed("show-orphans") {
				cfg.ShowOrphans = flags.showOrphans
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving source: %w", err)
			}
			destination, err := filepath.Abs(args[1])
			if err != nil {
				return errors.Errorf("resolving destination: %w", err)
			}

			var prompt confirm.Prompt = confirm.NewReaderPrompt(opts.Stdin, opts.Stdout)
			if opts.Interactive {
				prompt = confirm.TerminalPrompt{}
			}

			fs := store.NewOS()
			syncer, err := operation.NewSyncer(operation.Options{
				Store:  fs,
				Lister: fs,
				Gate:   &confirm.Gate{Prompt: prompt, AssumeYes: cfg.AssumeYes},
				Config: cfg,
				DryRun: flags.dryRun,
			})
			if err != nil {
				return errors.Errorf("creating syncer: %w", err)
			}

			outcome, err := syncer.Sync(ctx, source, destination)
			if err != nil {
				return errors.Errorf("updating %s: %w", destination, err)
			}

			if outcome.HasFailures() {
				return errors.Errorf("%w: %v", ErrFilesFailed, outcome.Err())
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "copy without asking for confirmation")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the files that would be copied and stop")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "number of files hashed or copied at once")
	cmd.Flags().BoolVar(&flags.noRecursive, "no-recursive", false, "only index the top level of each directory")
	cmd.Flags().BoolVar(&flags.showOrphans, "show-orphans", false, "list file names that exist on one side only")

	return cmd
}

// validateDirs requires exactly two existing directories
func validateDirs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}

	for i, name := range []string{"source", "destination"} {
		info, err := os.Stat(args[i])
		if err != nil {
			return errors.Errorf("%s directory %q: %w", name, args[i], err)
		}
		if !info.IsDir() {
			return errors.Errorf("%s %q is not a directory", name, args[i])
		}
	}

	return nil
}
