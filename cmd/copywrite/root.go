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

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/copywrite/cmd/copywrite/commands"
	"github.com/walteh/copywrite/cmd/copywrite/opts"
	"github.com/walteh/copywrite/pkg/config"
	"github.com/walteh/copywrite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	debug      bool
}

// streams are the process handles the commands read from and print to
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// newRootCmd builds the command tree around a shared RootOpts
func newRootCmd(s streams) *cobra.Command {
	flags := &rootFlags{}
	root := &opts.RootOpts{
		Stdin:       s.in,
		Stdout:      s.out,
		Interactive: isTerminal(s.in) && isTerminal(s.out),
	}

	cmd := &cobra.Command{
		Use:   "copywrite",
		Short: "Keep vendored file copies in step with their source",
		Long: `copywrite overwrites files in a destination tree with the same-named
files from a source tree whenever their content differs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(s.err, flags.debug)
			ctx := logger.WithContext(cmd.Context())

			cfg, err := loadConfig(ctx, flags.configFile)
			if err != nil {
				return err
			}
			logger.Debug().Str("location", cfg.Location()).Stringer("config", cfg).Msg("configuration loaded")

			root.Config = cfg
			root.Console = log.New(s.out, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, flags)
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)

	cmd.AddCommand(commands.NewUpdateCmd(root))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: discover .copywrite.* in the working directory)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}).
		Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Discover(ctx, wd)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
