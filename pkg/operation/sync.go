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

package operation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/copywrite/pkg/confirm"
	"github.com/walteh/copywrite/pkg/index"
	"github.com/walteh/copywrite/pkg/log"
	"github.com/walteh/copywrite/pkg/plan"
	"github.com/walteh/copywrite/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔄 Sync overwrites every file in destination whose name also exists in
// source and whose content differs. Per-file failures are reported in the
// Outcome; the returned error is reserved for failures that stop the run.
func (s *Syncer) Sync(ctx context.Context, source, destination string) (*Outcome, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("source", source).
		Str("destination", destination).
		Logger()
	ctx = logger.WithContext(ctx)
	console := log.FromContext(ctx)

	logger.Debug().Str("config", s.config.String()).Msg("starting sync")

	src, dst, err := s.buildIndexes(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	engine := s.engine
	candidates := engine.Diff(src, dst)
	filtered, err := engine.FilterChanged(ctx, candidates)
	if err != nil {
		return nil, errors.Errorf("diffing %s and %s: %w", source, destination, err)
	}

	outcome := &Outcome{
		Diff:    filtered,
		Orphans: engine.Orphans(src, dst),
		Plan:    plan.New(filtered.Changed),
	}

	for _, f := range filtered.Failures {
		console.Warningf("skipping %s: %v", f.Operation.Name(), f.Err)
	}

	if s.config.ShowOrphans && !outcome.Orphans.Empty() {
		if len(outcome.Orphans.SourceOnly) > 0 {
			console.Infof("only in source: %s", strings.Join(outcome.Orphans.SourceOnly, ", "))
		}
		if len(outcome.Orphans.DestinationOnly) > 0 {
			console.Infof("only in destination: %s", strings.Join(outcome.Orphans.DestinationOnly, ", "))
		}
	}

	if err := plan.Render(console.Writer(), outcome.Plan); err != nil {
		return nil, errors.Errorf("printing preview: %w", err)
	}

	if s.dryRun && !outcome.Plan.Empty() {
		logger.Debug().Int("operations", outcome.Plan.Len()).Msg("dry run, stopping after preview")
		outcome.Kind = OutcomeDryRun
		return outcome, nil
	}

	decision, err := s.gate.Confirm(ctx, outcome.Plan)
	if err != nil {
		return nil, errors.Errorf("confirming plan: %w", err)
	}

	switch decision {
	case confirm.NothingToDo:
		outcome.Kind = OutcomeNothingToDo
		return outcome, nil
	case confirm.Cancelled:
		console.Info("Cancelled, no files were changed.")
		outcome.Kind = OutcomeCancelled
		return outcome, nil
	}

	console.StartRun(ctx, log.RunOperation{
		Source:      source,
		Destination: destination,
		Planned:     outcome.Plan.Len(),
	})

	report := s.executor.Execute(ctx, outcome.Plan)
	for _, r := range report.Results {
		console.LogFileResult(ctx, r)
	}
	for _, op := range filtered.Unchanged {
		console.LogFileResult(ctx, status.Result{
			Name:        op.Name(),
			Destination: op.Destination.Path(),
			Status:      status.StatusUnchanged,
		})
	}
	report.Summary.Unchanged = len(filtered.Unchanged)
	console.EndRun(ctx)

	summary := status.NewDefaultFileFormatter().FormatSummary(report.Summary)
	if len(report.Failed) > 0 {
		console.Warning(summary)
	} else {
		console.Success(summary)
	}

	outcome.Kind = OutcomeCompleted
	outcome.Report = report
	return outcome, nil
}

// buildIndexes lists both trees concurrently
func (s *Syncer) buildIndexes(ctx context.Context, source, destination string) (*index.Index, *index.Index, error) {
	opts := s.config.IndexOptions()

	var src, dst *index.Index
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		idx, err := index.Build(gctx, s.lister, source, opts)
		if err != nil {
			return errors.Errorf("indexing source: %w", err)
		}
		src = idx
		return nil
	})

	g.Go(func() error {
		idx, err := index.Build(gctx, s.lister, destination, opts)
		if err != nil {
			return errors.Errorf("indexing destination: %w", err)
		}
		dst = idx
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return src, dst, nil
}
