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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/copywrite/pkg/diff"
	"github.com/walteh/copywrite/pkg/index"
	"github.com/walteh/copywrite/pkg/plan"
	"github.com/walteh/copywrite/pkg/status"
	"github.com/walteh/copywrite/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// ❌ Failure is one operation that could not be completed
type Failure struct {
	Op  *diff.CopyOperation
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("copying %s: %v", f.Op, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// 📊 Report is the outcome of Execute. Every slice is in plan order.
type Report struct {
	// Succeeded holds the destination entries that were overwritten
	Succeeded []*index.FileEntry
	// Failed holds the operations that could not be completed
	Failed []Failure
	// Results holds one result per planned operation
	Results []status.Result
	// Summary totals Results. Sync fills Unchanged from the diff.
	Summary status.Summary
}

// Err joins every failure, or returns nil
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// 📦 Executor applies a confirmed plan
type Executor struct {
	store      store.FileStore
	runner     *OperationRunner
	executable []string
}

// 🏭 NewExecutor creates an executor. Destinations matching one of the
// executable patterns get execute bits after copying.
func NewExecutor(fs store.FileStore, concurrency int, executable []string) *Executor {
	if concurrency <= 0 {
		concurrency = diff.DefaultConcurrency
	}
	return &Executor{
		store:      fs,
		runner:     NewRunner(concurrency),
		executable: executable,
	}
}

// 🏃 Execute runs every operation of p independently. One failure never
// cancels the others and nothing is retried. Operations that have not
// started when ctx is cancelled are reported as failed and leave their
// destination untouched.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan) *Report {
	logger := zerolog.Ctx(ctx)
	ops := p.Operations()

	tracker := status.NewTracker(logger)
	tracker.StartOperation(ctx, len(ops))

	results := make([]status.Result, len(ops))

	e.runner.Run(ctx, len(ops), func(ctx context.Context, i int) {
		results[i] = e.execute(ctx, ops[i])
		tracker.Track(ctx, results[i])
	})

	report := &Report{Results: results}
	for i, r := range results {
		if r.Error != nil {
			report.Failed = append(report.Failed, Failure{Op: ops[i], Err: r.Error})
			continue
		}
		report.Succeeded = append(report.Succeeded, ops[i].Destination)
	}
	report.Summary = tracker.FinishOperation(ctx)

	return report
}

func (e *Executor) execute(ctx context.Context, op *diff.CopyOperation) status.Result {
	result := status.Result{
		Name:        op.Name(),
		Destination: op.Destination.Path(),
		Status:      status.StatusFailed,
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	info, err := e.store.Copy(ctx, op.Source.Path(), op.Destination.Path())
	if err != nil {
		result.Error = err
		return result
	}
	result.Size = info.Size

	if e.isExecutable(op) {
		if err := e.store.MarkExecutable(ctx, op.Destination.Path()); err != nil {
			result.Error = errors.Errorf("marking executable: %w", err)
			return result
		}
		result.Executable = true
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", op.Source.Path()).
		Str("destination", op.Destination.Path()).
		Int64("size", info.Size).
		Bool("executable", result.Executable).
		Msg("copied file")

	result.Status = status.StatusCopied
	return result
}

// isExecutable matches the patterns against the file name and against
// any trailing part of the destination path
func (e *Executor) isExecutable(op *diff.CopyOperation) bool {
	if len(e.executable) == 0 {
		return false
	}

	path := strings.TrimPrefix(filepath.ToSlash(op.Destination.Path()), "/")
	for _, pattern := range e.executable {
		if ok, _ := doublestar.Match(pattern, op.Name()); ok {
			return true
		}
		if ok, _ := doublestar.Match("**/"+pattern, path); ok {
			return true
		}
	}
	return false
}
