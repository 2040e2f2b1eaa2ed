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

	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner runs independent tasks with bounded concurrency.
// A failing task never stops the others.
type OperationRunner struct {
	limit int
}

// 🏗️ NewRunner creates a runner; limit <= 1 runs tasks one at a time
func NewRunner(limit int) *OperationRunner {
	if limit < 1 {
		limit = 1
	}
	return &OperationRunner{limit: limit}
}

// 🏃 Run calls task for every index in [0, n) and waits for all of them.
// Tasks are expected to record their own outcome.
func (r *OperationRunner) Run(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	if r.limit == 1 {
		r.runSync(ctx, n, task)
		return
	}
	r.runAsync(ctx, n, task)
}

// 🔄 runSync runs tasks in order on the calling goroutine
func (r *OperationRunner) runSync(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	for i := 0; i < n; i++ {
		task(ctx, i)
	}
}

// ⚡ runAsync fans tasks out over at most r.limit goroutines
func (r *OperationRunner) runAsync(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	var g errgroup.Group
	g.SetLimit(r.limit)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			task(ctx, i)
			return nil
		})
	}

	_ = g.Wait()
}
