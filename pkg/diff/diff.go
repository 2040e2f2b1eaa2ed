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

// Package diff matches two indexes by file name and keeps the pairs whose
// content differs.
package diff

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/copywrite/pkg/index"
	"github.com/walteh/copywrite/pkg/store"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of pairs hashed at once
const DefaultConcurrency = 8

// 📦 CopyOperation overwrites Destination with the content of Source
type CopyOperation struct {
	Source      *index.FileEntry
	Destination *index.FileEntry
}

// Name returns the shared file name
func (op *CopyOperation) Name() string {
	return op.Destination.Name()
}

func (op *CopyOperation) String() string {
	return fmt.Sprintf("%s ==> %s", op.Source.Path(), op.Destination.Path())
}

// ❌ HashComputationError reports a pair whose content could not be compared.
// It unwraps to the underlying *store.IOError.
type HashComputationError struct {
	Operation *CopyOperation
	Path      string
	Err       error
}

func (e *HashComputationError) Error() string {
	return fmt.Sprintf("comparing %s: %v", e.Operation.Name(), e.Err)
}

func (e *HashComputationError) Unwrap() error {
	return e.Err
}

// 📊 Result is the outcome of FilterChanged
type Result struct {
	// Changed holds the pairs whose digests differ, in candidate order
	Changed []*CopyOperation
	// Unchanged holds the pairs that are already identical, in candidate order
	Unchanged []*CopyOperation
	// Failures holds the pairs that were excluded because hashing failed
	Failures []*HashComputationError
}

// 🧾 Orphans lists the names present on one side only
type Orphans struct {
	SourceOnly      []string
	DestinationOnly []string
}

// Empty reports whether both sides matched completely
func (o Orphans) Empty() bool {
	return len(o.SourceOnly) == 0 && len(o.DestinationOnly) == 0
}

// 🔍 Engine compares indexes using a FileStore for digests
type Engine struct {
	store       store.FileStore
	concurrency int
}

// 🏭 NewEngine creates an engine; concurrency <= 0 selects DefaultConcurrency
func NewEngine(fs store.FileStore, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{store: fs, concurrency: concurrency}
}

// Diff returns one candidate per destination name that also exists in the
// source, in destination discovery order. Nothing is read.
func (e *Engine) Diff(src, dst *index.Index) []*CopyOperation {
	var ops []*CopyOperation
	for _, name := range dst.Names() {
		srcEntry, ok := src.Get(name)
		if !ok {
			continue
		}
		dstEntry, _ := dst.Get(name)
		ops = append(ops, &CopyOperation{Source: srcEntry, Destination: dstEntry})
	}
	return ops
}

// Orphans reports the names that Diff ignores
func (e *Engine) Orphans(src, dst *index.Index) Orphans {
	var o Orphans
	for _, name := range src.Names() {
		if _, ok := dst.Get(name); !ok {
			o.SourceOnly = append(o.SourceOnly, name)
		}
	}
	for _, name := range dst.Names() {
		if _, ok := src.Get(name); !ok {
			o.DestinationOnly = append(o.DestinationOnly, name)
		}
	}
	return o
}

// FilterChanged hashes every candidate pair concurrently and keeps the ones
// that differ. A pair that cannot be hashed is reported in Result.Failures
// and left out; only cancellation of ctx fails the call.
func (e *Engine) FilterChanged(ctx context.Context, ops []*CopyOperation) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	changed := make([]bool, len(ops))
	failures := make([]*HashComputationError, len(ops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			same, failure := e.identical(gctx, op)
			if failure != nil {
				if errors.Is(failure.Err, context.Canceled) || errors.Is(failure.Err, context.DeadlineExceeded) {
					return failure.Err
				}
				failures[i] = failure
				return nil
			}
			changed[i] = !same
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("comparing files: %w", err)
	}

	result := &Result{}
	for i, op := range ops {
		switch {
		case failures[i] != nil:
			logger.Warn().Err(failures[i].Err).Str("name", op.Name()).Msg("excluding file that could not be hashed")
			result.Failures = append(result.Failures, failures[i])
		case changed[i]:
			result.Changed = append(result.Changed, op)
		default:
			result.Unchanged = append(result.Unchanged, op)
		}
	}

	logger.Debug().
		Int("candidates", len(ops)).
		Int("changed", len(result.Changed)).
		Int("unchanged", len(result.Unchanged)).
		Int("failed", len(result.Failures)).
		Msg("filtered candidates")

	return result, nil
}

func (e *Engine) identical(ctx context.Context, op *CopyOperation) (bool, *HashComputationError) {
	srcDigest, err := op.Source.Digest(ctx, e.store)
	if err != nil {
		return false, &HashComputationError{Operation: op, Path: op.Source.Path(), Err: err}
	}

	dstDigest, err := op.Destination.Digest(ctx, e.store)
	if err != nil {
		return false, &HashComputationError{Operation: op, Path: op.Destination.Path(), Err: err}
	}

	zerolog.Ctx(ctx).Trace().
		Str("name", op.Name()).
		Str("source_digest", srcDigest.Short()).
		Str("destination_digest", dstDigest.Short()).
		Msg("compared digests")

	return srcDigest == dstDigest, nil
}
