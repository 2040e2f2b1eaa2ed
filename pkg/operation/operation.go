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
	"github.com/walteh/copywrite/pkg/config"
	"github.com/walteh/copywrite/pkg/confirm"
	"github.com/walteh/copywrite/pkg/diff"
	"github.com/walteh/copywrite/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains everything a Syncer needs
type Options struct {
	// Store reads, hashes and copies files
	Store store.FileStore
	// Lister enumerates both trees
	Lister store.DirectoryLister
	// Gate decides whether a plan may run
	Gate *confirm.Gate
	// Config holds the validated settings; nil selects config.Default()
	Config *config.Config
	// DryRun stops after the preview
	DryRun bool
}

// 🎮 Syncer runs the index → diff → plan → confirm → execute pipeline
type Syncer struct {
	lister   store.DirectoryLister
	gate     *confirm.Gate
	config   *config.Config
	engine   *diff.Engine
	executor *Executor
	dryRun   bool
}

// 🏭 NewSyncer creates a syncer with the given options
func NewSyncer(opts Options) (*Syncer, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Lister == nil {
		return nil, errors.Errorf("lister is required")
	}
	if opts.Gate == nil {
		return nil, errors.Errorf("gate is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &Syncer{
		lister:   opts.Lister,
		gate:     opts.Gate,
		config:   cfg,
		engine:   diff.NewEngine(opts.Store, cfg.Concurrency),
		executor: NewExecutor(opts.Store, cfg.Concurrency, cfg.Executable),
		dryRun:   opts.DryRun,
	}, nil
}
