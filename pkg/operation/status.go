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
	"github.com/walteh/copywrite/pkg/diff"
	"github.com/walteh/copywrite/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// 🏁 OutcomeKind says how a sync ended
type OutcomeKind int

const (
	// OutcomeCompleted means the plan was executed, possibly with failures
	OutcomeCompleted OutcomeKind = iota
	// OutcomeNothingToDo means every matched file was already identical
	OutcomeNothingToDo
	// OutcomeCancelled means the operator declined and nothing was written
	OutcomeCancelled
	// OutcomeDryRun means the preview was printed and nothing was written
	OutcomeDryRun
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeNothingToDo:
		return "nothing-to-do"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// 📋 Outcome is everything a sync produced
type Outcome struct {
	Kind    OutcomeKind
	Plan    *plan.Plan
	Diff    *diff.Result
	Orphans diff.Orphans
	// Report is nil unless Kind is OutcomeCompleted
	Report *Report
}

// HasFailures reports whether any file could not be compared or copied.
// A declined run never has failures since nothing was attempted.
func (o *Outcome) HasFailures() bool {
	if o.Kind == OutcomeCancelled {
		return false
	}
	if o.Diff != nil && len(o.Diff.Failures) > 0 {
		return true
	}
	return o.Report != nil && len(o.Report.Failed) > 0
}

// Err joins every per-file failure, or returns nil
func (o *Outcome) Err() error {
	var errs []error
	if o.Diff != nil {
		for _, f := range o.Diff.Failures {
			errs = append(errs, f)
		}
	}
	if o.Report != nil {
		if err := o.Report.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
