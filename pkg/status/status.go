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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 FileStatus is the outcome of one file in a run
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusCopied               // destination overwritten with source content
	StatusUnchanged            // digests matched, nothing to do
	StatusFailed               // copy or hash failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Result describes one finished file
type Result struct {
	Name        string     // matching file name
	Destination string     // destination path
	Status      FileStatus // outcome
	Size        int64      // bytes written
	Executable  bool       // execute bits were added
	Error       error      // set when Status is StatusFailed
}

// 📈 Summary aggregates the results of a run
type Summary struct {
	Copied    int
	Unchanged int
	Failed    int
	Bytes     int64
}

// Total returns the number of tracked files
func (s Summary) Total() int {
	return s.Copied + s.Unchanged + s.Failed
}

// 🔧 Tracker collects results from concurrent workers and reports progress
type Tracker struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu      sync.Mutex
	results map[string]Result

	total     int
	processed int
}

// 🏭 NewTracker creates a tracker that reports through logger
func NewTracker(logger *zerolog.Logger) *Tracker {
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		results:   make(map[string]Result),
	}
}

// StartOperation resets the tracker for a run of total files
func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.results = make(map[string]Result, total)
	t.logger.Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

// Track records a finished file and logs the new progress
func (t *Tracker) Track(ctx context.Context, r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results[r.Destination] = r
	t.processed++

	event := t.logger.Debug()
	if r.Error != nil {
		event = t.logger.Warn().Err(r.Error)
	}
	event.
		Str("name", r.Name).
		Str("status", r.Status.String()).
		Str("progress", t.formatter.FormatProgress(t.processed, t.total)).
		Msg(t.formatter.FormatResult(r))
}

// FinishOperation returns the summary of everything tracked since StartOperation
func (t *Tracker) FinishOperation(ctx context.Context) Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Summary
	for _, r := range t.results {
		switch r.Status {
		case StatusCopied:
			s.Copied++
			s.Bytes += r.Size
		case StatusUnchanged:
			s.Unchanged++
		case StatusFailed:
			s.Failed++
		}
	}

	t.logger.Debug().
		Int("copied", s.Copied).
		Int("unchanged", s.Unchanged).
		Int("failed", s.Failed).
		Int64("bytes", s.Bytes).
		Msg(t.formatter.FormatSummary(s))
	return s
}
