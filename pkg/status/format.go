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
	"fmt"

	"github.com/dustin/go-humanize"
)

// FileFormatter defines how results and progress should be formatted
type FileFormatter interface {
	// FormatResult formats the outcome of one file
	FormatResult(r Result) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the closing line of a run
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a result with emojis
func (f *DefaultFileFormatter) FormatResult(r Result) string {
	switch r.Status {
	case StatusCopied:
		if r.Executable {
			return fmt.Sprintf("📝 Copied %s (%s, executable)", r.Name, humanize.Bytes(uint64(r.Size)))
		}
		return fmt.Sprintf("📝 Copied %s (%s)", r.Name, humanize.Bytes(uint64(r.Size)))
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %v", r.Name, r.Error)
	default:
		return fmt.Sprintf("👍 Unchanged %s", r.Name)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the totals of a run
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	msg := fmt.Sprintf("Copied %d files.", s.Copied)
	if s.Bytes > 0 {
		msg += fmt.Sprintf(" Wrote %s.", humanize.Bytes(uint64(s.Bytes)))
	}
	if s.Unchanged > 0 {
		msg += fmt.Sprintf(" %d unchanged.", s.Unchanged)
	}
	if s.Failed > 0 {
		msg += fmt.Sprintf(" %d failed.", s.Failed)
	}
	return msg
}
