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
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

// 🧪 TestTracker checks concurrent tracking and the summary
func TestTracker(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	tracker := NewTracker(&logger)

	tracker.StartOperation(ctx, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := Result{
				Name:        fmt.Sprintf("f%02d", i),
				Destination: fmt.Sprintf("/dst/f%02d", i),
				Status:      StatusCopied,
				Size:        10,
			}
			if i%5 == 0 {
				r.Status = StatusFailed
				r.Size = 0
				r.Error = errors.New("boom")
			}
			tracker.Track(ctx, r)
		}()
	}
	wg.Wait()

	summary := tracker.FinishOperation(ctx)
	assert.Equal(t, Summary{Copied: 8, Failed: 2, Bytes: 80}, summary)
	assert.Equal(t, 10, summary.Total())
}

// 🧪 TestTrackerRestart checks that StartOperation clears previous results
func TestTrackerRestart(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	tracker := NewTracker(&logger)

	tracker.StartOperation(ctx, 1)
	tracker.Track(ctx, Result{Name: "a", Destination: "/a", Status: StatusUnchanged})
	assert.Equal(t, Summary{Unchanged: 1}, tracker.FinishOperation(ctx))

	tracker.StartOperation(ctx, 0)
	assert.Equal(t, Summary{}, tracker.FinishOperation(ctx))
}

// 🧪 TestTrackerLogsResults checks that each tracked file is logged with its progress
func TestTrackerLogsResults(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	tracker := NewTracker(&logger)

	tracker.StartOperation(ctx, 2)
	tracker.Track(ctx, Result{Name: "a.txt", Destination: "/dst/a.txt", Status: StatusCopied, Size: 10})
	tracker.Track(ctx, Result{Name: "b.txt", Destination: "/dst/b.txt", Status: StatusFailed, Error: errors.New("denied")})

	out := buf.String()
	assert.Contains(t, out, `"message":"📝 Copied a.txt (10 B)"`)
	assert.Contains(t, out, `"progress":"⏳ Progress: 1/2 (50%)"`)
	assert.Contains(t, out, `"message":"❌ Failed b.txt: denied"`)
	assert.Contains(t, out, `"progress":"✅ Progress: 2/2 (100%)"`)
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "copied", StatusCopied.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
