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

package plan_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copywrite/pkg/diff"
	"github.com/walteh/copywrite/pkg/index"
	"github.com/walteh/copywrite/pkg/plan"
	"github.com/walteh/copywrite/pkg/store"
)

func op(src, dst string) *diff.CopyOperation {
	return &diff.CopyOperation{
		Source:      index.NewFileEntry(store.FileInfo{Path: src, Mode: os.FileMode(0o644)}),
		Destination: index.NewFileEntry(store.FileInfo{Path: dst, Mode: os.FileMode(0o644)}),
	}
}

// 🧪 TestPlan checks ordering and immutability
func TestPlan(t *testing.T) {
	ops := []*diff.CopyOperation{
		op("/src/b.txt", "/dst/b.txt"),
		op("/src/a.txt", "/dst/x/a.txt"),
	}

	p := plan.New(ops)
	ops[0] = op("/elsewhere", "/elsewhere")

	require.Equal(t, 2, p.Len())
	assert.False(t, p.Empty())
	assert.Equal(t, []plan.PreviewRow{
		{Source: "/src/b.txt", Destination: "/dst/b.txt"},
		{Source: "/src/a.txt", Destination: "/dst/x/a.txt"},
	}, p.Preview())
	assert.Equal(t, "/src/a.txt ==> /dst/x/a.txt", p.Preview()[1].String())

	got := p.Operations()
	got[0] = nil
	assert.NotNil(t, p.Operations()[0], "callers must not be able to mutate the plan")
}

// 🧪 TestRender covers the table and the empty message
func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		plan      *plan.Plan
		wantLines []string
	}{
		{
			name:      "empty",
			plan:      plan.New(nil),
			wantLines: []string{plan.EmptyMessage},
		},
		{
			name: "rows",
			plan: plan.New([]*diff.CopyOperation{
				op("/src/a.txt", "/dst/a.txt"),
				op("/src/long/path/b.txt", "/dst/b.txt"),
			}),
			wantLines: []string{
				"/src/a.txt           ==> /dst/a.txt",
				"/src/long/path/b.txt ==> /dst/b.txt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, plan.Render(&buf, tt.plan))

			out := pterm.RemoveColorFromString(buf.String())
			var lines []string
			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				lines = append(lines, strings.TrimRight(line, " "))
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}
