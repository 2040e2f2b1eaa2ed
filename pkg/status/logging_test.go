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
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestFormatFileOperation(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "copied",
			result: Result{Name: "a.txt", Status: StatusCopied, Size: 1},
			want:   "    ✓ a.txt                               copied     1 B",
		},
		{
			name:   "unchanged",
			result: Result{Name: "b.txt", Status: StatusUnchanged},
			want:   "    • b.txt                               unchanged",
		},
		{
			name:   "failed",
			result: Result{Name: "c.txt", Status: StatusFailed, Error: errors.New("denied")},
			want:   "    ✗ c.txt                               failed               denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileOperation(tt.result))
		})
	}
}
