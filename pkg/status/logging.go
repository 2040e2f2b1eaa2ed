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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
	sizeWidth   = 10 // Width for the byte count
)

// 🎯 FormatFileOperation formats one result as an aligned console line
func FormatFileOperation(r Result) string {
	var prefix string
	switch r.Status {
	case StatusCopied:
		prefix = color.GreenString("✓")
	case StatusFailed:
		prefix = color.RedString("✗")
	case StatusUnchanged:
		prefix = color.CyanString("•")
	default:
		prefix = color.HiBlackString("-")
	}

	size := ""
	if r.Status == StatusCopied {
		size = humanize.Bytes(uint64(r.Size))
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, r.Name)
	statusPart := fmt.Sprintf("%-*s", statusWidth, r.Status.String())
	sizePart := fmt.Sprintf("%-*s", sizeWidth, size)

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
		sizePart,
	)

	if r.Error != nil {
		line += color.RedString("%v", r.Error)
	}
	return strings.TrimRight(line, " ")
}
