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

// Package plan freezes the filtered copy operations into the ordered list
// that is previewed, confirmed and executed.
package plan

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/walteh/copywrite/pkg/diff"
	"gitlab.com/tozd/go/errors"
)

// EmptyMessage is printed instead of a table when nothing needs copying
const EmptyMessage = "No files need to be updated."

// 📋 Plan is an ordered, immutable list of copy operations
type Plan struct {
	ops []*diff.CopyOperation
}

// 🏭 New builds a plan; the input order is kept
func New(ops []*diff.CopyOperation) *Plan {
	frozen := make([]*diff.CopyOperation, len(ops))
	copy(frozen, ops)
	return &Plan{ops: frozen}
}

// Operations returns a copy of the operations in plan order
func (p *Plan) Operations() []*diff.CopyOperation {
	out := make([]*diff.CopyOperation, len(p.ops))
	copy(out, p.ops)
	return out
}

func (p *Plan) Len() int { return len(p.ops) }

// Empty reports whether there is nothing to do
func (p *Plan) Empty() bool { return len(p.ops) == 0 }

// PreviewRow is one line of the preview
type PreviewRow struct {
	Source      string
	Destination string
}

func (r PreviewRow) String() string {
	return fmt.Sprintf("%s ==> %s", r.Source, r.Destination)
}

// Preview returns one row per operation in plan order
func (p *Plan) Preview() []PreviewRow {
	rows := make([]PreviewRow, 0, len(p.ops))
	for _, op := range p.ops {
		rows = append(rows, PreviewRow{Source: op.Source.Path(), Destination: op.Destination.Path()})
	}
	return rows
}

// 🖨️ Render writes the preview to w as an aligned two-column table
func Render(w io.Writer, p *Plan) error {
	if p.Empty() {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	data := make(pterm.TableData, 0, p.Len())
	for _, row := range p.Preview() {
		data = append(data, []string{row.Source, row.Destination})
	}

	table, err := pterm.DefaultTable.WithData(data).WithSeparator(" ==> ").Srender()
	if err != nil {
		return errors.Errorf("rendering preview: %w", err)
	}

	if _, err := fmt.Fprintln(w, table); err != nil {
		return errors.Errorf("writing preview: %w", err)
	}
	return nil
}
