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

// Package confirm asks the operator whether a plan may be executed.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/copywrite/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// 🚦 Decision is the outcome of the gate
type Decision int

const (
	// Proceed means the plan may be executed
	Proceed Decision = iota
	// Cancelled means the operator declined
	Cancelled
	// NothingToDo means the plan was empty and no question was asked
	NothingToDo
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Cancelled:
		return "cancelled"
	case NothingToDo:
		return "nothing-to-do"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// 💬 Prompt asks a single yes/no question
type Prompt interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Message returns the question asked for a plan of n operations
func Message(n int) string {
	return fmt.Sprintf("Proceed with copying %d files?", n)
}

// 🛂 Gate turns a plan into a Decision
type Gate struct {
	Prompt Prompt
	// AssumeYes skips the question
	AssumeYes bool
}

// Confirm asks at most one question. An empty plan is NothingToDo and a
// negative answer is Cancelled; neither is an error.
func (g *Gate) Confirm(ctx context.Context, p *plan.Plan) (Decision, error) {
	logger := zerolog.Ctx(ctx)

	if p.Empty() {
		return NothingToDo, nil
	}

	if g.AssumeYes {
		logger.Debug().Int("operations", p.Len()).Msg("confirmation skipped")
		return Proceed, nil
	}

	if g.Prompt == nil {
		return Cancelled, errors.New("no prompt configured")
	}

	ok, err := g.Prompt.Confirm(ctx, Message(p.Len()))
	if err != nil {
		return Cancelled, errors.Errorf("asking for confirmation: %w", err)
	}

	if !ok {
		logger.Debug().Msg("operator declined")
		return Cancelled, nil
	}
	return Proceed, nil
}

// ⌨️ TerminalPrompt asks interactively on the controlling terminal
type TerminalPrompt struct{}

func (TerminalPrompt) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(message)
}

// 📜 ReaderPrompt reads a y/n line from In and writes the question to Out.
// Anything other than y or yes, including end of input, is a no.
type ReaderPrompt struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewReaderPrompt creates a prompt over in and out
func NewReaderPrompt(in io.Reader, out io.Writer) *ReaderPrompt {
	return &ReaderPrompt{In: in, Out: out}
}

func (r *ReaderPrompt) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if r.scanner == nil {
		r.scanner = bufio.NewScanner(r.In)
	}

	if _, err := fmt.Fprintf(r.Out, "%s [y/N] ", message); err != nil {
		return false, errors.Errorf("writing prompt: %w", err)
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return false, errors.Errorf("reading answer: %w", err)
		}
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(r.scanner.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
