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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/copywrite/pkg/index"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
// Expressions may read environment variables through env, e.g. env.HOME.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "copywrite.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// optional attributes are pointers so defaults survive
	type hclConfig struct {
		Recursive   *bool    `hcl:"recursive,optional"`
		Concurrency *int     `hcl:"concurrency,optional"`
		Collision   *string  `hcl:"collision,optional"`
		Ignore      []string `hcl:"ignore,optional"`
		Executable  []string `hcl:"executable,optional"`
		AssumeYes   *bool    `hcl:"assume_yes,optional"`
		ShowOrphans *bool    `hcl:"show_orphans,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	if hclCfg.Recursive != nil {
		cfg.Recursive = *hclCfg.Recursive
	}
	if hclCfg.Concurrency != nil {
		cfg.Concurrency = *hclCfg.Concurrency
	}
	if hclCfg.Collision != nil {
		cfg.Collision = index.CollisionPolicy(*hclCfg.Collision)
	}
	if hclCfg.AssumeYes != nil {
		cfg.AssumeYes = *hclCfg.AssumeYes
	}
	if hclCfg.ShowOrphans != nil {
		cfg.ShowOrphans = *hclCfg.ShowOrphans
	}
	cfg.Ignore = hclCfg.Ignore
	cfg.Executable = hclCfg.Executable

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
