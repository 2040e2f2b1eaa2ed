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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copywrite/pkg/index"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: ".copywrite.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: ".copywrite.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_file",
			filename: ".copywrite.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "json_file",
			filename: ".copywrite.json",
			want:     &JSONParser{},
		},
		{
			name:     "unknown_extension",
			filename: "config.txt",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestYAMLParsing tests YAML config parsing
func TestYAMLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full",
			config: `
recursive: false
concurrency: 2
collision: error
ignore:
  - "**/*.tmp"
executable:
  - "bin/*.js"
assume_yes: true
show_orphans: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Recursive)
				assert.Equal(t, 2, cfg.Concurrency)
				assert.Equal(t, index.CollisionReject, cfg.Collision)
				assert.Equal(t, []string{"**/*.tmp"}, cfg.Ignore)
				assert.Equal(t, []string{"bin/*.js"}, cfg.Executable)
				assert.True(t, cfg.AssumeYes)
				assert.True(t, cfg.ShowOrphans)
			},
		},
		{
			name:   "empty_document_keeps_defaults",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name:        "unknown_field",
			config:      "recursve: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "invalid_value",
			config:      "concurrency: -3\n",
			errContains: "validating config",
		},
	}

	parser := &YAMLParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(context.Background(), []byte(tt.config))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	t.Setenv("COPYWRITE_TEST_GLOB", "**/*.bak")

	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_hcl",
			config: `
recursive   = false
concurrency = 4
collision   = "last-wins"
ignore      = ["*.tmp", "*.log"]
executable  = ["*.js"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Recursive)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, index.CollisionLastWins, cfg.Collision)
				assert.Equal(t, []string{"*.tmp", "*.log"}, cfg.Ignore)
				assert.Equal(t, []string{"*.js"}, cfg.Executable)
				assert.False(t, cfg.AssumeYes)
			},
		},
		{
			name:   "environment_variables",
			config: `ignore = [env.COPYWRITE_TEST_GLOB]`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.bak"}, cfg.Ignore)
				assert.True(t, cfg.Recursive, "unset attributes keep defaults")
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
recursive =
`,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_collision",
			config:      `collision = "newest"`,
			errContains: "validating config",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
